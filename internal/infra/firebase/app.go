// Package firebase wires the managed backend clients into the Fx graph.
package firebase

import (
	"context"

	"github.com/jonathanpoaquiza/market-jals/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

// AppParams holds dependencies for the Firebase app, injected by Fx
type AppParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
}

// NewApp initializes the Firebase app shared by the auth, Firestore and
// messaging clients.
func NewApp(params AppParams) (*firebase.App, error) {
	cfg := params.Config.Firebase
	if cfg == nil {
		return nil, errors.New("firebase configuration is required")
	}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(params.Ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	return app, nil
}

// NewAuthClient provides the identity provider client.
func NewAuthClient(ctx context.Context, app *firebase.App) (*auth.Client, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auth client")
	}

	return client, nil
}

// FirestoreParams holds dependencies for the Firestore client, injected by Fx
type FirestoreParams struct {
	fx.In

	Lc  fx.Lifecycle
	Ctx context.Context
	App *firebase.App
}

// NewFirestoreClient provides the document store client and closes it on
// shutdown.
func NewFirestoreClient(params FirestoreParams) (*firestore.Client, error) {
	client, err := params.App.Firestore(params.Ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get firestore client")
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}

// NewMessagingClient provides the FCM client.
func NewMessagingClient(ctx context.Context, app *firebase.App) (*messaging.Client, error) {
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return client, nil
}

// Module provides the Firebase FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewApp),
	fx.Provide(NewAuthClient),
	fx.Provide(NewFirestoreClient),
	fx.Provide(NewMessagingClient),
)
