package auth

import (
	"log/slog"

	"github.com/jonathanpoaquiza/market-jals/config"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/constants"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/service"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// VerifierParams holds dependencies for the credential verifier, injected by Fx
type VerifierParams struct {
	fx.In

	Config     *config.Config
	AuthClient *firebaseauth.Client
	Logger     *slog.Logger
}

// NewCredentialVerifier selects the verifier from configuration.
func NewCredentialVerifier(params VerifierParams) (service.CredentialVerifier, error) {
	verifier := constants.AuthVerifierFirebase
	if params.Config.Auth != nil && params.Config.Auth.Verifier != "" {
		verifier = params.Config.Auth.Verifier
	}

	switch verifier {
	case constants.AuthVerifierFirebase:
		return NewFirebaseVerifier(params.AuthClient, params.Logger), nil
	case constants.AuthVerifierDebug:
		if params.Config.Env.Env == constants.EnvProduction {
			return nil, errors.New("debug verifier is not allowed in production")
		}

		return NewDebugVerifier(params.Logger), nil
	default:
		return nil, errors.Errorf("unknown auth verifier: %s", verifier)
	}
}

// Module provides the auth FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewCredentialVerifier),
)
