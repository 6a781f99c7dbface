package firestore

import "go.uber.org/fx"

// Module provides the document store repositories
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewUserRepository),
	fx.Provide(NewProductRepository),
	fx.Provide(NewChatRepository),
)
