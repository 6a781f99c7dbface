// Package constants holds shared domain-level constants.
package constants

import "time"

// Runtime environments.
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub provider types.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Credential verifier types.
const (
	AuthVerifierFirebase = "firebase"
	AuthVerifierDebug    = "debug"
)

// SessionCookieName is the cookie carrying the provider-issued ID token.
// The edge route guard only checks its presence; API handlers re-verify the
// token on every call.
const SessionCookieName = "firebaseIdToken"

// DefaultSessionCookieMaxAge is the session cookie lifetime when not configured.
const DefaultSessionCookieMaxAge = 5 * 24 * time.Hour

// Firestore collection names.
const (
	CollectionUsers     = "users"
	CollectionProducts  = "products"
	CollectionChatRooms = "chatRooms"
	CollectionMessages  = "messages"
)

// DefaultCatalogPageSize caps and defaults catalog listing pages.
const DefaultCatalogPageSize = 20

// ChatRoomTopicPrefix prefixes the FCM topic a chat room fans out to.
const ChatRoomTopicPrefix = "chat-room-"

// Chat relay defaults.
const (
	DefaultHistoryPageSize = 50
	DefaultLiveViewCap     = 100
)
