package service

import (
	"context"
)

// Credential is an identity proven by a verified ID token. It carries no
// authorization; the role lives on the stored profile.
type Credential struct {
	UID         string
	Email       string
	DisplayName string
}

// CredentialVerifier validates raw ID tokens against the identity
// provider.
type CredentialVerifier interface {
	// Verify checks the token signature and expiry and extracts the
	// identity. Expired, revoked and malformed tokens fail with the
	// matching credential error.
	Verify(ctx context.Context, idToken string) (*Credential, error)
}
