// Package auth provides credential verifier implementations.
package auth

import (
	"context"
	"log/slog"

	domainerrors "github.com/jonathanpoaquiza/market-jals/internal/domain/errors"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/service"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
)

// firebaseVerifier validates ID tokens against the identity provider.
type firebaseVerifier struct {
	client *firebaseauth.Client
	logger *slog.Logger
}

// NewFirebaseVerifier creates a CredentialVerifier backed by the
// identity provider's admin client.
func NewFirebaseVerifier(client *firebaseauth.Client, logger *slog.Logger) service.CredentialVerifier {
	return &firebaseVerifier{client: client, logger: logger}
}

// Verify checks the token signature and expiry and extracts the identity.
func (v *firebaseVerifier) Verify(ctx context.Context, idToken string) (*service.Credential, error) {
	if idToken == "" {
		return nil, errors.Wrap(domainerrors.ErrTokenMissing, "verify")
	}

	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		switch {
		case firebaseauth.IsIDTokenExpired(err):
			return nil, errors.Wrap(domainerrors.ErrTokenExpired, err.Error())
		case firebaseauth.IsIDTokenRevoked(err):
			return nil, errors.Wrap(domainerrors.ErrTokenRevoked, err.Error())
		default:
			v.logger.Debug("Token verification failed", "error", err)

			return nil, errors.Wrap(domainerrors.ErrTokenInvalid, err.Error())
		}
	}

	return credentialFromClaims(token.UID, token.Claims), nil
}

// credentialFromClaims extracts the identity fields shared by both
// verifiers.
func credentialFromClaims(uid string, claims map[string]any) *service.Credential {
	credential := &service.Credential{UID: uid}
	if email, ok := claims["email"].(string); ok {
		credential.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		credential.DisplayName = name
	}
	if credential.DisplayName == "" {
		credential.DisplayName = credential.Email
	}

	return credential
}
