package auth

import (
	"context"
	"log/slog"
	"time"

	domainerrors "github.com/jonathanpoaquiza/market-jals/internal/domain/errors"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// debugVerifier parses ID token claims without checking the signature.
// The local auth emulator signs tokens with a throwaway key, so only
// structure and expiry can be checked. Never enable outside development.
type debugVerifier struct {
	logger *slog.Logger
}

// NewDebugVerifier creates a CredentialVerifier for the local emulator.
func NewDebugVerifier(logger *slog.Logger) service.CredentialVerifier {
	logger.Warn("Debug credential verifier enabled, token signatures are NOT checked")

	return &debugVerifier{logger: logger}
}

// Verify parses the token claims and checks expiry only.
func (v *debugVerifier) Verify(_ context.Context, idToken string) (*service.Credential, error) {
	if idToken == "" {
		return nil, errors.Wrap(domainerrors.ErrTokenMissing, "verify")
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(idToken, claims); err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenInvalid, err.Error())
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenInvalid, "missing expiry")
	}
	if expiry == nil || expiry.Before(time.Now()) {
		return nil, errors.Wrap(domainerrors.ErrTokenExpired, "verify")
	}

	uid, err := claims.GetSubject()
	if err != nil || uid == "" {
		// The emulator puts the UID in user_id when sub is absent.
		uid, _ = claims["user_id"].(string)
	}
	if uid == "" {
		return nil, errors.Wrap(domainerrors.ErrTokenInvalid, "missing subject")
	}

	return credentialFromClaims(uid, claims), nil
}
