package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	domainerrors "github.com/jonathanpoaquiza/market-jals/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("emulator"))
	require.NoError(t, err)

	return token
}

func createDebugVerifier() *debugVerifier {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewDebugVerifier(logger).(*debugVerifier)
}

func TestDebugVerifier_Verify_Success(t *testing.T) {
	verifier := createDebugVerifier()

	token := signedTestToken(t, jwt.MapClaims{
		"sub":   "uid-1",
		"email": "ana@example.com",
		"name":  "Ana",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	credential, err := verifier.Verify(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, "uid-1", credential.UID)
	assert.Equal(t, "ana@example.com", credential.Email)
	assert.Equal(t, "Ana", credential.DisplayName)
}

func TestDebugVerifier_Verify_FallsBackToEmailAsName(t *testing.T) {
	verifier := createDebugVerifier()

	token := signedTestToken(t, jwt.MapClaims{
		"sub":   "uid-1",
		"email": "ana@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	credential, err := verifier.Verify(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", credential.DisplayName)
}

func TestDebugVerifier_Verify_UserIDClaim(t *testing.T) {
	verifier := createDebugVerifier()

	token := signedTestToken(t, jwt.MapClaims{
		"user_id": "uid-2",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	credential, err := verifier.Verify(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, "uid-2", credential.UID)
}

func TestDebugVerifier_Verify_Expired(t *testing.T) {
	verifier := createDebugVerifier()

	token := signedTestToken(t, jwt.MapClaims{
		"sub": "uid-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := verifier.Verify(context.Background(), token)

	assert.ErrorIs(t, err, domainerrors.ErrTokenExpired)
}

func TestDebugVerifier_Verify_Malformed(t *testing.T) {
	verifier := createDebugVerifier()

	_, err := verifier.Verify(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)

	_, err = verifier.Verify(context.Background(), "")
	assert.ErrorIs(t, err, domainerrors.ErrTokenMissing)
}

func TestDebugVerifier_Verify_MissingSubject(t *testing.T) {
	verifier := createDebugVerifier()

	token := signedTestToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := verifier.Verify(context.Background(), token)

	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}
