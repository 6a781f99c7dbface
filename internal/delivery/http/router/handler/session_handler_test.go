package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonathanpoaquiza/market-jals/config"
	"github.com/jonathanpoaquiza/market-jals/internal/delivery/http/validator"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/constants"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func runCreateSession(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/session", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewSessionHandler(&config.Config{}, testLogger())
	err := h.CreateSession(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}

	return rec
}

func TestSessionHandler_CreateSession_StoresTokenWithoutVerification(t *testing.T) {
	t.Parallel()

	// No verifier is wired at all; the token is verified lazily on
	// each API call, not when the cookie is set.
	rec := runCreateSession(t, `{"idToken":"opaque-token"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	res := http.Response{Header: rec.Header()}
	cookies := res.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.SessionCookieName, cookies[0].Name)
	assert.Equal(t, "opaque-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Positive(t, cookies[0].MaxAge)
}

func TestSessionHandler_CreateSession_RequiresToken(t *testing.T) {
	t.Parallel()

	rec := runCreateSession(t, `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionHandler_DestroySession_ExpiresCookie(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/auth/session", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewSessionHandler(&config.Config{}, testLogger())
	require.NoError(t, h.DestroySession(c))

	res := http.Response{Header: rec.Header()}
	cookies := res.Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
