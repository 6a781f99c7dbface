package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathanpoaquiza/market-jals/internal/domain/constants"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runGuard(t *testing.T, path string, withSession bool) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if withSession {
		req.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "token"})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewRouteGuard().Process(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	return rec
}

func TestRouteGuard_RedirectsGuardedPagesWithoutSession(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/dashboard", "/products/abc", "/chat", "/invoicing/new"} {
		rec := runGuard(t, path, false)

		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Contains(t, rec.Header().Get("Location"), "/login?from=", path)
	}
}

func TestRouteGuard_PreservesOriginPath(t *testing.T) {
	t.Parallel()

	rec := runGuard(t, "/invoicing/new", false)

	assert.Equal(t, "/login?from=%2Finvoicing%2Fnew", rec.Header().Get("Location"))
}

func TestRouteGuard_AllowsGuardedPagesWithSession(t *testing.T) {
	t.Parallel()

	rec := runGuard(t, "/dashboard", true)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouteGuard_RedirectsVisitorPagesWithSession(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/login", "/register", "/reset-password"} {
		rec := runGuard(t, path, true)

		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"), path)
	}
}

func TestRouteGuard_AllowsVisitorPagesWithoutSession(t *testing.T) {
	t.Parallel()

	rec := runGuard(t, "/login", false)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouteGuard_IgnoresUnlistedPaths(t *testing.T) {
	t.Parallel()

	// Prefix matching is on path segments, not raw strings.
	rec := runGuard(t, "/productsfeed", false)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = runGuard(t, "/", false)
	assert.Equal(t, http.StatusOK, rec.Code)
}
