package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/jonathanpoaquiza/market-jals/internal/domain/constants"

	"github.com/labstack/echo/v4"
)

// Route guard prefix tables. Guarded prefixes require a session and
// redirect to the login page; visitor prefixes are the reverse and send
// signed-in users to the dashboard.
var (
	guardedPrefixes = []string{"/dashboard", "/products", "/chat", "/invoicing"}
	visitorPrefixes = []string{"/login", "/register", "/reset-password"}
)

const (
	loginPath     = "/login"
	dashboardPath = "/dashboard"
)

// RouteGuard redirects page requests based on session cookie presence.
// Presence is enough here: the API authenticates every data request, so
// a forged cookie only ever reaches empty pages.
type RouteGuard struct{}

// NewRouteGuard creates a new route guard middleware
func NewRouteGuard() *RouteGuard {
	return &RouteGuard{}
}

// Process applies the prefix rules to page navigation requests.
func (g *RouteGuard) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		hasSession := hasSessionCookie(c)

		if !hasSession && matchesPrefix(path, guardedPrefixes) {
			target := loginPath + "?from=" + url.QueryEscape(path)

			return c.Redirect(http.StatusFound, target)
		}

		if hasSession && matchesPrefix(path, visitorPrefixes) {
			return c.Redirect(http.StatusFound, dashboardPath)
		}

		return next(c)
	}
}

func hasSessionCookie(c echo.Context) bool {
	cookie, err := c.Cookie(constants.SessionCookieName)

	return err == nil && cookie.Value != ""
}

func matchesPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}

	return false
}
