package context

import (
	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// GetProfile extracts the authenticated profile from echo.Context.
// Returns nil for unauthenticated requests.
func GetProfile(c echo.Context) *entity.UserProfile {
	profile, ok := c.Get(string(KeyProfile)).(*entity.UserProfile)
	if !ok {
		return nil
	}

	return profile
}

// SetProfile stores the authenticated profile in echo.Context.
func SetProfile(c echo.Context, profile *entity.UserProfile) {
	c.Set(string(KeyProfile), profile)
}
