package middleware

import (
	"strings"

	deliverycontext "github.com/jonathanpoaquiza/market-jals/internal/delivery/context"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/constants"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"
	domainerrors "github.com/jonathanpoaquiza/market-jals/internal/domain/errors"
	"github.com/jonathanpoaquiza/market-jals/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware authenticates requests against the identity provider
// and resolves the stored profile deciding authorization.
type AuthMiddleware struct {
	authUsecase usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authUsecase usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{authUsecase: authUsecase}
}

// Authenticate validates the credential and loads the profile into the
// request context. The token comes from the Authorization header or,
// for browser requests, the session cookie.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		idToken, err := extractToken(c)
		if err != nil {
			return err
		}

		profile, err := m.authUsecase.Authenticate(c.Request().Context(), idToken)
		if err != nil {
			return err
		}

		deliverycontext.SetProfile(c, profile)

		return next(c)
	}
}

// OptionalAuthenticate loads the profile when a credential is present
// and lets anonymous requests through with none. A credential that is
// present but invalid is still rejected.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		idToken, err := extractToken(c)
		if err != nil {
			if errors.Is(err, domainerrors.ErrTokenMissing) {
				return next(c)
			}

			return err
		}

		profile, err := m.authUsecase.Authenticate(c.Request().Context(), idToken)
		if err != nil {
			return err
		}

		deliverycontext.SetProfile(c, profile)

		return next(c)
	}
}

// RequireMinimumRole is a middleware factory that checks the profile's
// role against the hierarchy. It must be used AFTER Authenticate.
func (m *AuthMiddleware) RequireMinimumRole(minimum entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			profile := deliverycontext.GetProfile(c)
			if profile == nil {
				return errors.Wrap(domainerrors.ErrAuthFailed, "no profile in context")
			}

			if !profile.HasMinimumRole(minimum) {
				return errors.Wrapf(domainerrors.ErrForbidden, "requires %s", minimum)
			}

			return next(c)
		}
	}
}

func extractToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			return "", errors.Wrap(domainerrors.ErrTokenInvalid, "authorization header must use Bearer scheme")
		}

		return token, nil
	}

	cookie, err := c.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", errors.Wrap(domainerrors.ErrTokenMissing, "no bearer token or session cookie")
	}

	return cookie.Value, nil
}
