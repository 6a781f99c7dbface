package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jonathanpoaquiza/market-jals/config"
	deliverycontext "github.com/jonathanpoaquiza/market-jals/internal/delivery/context"
	"github.com/jonathanpoaquiza/market-jals/internal/delivery/http/response"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/constants"

	"github.com/labstack/echo/v4"
)

// SessionHandler manages the browser session cookie.
type SessionHandler struct {
	logger *slog.Logger
	maxAge time.Duration
	secure bool
}

// NewSessionHandler is the constructor for SessionHandler, injected by Fx.
func NewSessionHandler(cfg *config.Config, logger *slog.Logger) *SessionHandler {
	maxAge := constants.DefaultSessionCookieMaxAge
	if cfg.Auth != nil && cfg.Auth.SessionCookieMaxAge > 0 {
		maxAge = cfg.Auth.SessionCookieMaxAge
	}

	return &SessionHandler{
		logger: logger,
		maxAge: maxAge,
		secure: cfg.Env.Env == constants.EnvProduction,
	}
}

type createSessionInput struct {
	IDToken string `json:"idToken" validate:"required"`
}

// CreateSession stores the ID token in the session cookie so page
// navigation can be guarded without a header. The token is not verified
// here; every API call re-verifies it on extraction.
func (h *SessionHandler) CreateSession(c echo.Context) error {
	var input createSessionInput
	if err := c.Bind(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Cuerpo de la solicitud no válido")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie(input.IDToken, h.maxAge))

	h.logger.Info("Session created")

	return response.Success(c, http.StatusOK, nil, "Sesión iniciada")
}

// DestroySession clears the session cookie.
func (h *SessionHandler) DestroySession(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", -time.Second))

	return response.Success(c, http.StatusOK, nil, "Sesión cerrada")
}

// Me returns the authenticated profile.
func (h *SessionHandler) Me(c echo.Context) error {
	return response.Success(c, http.StatusOK, deliverycontext.GetProfile(c), "")
}

func (h *SessionHandler) sessionCookie(value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
