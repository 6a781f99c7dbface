package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "github.com/jonathanpoaquiza/market-jals/internal/delivery/context"
	"github.com/jonathanpoaquiza/market-jals/internal/delivery/http/response"
	"github.com/jonathanpoaquiza/market-jals/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for account administration handlers.
type UserHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.AuthUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{uc: uc, logger: logger}
}

// ListUsers returns every account in the directory.
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.uc.ListUsers(c.Request().Context(), deliverycontext.GetProfile(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users, "")
}

type assignRoleInput struct {
	UID  string `json:"uid" validate:"required"`
	Role string `json:"role" validate:"required"`
}

// AssignRole changes the role of the account named in the body.
func (h *UserHandler) AssignRole(c echo.Context) error {
	var input assignRoleInput
	if err := c.Bind(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Cuerpo de la solicitud no válido")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	actor := deliverycontext.GetProfile(c)
	updated, err := h.uc.AssignRole(c.Request().Context(), actor, usecase.AssignRoleInput{
		ActorUID:  actor.UID,
		TargetUID: input.UID,
		Role:      input.Role,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, updated, "Rol actualizado")
}
