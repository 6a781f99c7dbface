package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	deliverycontext "github.com/jonathanpoaquiza/market-jals/internal/delivery/context"
	"github.com/jonathanpoaquiza/market-jals/internal/delivery/http/response"
	"github.com/jonathanpoaquiza/market-jals/internal/delivery/http/ws"
	"github.com/jonathanpoaquiza/market-jals/internal/infra/metrics"
	"github.com/jonathanpoaquiza/market-jals/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ChatHandler holds dependencies for the chat relay handlers.
type ChatHandler struct {
	uc      usecase.ChatUsecase
	hub     *ws.Hub
	metrics *metrics.HTTPMetrics
	logger  *slog.Logger
}

// NewChatHandler is the constructor for ChatHandler, injected by Fx.
func NewChatHandler(uc usecase.ChatUsecase, hub *ws.Hub, m *metrics.HTTPMetrics, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{uc: uc, hub: hub, metrics: m, logger: logger}
}

// SendMessage posts a message to a room.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	var input usecase.SendMessageInput
	if err := c.Bind(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Cuerpo de la solicitud no válido")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	message, err := h.uc.SendMessage(c.Request().Context(), deliverycontext.GetProfile(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	h.metrics.RecordChatMessage()

	return response.Success(c, http.StatusCreated, message, "Mensaje enviado")
}

// RejectMessageFetch answers GET on the message relay endpoint.
// History lives under the room resource; this endpoint only accepts
// posts.
func (h *ChatHandler) RejectMessageFetch(c echo.Context) error {
	return response.MethodNotAllowed(c, "METHOD_NOT_ALLOWED", "Use POST para enviar mensajes")
}

type getOrCreateRoomInput struct {
	ParticipantUIDs []string `json:"participantUids" validate:"required,min=1"`
}

// GetOrCreateRoom resolves the room for the caller plus the given
// participants.
func (h *ChatHandler) GetOrCreateRoom(c echo.Context) error {
	var input getOrCreateRoomInput
	if err := c.Bind(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Cuerpo de la solicitud no válido")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	room, err := h.uc.GetOrCreateRoom(c.Request().Context(), deliverycontext.GetProfile(c), input.ParticipantUIDs)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, room, "")
}

// ListRooms returns the caller's rooms.
func (h *ChatHandler) ListRooms(c echo.Context) error {
	rooms, err := h.uc.ListRooms(c.Request().Context(), deliverycontext.GetProfile(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, rooms, "")
}

// GetMessages pages through a room's history, newest first.
func (h *ChatHandler) GetMessages(c echo.Context) error {
	input := usecase.GetMessagesInput{
		RoomID: c.Param("id"),
		Before: c.QueryParam("before"),
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "El parámetro limit debe ser numérico")
		}
		input.Limit = limit
	}

	messages, err := h.uc.GetMessages(c.Request().Context(), deliverycontext.GetProfile(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, messages, "")
}

// Stream upgrades to WebSocket and follows a room live.
func (h *ChatHandler) Stream(c echo.Context) error {
	roomID := c.QueryParam("roomId")
	if roomID == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Se requiere el parámetro roomId")
	}

	room, err := h.uc.AuthorizeStream(c.Request().Context(), deliverycontext.GetProfile(c), roomID)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.hub.ServeRoom(c, room.ID)
}
