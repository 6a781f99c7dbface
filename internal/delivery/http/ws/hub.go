// Package ws implements the live chat stream over WebSocket.
package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/jonathanpoaquiza/market-jals/config"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/constants"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/service"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin is enforced at the session layer, not the upgrade.
	CheckOrigin: func(*http.Request) bool {
		return true
	},
}

// client is a single WebSocket subscriber of one room.
type client struct {
	roomID string
	send   chan []byte
}

// Hub maintains room subscriptions and fans stored messages out to
// them. It implements service.MessageBroadcaster.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*client]struct{}
	viewCap int
	logger  *slog.Logger
}

// NewHub creates the chat stream hub. The view cap bounds how many
// messages a live view can lag before it is dropped.
func NewHub(cfg *config.Config, logger *slog.Logger) *Hub {
	viewCap := constants.DefaultLiveViewCap
	if cfg.Chat != nil && cfg.Chat.LiveViewCap > 0 {
		viewCap = cfg.Chat.LiveViewCap
	}

	return &Hub{
		rooms:   make(map[string]map[*client]struct{}),
		viewCap: viewCap,
		logger:  logger,
	}
}

// Broadcast sends a stored message to every subscriber of its room.
// Slow subscribers are dropped instead of blocking the sender.
func (h *Hub) Broadcast(roomID string, message *entity.ChatMessage) {
	payload, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("Failed to encode chat message for stream", "error", err)

		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for subscriber := range h.rooms[roomID] {
		select {
		case subscriber.send <- payload:
		default:
			h.dropLocked(roomID, subscriber)
		}
	}
}

// Subscribers returns the number of live subscribers of a room.
func (h *Hub) Subscribers(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms[roomID])
}

// ServeRoom upgrades the request and streams the room until the peer
// disconnects. Authorization must happen before calling this.
func (h *Hub) ServeRoom(c echo.Context, roomID string) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	subscriber := &client{
		roomID: roomID,
		send:   make(chan []byte, h.viewCap),
	}

	h.mu.Lock()
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*client]struct{})
	}
	h.rooms[roomID][subscriber] = struct{}{}
	h.mu.Unlock()

	h.logger.Debug("Chat stream opened", "roomID", roomID)

	go h.writePump(conn, subscriber)
	h.readPump(conn, subscriber)

	return nil
}

// writePump drains the subscriber channel into the connection.
func (h *Hub) writePump(conn *websocket.Conn, subscriber *client) {
	defer conn.Close()

	for payload := range subscriber.send {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}

	_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump keeps the connection alive and unsubscribes on close.
// Inbound frames are ignored; messages go through the REST relay so
// they are stored before anyone sees them.
func (h *Hub) readPump(conn *websocket.Conn, subscriber *client) {
	defer func() {
		h.mu.Lock()
		h.dropLocked(subscriber.roomID, subscriber)
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("Chat stream closed unexpectedly", "error", err)
			}

			return
		}
	}
}

// dropLocked removes a subscriber. Callers must hold mu.
func (h *Hub) dropLocked(roomID string, subscriber *client) {
	room, ok := h.rooms[roomID]
	if !ok {
		return
	}
	if _, ok := room[subscriber]; !ok {
		return
	}

	delete(room, subscriber)
	close(subscriber.send)
	if len(room) == 0 {
		delete(h.rooms, roomID)
	}
}

// NewBroadcaster exposes the hub under the domain interface for Fx.
func NewBroadcaster(hub *Hub) service.MessageBroadcaster {
	return hub
}
