package usecase

import (
	"context"

	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"
)

// SendMessageInput defines the data required to post a chat message.
type SendMessageInput struct {
	RoomID string `json:"roomId" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

// GetMessagesInput pages through a room's history. Before is the ID of
// the oldest message already seen.
type GetMessagesInput struct {
	RoomID string
	Before string
	Limit  int
}

// ChatUsecase defines the interface for the chat relay.
type ChatUsecase interface {
	// GetOrCreateRoom resolves the room for the actor plus the given
	// participants, creating it when absent. The actor is always a
	// participant of the resulting room.
	GetOrCreateRoom(ctx context.Context, actor *entity.UserProfile, participantUIDs []string) (*entity.ChatRoom, error)

	// ListRooms returns the rooms the actor participates in.
	ListRooms(ctx context.Context, actor *entity.UserProfile) ([]*entity.ChatRoom, error)

	// SendMessage stores a message, fans it out to live stream
	// subscribers and publishes a push event. Participants only.
	SendMessage(ctx context.Context, actor *entity.UserProfile, input SendMessageInput) (*entity.ChatMessage, error)

	// GetMessages pages through a room's history, newest first.
	// Participants only.
	GetMessages(ctx context.Context, actor *entity.UserProfile, input GetMessagesInput) ([]*entity.ChatMessage, error)

	// AuthorizeStream checks that the actor may open a live stream on
	// the room and returns the room.
	AuthorizeStream(ctx context.Context, actor *entity.UserProfile, roomID string) (*entity.ChatRoom, error)
}
