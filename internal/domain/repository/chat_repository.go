package repository

import (
	"context"

	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"
)

// ChatRepository persists chat rooms and their messages.
type ChatRepository interface {
	// FindRoomByID returns the room with the given ID, or ErrChatRoomNotFound.
	FindRoomByID(ctx context.Context, roomID string) (*entity.ChatRoom, error)

	// FindRoomByParticipants looks up the room holding exactly the given
	// canonicalized participant set, or ErrChatRoomNotFound.
	FindRoomByParticipants(ctx context.Context, participants []string) (*entity.ChatRoom, error)

	// CreateRoom stores a new room and returns it with its assigned ID.
	CreateRoom(ctx context.Context, room *entity.ChatRoom) (*entity.ChatRoom, error)

	// ListRoomsForUser returns every room uid participates in, most
	// recently active first.
	ListRoomsForUser(ctx context.Context, uid string) ([]*entity.ChatRoom, error)

	// AppendMessage stores a message in its room and updates the room's
	// last activity.
	AppendMessage(ctx context.Context, message *entity.ChatMessage) (*entity.ChatMessage, error)

	// ListMessages returns up to limit messages of a room older than
	// the message identified by beforeID, newest first. An empty
	// beforeID means "from the latest".
	ListMessages(ctx context.Context, roomID string, beforeID string, limit int) ([]*entity.ChatMessage, error)
}
