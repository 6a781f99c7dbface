package service

import (
	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"
)

// MessageBroadcaster fans a stored message out to live subscribers of
// its room. Delivery is best effort; history remains the source of
// truth.
type MessageBroadcaster interface {
	Broadcast(roomID string, message *entity.ChatMessage)
}
