package service

import (
	"context"
	"time"
)

// ChatEvent represents a message event handed to the push worker
type ChatEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	MessageID  string    `json:"message_id"`
	RoomID     string    `json:"room_id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Text       string    `json:"text"`
	SentAt     time.Time `json:"sent_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishChatEvent publishes a chat message event for async processing
	PublishChatEvent(ctx context.Context, event *ChatEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
