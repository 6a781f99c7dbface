// Package notification sends push notifications through FCM.
package notification

import (
	"context"

	"github.com/jonathanpoaquiza/market-jals/internal/domain/service"

	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
)

type firebaseService struct {
	client *messaging.Client
}

// NewFirebaseService creates a NotificationService backed by FCM.
func NewFirebaseService(client *messaging.Client) service.NotificationService {
	return &firebaseService{client: client}
}

// SendTopicNotification sends a push notification to every device
// subscribed to a topic
func (s *firebaseService) SendTopicNotification(ctx context.Context, topic, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		return errors.Wrapf(err, "send topic notification to %s", topic)
	}

	return nil
}
