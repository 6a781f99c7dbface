package entity

import (
	"slices"
	"time"
)

// ChatRoom is a conversation shared by a fixed set of participants.
// Participants are stored canonicalized so the same set of users always
// resolves to the same room.
type ChatRoom struct {
	ID           string    `json:"id" firestore:"-"`
	Participants []string  `json:"participants" firestore:"participants"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt"`
	LastMessage  string    `json:"lastMessage" firestore:"lastMessage"`
	LastActivity time.Time `json:"lastActivity" firestore:"lastActivity"`
}

// HasParticipant reports whether uid belongs to the room.
func (r *ChatRoom) HasParticipant(uid string) bool {
	if r == nil {
		return false
	}

	return slices.Contains(r.Participants, uid)
}

// ChatMessage is a single message inside a room.
type ChatMessage struct {
	ID         string    `json:"id" firestore:"-"`
	RoomID     string    `json:"roomId" firestore:"-"`
	SenderID   string    `json:"senderId" firestore:"senderId"`
	SenderName string    `json:"senderName" firestore:"senderName"`
	Text       string    `json:"text" firestore:"text"`
	CreatedAt  time.Time `json:"createdAt" firestore:"createdAt"`
}

// CanonicalizeParticipants sorts and deduplicates a participant set.
// Empty entries are dropped.
func CanonicalizeParticipants(uids []string) []string {
	canonical := make([]string, 0, len(uids))
	for _, uid := range uids {
		if uid == "" {
			continue
		}
		if !slices.Contains(canonical, uid) {
			canonical = append(canonical, uid)
		}
	}
	slices.Sort(canonical)

	return canonical
}
