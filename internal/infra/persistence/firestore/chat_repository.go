package firestore

import (
	"context"

	"github.com/jonathanpoaquiza/market-jals/internal/domain/constants"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type chatRepository struct {
	client *firestore.Client
}

// NewChatRepository creates a ChatRepository backed by the document
// store. Messages live in a subcollection under their room.
func NewChatRepository(client *firestore.Client) repository.ChatRepository {
	return &chatRepository{client: client}
}

func (r *chatRepository) rooms() *firestore.CollectionRef {
	return r.client.Collection(constants.CollectionChatRooms)
}

func (r *chatRepository) messages(roomID string) *firestore.CollectionRef {
	return r.rooms().Doc(roomID).Collection(constants.CollectionMessages)
}

// FindRoomByID returns the room stored under the given document ID.
func (r *chatRepository) FindRoomByID(ctx context.Context, roomID string) (*entity.ChatRoom, error) {
	doc, err := r.rooms().Doc(roomID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrChatRoomNotFound
		}

		return nil, errors.Wrap(err, "get room document")
	}

	return decodeRoom(doc)
}

// FindRoomByParticipants looks up the room holding exactly the given
// canonicalized participant set. Array equality on the sorted slice
// makes participant order irrelevant.
func (r *chatRepository) FindRoomByParticipants(ctx context.Context, participants []string) (*entity.ChatRoom, error) {
	iter := r.rooms().Where("participants", "==", participants).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, repository.ErrChatRoomNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query room by participants")
	}

	return decodeRoom(doc)
}

// CreateRoom stores a new room under a generated document ID.
func (r *chatRepository) CreateRoom(ctx context.Context, room *entity.ChatRoom) (*entity.ChatRoom, error) {
	ref, _, err := r.rooms().Add(ctx, room)
	if err != nil {
		return nil, errors.Wrap(err, "add room document")
	}

	created := *room
	created.ID = ref.ID

	return &created, nil
}

// ListRoomsForUser returns every room uid participates in.
func (r *chatRepository) ListRoomsForUser(ctx context.Context, uid string) ([]*entity.ChatRoom, error) {
	iter := r.rooms().
		Where("participants", "array-contains", uid).
		OrderBy("lastActivity", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var rooms []*entity.ChatRoom
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "iterate room documents")
		}

		room, err := decodeRoom(doc)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}

	return rooms, nil
}

// AppendMessage stores a message and bumps the room summary in one
// batch so the room list never shows a message that was not stored.
func (r *chatRepository) AppendMessage(ctx context.Context, message *entity.ChatMessage) (*entity.ChatMessage, error) {
	msgRef := r.messages(message.RoomID).NewDoc()
	roomRef := r.rooms().Doc(message.RoomID)

	batch := r.client.Batch()
	batch.Set(msgRef, message)
	batch.Update(roomRef, []firestore.Update{
		{Path: "lastMessage", Value: message.Text},
		{Path: "lastActivity", Value: message.CreatedAt},
	})

	if _, err := batch.Commit(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrChatRoomNotFound
		}

		return nil, errors.Wrap(err, "commit message batch")
	}

	stored := *message
	stored.ID = msgRef.ID

	return &stored, nil
}

// ListMessages returns up to limit messages older than the message
// identified by beforeID, newest first.
func (r *chatRepository) ListMessages(ctx context.Context, roomID string, beforeID string, limit int) ([]*entity.ChatMessage, error) {
	query := r.messages(roomID).OrderBy("createdAt", firestore.Desc)
	if beforeID != "" {
		cursor, err := r.messages(roomID).Doc(beforeID).Get(ctx)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return []*entity.ChatMessage{}, nil
			}

			return nil, errors.Wrap(err, "get cursor message")
		}
		query = query.StartAfter(cursor)
	}
	query = query.Limit(limit)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var messages []*entity.ChatMessage
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "iterate message documents")
		}

		var message entity.ChatMessage
		if err := doc.DataTo(&message); err != nil {
			return nil, errors.Wrap(err, "decode message document")
		}
		message.ID = doc.Ref.ID
		message.RoomID = roomID
		messages = append(messages, &message)
	}

	return messages, nil
}

func decodeRoom(doc *firestore.DocumentSnapshot) (*entity.ChatRoom, error) {
	var room entity.ChatRoom
	if err := doc.DataTo(&room); err != nil {
		return nil, errors.Wrap(err, "decode room document")
	}
	room.ID = doc.Ref.ID

	return &room, nil
}
