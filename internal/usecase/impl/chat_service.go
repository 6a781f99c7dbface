package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jonathanpoaquiza/market-jals/config"
	deliverycontext "github.com/jonathanpoaquiza/market-jals/internal/delivery/context"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/constants"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"
	domainerrors "github.com/jonathanpoaquiza/market-jals/internal/domain/errors"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/repository"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/service"
	"github.com/jonathanpoaquiza/market-jals/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// chatService implements the ChatUsecase interface.
type chatService struct {
	chatRepo    repository.ChatRepository
	userRepo    repository.UserRepository
	publisher   service.EventPublisher
	broadcaster service.MessageBroadcaster
	pageSize    int
	logger      *slog.Logger
}

// ChatServiceParams holds dependencies for ChatService, injected by Fx.
type ChatServiceParams struct {
	fx.In

	ChatRepo    repository.ChatRepository
	UserRepo    repository.UserRepository
	Publisher   service.EventPublisher
	Broadcaster service.MessageBroadcaster
	Config      *config.Config
	Logger      *slog.Logger
}

// NewChatService is the constructor for chatService.
func NewChatService(params ChatServiceParams) usecase.ChatUsecase {
	pageSize := constants.DefaultHistoryPageSize
	if params.Config.Chat != nil && params.Config.Chat.HistoryPageSize > 0 {
		pageSize = params.Config.Chat.HistoryPageSize
	}

	return &chatService{
		chatRepo:    params.ChatRepo,
		userRepo:    params.UserRepo,
		publisher:   params.Publisher,
		broadcaster: params.Broadcaster,
		pageSize:    pageSize,
		logger:      params.Logger,
	}
}

// GetOrCreateRoom resolves the room holding the actor plus the given
// participants, creating it when absent.
func (srv *chatService) GetOrCreateRoom(ctx context.Context, actor *entity.UserProfile, participantUIDs []string) (*entity.ChatRoom, error) {
	participants := entity.CanonicalizeParticipants(append(participantUIDs, actor.UID))
	if len(participants) < 2 {
		return nil, errors.Wrap(domainerrors.ErrNotEnoughParticipants, "room lookup")
	}

	// Every counterpart must exist before a room is created for them.
	for _, uid := range participants {
		if uid == actor.UID {
			continue
		}
		if _, err := srv.userRepo.FindByUID(ctx, uid); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil, errors.Wrapf(domainerrors.ErrUserNotFound, "participant %s", uid)
			}

			return nil, errors.Wrap(err, "failed to check participant")
		}
	}

	room, err := srv.chatRepo.FindRoomByParticipants(ctx, participants)
	if err == nil {
		return room, nil
	}
	if !errors.Is(err, repository.ErrChatRoomNotFound) {
		return nil, errors.Wrap(err, "failed to look up room")
	}

	room, err = srv.chatRepo.CreateRoom(ctx, &entity.ChatRoom{
		Participants: participants,
		CreatedAt:    time.Now().UTC(),
		LastActivity: time.Now().UTC(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create room")
	}

	srv.logger.Info("Chat room created", "roomID", room.ID, "participants", len(participants))

	return room, nil
}

// ListRooms returns the rooms the actor participates in.
func (srv *chatService) ListRooms(ctx context.Context, actor *entity.UserProfile) ([]*entity.ChatRoom, error) {
	rooms, err := srv.chatRepo.ListRoomsForUser(ctx, actor.UID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list rooms")
	}

	return rooms, nil
}

// SendMessage stores a message, broadcasts it to live subscribers and
// publishes a push event.
func (srv *chatService) SendMessage(ctx context.Context, actor *entity.UserProfile, input usecase.SendMessageInput) (*entity.ChatMessage, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, errors.Wrap(domainerrors.ErrMessageEmpty, "send")
	}

	room, err := srv.authorizedRoom(ctx, actor, input.RoomID)
	if err != nil {
		return nil, err
	}

	message, err := srv.chatRepo.AppendMessage(ctx, &entity.ChatMessage{
		RoomID:     room.ID,
		SenderID:   actor.UID,
		SenderName: actor.DisplayName,
		Text:       text,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store message")
	}

	srv.broadcaster.Broadcast(room.ID, message)

	event := &service.ChatEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		MessageID:  message.ID,
		RoomID:     room.ID,
		SenderID:   message.SenderID,
		SenderName: message.SenderName,
		Text:       message.Text,
		SentAt:     message.CreatedAt,
	}
	if err := srv.publisher.PublishChatEvent(ctx, event); err != nil {
		// The message is already stored and broadcast; only the push
		// notification is lost.
		srv.logger.Error("Failed to publish chat event",
			"roomID", room.ID, "messageID", message.ID, "error", err)
	}

	return message, nil
}

// GetMessages pages through a room's history, newest first.
func (srv *chatService) GetMessages(ctx context.Context, actor *entity.UserProfile, input usecase.GetMessagesInput) ([]*entity.ChatMessage, error) {
	room, err := srv.authorizedRoom(ctx, actor, input.RoomID)
	if err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 || limit > srv.pageSize {
		limit = srv.pageSize
	}

	messages, err := srv.chatRepo.ListMessages(ctx, room.ID, input.Before, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list messages")
	}

	return messages, nil
}

// AuthorizeStream checks stream access for the actor on a room.
func (srv *chatService) AuthorizeStream(ctx context.Context, actor *entity.UserProfile, roomID string) (*entity.ChatRoom, error) {
	return srv.authorizedRoom(ctx, actor, roomID)
}

// authorizedRoom loads a room and enforces participant membership.
// The existence check runs first so non-participants see the same
// response for missing and foreign rooms only when the room is absent.
func (srv *chatService) authorizedRoom(ctx context.Context, actor *entity.UserProfile, roomID string) (*entity.ChatRoom, error) {
	room, err := srv.chatRepo.FindRoomByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrChatRoomNotFound) {
			return nil, errors.Wrap(domainerrors.ErrChatRoomNotFound, "room lookup")
		}

		return nil, errors.Wrap(err, "failed to load room")
	}

	if !room.HasParticipant(actor.UID) {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "not a participant")
	}

	return room, nil
}
