package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "lifelink/internal/delivery/context"
	"lifelink/internal/domain/entity"
	domainerrors "lifelink/internal/domain/errors"
	"lifelink/internal/domain/repository"
	"lifelink/internal/domain/service"
	"lifelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// chatService implements the ChatUsecase interface.
type chatService struct {
	requestRepo repository.RequestRepository
	chatRepo    repository.ChatRepository
	userRepo    repository.UserRepository
	broker      service.ChatBroker
	logger      *slog.Logger
}

// ChatServiceParams holds dependencies for chatService, injected by Fx.
type ChatServiceParams struct {
	fx.In

	RequestRepo repository.RequestRepository
	ChatRepo    repository.ChatRepository
	UserRepo    repository.UserRepository
	Broker      service.ChatBroker
	Logger      *slog.Logger
}

// NewChatService is the constructor for chatService.
func NewChatService(params ChatServiceParams) usecase.ChatUsecase {
	return &chatService{
		requestRepo: params.RequestRepo,
		chatRepo:    params.ChatRepo,
		userRepo:    params.UserRepo,
		broker:      params.Broker,
		logger:      params.Logger,
	}
}

func (srv *chatService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// History returns the room's persisted messages, oldest first.
func (srv *chatService) History(ctx context.Context, userID, requestID uuid.UUID) ([]*entity.ChatMessage, error) {
	if err := srv.checkMembership(ctx, userID, requestID); err != nil {
		return nil, err
	}

	messages, err := srv.chatRepo.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load chat history")
	}

	return messages, nil
}

// Post persists a message and relays it to connected participants.
func (srv *chatService) Post(ctx context.Context, input usecase.PostMessageInput) (*entity.ChatMessage, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "empty chat message")
	}

	if err := srv.checkMembership(ctx, input.SenderID, input.RequestID); err != nil {
		return nil, err
	}

	sender, err := srv.userRepo.FindByID(ctx, input.SenderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find sender")
	}

	message := &entity.ChatMessage{
		RequestID:  input.RequestID,
		SenderID:   input.SenderID,
		SenderName: sender.Name,
		Body:       body,
	}

	if err := srv.chatRepo.Create(ctx, message); err != nil {
		return nil, errors.Wrap(err, "failed to persist chat message")
	}

	// Relay only after the message is durable so replays never miss it.
	srv.broker.Publish(message)

	srv.log(ctx).Debug("Chat message relayed",
		slog.Any("requestID", input.RequestID),
		slog.Any("senderID", input.SenderID),
	)

	return message, nil
}

// Stream subscribes to the room's live messages until ctx is done.
func (srv *chatService) Stream(ctx context.Context, userID, requestID uuid.UUID) (<-chan *entity.ChatMessage, error) {
	if err := srv.checkMembership(ctx, userID, requestID); err != nil {
		return nil, err
	}

	return srv.broker.Subscribe(ctx, requestID), nil
}

// checkMembership verifies the user participates in the request's coordination.
func (srv *chatService) checkMembership(ctx context.Context, userID, requestID uuid.UUID) error {
	request, err := srv.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return errors.Wrap(domainerrors.ErrRequestNotFound, "chat room lookup failed")
		}

		return errors.Wrap(err, "failed to find request")
	}

	if !request.IsParticipant(userID) {
		return errors.Wrap(domainerrors.ErrNotParticipant, "chat access denied")
	}

	return nil
}
