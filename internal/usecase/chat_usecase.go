package usecase

import (
	"context"

	"lifelink/internal/domain/entity"

	"github.com/google/uuid"
)

// PostMessageInput defines the data for one chat message.
type PostMessageInput struct {
	RequestID uuid.UUID
	SenderID  uuid.UUID
	Body      string
}

// ChatUsecase defines the interface for the per-request coordination chat.
// Every operation checks that the caller participates in the request.
type ChatUsecase interface {
	// History returns the room's persisted messages, oldest first.
	History(ctx context.Context, userID, requestID uuid.UUID) ([]*entity.ChatMessage, error)

	// Post persists a message and relays it to connected participants.
	Post(ctx context.Context, input PostMessageInput) (*entity.ChatMessage, error)

	// Stream subscribes to the room's live messages until ctx is done.
	Stream(ctx context.Context, userID, requestID uuid.UUID) (<-chan *entity.ChatMessage, error)
}
