package repository

import (
	"context"

	"lifelink/internal/domain/entity"

	"github.com/google/uuid"
)

// ChatRepository defines the standard operations for chat message persistence.
type ChatRepository interface {
	// Create persists a new chat message.
	Create(ctx context.Context, message *entity.ChatMessage) error

	// ListByRequest retrieves the message history of a request's room,
	// oldest first.
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*entity.ChatMessage, error)
}
