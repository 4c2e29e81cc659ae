package repository

import (
	"context"

	"lifelink/internal/domain/entity"
)

// TicketRepository defines the standard operations for support ticket persistence.
type TicketRepository interface {
	// Create persists a new support ticket.
	Create(ctx context.Context, ticket *entity.SupportTicket) error

	// ListAll retrieves every support ticket, newest first.
	ListAll(ctx context.Context) ([]*entity.SupportTicket, error)
}
