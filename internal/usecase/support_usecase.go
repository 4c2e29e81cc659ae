package usecase

import (
	"context"

	"lifelink/internal/domain/entity"

	"github.com/google/uuid"
)

// SubmitTicketInput defines the data for a new support ticket.
type SubmitTicketInput struct {
	UserID  uuid.UUID
	Subject string
	Message string
}

// SupportUsecase defines the interface for support ticket operations.
type SupportUsecase interface {
	// Submit files a ticket for administrator review.
	Submit(ctx context.Context, input SubmitTicketInput) (*entity.SupportTicket, error)

	// List returns every filed ticket, newest first. The delivery layer
	// restricts this to administrators.
	List(ctx context.Context) ([]*entity.SupportTicket, error)
}
