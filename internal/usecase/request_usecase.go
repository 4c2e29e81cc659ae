package usecase

import (
	"context"

	"lifelink/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateRequestInput defines the data required to open a supply request.
type CreateRequestInput struct {
	RequesterID uuid.UUID
	ListingID   uuid.UUID
	Hospital    string
}

// RequestUsecase defines the interface for supply request operations.
type RequestUsecase interface {
	// Create opens a request against a verified listing. A donation listing is
	// reserved atomically so only one requester can commit to it.
	Create(ctx context.Context, input CreateRequestInput) (*entity.SupplyRequest, error)

	// ListSent returns the requests a user has opened.
	ListSent(ctx context.Context, userID uuid.UUID) ([]*entity.SupplyRequest, error)

	// ListReceived returns the requests received against a provider's listings.
	ListReceived(ctx context.Context, providerID uuid.UUID) ([]*entity.SupplyRequest, error)

	// Advance moves a request to its next coordination status. Only
	// participants may advance it, and completed requests stay completed.
	Advance(ctx context.Context, userID, requestID uuid.UUID) (*entity.SupplyRequest, error)

	// HandoffQR renders the QR code a participant shows to confirm handoff.
	HandoffQR(ctx context.Context, userID, requestID uuid.UUID) ([]byte, error)
}
