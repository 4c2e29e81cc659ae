package repository

import (
	"context"
	"errors"

	"lifelink/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRequestNotFound is returned when a supply request does not exist.
var ErrRequestNotFound = errors.New("supply request not found")

// RequestRepository defines the standard operations for supply request persistence.
type RequestRepository interface {
	// Create persists a new supply request.
	Create(ctx context.Context, request *entity.SupplyRequest) error

	// FindByID retrieves a request by ID with its listing preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SupplyRequest, error)

	// FindByRequester retrieves the requests a user has sent, newest first,
	// with their listings preloaded.
	FindByRequester(ctx context.Context, requesterID uuid.UUID) ([]*entity.SupplyRequest, error)

	// FindByProvider retrieves the requests received against a provider's
	// listings, newest first, with the listings preloaded.
	FindByProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.SupplyRequest, error)

	// UpdateStatus sets a request's coordination status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RequestStatus) error

	// CountByStatus returns per-status request counts, used by the admin panel.
	CountByStatus(ctx context.Context) (map[entity.RequestStatus]int64, error)
}
