package repository

import (
	"context"
	"errors"

	"lifelink/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrReviewNotFound is returned when a review does not exist.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepository defines the standard operations for review persistence.
type ReviewRepository interface {
	// Create persists a new review.
	Create(ctx context.Context, review *entity.Review) error

	// FindByRequestID retrieves the review attached to a request, if any.
	FindByRequestID(ctx context.Context, requestID uuid.UUID) (*entity.Review, error)

	// ListByReviewed retrieves the reviews written about a provider, newest first.
	ListByReviewed(ctx context.Context, reviewedID uuid.UUID) ([]*entity.Review, error)

	// AverageForReviewed returns the average star rating and review count for
	// a provider. A provider without reviews returns (0, 0, nil).
	AverageForReviewed(ctx context.Context, reviewedID uuid.UUID) (float64, int64, error)
}
