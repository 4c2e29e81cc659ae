package usecase

import (
	"context"

	"lifelink/internal/domain/entity"

	"github.com/google/uuid"
)

// SubmitReviewInput defines the data a requester submits to close a request
// with a rating.
type SubmitReviewInput struct {
	RequestID  uuid.UUID
	ReviewerID uuid.UUID
	Stars      int
	Comment    string
}

// ProviderRating aggregates a provider's received reviews.
type ProviderRating struct {
	Average float64
	Count   int64
}

// ReviewUsecase defines the interface for review operations.
type ReviewUsecase interface {
	// Submit records the requester's rating and finalizes the request.
	Submit(ctx context.Context, input SubmitReviewInput) (*entity.Review, error)

	// ProviderRating returns a provider's average rating. Providers without
	// reviews get the default rating.
	ProviderRating(ctx context.Context, providerID uuid.UUID) (*ProviderRating, error)

	// ListForProvider returns the reviews written about a provider.
	ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.Review, error)
}
