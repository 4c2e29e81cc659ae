package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is a requester's rating of a provider after a finalized request.
// Reviews feed the provider's average rating.
type Review struct {
	ID         uuid.UUID
	RequestID  uuid.UUID
	ReviewerID uuid.UUID // The requester who writes the review.
	ReviewedID uuid.UUID // The provider being rated.
	Stars      int       // 1..5
	Comment    string
	CreatedAt  time.Time
}

// DefaultProviderRating is the rating shown for providers without reviews.
const DefaultProviderRating = 5.0
