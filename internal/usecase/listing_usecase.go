package usecase

import (
	"context"
	"io"
	"time"

	"lifelink/internal/domain/entity"

	"github.com/google/uuid"
)

// Upload carries one uploaded file through the use case layer.
type Upload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// PublishListingInput defines the data a provider submits to publish a resource.
type PublishListingInput struct {
	ProviderID   uuid.UUID
	Name         string
	Category     entity.Category
	Mode         entity.PublishMode
	Price        float64
	Urgent       bool
	ExpiresAt    *time.Time
	Latitude     float64
	Longitude    float64
	Address      string // Optional; reverse-geocoded from coordinates when empty.
	Image        *Upload
	Prescription *Upload
}

// PublishListingOutput returns the persisted listing plus any advisory notes
// produced by the publication rules.
type PublishListingOutput struct {
	Listing *entity.Listing
	Notes   []string
}

// SearchListingsInput narrows the public catalog search. When the caller
// provides coordinates, results carry the distance to each listing.
type SearchListingsInput struct {
	Category  entity.Category
	Query     string
	Latitude  *float64
	Longitude *float64
}

// ListingWithDistance pairs a listing with the caller's distance to it.
type ListingWithDistance struct {
	Listing    *entity.Listing
	DistanceKM *float64 // nil when the caller gave no coordinates.
}

// CheckoutOutput returns the listing a requester is about to commit to, plus
// the blood compatibility advisory when it applies.
type CheckoutOutput struct {
	Listing       *entity.Listing
	Compatibility *CompatibilityAdvice
}

// CompatibilityAdvice is the ABO/Rh check shown before requesting blood.
type CompatibilityAdvice struct {
	DonorType     entity.BloodType
	RecipientType entity.BloodType
	Compatible    bool
	Message       string
}

// ListingUsecase defines the interface for listing-related business operations.
type ListingUsecase interface {
	Publish(ctx context.Context, input PublishListingInput) (*PublishListingOutput, error)
	Search(ctx context.Context, input SearchListingsInput) ([]*ListingWithDistance, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Listing, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.Listing, error)
	Delete(ctx context.Context, userID, listingID uuid.UUID) error
	Checkout(ctx context.Context, userID, listingID uuid.UUID) (*CheckoutOutput, error)
}
