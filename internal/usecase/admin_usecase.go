package usecase

import (
	"context"

	"lifelink/internal/domain/entity"

	"github.com/google/uuid"
)

// VerifyListingInput defines an administrator's verdict on a pending listing.
type VerifyListingInput struct {
	ListingID uuid.UUID
	Approve   bool
}

// AdminStats summarizes network activity for the admin panel.
type AdminStats struct {
	Users    int64
	Listings map[entity.ListingStatus]int64
	Requests map[entity.RequestStatus]int64
}

// AdminUsecase defines the administrator-only operations.
type AdminUsecase interface {
	// PendingListings returns the review queue, oldest first.
	PendingListings(ctx context.Context) ([]*entity.Listing, error)

	// VerifyListing approves a pending listing into the catalog or rejects it,
	// removing it.
	VerifyListing(ctx context.Context, input VerifyListingInput) error

	// Stats returns the network activity summary.
	Stats(ctx context.Context) (*AdminStats, error)
}
