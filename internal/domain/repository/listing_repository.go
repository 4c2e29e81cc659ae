package repository

import (
	"context"
	"errors"

	"lifelink/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for listing persistence.
var (
	// ErrListingNotFound is returned when a listing does not exist.
	ErrListingNotFound = errors.New("listing not found")
	// ErrListingNotReservable is returned when a conditional reservation
	// matched no row, i.e. the listing was already reserved or never verified.
	ErrListingNotReservable = errors.New("listing not reservable")
)

// ListingFilter narrows a public catalog search. Zero values mean "no filter".
type ListingFilter struct {
	Category entity.Category // Restrict to one category.
	Query    string          // Case-insensitive substring match against the listing name.
}

// ListingRepository defines the standard operations for listing persistence.
type ListingRepository interface {
	// Create persists a new listing.
	Create(ctx context.Context, listing *entity.Listing) error

	// FindByID retrieves a single listing by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error)

	// FindByProvider retrieves every listing a provider has published,
	// newest first.
	FindByProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.Listing, error)

	// SearchVerified retrieves verified, unexpired listings matching the
	// filter, urgent listings first and newest first within each group.
	SearchVerified(ctx context.Context, filter ListingFilter) ([]*entity.Listing, error)

	// FindPending retrieves listings awaiting administrator review, oldest first.
	FindPending(ctx context.Context) ([]*entity.Listing, error)

	// UpdateStatus sets a listing's review status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ListingStatus) error

	// Reserve atomically moves a verified listing to the reserved status.
	// Returns ErrListingNotReservable when the listing is not currently verified,
	// which serializes concurrent donation requests on the database.
	Reserve(ctx context.Context, id uuid.UUID) error

	// Delete removes a listing.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByStatus returns per-status listing counts, used by the admin panel.
	CountByStatus(ctx context.Context) (map[entity.ListingStatus]int64, error)
}
