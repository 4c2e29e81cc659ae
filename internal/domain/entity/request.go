package entity

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus tracks a supply request through coordination.
// The flow only ever moves forward: coordination, then delivery in process,
// then finalized once the requester closes it with a review.
type RequestStatus string

const (
	RequestCoordinating RequestStatus = "En Coordinación"
	RequestProcessing   RequestStatus = "En Proceso"
	RequestCompleted    RequestStatus = "Finalizado"
)

// String returns the string representation of the RequestStatus.
func (s RequestStatus) String() string {
	return string(s)
}

// Next returns the status that follows s, and false when s is terminal.
func (s RequestStatus) Next() (RequestStatus, bool) {
	switch s {
	case RequestCoordinating:
		return RequestProcessing, true
	case RequestProcessing:
		return RequestCompleted, true
	default:
		return s, false
	}
}

// SupplyRequest is a requester's committed interest in a listing. The two
// participants (requester and the listing's provider) coordinate delivery
// through the request's chat room.
type SupplyRequest struct {
	ID          uuid.UUID
	RequesterID uuid.UUID
	ListingID   uuid.UUID
	Hospital    string // Destination hospital for blood listings, or the drop-off note.
	Status      RequestStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Listing is preloaded when the consumer needs the counterpart side.
	Listing *Listing
}

// IsParticipant reports whether the given user is the requester or the
// provider of the requested listing. Requires Listing to be loaded.
func (r *SupplyRequest) IsParticipant(userID uuid.UUID) bool {
	if r.RequesterID == userID {
		return true
	}

	return r.Listing != nil && r.Listing.ProviderID == userID
}
