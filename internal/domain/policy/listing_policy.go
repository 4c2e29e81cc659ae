// Package policy holds the pure business rules applied when a listing enters
// the network. The rules are evaluated once at submission time and are
// independent of HTTP, storage and rendering concerns.
package policy

import (
	"time"

	"lifelink/internal/domain/entity"
	domainerrors "lifelink/internal/domain/errors"
)

// ListingDraft is the normalized submission a provider sends when publishing.
type ListingDraft struct {
	Name            string
	Category        entity.Category
	Mode            entity.PublishMode
	Price           float64
	PrescriptionURL string
	ExpiresAt       *time.Time
	Urgent          bool
}

// Result is the policy's verdict on a draft: the (possibly coerced) values to
// persist plus any advisory notes for the submitter.
type Result struct {
	Mode   entity.PublishMode
	Price  float64
	Urgent bool
	Status entity.ListingStatus

	// Notes carry non-blocking advisories, e.g. the urgency downgrade for
	// orthopedic items.
	Notes []string
}

// Advisory texts shown to the submitter. User-facing copy stays in the
// network's language.
const (
	noteBloodCoerced         = "Los hemoderivados son altruistas por norma: la publicación se registró como donación sin costo."
	noteOrthopedicDowngraded = "Los recursos ortopédicos se clasifican como estándar: se retiró la marca de urgencia."
)

// EvaluateListing applies the creation rules to a draft:
//
//   - blood is always an urgent, zero-price donation;
//   - medicine needs a prescription and waits for admin review;
//   - orthopedic items cannot be urgent;
//   - blood and medicine start pending, everything else starts verified;
//   - an expiration date in the past rejects the submission.
//
// Rejections return a domain error and no listing is persisted by callers.
func EvaluateListing(draft ListingDraft, now time.Time) (Result, error) {
	if !draft.Category.IsValid() {
		return Result{}, domainerrors.ErrInvalidCategory
	}
	if !draft.Mode.IsValid() {
		return Result{}, domainerrors.ErrInvalidPublishMode
	}
	if draft.Price < 0 {
		return Result{}, domainerrors.ErrInvalidPrice
	}

	if draft.ExpiresAt != nil {
		y, m, d := now.Date()
		dayStart := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
		if draft.ExpiresAt.Before(dayStart) {
			return Result{}, domainerrors.ErrListingExpired
		}
	}

	res := Result{
		Mode:   draft.Mode,
		Price:  draft.Price,
		Urgent: draft.Urgent,
		Status: entity.ListingVerified,
	}

	switch draft.Category {
	case entity.CategoryBlood:
		// Selling blood is prohibited. The submission is coerced rather than
		// rejected so a client that failed to disable the sale option still
		// produces a legal record.
		if res.Mode != entity.ModeDonation || res.Price != 0 {
			res.Notes = append(res.Notes, noteBloodCoerced)
		}
		res.Mode = entity.ModeDonation
		res.Price = 0
		res.Urgent = true
		res.Status = entity.ListingPending

	case entity.CategoryMedicine:
		if draft.PrescriptionURL == "" {
			return Result{}, domainerrors.ErrPrescriptionRequired
		}
		res.Status = entity.ListingPending

	case entity.CategoryOrthopedic:
		if res.Urgent {
			res.Urgent = false
			res.Notes = append(res.Notes, noteOrthopedicDowngraded)
		}
	}

	if res.Mode == entity.ModeDonation {
		res.Price = 0
	}

	return res, nil
}
