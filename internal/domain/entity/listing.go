package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category classifies a published medical resource. The string values match
// the labels the supply network has always used on the wire and in storage.
type Category string

const (
	CategoryBlood      Category = "Sangre"
	CategoryMedicine   Category = "Medicamento"
	CategoryEquipment  Category = "Equipo"
	CategoryOrthopedic Category = "Ortopedico"
)

// IsValid checks if the Category is a known value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryBlood, CategoryMedicine, CategoryEquipment, CategoryOrthopedic:
		return true
	default:
		return false
	}
}

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// PublishMode is how a listing is recovered: sold or donated.
type PublishMode string

const (
	ModeSale     PublishMode = "Venta"
	ModeDonation PublishMode = "Donacion"
)

// IsValid checks if the PublishMode is a known value.
func (m PublishMode) IsValid() bool {
	return m == ModeSale || m == ModeDonation
}

// String returns the string representation of the PublishMode.
func (m PublishMode) String() string {
	return string(m)
}

// ListingStatus tracks a listing through admin review and reservation.
type ListingStatus string

const (
	// ListingPending awaits administrator verification (blood and medicine).
	ListingPending ListingStatus = "Pendiente"
	// ListingVerified is visible in search and open to requests.
	ListingVerified ListingStatus = "Verificado"
	// ListingReserved is a donation listing already committed to a requester.
	ListingReserved ListingStatus = "Reservado"
)

// String returns the string representation of the ListingStatus.
func (s ListingStatus) String() string {
	return string(s)
}

// Listing is a published medical resource offered for sale or donation.
type Listing struct {
	ID              uuid.UUID
	ProviderID      uuid.UUID // The user who published the listing.
	Name            string
	Category        Category
	Mode            PublishMode
	Price           float64 // Always zero for donations.
	ImageURL        string
	PrescriptionURL string     // Required for medicine listings, empty otherwise.
	ExpiresAt       *time.Time // Optional shelf-life date; expired listings are filtered from search.
	Address         string     // Human-readable pickup address.
	Latitude        float64
	Longitude       float64
	Urgent          bool
	Status          ListingStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Expired reports whether the listing's shelf-life date is strictly before
// the given day.
func (l *Listing) Expired(today time.Time) bool {
	if l.ExpiresAt == nil {
		return false
	}

	y, m, d := today.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, today.Location())

	return l.ExpiresAt.Before(dayStart)
}

// BloodTypeFromName extracts the blood group from a blood listing's name by
// scanning its tokens from the end for the first one that parses as a group
// (so "Bolsa de Sangre O- 450ml" yields O- even with the volume suffix).
func (l *Listing) BloodTypeFromName() (BloodType, bool) {
	if l.Category != CategoryBlood {
		return "", false
	}

	fields := strings.Fields(l.Name)
	for i := len(fields) - 1; i >= 0; i-- {
		if b, ok := ParseBloodType(fields[i]); ok {
			return b, true
		}
	}

	return "", false
}
