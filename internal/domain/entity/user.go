// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a registered member of
// the supply network. A user can both publish listings (as provider) and
// request listings from others (as requester).
type User struct {
	ID        uuid.UUID  // The unique identifier for the user.
	Email     string     // The user's primary contact email, used as the login identifier.
	Name      string     // The user's display name.
	Phone     string     // Contact phone (WhatsApp/Telegram in the original network).
	BloodType *BloodType // The user's ABO/Rh blood type, if declared. Used for checkout compatibility advisories.
	Location  string     // Free-text home area (borough / state).
	Role      Role       // The user's role; admin accounts are seeded, never self-registered.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
