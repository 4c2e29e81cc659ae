package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderTypeEmail identifies the email/password credential provider.
const ProviderTypeEmail = "email"

// Authentication represents a single method of logging in (a credential).
// Only email/password credentials exist today, but the record keeps the
// provider split so a social login could be added without a schema change.
type Authentication struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Provider       string // The authentication provider, currently always "email".
	ProviderUserID string // The provider-specific identifier; the email address itself for the email provider.
	PasswordHash   string // bcrypt hash, only used when Provider is "email".
	CreatedAt      time.Time
}

// RefreshToken represents a long-lived, authorized user session.
// It is used to obtain a new access token after the old one expires.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string // SHA-256 hash of the raw refresh token.
	ExpiresAt time.Time
	CreatedAt time.Time
}
