package entity

import (
	"time"

	"github.com/google/uuid"
)

// SupportTicket is a free-text report a member files against the network,
// typically disputing an urgency classification. Only administrators read
// tickets.
type SupportTicket struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Subject   string
	Message   string
	CreatedAt time.Time
}
