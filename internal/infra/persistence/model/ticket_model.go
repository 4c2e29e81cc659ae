package model

import (
	"time"

	"github.com/google/uuid"
)

// SupportTicketModel mirrors the 'support_tickets' table.
type SupportTicketModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Subject   string    `gorm:"type:varchar(255);not null"`
	Message   string    `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SupportTicketModel) TableName() string {
	return "support_tickets"
}
