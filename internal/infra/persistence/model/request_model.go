package model

import (
	"time"

	"github.com/google/uuid"
)

// SupplyRequestModel mirrors the 'supply_requests' table.
type SupplyRequestModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RequesterID uuid.UUID `gorm:"type:uuid;not null;index"`
	ListingID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Hospital    string    `gorm:"type:varchar(255)"`
	Status      string    `gorm:"type:varchar(32);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Listing *ListingModel `gorm:"foreignKey:ListingID"`
}

// TableName explicitly sets the table name for GORM.
func (SupplyRequestModel) TableName() string {
	return "supply_requests"
}
