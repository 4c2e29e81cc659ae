package model

import (
	"time"

	"github.com/google/uuid"
)

// ListingModel mirrors the 'listings' table.
type ListingModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProviderID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name            string    `gorm:"type:varchar(255);not null"`
	Category        string    `gorm:"type:varchar(32);not null;index"`
	Mode            string    `gorm:"type:varchar(16);not null"`
	Price           float64   `gorm:"not null;default:0"`
	ImageURL        string    `gorm:"type:text"`
	PrescriptionURL string    `gorm:"type:text"`
	ExpiresAt       *time.Time
	Address         string  `gorm:"type:varchar(255)"`
	Latitude        float64 `gorm:"not null;default:0"`
	Longitude       float64 `gorm:"not null;default:0"`
	Urgent          bool    `gorm:"not null;default:false"`
	Status          string  `gorm:"type:varchar(16);not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Provider *UserModel `gorm:"foreignKey:ProviderID"`
}

// TableName explicitly sets the table name for GORM.
func (ListingModel) TableName() string {
	return "listings"
}
