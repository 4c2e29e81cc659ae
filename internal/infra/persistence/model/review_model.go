package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewModel mirrors the 'reviews' table. One review per request.
type ReviewModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RequestID  uuid.UUID `gorm:"type:uuid;unique;not null"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null;index"`
	ReviewedID uuid.UUID `gorm:"type:uuid;not null;index"`
	Stars      int       `gorm:"not null"`
	Comment    string    `gorm:"type:text"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
