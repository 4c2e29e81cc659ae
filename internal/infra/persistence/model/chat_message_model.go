package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessageModel mirrors the 'chat_messages' table.
type ChatMessageModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RequestID  uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null"`
	SenderName string    `gorm:"type:varchar(100);not null"`
	Body       string    `gorm:"type:text;not null"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (ChatMessageModel) TableName() string {
	return "chat_messages"
}
