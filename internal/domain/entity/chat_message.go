package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one line of the coordination conversation attached to a
// supply request. Messages are persisted so a participant who reconnects can
// replay the history.
type ChatMessage struct {
	ID         uuid.UUID
	RequestID  uuid.UUID
	SenderID   uuid.UUID
	SenderName string // Denormalized for display; the relay broadcasts it with the body.
	Body       string
	CreatedAt  time.Time
}
