package service

import (
	"context"

	"lifelink/internal/domain/entity"

	"github.com/google/uuid"
)

// ChatBroker defines the interface for the realtime fanout of chat messages.
// Persistence is handled by the repository; the broker only relays live
// traffic to connected participants.
type ChatBroker interface {
	// Subscribe attaches to a request's room and returns a channel of live
	// messages. The subscription ends when ctx is done; the returned channel
	// is closed by the broker.
	Subscribe(ctx context.Context, requestID uuid.UUID) <-chan *entity.ChatMessage

	// Publish relays a message to every subscriber of its room. Slow
	// subscribers are skipped rather than blocking the sender.
	Publish(message *entity.ChatMessage)
}
