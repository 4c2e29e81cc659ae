// Package chat implements the in-process relay that fans chat messages out
// to connected participants of a request's coordination room.
package chat

import (
	"context"
	"sync"

	"lifelink/config"
	"lifelink/internal/domain/entity"
	"lifelink/internal/domain/service"

	"github.com/google/uuid"
)

const defaultRoomBuffer = 32

// hub is a mutex-guarded registry of rooms keyed by request ID. Each
// subscriber owns a buffered channel; a subscriber that falls behind its
// buffer misses messages instead of blocking the publisher.
type hub struct {
	mu     sync.RWMutex
	rooms  map[uuid.UUID]map[chan *entity.ChatMessage]struct{}
	buffer int
}

// NewHub creates the in-process chat broker.
func NewHub(cfg *config.Config) service.ChatBroker {
	buffer := defaultRoomBuffer
	if cfg != nil && cfg.Chat != nil && cfg.Chat.RoomBuffer > 0 {
		buffer = cfg.Chat.RoomBuffer
	}

	return &hub{
		rooms:  make(map[uuid.UUID]map[chan *entity.ChatMessage]struct{}),
		buffer: buffer,
	}
}

// Subscribe attaches to a request's room until ctx is done.
func (h *hub) Subscribe(ctx context.Context, requestID uuid.UUID) <-chan *entity.ChatMessage {
	ch := make(chan *entity.ChatMessage, h.buffer)

	h.mu.Lock()
	room, ok := h.rooms[requestID]
	if !ok {
		room = make(map[chan *entity.ChatMessage]struct{})
		h.rooms[requestID] = room
	}
	room[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.unsubscribe(requestID, ch)
	}()

	return ch
}

// Publish relays a message to every subscriber of its room.
func (h *hub) Publish(message *entity.ChatMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.rooms[message.RequestID] {
		select {
		case ch <- message:
		default:
			// Subscriber buffer full, drop rather than block the sender.
		}
	}
}

func (h *hub) unsubscribe(requestID uuid.UUID, ch chan *entity.ChatMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[requestID]
	if !ok {
		return
	}

	if _, member := room[ch]; member {
		delete(room, ch)
		close(ch)
	}
	if len(room) == 0 {
		delete(h.rooms, requestID)
	}
}
