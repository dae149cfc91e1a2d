package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/dukerupert/sharenote/internal/model"
)

// Hub fans note change events out to every connected subscriber.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*Subscriber]struct{}
	logger      *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subscribers: make(map[*Subscriber]struct{}),
		logger:      logger,
	}
}

func (h *Hub) Register(s *Subscriber) {
	h.mu.Lock()
	h.subscribers[s] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("subscriber joined", "count", h.Count())
}

// Unregister removes a subscriber and closes its send channel. Safe to call twice.
func (h *Hub) Unregister(s *Subscriber) {
	h.mu.Lock()
	if _, ok := h.subscribers[s]; ok {
		delete(h.subscribers, s)
		close(s.send)
	}
	h.mu.Unlock()
}

// Broadcast delivers ev to all subscribers without blocking. A subscriber
// whose buffer is full misses the event.
func (h *Hub) Broadcast(ev model.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("marshal event", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.subscribers {
		select {
		case s.send <- data:
		default:
			h.logger.Warn("subscriber buffer full, dropping event", "type", ev.Type, "note_id", ev.NoteID)
		}
	}
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
