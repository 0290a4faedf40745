package match

import (
	"log/slog"
	"sync"

	"skirmish/internal/field"
)

// Hub fans field events out to subscribers. Publish never blocks: a
// subscriber whose buffer is full misses the event.
type Hub struct {
	mu   sync.RWMutex
	subs map[int]chan field.Event
	next int
	log  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{subs: make(map[int]chan field.Event), log: logger}
}

// Subscribe registers a new listener. The returned cancel func closes the
// channel and is safe to call more than once.
func (h *Hub) Subscribe(buffer int) (<-chan field.Event, func()) {
	if buffer <= 0 {
		buffer = 256
	}
	ch := make(chan field.Event, buffer)

	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish delivers ev to every subscriber with room for it.
func (h *Hub) Publish(ev field.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			h.log.Warn("event dropped for slow subscriber", "subscriber", id, "type", ev.Type)
		}
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
