// Package realtime fans engagement events out to live watchers. The HTTP
// layer attaches one watcher per dashboard WebSocket connection; an embedding
// program that wants level-up toasts in process can attach its own.
package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"greenkit/core"
)

// Hub delivers every broadcast event to each attached watcher channel.
// Delivery never blocks: a watcher whose buffer is full misses that event.
// That suits UI notifications, where the progress endpoint stays the source
// of truth and a missed toast costs nothing.
type Hub struct {
	mu       sync.RWMutex
	watchers map[int]chan core.Event
	lastID   int
}

func NewHub() *Hub { return &Hub{watchers: map[int]chan core.Event{}} }

// Subscribe attaches a watcher and returns its id with the receive channel.
// The buffer should hold a short burst of events for the watcher's pace; the
// WebSocket feed uses a few hundred, an in-process toast handler one or two.
func (h *Hub) Subscribe(buffer int) (int, <-chan core.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastID++
	id := h.lastID
	ch := make(chan core.Event, buffer)
	h.watchers[id] = ch
	return id, ch
}

// Unsubscribe detaches a watcher and closes its channel.
func (h *Hub) Unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.watchers[id]; ok {
		delete(h.watchers, id)
		close(ch)
	}
}

// Broadcast offers ev to every watcher. Sends happen outside the lock so a
// subscribing or detaching watcher never stalls the engine's event handler.
func (h *Hub) Broadcast(_ context.Context, ev core.Event) {
	h.mu.RLock()
	receivers := make([]chan core.Event, 0, len(h.watchers))
	for _, ch := range h.watchers {
		receivers = append(receivers, ch)
	}
	h.mu.RUnlock()
	for _, ch := range receivers {
		select {
		case ch <- ev:
		default: // watcher is behind, skip it
		}
	}
}

// MarshalJSON frames an event for the wire: one JSON object per message, the
// same shape the SDK's event stream decodes.
func MarshalJSON(ev core.Event) []byte {
	b, _ := json.Marshal(ev)
	return b
}
