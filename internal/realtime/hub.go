package realtime

import "sync"

// Event is broadcast whenever an admin writes to a watched collection.
// Subscribers only need enough to know something changed and where.
type Event struct {
	Collection string `json:"collection"`
	Op         string `json:"op"`
}

const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// subscriberBuffer bounds how far a slow client can fall behind before
// events are dropped for it.
const subscriberBuffer = 16

type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a new listener. The caller must call the returned
// cancel func when done or the hub leaks the channel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish fans the event out to every subscriber. Slow subscribers lose
// events instead of blocking the watcher.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
