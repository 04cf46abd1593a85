package queue

import "sync"

// Hub is the in-process subscription registry behind the live display
// streams. Each subscriber gets its own buffered channel scoped to one
// restaurant; publishing never blocks; a subscriber that cannot keep up
// misses events and is expected to re-render from a fresh queue snapshot,
// the same way a reconnecting monitor does.
type Hub struct {
	mu   sync.Mutex
	subs map[uint64]map[chan TicketEvent]struct{}
}

// subscriberBuffer is per-channel slack before events are dropped.
const subscriberBuffer = 16

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]map[chan TicketEvent]struct{})}
}

// Subscribe registers a listener for one restaurant's events. The caller
// must Unsubscribe the returned channel on teardown or the registration
// leaks.
func (h *Hub) Subscribe(restaurantID uint64) chan TicketEvent {
	ch := make(chan TicketEvent, subscriberBuffer)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[restaurantID] == nil {
		h.subs[restaurantID] = make(map[chan TicketEvent]struct{})
	}
	h.subs[restaurantID][ch] = struct{}{}
	return ch
}

// Unsubscribe removes a listener and closes its channel.
func (h *Hub) Unsubscribe(restaurantID uint64, ch chan TicketEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[restaurantID]
	if !ok {
		return
	}
	if _, ok := set[ch]; !ok {
		return
	}
	delete(set, ch)
	if len(set) == 0 {
		delete(h.subs, restaurantID)
	}
	close(ch)
}

// Publish delivers an event to every subscriber of its restaurant without
// blocking. Full subscriber buffers drop the event.
func (h *Hub) Publish(ev TicketEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[ev.RestaurantID] {
		select {
		case ch <- ev:
		default:
		}
	}
}
