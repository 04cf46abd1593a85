package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversToSubscribersOfSameRestaurant(t *testing.T) {
	h := NewHub()
	a := h.Subscribe(1)
	b := h.Subscribe(1)
	other := h.Subscribe(2)

	h.Publish(TicketEvent{Event: EventTicketCreated, RestaurantID: 1, TicketID: 10})

	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Empty(t, other)

	ev := <-a
	assert.Equal(t, uint64(10), ev.TicketID)
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe(1)
	h.Unsubscribe(1, ch)

	_, open := <-ch
	assert.False(t, open)

	// publishing after the last unsubscribe must not panic
	h.Publish(TicketEvent{RestaurantID: 1})

	// double unsubscribe is a no-op
	h.Unsubscribe(1, ch)
}

func TestHubDropsWhenSubscriberIsFull(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe(3)

	for i := 0; i < subscriberBuffer+5; i++ {
		h.Publish(TicketEvent{RestaurantID: 3, TicketID: uint64(i)})
	}
	// the hub never blocks; overflow is silently dropped
	assert.Len(t, ch, subscriberBuffer)
}
