package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicketRejectsEmptyItems(t *testing.T) {
	_, err := NewTicket(1, 2, DestinationKitchen, nil)
	assert.ErrorIs(t, err, ErrEmptyTicket)
}

func TestNewTicketFreezesSubtotal(t *testing.T) {
	items := []TicketItem{
		{ProductID: 1, Name: "Taco", PriceCents: 300, Quantity: 2},
		{ProductID: 2, Name: "Quesadilla", PriceCents: 450, Quantity: 1},
	}
	tk, err := NewTicket(1, 2, DestinationKitchen, items)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, tk.Status)
	assert.Equal(t, int64(1050), tk.SubtotalCents)

	// Mutating the caller's slice must not reach into the ticket.
	items[0].PriceCents = 999
	assert.Equal(t, int64(300), tk.Items[0].PriceCents)
}

func TestTicketLineItemsIsACopy(t *testing.T) {
	tk, err := NewTicket(1, 2, DestinationBar, []TicketItem{{ProductID: 2, Name: "Beer", PriceCents: 400, Quantity: 1}})
	require.NoError(t, err)

	view := tk.LineItems()
	view[0].Quantity = 50
	assert.Equal(t, 1, tk.Items[0].Quantity)
	assert.Equal(t, int64(400), tk.SubtotalCents)
}

func TestNewTicketUnknownDestinationDefaultsToKitchen(t *testing.T) {
	tk, err := NewTicket(1, 2, "patio", []TicketItem{{ProductID: 1, Name: "Taco", PriceCents: 300, Quantity: 1}})
	require.NoError(t, err)
	assert.Equal(t, DestinationKitchen, tk.Destination)
}
