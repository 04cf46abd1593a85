package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTicket(t *testing.T, table uint64, dest string, cents int64, created time.Time) Ticket {
	t.Helper()
	tk, err := NewTicket(1, table, dest, []TicketItem{{ProductID: 1, Name: "x", PriceCents: cents, Quantity: 1}})
	require.NoError(t, err)
	tk.CreatedAt = created
	return *tk
}

func TestBuildTabCombinesDraftAndOpenTickets(t *testing.T) {
	now := time.Now()
	draft := NewCart(5)
	draft.Add(CartItem{ProductID: 9, Name: "Churros", PriceCents: 250, Quantity: 2})

	open := []Ticket{
		openTicket(t, 5, DestinationBar, 400, now),
		openTicket(t, 5, DestinationKitchen, 600, now.Add(-time.Minute)),
	}

	tab := BuildTab(5, draft, open)
	assert.Equal(t, int64(500), tab.DraftSubtotalCents)
	assert.Equal(t, int64(1000), tab.BilledSubtotalCents)
	assert.Equal(t, int64(1500), tab.GrandTotalCents)
	assert.False(t, tab.Empty)

	// oldest wave first so staff reads chronological history
	require.Len(t, tab.OpenTickets, 2)
	assert.Equal(t, DestinationKitchen, tab.OpenTickets[0].Destination)
	assert.Equal(t, DestinationBar, tab.OpenTickets[1].Destination)
}

func TestBuildTabExcludesClosedTickets(t *testing.T) {
	now := time.Now()
	closed := openTicket(t, 2, DestinationKitchen, 700, now)
	closed.Status = StatusClosed

	tab := BuildTab(2, NewCart(2), []Ticket{closed, openTicket(t, 2, DestinationBar, 300, now)})
	assert.Equal(t, int64(300), tab.BilledSubtotalCents)
	assert.Len(t, tab.OpenTickets, 1)
}

func TestBuildTabEmptyTable(t *testing.T) {
	tab := BuildTab(8, NewCart(8), nil)
	assert.True(t, tab.Empty)
	assert.Zero(t, tab.GrandTotalCents)
	assert.Empty(t, tab.OpenTickets)
}

// Grand total must always equal draft subtotal plus open ticket subtotals,
// whatever sequence of adds, removes and submits produced the state.
func TestGrandTotalInvariant(t *testing.T) {
	now := time.Now()
	draft := NewCart(1)
	draft.Add(CartItem{ProductID: 1, Name: "Taco", PriceCents: 300, Quantity: 3})
	draft.Remove(1)
	draft.Add(CartItem{ProductID: 2, Name: "Beer", PriceCents: 400, Quantity: 1, Destination: DestinationBar})

	open := []Ticket{
		openTicket(t, 1, DestinationKitchen, 600, now),
		openTicket(t, 1, DestinationBar, 400, now),
		openTicket(t, 1, DestinationKitchen, 1050, now),
	}

	tab := BuildTab(1, draft, open)
	var want int64
	for _, tk := range open {
		want += tk.SubtotalCents
	}
	want += draft.SubtotalCents()
	assert.Equal(t, want, tab.GrandTotalCents)
}
