package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableWithTenDollarsOpen(t *testing.T) []Ticket {
	t.Helper()
	now := time.Now()
	kitchen, err := NewTicket(1, 4, DestinationKitchen, []TicketItem{{ProductID: 1, Name: "Taco", PriceCents: 300, Quantity: 2}})
	require.NoError(t, err)
	kitchen.CreatedAt = now
	bar, err := NewTicket(1, 4, DestinationBar, []TicketItem{{ProductID: 2, Name: "Beer", PriceCents: 400, Quantity: 1}})
	require.NoError(t, err)
	bar.CreatedAt = now
	return []Ticket{*kitchen, *bar}
}

func TestSettleExactAndOverpayment(t *testing.T) {
	open := tableWithTenDollarsOpen(t)

	s, err := Settle(open, []Payment{{Method: "cash", AmountCents: 1500}}, NewCart(4))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), s.TotalCents)
	assert.Equal(t, int64(1500), s.PaidCents)
	assert.Equal(t, int64(500), s.ChangeCents)
	assert.Empty(t, s.UnsentItems)

	s, err = Settle(open, []Payment{{Method: "card", AmountCents: 600}, {Method: "cash", AmountCents: 400}}, NewCart(4))
	require.NoError(t, err)
	assert.Zero(t, s.ChangeCents)
	assert.Len(t, s.Payments, 2)
}

func TestSettleInsufficientPayment(t *testing.T) {
	open := tableWithTenDollarsOpen(t)

	_, err := Settle(open, []Payment{{Method: "card", AmountCents: 700}}, NewCart(4))
	var ip *InsufficientPaymentError
	require.ErrorAs(t, err, &ip)
	assert.Equal(t, int64(300), ip.OwedCents())

	// rejection mutates nothing: tickets stay open
	for _, tk := range open {
		assert.True(t, tk.IsOpen())
	}
}

func TestSettleNothingToSettle(t *testing.T) {
	_, err := Settle(nil, []Payment{{Method: "cash", AmountCents: 100}}, NewCart(4))
	assert.ErrorIs(t, err, ErrNothingToSettle)

	closed := tableWithTenDollarsOpen(t)
	for i := range closed {
		closed[i].Status = StatusClosed
	}
	_, err = Settle(closed, []Payment{{Method: "cash", AmountCents: 5000}}, NewCart(4))
	assert.ErrorIs(t, err, ErrNothingToSettle)
}

func TestSettleRejectsInvalidPayments(t *testing.T) {
	open := tableWithTenDollarsOpen(t)

	_, err := Settle(open, nil, NewCart(4))
	assert.ErrorIs(t, err, ErrInvalidPayment)

	_, err = Settle(open, []Payment{{Method: "cash", AmountCents: 0}}, NewCart(4))
	assert.ErrorIs(t, err, ErrInvalidPayment)

	_, err = Settle(open, []Payment{{Method: "  ", AmountCents: 500}}, NewCart(4))
	assert.ErrorIs(t, err, ErrInvalidPayment)
}

func TestSettleFlagsUnsentDraftItems(t *testing.T) {
	open := tableWithTenDollarsOpen(t)
	draft := NewCart(4)
	draft.Add(CartItem{ProductID: 3, Name: "Flan", PriceCents: 200, Quantity: 1})

	s, err := Settle(open, []Payment{{Method: "cash", AmountCents: 1000}}, draft)
	require.NoError(t, err)
	// the unsent flan is reported back, never silently charged
	require.Len(t, s.UnsentItems, 1)
	assert.Equal(t, "Flan", s.UnsentItems[0].Name)
	assert.Equal(t, int64(1000), s.TotalCents)
}

func TestSettleExcludesClosedTicketsFromTotal(t *testing.T) {
	open := tableWithTenDollarsOpen(t)
	open[1].Status = StatusClosed

	s, err := Settle(open, []Payment{{Method: "cash", AmountCents: 600}}, NewCart(4))
	require.NoError(t, err)
	assert.Equal(t, int64(600), s.TotalCents)
}
