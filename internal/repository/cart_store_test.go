package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comanda-pos/internal/order"
)

func TestMemoryCartStoreRoundTrip(t *testing.T) {
	s := NewMemoryCartStore()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	cart := order.NewCart(7)
	cart.Add(order.CartItem{ProductID: 1, Name: "Taco", PriceCents: 300, Quantity: 2})
	require.NoError(t, s.Save(ctx, 1, 2, cart))

	got, ok, err := s.Get(ctx, 1, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(7), got.TableID)
	assert.Equal(t, int64(600), got.SubtotalCents())

	// drafts are per terminal session, not shared across users
	_, ok, err = s.Get(ctx, 1, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Clear(ctx, 1, 2))
	_, ok, err = s.Get(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}
