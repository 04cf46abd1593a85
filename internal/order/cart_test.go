package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddMergesQuantities(t *testing.T) {
	c := NewCart(7)
	c.Add(CartItem{ProductID: 1, Name: "Taco", PriceCents: 300, Quantity: 1, Destination: DestinationKitchen})
	c.Add(CartItem{ProductID: 1, Name: "Taco", PriceCents: 300, Quantity: 1, Destination: DestinationKitchen})
	c.Add(CartItem{ProductID: 2, Name: "Beer", PriceCents: 400, Quantity: 1, Destination: DestinationBar})

	require.Len(t, c.Items, 2)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, int64(1000), c.SubtotalCents())
}

func TestCartAddDefaultsDestinationAndQuantity(t *testing.T) {
	c := NewCart(1)
	c.Add(CartItem{ProductID: 5, Name: "Soup", PriceCents: 250})

	require.Len(t, c.Items, 1)
	assert.Equal(t, DestinationKitchen, c.Items[0].Destination)
	assert.Equal(t, 1, c.Items[0].Quantity)
}

func TestCartRemoveDecrementsThenEvicts(t *testing.T) {
	c := NewCart(3)
	c.Add(CartItem{ProductID: 1, Name: "Taco", PriceCents: 300, Quantity: 2, Destination: DestinationKitchen})

	c.Remove(1)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Items[0].Quantity)

	c.Remove(1)
	assert.True(t, c.Empty())

	// removing from an empty cart is a no-op
	c.Remove(1)
	assert.True(t, c.Empty())
}

func TestCartRemoveUnknownProduct(t *testing.T) {
	c := NewCart(3)
	c.Add(CartItem{ProductID: 1, Name: "Taco", PriceCents: 300, Quantity: 1})

	c.Remove(99)
	assert.Len(t, c.Items, 1)
}

func TestCartClearKeepsTable(t *testing.T) {
	c := NewCart(4)
	c.Add(CartItem{ProductID: 1, Name: "Taco", PriceCents: 300, Quantity: 1})

	c.Clear()
	assert.True(t, c.Empty())
	assert.Equal(t, uint64(4), c.TableID)
	assert.Zero(t, c.SubtotalCents())
}
