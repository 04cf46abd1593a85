package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionSplitsByDestination(t *testing.T) {
	c := NewCart(12)
	c.Add(CartItem{ProductID: 1, Name: "Taco", PriceCents: 300, Quantity: 2, Destination: DestinationKitchen})
	c.Add(CartItem{ProductID: 2, Name: "Beer", PriceCents: 400, Quantity: 1, Destination: DestinationBar})

	tickets := Partition(c)
	require.Len(t, tickets, 2)

	kitchen, bar := tickets[0], tickets[1]
	assert.Equal(t, DestinationKitchen, kitchen.Destination)
	assert.Equal(t, int64(600), kitchen.SubtotalCents)
	assert.Equal(t, StatusPending, kitchen.Status)

	assert.Equal(t, DestinationBar, bar.Destination)
	assert.Equal(t, int64(400), bar.SubtotalCents)
	assert.Equal(t, StatusPending, bar.Status)

	assert.Equal(t, uint64(12), kitchen.TableID)
	assert.Equal(t, uint64(12), bar.TableID)

	// Matches the running tab: the wave totals 10 dollars.
	assert.Equal(t, int64(1000), kitchen.SubtotalCents+bar.SubtotalCents)
}

func TestPartitionDefaultsMissingDestinationToKitchen(t *testing.T) {
	c := Cart{TableID: 3, Items: []CartItem{
		{ProductID: 1, Name: "Flan", PriceCents: 200, Quantity: 1},      // no destination tag
		{ProductID: 2, Name: "Agua", PriceCents: 150, Quantity: 2, Destination: "terrace"},
	}}

	tickets := Partition(c)
	require.Len(t, tickets, 1)
	assert.Equal(t, DestinationKitchen, tickets[0].Destination)
	assert.Len(t, tickets[0].Items, 2)
	assert.Equal(t, int64(500), tickets[0].SubtotalCents)
}

func TestPartitionSingleDestinationYieldsOneTicket(t *testing.T) {
	c := NewCart(9)
	c.Add(CartItem{ProductID: 2, Name: "Beer", PriceCents: 400, Quantity: 3, Destination: DestinationBar})

	tickets := Partition(c)
	require.Len(t, tickets, 1)
	assert.Equal(t, DestinationBar, tickets[0].Destination)
	assert.Equal(t, int64(1200), tickets[0].SubtotalCents)
}

func TestPartitionEmptyCartYieldsNoTickets(t *testing.T) {
	assert.Empty(t, Partition(NewCart(1)))
}
