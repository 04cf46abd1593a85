package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKitchenTicketFlow(t *testing.T) {
	assert.True(t, CanTransition(DestinationKitchen, StatusPending, StatusCooking))
	assert.True(t, CanTransition(DestinationKitchen, StatusCooking, StatusReady))
	assert.True(t, CanTransition(DestinationKitchen, StatusReady, StatusCompleted))
	// "deliver direct" skips the intermediate states
	assert.True(t, CanTransition(DestinationKitchen, StatusPending, StatusCompleted))
	assert.True(t, CanTransition(DestinationKitchen, StatusPending, StatusReady))
}

func TestBarTicketsSkipCooking(t *testing.T) {
	assert.False(t, CanTransition(DestinationBar, StatusPending, StatusCooking))
	assert.True(t, CanTransition(DestinationBar, StatusPending, StatusReady))
	assert.True(t, CanTransition(DestinationBar, StatusPending, StatusCompleted))
	assert.True(t, CanTransition(DestinationBar, StatusReady, StatusCompleted))
}

func TestNoBackwardTransitions(t *testing.T) {
	assert.False(t, CanTransition(DestinationKitchen, StatusCooking, StatusPending))
	assert.False(t, CanTransition(DestinationKitchen, StatusReady, StatusCooking))
	assert.False(t, CanTransition(DestinationKitchen, StatusCompleted, StatusReady))
	assert.False(t, CanTransition(DestinationKitchen, StatusPending, StatusPending))
}

func TestClosedIsTerminalAndUnreachableHere(t *testing.T) {
	for _, from := range []string{StatusPending, StatusCooking, StatusReady, StatusCompleted} {
		assert.False(t, CanTransition(DestinationKitchen, from, StatusClosed), "closed must only be reachable via settlement, not from %s", from)
	}
	for _, to := range []string{StatusPending, StatusCooking, StatusReady, StatusCompleted} {
		assert.False(t, CanTransition(DestinationKitchen, StatusClosed, to), "no transition out of closed to %s", to)
	}
}

func TestUnknownStatusesRejected(t *testing.T) {
	assert.False(t, CanTransition(DestinationKitchen, "burnt", StatusReady))
	assert.False(t, CanTransition(DestinationKitchen, StatusPending, "burnt"))
}

func TestTransitionSources(t *testing.T) {
	assert.Equal(t, []string{StatusPending}, TransitionSources(DestinationKitchen, StatusCooking))
	assert.Equal(t, []string{StatusPending, StatusCooking}, TransitionSources(DestinationKitchen, StatusReady))
	assert.Equal(t, []string{StatusPending}, TransitionSources(DestinationBar, StatusReady))
	assert.Equal(t, []string{StatusPending, StatusCooking, StatusReady}, TransitionSources(DestinationKitchen, StatusCompleted))
	assert.Empty(t, TransitionSources(DestinationBar, StatusCooking))
	assert.Empty(t, TransitionSources(DestinationKitchen, StatusClosed))
}

func TestOccupancyDerivation(t *testing.T) {
	assert.True(t, Occupying(StatusPending))
	assert.True(t, Occupying(StatusCooking))
	assert.True(t, Occupying(StatusReady))
	assert.False(t, Occupying(StatusCompleted))
	assert.False(t, Occupying(StatusClosed))

	assert.True(t, Open(StatusCompleted)) // still billable
	assert.False(t, Open(StatusClosed))
	assert.False(t, Open("burnt"))
}
