package order

// Ticket destinations. The destination is fixed when the ticket is created
// and decides which display queue the ticket appears on.
const (
	DestinationKitchen = "kitchen"
	DestinationBar     = "bar"
)

// Ticket statuses in lifecycle order. A ticket only ever moves forward
// through this sequence; skipping intermediate states is allowed ("deliver
// direct" takes a pending ticket straight to completed), moving backward is
// not. closed is terminal and reachable only through settlement.
const (
	StatusPending   = "pending"
	StatusCooking   = "cooking"
	StatusReady     = "ready"
	StatusCompleted = "completed"
	StatusClosed    = "closed"
)

// statusRank orders statuses so that forward-only progression can be checked
// with a single comparison.
var statusRank = map[string]int{
	StatusPending:   0,
	StatusCooking:   1,
	StatusReady:     2,
	StatusCompleted: 3,
	StatusClosed:    4,
}

// ValidDestination reports whether d names a known routing destination.
func ValidDestination(d string) bool {
	return d == DestinationKitchen || d == DestinationBar
}

// ValidStatus reports whether s is a known ticket status.
func ValidStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether a ticket with the given destination may move
// from one status to another via a display action. Rules:
//
//   - only forward moves are allowed, and a ticket never leaves closed
//   - cooking exists only for kitchen tickets; bar tickets go from pending
//     straight to ready or completed
//   - closed is never reachable here: settlement is the only path to it
func CanTransition(destination, from, to string) bool {
	fr, ok := statusRank[from]
	if !ok {
		return false
	}
	tr, ok := statusRank[to]
	if !ok {
		return false
	}
	if to == StatusClosed || from == StatusClosed {
		return false
	}
	if tr <= fr {
		return false
	}
	if to == StatusCooking && destination != DestinationKitchen {
		return false
	}
	return true
}

// TransitionSources lists the statuses a ticket may be in for the requested
// target status to be applied. Repositories use it as the guard set of a
// conditional UPDATE so that a stale actor can never move a ticket backward.
func TransitionSources(destination, to string) []string {
	var from []string
	for _, s := range []string{StatusPending, StatusCooking, StatusReady, StatusCompleted} {
		if CanTransition(destination, s, to) {
			from = append(from, s)
		}
	}
	return from
}

// Occupying reports whether a ticket in this status keeps its table
// occupied. completed tickets remain billable but no longer block the table
// from winding down; closed tickets are settled history.
func Occupying(status string) bool {
	switch status {
	case StatusPending, StatusCooking, StatusReady:
		return true
	}
	return false
}

// Open reports whether a ticket still counts toward the table's bill.
func Open(status string) bool {
	return status != StatusClosed && ValidStatus(status)
}

// KitchenQueueStatuses are the statuses shown on the kitchen monitor.
var KitchenQueueStatuses = []string{StatusPending, StatusCooking}

// BarQueueStatuses are the statuses shown on the bar monitor. ready is
// surfaced there as well so front-of-house can see drinks awaiting pickup.
var BarQueueStatuses = []string{StatusPending, StatusCooking, StatusReady}
