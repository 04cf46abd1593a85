// Package queue defines the ticket event payloads exchanged over the
// message broker and the in-process hub that fans them out to connected
// displays.
package queue

// Event names carried in TicketEvent.Event.
const (
	EventTicketCreated = "ticket.created"
	EventStatusChanged = "ticket.status_changed"
	EventTableSettled  = "table.settled"
)

// TicketEvent is published whenever a ticket is created, advances through
// the state machine, or is closed by settlement. It contains enough
// information for monitors to re-render their queue and for downstream
// consumers to log or notify without querying the primary database.
type TicketEvent struct {
	Event        string `json:"event"`
	RestaurantID uint64 `json:"restaurant_id"`
	TicketID     uint64 `json:"ticket_id"`
	TableID      uint64 `json:"table_id"`
	Destination  string `json:"destination"`
	Status       string `json:"status"`
	TotalCents   int64  `json:"total_cents"`
	OccurredAt   string `json:"occurred_at"`
}
