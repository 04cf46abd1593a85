package order

import "time"

// TicketItem is a frozen line item snapshot. Name and price are copied from
// the catalog at submission time, decoupled from the live product row, so a
// price edit never retroactively alters a historical ticket.
type TicketItem struct {
	ProductID  uint64 `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

// Payment is one tender entry of a settlement (cash, card, ...). The full
// breakdown is replicated onto every ticket closed by the settlement.
type Payment struct {
	Method      string `json:"method"`
	AmountCents int64  `json:"amount_cents"`
}

// Ticket is one destination-routed submission ("wave") sent to the kitchen
// or bar. Items, subtotal and destination are fixed at creation; only the
// status field advances afterwards, and settlement attaches the payment
// breakdown when it closes the ticket.
type Ticket struct {
	ID            uint64     `json:"id"`
	RestaurantID  uint64     `json:"-"`
	TableID       uint64     `json:"table_id"`
	Destination   string     `json:"destination"`
	Status        string     `json:"status"`
	SubtotalCents int64      `json:"subtotal_cents"`
	SubmissionKey string     `json:"submission_key,omitempty"`
	Items         []TicketItem `json:"items"`
	Payments      []Payment  `json:"payments,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// NewTicket builds a pending ticket for one destination partition. It
// rejects empty item lists and computes the frozen subtotal from the
// snapshots it is given.
func NewTicket(restaurantID, tableID uint64, destination string, items []TicketItem) (*Ticket, error) {
	if len(items) == 0 {
		return nil, ErrEmptyTicket
	}
	if !ValidDestination(destination) {
		destination = DestinationKitchen
	}
	t := &Ticket{
		RestaurantID: restaurantID,
		TableID:      tableID,
		Destination:  destination,
		Status:       StatusPending,
		Items:        append([]TicketItem(nil), items...),
	}
	for _, it := range t.Items {
		t.SubtotalCents += it.PriceCents * int64(it.Quantity)
	}
	return t, nil
}

// LineItems returns a copy of the ticket's items for display. Mutating the
// returned slice does not touch the ticket.
func (t *Ticket) LineItems() []TicketItem {
	return append([]TicketItem(nil), t.Items...)
}

// IsOpen reports whether the ticket still counts toward the table's bill.
func (t *Ticket) IsOpen() bool {
	return Open(t.Status)
}
