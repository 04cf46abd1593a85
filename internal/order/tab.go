package order

import "sort"

// Tab is the consolidated read-time view of a table: what is still in the
// draft ("pending send"), what has already been sent, and the grand total of
// both. Building a tab performs no writes, so it is safe to recompute on
// every state change pushed from the store.
type Tab struct {
	TableID             uint64   `json:"table_id"`
	DraftSubtotalCents  int64    `json:"draft_subtotal_cents"`
	BilledSubtotalCents int64    `json:"billed_subtotal_cents"`
	GrandTotalCents     int64    `json:"grand_total_cents"`
	Draft               []CartItem `json:"draft"`
	OpenTickets         []Ticket `json:"open_tickets"`
	Empty               bool     `json:"empty"`
}

// BuildTab consolidates the draft cart with the table's open tickets.
// Tickets are ordered oldest first so staff reads the chronological history
// of waves. An empty draft over an empty ticket set yields the explicit
// empty-table state, which is not a failure.
func BuildTab(tableID uint64, draft Cart, open []Ticket) Tab {
	tickets := make([]Ticket, 0, len(open))
	for _, t := range open {
		if t.IsOpen() {
			tickets = append(tickets, t)
		}
	}
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].CreatedAt.Before(tickets[j].CreatedAt)
	})

	tab := Tab{
		TableID:            tableID,
		DraftSubtotalCents: draft.SubtotalCents(),
		Draft:              append([]CartItem(nil), draft.Items...),
		OpenTickets:        tickets,
	}
	for _, t := range tickets {
		tab.BilledSubtotalCents += t.SubtotalCents
	}
	tab.GrandTotalCents = tab.DraftSubtotalCents + tab.BilledSubtotalCents
	tab.Empty = draft.Empty() && len(tickets) == 0
	return tab
}
