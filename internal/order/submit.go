package order

// Partition splits a draft cart into per-destination ticket drafts: one
// group per non-empty destination, kitchen first. Items without a valid
// destination tag are routed to the kitchen. The result is what a single
// send-action turns into tickets; each submission is its own wave, never
// merged into an existing open ticket.
func Partition(cart Cart) []*Ticket {
	var kitchen, bar []TicketItem
	for _, it := range cart.Items {
		snap := TicketItem{
			ProductID:  it.ProductID,
			Name:       it.Name,
			PriceCents: it.PriceCents,
			Quantity:   it.Quantity,
		}
		if it.Destination == DestinationBar {
			bar = append(bar, snap)
		} else {
			kitchen = append(kitchen, snap)
		}
	}
	var tickets []*Ticket
	if t, err := NewTicket(0, cart.TableID, DestinationKitchen, kitchen); err == nil {
		tickets = append(tickets, t)
	}
	if t, err := NewTicket(0, cart.TableID, DestinationBar, bar); err == nil {
		tickets = append(tickets, t)
	}
	return tickets
}
