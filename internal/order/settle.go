package order

import "strings"

// Settlement is the accepted outcome of closing out a table. Only open
// tickets are charged; anything still sitting in the draft is returned in
// UnsentItems so the terminal can warn that it was never sent and will not
// be billed.
type Settlement struct {
	TotalCents  int64      `json:"total_cents"`
	PaidCents   int64      `json:"paid_cents"`
	ChangeCents int64      `json:"change_cents"`
	Payments    []Payment  `json:"payments"`
	UnsentItems []CartItem `json:"unsent_items,omitempty"`
}

// ValidatePayments checks every tender entry: the method must be named and
// the amount strictly positive. At least one entry is required.
func ValidatePayments(payments []Payment) error {
	if len(payments) == 0 {
		return ErrInvalidPayment
	}
	for _, p := range payments {
		if strings.TrimSpace(p.Method) == "" || p.AmountCents <= 0 {
			return ErrInvalidPayment
		}
	}
	return nil
}

// Settle validates that the tendered payments cover the sum of the open
// tickets' frozen subtotals. It does not mutate its inputs; the caller
// applies the returned settlement atomically (close every open ticket,
// attach the breakdown, release the table).
//
// With no open tickets it fails with ErrNothingToSettle, which makes a
// second settle of an already-closed table a rejected no-op rather than a
// double charge. Under-coverage fails with an InsufficientPaymentError
// carrying the amount still owed.
func Settle(open []Ticket, payments []Payment, draft Cart) (Settlement, error) {
	if err := ValidatePayments(payments); err != nil {
		return Settlement{}, err
	}
	var total int64
	n := 0
	for _, t := range open {
		if t.IsOpen() {
			total += t.SubtotalCents
			n++
		}
	}
	if n == 0 {
		return Settlement{}, ErrNothingToSettle
	}
	var paid int64
	for _, p := range payments {
		paid += p.AmountCents
	}
	if paid < total {
		return Settlement{}, &InsufficientPaymentError{TotalCents: total, PaidCents: paid}
	}
	return Settlement{
		TotalCents:  total,
		PaidCents:   paid,
		ChangeCents: paid - total,
		Payments:    append([]Payment(nil), payments...),
		UnsentItems: append([]CartItem(nil), draft.Items...),
	}, nil
}
