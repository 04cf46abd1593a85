// Package order implements the order lifecycle and tab consolidation core:
// draft carts, ticket creation and routing, the ticket status state machine,
// tab aggregation and settlement. Everything in this package is pure
// computation over in-memory values; persistence and fan-out live in the
// repository and queue packages.
package order

import (
	"errors"
	"fmt"
)

// ErrEmptyTicket is returned when a ticket would be created with no line
// items. Tickets are immutable once created, so an empty ticket could never
// become meaningful.
var ErrEmptyTicket = errors.New("ticket requires at least one line item")

// ErrEmptySubmission is returned when submit is invoked with an empty draft
// cart. The operation is a no-op and no tickets are created.
var ErrEmptySubmission = errors.New("nothing to submit")

// ErrNothingToSettle is returned when settlement is invoked for a table with
// no open tickets, for example when the table has already been settled.
// Nothing is mutated; handlers surface it as informational.
var ErrNothingToSettle = errors.New("no open tickets to settle")

// ErrInvalidPayment is returned when a payment entry has a non-positive
// amount or a missing tender method.
var ErrInvalidPayment = errors.New("invalid payment entry")

// ErrInvalidTransition is returned when a requested status change is not
// permitted by the state machine (backward moves, cooking on bar tickets,
// anything out of closed).
var ErrInvalidTransition = errors.New("invalid status transition")

// InsufficientPaymentError reports that the collected tender does not cover
// the table's total. OwedCents carries how much is still missing so the
// terminal can ask for more.
type InsufficientPaymentError struct {
	TotalCents int64
	PaidCents  int64
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("insufficient payment: %d cents still owed", e.OwedCents())
}

// OwedCents is the remaining amount required to cover the total.
func (e *InsufficientPaymentError) OwedCents() int64 {
	return e.TotalCents - e.PaidCents
}
