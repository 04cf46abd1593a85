package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"comanda-pos/internal/order"
)

// TicketRepo provides persistence for order tickets and their line items.
// A ticket is one destination-routed submission for a table. Rows are never
// deleted: settled tickets stay as historical record with status 'closed'.
// All timestamp fields are assumed to be stored in UTC. Line items live in
// the ticket_items table and payment breakdowns in ticket_payments.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a new TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// DB exposes the underlying handle so handlers can run multi-ticket
// operations (submission, settlement) in a single transaction.
func (r *TicketRepo) DB() *sql.DB { return r.db }

// querier is satisfied by both *sql.DB and *sql.Tx so read helpers can be
// shared between transactional and plain paths.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const ticketColumns = "id, restaurant_id, table_id, destination, status, subtotal_cents, submission_key, created_at, updated_at, completed_at"

// CreateTx inserts a ticket and its line items within the scope of an
// existing transaction. The generated ID and timestamps are populated on
// the passed ticket. The caller must commit or rollback the transaction;
// creating every partition of one submission inside the same transaction is
// what gives submit its all-or-nothing semantics.
func (r *TicketRepo) CreateTx(ctx context.Context, tx *sql.Tx, t *order.Ticket) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO tickets (restaurant_id, table_id, destination, status, subtotal_cents, submission_key) VALUES (?,?,?,?,?,?)",
		t.RestaurantID, t.TableID, t.Destination, t.Status, t.SubtotalCents, t.SubmissionKey)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)

	// Bulk insert the frozen line items in one statement.
	q := "INSERT INTO ticket_items (ticket_id, product_id, name, price_cents, quantity) VALUES "
	args := make([]any, 0, len(t.Items)*5)
	for i, it := range t.Items {
		if i > 0 {
			q += ","
		}
		q += "(?,?,?,?,?)"
		args = append(args, t.ID, it.ProductID, it.Name, it.PriceCents, it.Quantity)
	}
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		return err
	}

	return tx.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM tickets WHERE id=?", t.ID).Scan(&t.CreatedAt, &t.UpdatedAt)
}

// GetByID fetches one ticket with its items, scoped to a restaurant.
func (r *TicketRepo) GetByID(ctx context.Context, restaurantID, id uint64) (order.Ticket, error) {
	tickets, err := r.queryTickets(ctx, r.db,
		"SELECT "+ticketColumns+" FROM tickets WHERE id=? AND restaurant_id=? LIMIT 1", id, restaurantID)
	if err != nil {
		return order.Ticket{}, err
	}
	if len(tickets) == 0 {
		return order.Ticket{}, ErrNotFound
	}
	return tickets[0], nil
}

// ListBySubmissionKey returns the tickets previously created for a
// submission key. A non-empty result means the send-action was already
// processed and submit can return it unchanged instead of writing again.
func (r *TicketRepo) ListBySubmissionKey(ctx context.Context, restaurantID uint64, key string) ([]order.Ticket, error) {
	return r.queryTickets(ctx, r.db,
		"SELECT "+ticketColumns+" FROM tickets WHERE restaurant_id=? AND submission_key=? ORDER BY id",
		restaurantID, key)
}

// ListOpenByTable returns all non-closed tickets for a table, oldest first.
func (r *TicketRepo) ListOpenByTable(ctx context.Context, restaurantID, tableID uint64) ([]order.Ticket, error) {
	return r.queryTickets(ctx, r.db,
		"SELECT "+ticketColumns+" FROM tickets WHERE restaurant_id=? AND table_id=? AND status <> 'closed' ORDER BY created_at, id",
		restaurantID, tableID)
}

// ListOpenByTableForUpdateTx re-reads the open tickets of a table inside a
// transaction, locking the rows. Settlement calls this immediately before
// closing so a status change racing in from a display cannot be missed.
func (r *TicketRepo) ListOpenByTableForUpdateTx(ctx context.Context, tx *sql.Tx, restaurantID, tableID uint64) ([]order.Ticket, error) {
	return r.queryTickets(ctx, tx,
		"SELECT "+ticketColumns+" FROM tickets WHERE restaurant_id=? AND table_id=? AND status <> 'closed' ORDER BY created_at, id FOR UPDATE",
		restaurantID, tableID)
}

// ListQueue returns the display queue for a destination: tickets whose
// status is in the given set, oldest first, so the longest-waiting order is
// at the top of the monitor.
func (r *TicketRepo) ListQueue(ctx context.Context, restaurantID uint64, destination string, statuses []string) ([]order.Ticket, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	q := "SELECT " + ticketColumns + " FROM tickets WHERE restaurant_id=? AND destination=? AND status IN (" +
		placeholders(len(statuses)) + ") ORDER BY created_at, id"
	args := []any{restaurantID, destination}
	for _, s := range statuses {
		args = append(args, s)
	}
	return r.queryTickets(ctx, r.db, q, args...)
}

// UpdateStatusGuarded advances a ticket's status only when its current
// status is in the allowed source set. The guard makes transitions
// idempotent and monotonic: a stale or repeated action affects zero rows
// instead of moving the ticket backward. Returns whether a row changed.
func (r *TicketRepo) UpdateStatusGuarded(ctx context.Context, restaurantID, id uint64, to string, from []string) (bool, error) {
	if len(from) == 0 {
		return false, nil
	}
	q := "UPDATE tickets SET status=?, updated_at=NOW() WHERE id=? AND restaurant_id=? AND status IN (" +
		placeholders(len(from)) + ")"
	args := []any{to, id, restaurantID}
	for _, s := range from {
		args = append(args, s)
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CloseTicketsTx marks the given tickets closed with a completion timestamp
// and attaches the full payment breakdown to every one of them. Runs inside
// the settlement transaction so either the whole table closes or none of it
// does.
func (r *TicketRepo) CloseTicketsTx(ctx context.Context, tx *sql.Tx, ticketIDs []uint64, payments []order.Payment, completedAt time.Time) error {
	if len(ticketIDs) == 0 {
		return nil
	}
	q := "UPDATE tickets SET status='closed', completed_at=?, updated_at=NOW() WHERE id IN (" +
		placeholders(len(ticketIDs)) + ")"
	args := []any{completedAt}
	for _, id := range ticketIDs {
		args = append(args, id)
	}
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		return err
	}

	// Payment detail is denormalized onto every closed ticket for audit
	// simplicity: each ticket row carries the whole breakdown.
	pq := "INSERT INTO ticket_payments (ticket_id, method, amount_cents) VALUES "
	pargs := make([]any, 0, len(ticketIDs)*len(payments)*3)
	first := true
	for _, id := range ticketIDs {
		for _, p := range payments {
			if !first {
				pq += ","
			}
			first = false
			pq += "(?,?,?)"
			pargs = append(pargs, id, p.Method, p.AmountCents)
		}
	}
	if first {
		return nil
	}
	_, err := tx.ExecContext(ctx, pq, pargs...)
	return err
}

// OccupiedTableIDs returns the set of tables that currently have at least
// one ticket in an occupying status. Table occupancy is always derived this
// way, never stored.
func (r *TicketRepo) OccupiedTableIDs(ctx context.Context, restaurantID uint64) (map[uint64]bool, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT table_id FROM tickets WHERE restaurant_id=? AND status IN ('pending','cooking','ready')",
		restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	occupied := make(map[uint64]bool)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		occupied[id] = true
	}
	return occupied, rows.Err()
}

// HasOccupying reports whether a single table still has tickets in an
// occupying status. Used as the guard for table deletion.
func (r *TicketRepo) HasOccupying(ctx context.Context, restaurantID, tableID uint64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tickets WHERE restaurant_id=? AND table_id=? AND status IN ('pending','cooking','ready')",
		restaurantID, tableID).Scan(&n)
	return n > 0, err
}

// queryTickets runs a ticket SELECT and loads line items and payments for
// every returned row.
func (r *TicketRepo) queryTickets(ctx context.Context, q querier, query string, args ...any) ([]order.Ticket, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tickets []order.Ticket
	for rows.Next() {
		var (
			t           order.Ticket
			completedAt sql.NullTime
		)
		if err := rows.Scan(&t.ID, &t.RestaurantID, &t.TableID, &t.Destination, &t.Status,
			&t.SubtotalCents, &t.SubmissionKey, &t.CreatedAt, &t.UpdatedAt, &completedAt); err != nil {
			return nil, err
		}
		if completedAt.Valid {
			ca := completedAt.Time
			t.CompletedAt = &ca
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, q, tickets); err != nil {
		return nil, err
	}
	if err := r.loadPayments(ctx, q, tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *TicketRepo) loadItems(ctx context.Context, q querier, tickets []order.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	byID := make(map[uint64]*order.Ticket, len(tickets))
	args := make([]any, 0, len(tickets))
	for i := range tickets {
		byID[tickets[i].ID] = &tickets[i]
		args = append(args, tickets[i].ID)
	}
	rows, err := q.QueryContext(ctx,
		"SELECT ticket_id, product_id, name, price_cents, quantity FROM ticket_items WHERE ticket_id IN ("+
			placeholders(len(args))+") ORDER BY id", args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			ticketID uint64
			it       order.TicketItem
		)
		if err := rows.Scan(&ticketID, &it.ProductID, &it.Name, &it.PriceCents, &it.Quantity); err != nil {
			return err
		}
		if t, ok := byID[ticketID]; ok {
			t.Items = append(t.Items, it)
		}
	}
	return rows.Err()
}

func (r *TicketRepo) loadPayments(ctx context.Context, q querier, tickets []order.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	byID := make(map[uint64]*order.Ticket, len(tickets))
	args := make([]any, 0, len(tickets))
	for i := range tickets {
		byID[tickets[i].ID] = &tickets[i]
		args = append(args, tickets[i].ID)
	}
	rows, err := q.QueryContext(ctx,
		"SELECT ticket_id, method, amount_cents FROM ticket_payments WHERE ticket_id IN ("+
			placeholders(len(args))+") ORDER BY id", args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			ticketID uint64
			p        order.Payment
		)
		if err := rows.Scan(&ticketID, &p.Method, &p.AmountCents); err != nil {
			return err
		}
		if t, ok := byID[ticketID]; ok {
			t.Payments = append(t.Payments, p)
		}
	}
	return rows.Err()
}

// placeholders returns n comma-separated '?' marks for IN clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}
