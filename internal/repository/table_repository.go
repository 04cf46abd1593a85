package repository

import (
	"context"
	"database/sql"
	"strings"

	"comanda-pos/internal/model"
)

// TableRepo provides CRUD operations for dining tables. Tables never store
// an "occupied" flag; occupancy is derived by the caller from the ticket set
// (see TicketRepo.OccupiedTableIDs), so this repository only deals with the
// static shape of the floor plan.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo returns a new TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span multiple repositories.
func (r *TableRepo) DB() *sql.DB { return r.db }

// Create inserts a dining table for a restaurant and populates the
// generated ID and creation timestamp on the passed record.
func (r *TableRepo) Create(ctx context.Context, t *model.DiningTable) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO dining_tables (restaurant_id, name, capacity) VALUES (?,?,?)",
		t.RestaurantID, t.Name, t.Capacity)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at FROM dining_tables WHERE id=?", t.ID).Scan(&t.CreatedAt)
}

// GetByID fetches a table scoped to a restaurant. Returns ErrNotFound when
// the row does not exist or belongs to another restaurant.
func (r *TableRepo) GetByID(ctx context.Context, restaurantID, id uint64) (model.DiningTable, error) {
	var t model.DiningTable
	err := r.db.QueryRowContext(ctx,
		"SELECT id, restaurant_id, name, capacity, created_at FROM dining_tables WHERE id=? AND restaurant_id=? LIMIT 1",
		id, restaurantID).Scan(&t.ID, &t.RestaurantID, &t.Name, &t.Capacity, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return t, ErrNotFound
	}
	return t, err
}

// ListByRestaurant returns all tables of a restaurant ordered by name, the
// way they are laid out on the floor-plan screen.
func (r *TableRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.DiningTable, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, restaurant_id, name, capacity, created_at FROM dining_tables WHERE restaurant_id=? ORDER BY name",
		restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.DiningTable
	for rows.Next() {
		var t model.DiningTable
		if err := rows.Scan(&t.ID, &t.RestaurantID, &t.Name, &t.Capacity, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Delete removes a table. The caller must have verified the table is not
// occupied; the handler surfaces ErrConflict in that case before calling
// this method.
func (r *TableRepo) Delete(ctx context.Context, restaurantID, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM dining_tables WHERE id=? AND restaurant_id=?", id, restaurantID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// IsDuplicateName reports whether err is the MySQL duplicate-key error for
// the per-restaurant unique table name.
func IsDuplicateName(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
