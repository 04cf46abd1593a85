package repository

import (
	"context"
	"database/sql"

	"comanda-pos/internal/model"
)

// ProductRepo provides catalog access for the POS grid. The POS only ever
// reads the current price to snapshot it onto a draft line; historical
// tickets never point back at these rows for pricing.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo returns a new ProductRepo bound to the given database.
func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

// Create inserts a product and populates the generated ID.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO products (restaurant_id, name, price_cents, category, stock, destination) VALUES (?,?,?,?,?,?)",
		p.RestaurantID, p.Name, p.PriceCents, p.Category, p.Stock, p.Destination)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at FROM products WHERE id=?", p.ID).Scan(&p.CreatedAt)
}

// GetByID fetches a product scoped to a restaurant.
func (r *ProductRepo) GetByID(ctx context.Context, restaurantID, id uint64) (model.Product, error) {
	var p model.Product
	err := r.db.QueryRowContext(ctx,
		"SELECT id, restaurant_id, name, price_cents, category, stock, destination, created_at FROM products WHERE id=? AND restaurant_id=? LIMIT 1",
		id, restaurantID).Scan(&p.ID, &p.RestaurantID, &p.Name, &p.PriceCents, &p.Category, &p.Stock, &p.Destination, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return p, ErrNotFound
	}
	return p, err
}

// ListByRestaurant returns the catalog ordered by name for the POS grid.
func (r *ProductRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, restaurant_id, name, price_cents, category, stock, destination, created_at FROM products WHERE restaurant_id=? ORDER BY name",
		restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.RestaurantID, &p.Name, &p.PriceCents, &p.Category, &p.Stock, &p.Destination, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
