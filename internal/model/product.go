package model

import "time"

// Product represents a row in the `products` table. PriceCents is the
// current menu price only; tickets snapshot name and price at submission
// time, so editing a product never rewrites history.
//
// Fields:
//  ID           – primary key identifier.
//  RestaurantID – owning restaurant (tenant) id.
//  Name         – product name shown on the POS grid.
//  PriceCents   – current unit price in cents.
//  Category     – free-form grouping ("General", "Drinks", ...).
//  Stock        – units on hand; informational, not enforced by the POS.
//  Destination  – routing tag, "kitchen" or "bar".
//  CreatedAt    – timestamp of creation.
type Product struct {
	ID           uint64    // products.id
	RestaurantID uint64    // products.restaurant_id
	Name         string    // products.name
	PriceCents   int64     // products.price_cents
	Category     string    // products.category
	Stock        int       // products.stock
	Destination  string    // products.destination
	CreatedAt    time.Time // products.created_at
}
