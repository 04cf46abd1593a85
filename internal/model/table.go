package model

import "time"

// DiningTable represents a row in the `dining_tables` table. A table is a
// named seat group owned by one restaurant. Occupancy is intentionally NOT a
// column: it is always derived from the existence of tickets in an occupying
// status, so the flag can never drift from the underlying tickets.
//
// Fields:
//  ID           – primary key identifier.
//  RestaurantID – owning restaurant (tenant) id.
//  Name         – display name, unique per restaurant ("Mesa 1", "Terraza 3").
//  Capacity     – number of seats.
//  CreatedAt    – timestamp of creation.
type DiningTable struct {
	ID           uint64    // dining_tables.id
	RestaurantID uint64    // dining_tables.restaurant_id
	Name         string    // dining_tables.name
	Capacity     int       // dining_tables.capacity
	CreatedAt    time.Time // dining_tables.created_at
}
