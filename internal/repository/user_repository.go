package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"comanda-pos/internal/model"
	"comanda-pos/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

// Create inserts a user and returns its ID. restaurantID is nil for owners
// (an owner's own id is the tenant id) and set for staff accounts.
func (r *UserRepo) Create(ctx context.Context, email, password, role string, restaurantID *uint64, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, role, restaurant_id) VALUES (?,?,?,?)",
		email, hash, role, restaurantID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,restaurant_id,is_active,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.RestaurantID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,restaurant_id,is_active,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.RestaurantID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// RestaurantOf resolves the tenant id for a user: staff accounts point at
// their owner, owners are their own tenant.
func RestaurantOf(u model.User) uint64 {
	if u.RestaurantID != nil && *u.RestaurantID != 0 {
		return *u.RestaurantID
	}
	return u.ID
}
