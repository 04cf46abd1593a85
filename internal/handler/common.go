package handler // handler defines http handlers

import (
	"errors"  // errors provides sentinel values used by the context helpers
	"strconv" // strconv converts strings to numeric types

	"github.com/labstack/echo/v4" // echo defines request context types
)

// getUserID extracts the user_id from echo.Context and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	return claimUint(c.Get("user_id"), "user_id")
}

// getRestaurantID extracts the tenant scope (restaurant_id) set by the JWT
// middleware from the rid claim. Every data access in the protected routes
// must be filtered by this value.
func getRestaurantID(c echo.Context) (uint64, error) {
	return claimUint(c.Get("restaurant_id"), "restaurant_id")
}

// claimUint converts a context value that originated from a JWT claim to
// uint64. JWT numeric claims decode as float64; tests and middleware may
// also store native integer types or numeric strings.
func claimUint(v any, name string) (uint64, error) {
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid " + name + " in context")
}

// pathID parses a numeric path parameter and reports whether it is valid.
func pathID(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
