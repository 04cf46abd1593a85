package middleware

// identity.go defines helper functions shared across middleware files. The
// rate limiter and the response cache both need stable string forms of the
// authenticated user and tenant for their Redis keys; JWTAuth stores the
// raw claims, which arrive as float64 after JSON decoding.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// claimString renders a context value set by JWTAuth as a key-safe string.
func claimString(c echo.Context, key, fallback string) string {
	v := c.Get(key)
	if v == nil {
		return fallback
	}
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
		return fallback
	case float64:
		return fmt.Sprintf("%.0f", t)
	case uint64, int64, int:
		return fmt.Sprint(t)
	}
	return fallback
}

// currentUserID returns the authenticated user id or "anon".
func currentUserID(c echo.Context) string {
	return claimString(c, "user_id", "anon")
}

// currentRestaurantID returns the tenant id or "none". Cache keys must
// include it so one restaurant's catalog is never served to another.
func currentRestaurantID(c echo.Context) string {
	return claimString(c, "restaurant_id", "none")
}
