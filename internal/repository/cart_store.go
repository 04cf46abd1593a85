package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"comanda-pos/internal/order"
)

// CartStore keeps the uncommitted draft cart of each terminal session. A
// draft lives outside the primary store on purpose: it is ambient session
// state, owned by the active terminal, and only becomes durable when a
// submission turns it into tickets. One draft exists per (restaurant,
// terminal user); selecting a different table replaces it with an empty one.
type CartStore interface {
	Get(ctx context.Context, restaurantID, userID uint64) (order.Cart, bool, error)
	Save(ctx context.Context, restaurantID, userID uint64, cart order.Cart) error
	Clear(ctx context.Context, restaurantID, userID uint64) error
}

// cartTTL bounds how long an abandoned draft survives. Long enough for a
// slow lunch service, short enough that stale terminals do not accumulate.
const cartTTL = 12 * time.Hour

// RedisCartStore stores drafts as JSON values in Redis so that a terminal
// reconnecting (or the server restarting) picks up its in-progress cart.
type RedisCartStore struct {
	rdb *redis.Client
}

// NewRedisCartStore wraps a connected Redis client.
func NewRedisCartStore(rdb *redis.Client) *RedisCartStore {
	return &RedisCartStore{rdb: rdb}
}

func cartKey(restaurantID, userID uint64) string {
	return fmt.Sprintf("cart:%d:%d", restaurantID, userID)
}

// Get loads the draft for a terminal session. The second return value is
// false when no draft exists.
func (s *RedisCartStore) Get(ctx context.Context, restaurantID, userID uint64) (order.Cart, bool, error) {
	raw, err := s.rdb.Get(ctx, cartKey(restaurantID, userID)).Bytes()
	if err == redis.Nil {
		return order.Cart{}, false, nil
	}
	if err != nil {
		return order.Cart{}, false, err
	}
	var c order.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return order.Cart{}, false, err
	}
	return c, true, nil
}

// Save writes the draft back, refreshing its TTL.
func (s *RedisCartStore) Save(ctx context.Context, restaurantID, userID uint64, cart order.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, cartKey(restaurantID, userID), raw, cartTTL).Err()
}

// Clear drops the draft entirely.
func (s *RedisCartStore) Clear(ctx context.Context, restaurantID, userID uint64) error {
	return s.rdb.Del(ctx, cartKey(restaurantID, userID)).Err()
}

// MemoryCartStore is a process-local fallback used when Redis is not
// available at startup, and by tests. Drafts do not survive a restart.
type MemoryCartStore struct {
	mu    sync.Mutex
	carts map[string]order.Cart
}

// NewMemoryCartStore returns an empty in-memory store.
func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[string]order.Cart)}
}

func (s *MemoryCartStore) Get(ctx context.Context, restaurantID, userID uint64) (order.Cart, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[cartKey(restaurantID, userID)]
	return c, ok, nil
}

func (s *MemoryCartStore) Save(ctx context.Context, restaurantID, userID uint64, cart order.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[cartKey(restaurantID, userID)] = cart
	return nil
}

func (s *MemoryCartStore) Clear(ctx context.Context, restaurantID, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, cartKey(restaurantID, userID))
	return nil
}
