package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cart-service/internal/models"

	"github.com/go-redis/redis/v8"
)

// Client wraps Redis as the cart persistence backend. The cart is stored
// as a single JSON blob under one key, overwritten wholesale on every
// mutation and read once at startup.
type Client struct {
	rdb     *redis.Client
	cartKey string
}

// NewClient connects to Redis and verifies the connection.
func NewClient(addr, password string, db int, cartKey string) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb, cartKey: cartKey}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Load reads the persisted cart blob. A missing key reports not found; a
// blob that fails to decode also reports not found, so a corrupted record
// degrades to an empty cart instead of an error.
func (c *Client) Load(ctx context.Context) ([]models.CartLine, bool, error) {
	blob, err := c.rdb.Get(ctx, c.cartKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cart state: %w", err)
	}

	var lines []models.CartLine
	if err := json.Unmarshal(blob, &lines); err != nil {
		return nil, false, nil
	}
	return lines, true, nil
}

// Save overwrites the persisted cart blob with the full line sequence.
// No TTL: the record lives until the next overwrite.
func (c *Client) Save(ctx context.Context, lines []models.CartLine) error {
	blob, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to serialize cart state: %w", err)
	}

	if err := c.rdb.Set(ctx, c.cartKey, blob, 0).Err(); err != nil {
		return fmt.Errorf("failed to write cart state: %w", err)
	}
	return nil
}
