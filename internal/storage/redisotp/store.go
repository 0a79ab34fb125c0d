package redisotp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCmdable is the subset of the go-redis client the store relies on;
// tests swap in a stub through the same interface.
type redisCmdable interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// consumeScript deletes the stored code only when it matches, so check
// and redemption happen in one round trip.
const consumeScript = `if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end`

// Store keeps one-time signup codes in Redis with per-key expiry.
type Store struct {
	client redisCmdable
	closer func() error
	logger *slog.Logger
}

// New connects to Redis at addr.
func New(addr string, logger *slog.Logger) *Store {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &Store{client: client, closer: client.Close, logger: logger}
}

func otpKey(email string) string {
	return "otp:" + email
}

// Save stores the code for the email, replacing any previous one.
func (s *Store) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, otpKey(email), code, ttl).Err(); err != nil {
		return fmt.Errorf("save otp: %w", err)
	}
	return nil
}

// Consume redeems the code for the email. A matching code is deleted so it
// cannot be used twice; expired or unknown codes report false.
func (s *Store) Consume(ctx context.Context, email, code string) (bool, error) {
	deleted, err := s.client.Eval(ctx, consumeScript, []string{otpKey(email)}, code).Int64()
	if err != nil {
		return false, fmt.Errorf("consume otp: %w", err)
	}
	return deleted > 0, nil
}

// HealthCheck verifies Redis connectivity.
func (s *Store) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
