package repository

import (
	"context"
	"time"
)

// OTPRepository stores one-time signup codes with expiry.
type OTPRepository interface {
	Save(ctx context.Context, email, code string, ttl time.Duration) error
	// Consume checks the stored code and deletes it on match so a code
	// can be redeemed at most once.
	Consume(ctx context.Context, email, code string) (bool, error)
}
