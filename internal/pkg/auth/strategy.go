package auth

import (
	"errors"
	"time"

	"github.com/ventry/ventry/internal/domain/model"
)

var ErrInvalidToken = errors.New("invalid auth token")

// Claims identify an authenticated account.
type Claims struct {
	UserID string
	Role   model.Role
}

// Strategy issues and verifies auth tokens carrying account identity and role.
type Strategy interface {
	IssueToken(userID string, role model.Role) (string, error)
	ParseToken(token string) (*Claims, error)
	Name() string
}

// Options tunes token issuance.
type Options struct {
	TTL time.Duration
}
