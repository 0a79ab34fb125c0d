package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ventry/ventry/internal/domain/model"
)

// JWTStrategy implements token creation/verification using HS256 JWTs.
type JWTStrategy struct {
	secret []byte
	ttl    time.Duration
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTStrategy{secret: []byte(secret), ttl: ttl}
}

// IssueToken generates a signed token for the account.
func (s *JWTStrategy) IssueToken(userID string, role model.Role) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken validates a token and returns the embedded claims.
func (s *JWTStrategy) ParseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || claims.Subject == "" || claims.Role == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{UserID: claims.Subject, Role: model.Role(claims.Role)}, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}
