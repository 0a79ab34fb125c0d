package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ventry/ventry/internal/domain/model"
	pkgAuth "github.com/ventry/ventry/internal/pkg/auth"
)

const (
	// UserIDContextKey is a gin context key for the authenticated account id.
	UserIDContextKey = "userID"
	// UserRoleContextKey is a gin context key for the authenticated role.
	UserRoleContextKey = "userRole"
)

// TokenParser validates bearer tokens.
type TokenParser interface {
	ParseToken(token string) (*pkgAuth.Claims, error)
}

// AuthRequired ensures the caller holds a valid token with one of the
// allowed roles. With no roles listed, any authenticated account passes.
func AuthRequired(parser TokenParser, roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		if len(roles) > 0 && !roleAllowed(claims.Role, roles) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Set(UserIDContextKey, claims.UserID)
		c.Set(UserRoleContextKey, claims.Role)
		c.Next()
	}
}

func roleAllowed(role model.Role, allowed []model.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
