package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ventry/ventry/internal/domain/model"
	"github.com/ventry/ventry/internal/server/http/middleware"
)

// CurrentUserID extracts the authenticated account id from context.
func CurrentUserID(c *gin.Context) string {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}

// CurrentUserRole extracts the authenticated role from context.
func CurrentUserRole(c *gin.Context) model.Role {
	val, ok := c.Get(middleware.UserRoleContextKey)
	if !ok {
		return ""
	}
	role, _ := val.(model.Role)
	return role
}

func queryInt(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}

func queryFloatPtr(c *gin.Context, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

func queryIntPtr(c *gin.Context, key string) *int {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func queryBoolPtr(c *gin.Context, key string) *bool {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}
