package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ventry/ventry/internal/domain/errors"
	"github.com/ventry/ventry/internal/server/http/dto"
)

// AuthHandler processes login for staff and customer accounts.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	account, token, err := h.facade.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.Status(http.StatusUnauthorized)
		case errors.Is(err, domainErrors.ErrNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"error": "account not verified"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: token,
		User: dto.AccountResponse{
			ID:        account.ID,
			Email:     account.Email,
			FirstName: account.FirstName,
			LastName:  account.LastName,
			Role:      string(account.Role),
		},
	})
}
