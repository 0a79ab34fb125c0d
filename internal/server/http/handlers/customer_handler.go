package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ventry/ventry/internal/domain/errors"
	"github.com/ventry/ventry/internal/server/http/dto"
)

// CustomerHandler processes customer signup and verification.
type CustomerHandler struct {
	facade CustomerFacade
}

// NewCustomerHandler creates CustomerHandler instance.
func NewCustomerHandler(facade CustomerFacade) *CustomerHandler {
	return &CustomerHandler{facade: facade}
}

// Signup handles POST /api/customers/signup.
func (h *CustomerHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	customer, err := h.facade.SignupCustomer(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidInput):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.NewCustomerResponse(customer))
}

// VerifyOTP handles POST /api/customers/verify-otp.
func (h *CustomerHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	customer, err := h.facade.VerifyCustomerOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidInput), errors.Is(err, domainErrors.ErrInvalidOTP):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired OTP"})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.NewCustomerResponse(customer))
}

// ResendOTP handles POST /api/customers/resend-otp.
func (h *CustomerHandler) ResendOTP(c *gin.Context) {
	var req dto.ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.ResendCustomerOTP(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidInput):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}
