package dto

import (
	"time"

	"github.com/ventry/ventry/internal/domain/model"
)

// SignupRequest describes customer registration payload.
type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// VerifyOTPRequest redeems a signup code.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResendOTPRequest asks for a fresh signup code.
type ResendOTPRequest struct {
	Email string `json:"email"`
}

// CustomerResponse describes a customer account.
type CustomerResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewCustomerResponse maps a customer model to its response shape.
func NewCustomerResponse(customer *model.Customer) CustomerResponse {
	return CustomerResponse{
		ID:         customer.ID,
		Email:      customer.Email,
		FirstName:  customer.FirstName,
		LastName:   customer.LastName,
		IsVerified: customer.IsVerified,
		CreatedAt:  customer.CreatedAt,
	}
}
