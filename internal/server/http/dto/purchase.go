package dto

import (
	"time"

	"github.com/ventry/ventry/internal/domain/model"
)

// InitiatePurchaseRequest starts a purchase for the authenticated customer.
// The email is the payer address forwarded to the gateway; the buyer
// identity always comes from the session.
type InitiatePurchaseRequest struct {
	CarID string `json:"carId"`
	Email string `json:"email"`
}

// InitiatePurchaseResponse carries the checkout handle for the client to
// complete payment.
type InitiatePurchaseResponse struct {
	Reference        string  `json:"reference"`
	AuthorizationURL string  `json:"authorizationUrl"`
	AccessCode       string  `json:"accessCode"`
	Amount           float64 `json:"amount"`
	Status           string  `json:"status"`
}

// PurchaseResponse describes a purchase record.
type PurchaseResponse struct {
	Reference  string    `json:"reference"`
	CustomerID string    `json:"customerId"`
	CarID      string    `json:"carId"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewPurchaseResponse maps a purchase model to its response shape.
func NewPurchaseResponse(purchase *model.Purchase) PurchaseResponse {
	return PurchaseResponse{
		Reference:  purchase.Reference,
		CustomerID: purchase.CustomerID,
		CarID:      purchase.CarID,
		Amount:     purchase.Amount,
		Status:     string(purchase.Status),
		CreatedAt:  purchase.CreatedAt,
		UpdatedAt:  purchase.UpdatedAt,
	}
}
