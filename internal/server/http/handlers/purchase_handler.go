package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ventry/ventry/internal/domain/errors"
	"github.com/ventry/ventry/internal/server/http/dto"
)

const signatureHeader = "X-Paystack-Signature"

// PurchaseHandler processes purchase initiation and the two settlement
// paths: the customer redirect callback and the provider webhook.
type PurchaseHandler struct {
	facade PurchaseFacade
}

// NewPurchaseHandler creates PurchaseHandler instance.
func NewPurchaseHandler(facade PurchaseFacade) *PurchaseHandler {
	return &PurchaseHandler{facade: facade}
}

// Initiate handles POST /api/purchases for the authenticated customer.
func (h *PurchaseHandler) Initiate(c *gin.Context) {
	var req dto.InitiatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CarID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	purchase, auth, err := h.facade.InitiatePurchase(c.Request.Context(), CurrentUserID(c), req.CarID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrCarNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "car not found"})
		case errors.Is(err, domainErrors.ErrCustomerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrCarUnavailable):
			c.JSON(http.StatusConflict, gin.H{"error": "car is not available"})
		case errors.Is(err, domainErrors.ErrInvalidInput):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrPaymentInit):
			c.Status(http.StatusBadGateway)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.InitiatePurchaseResponse{
		Reference:        purchase.Reference,
		AuthorizationURL: auth.AuthorizationURL,
		AccessCode:       auth.AccessCode,
		Amount:           purchase.Amount,
		Status:           string(purchase.Status),
	})
}

// Callback handles GET /api/purchases/callback?reference=, the redirect the
// gateway sends the customer back to. A transient verification fault leaves
// the purchase pending and tells the client to retry.
func (h *PurchaseHandler) Callback(c *gin.Context) {
	reference := c.Query("reference")

	purchase, err := h.facade.ConfirmPurchase(c.Request.Context(), reference)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidInput):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrVerificationFailed):
			// Authoritative failure; the detail stays in the logs.
			c.JSON(http.StatusBadRequest, gin.H{"error": "payment verification failed"})
		case errors.Is(err, domainErrors.ErrVerifyUnavailable):
			c.JSON(http.StatusAccepted, gin.H{
				"reference": reference,
				"status":    "pending",
				"message":   "verification temporarily unavailable, check back shortly",
			})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.NewPurchaseResponse(purchase))
}

// Webhook handles POST /api/purchases/webhook. The raw body is read before
// any parsing so the signature covers exactly the bytes the provider sent.
func (h *PurchaseHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.HandlePaymentWebhook(c.Request.Context(), body, c.GetHeader(signatureHeader)); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidSignature), errors.Is(err, domainErrors.ErrInvalidInput):
			// The provider retries on 400; both a forged signature and a
			// malformed payload are its problem to fix.
			c.Status(http.StatusBadRequest)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// Get handles GET /api/purchases/:reference for the authenticated customer.
func (h *PurchaseHandler) Get(c *gin.Context) {
	purchase, err := h.facade.Purchase(c.Request.Context(), c.Param("reference"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.NewPurchaseResponse(purchase))
}
