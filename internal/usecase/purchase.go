package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ventry/ventry/internal/adapter/events"
	"github.com/ventry/ventry/internal/adapter/mailer"
	"github.com/ventry/ventry/internal/adapter/paystack"
	domainErrors "github.com/ventry/ventry/internal/domain/errors"
	"github.com/ventry/ventry/internal/domain/model"
	"github.com/ventry/ventry/internal/domain/repository"
)

var newReference = func() string {
	return "ventry_" + uuid.NewString()
}

// Webhook event types acted on; anything else is acknowledged and logged.
const (
	webhookChargeSuccess = "charge.success"
	webhookChargeFailed  = "charge.failed"
)

// PurchaseUseCase orchestrates the purchase lifecycle: initiation against
// the payment gateway, and the two racing confirmation paths (redirect
// callback and provider webhook). Terminal writes are conditional at the
// repository, so both paths can run concurrently and converge on one
// outcome.
type PurchaseUseCase struct {
	purchases     repository.PurchaseRepository
	cars          repository.CarRepository
	customers     repository.CustomerRepository
	gateway       paystack.Client
	mail          mailer.Mailer
	events        events.Publisher
	callbackURL   string
	webhookSecret []byte
	logger        *slog.Logger
}

// NewPurchaseUseCase constructs PurchaseUseCase.
func NewPurchaseUseCase(
	purchases repository.PurchaseRepository,
	cars repository.CarRepository,
	customers repository.CustomerRepository,
	gateway paystack.Client,
	mail mailer.Mailer,
	publisher events.Publisher,
	callbackURL string,
	webhookSecret string,
	logger *slog.Logger,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		purchases:     purchases,
		cars:          cars,
		customers:     customers,
		gateway:       gateway,
		mail:          mail,
		events:        publisher,
		callbackURL:   callbackURL,
		webhookSecret: []byte(webhookSecret),
		logger:        logger,
	}
}

// subunits converts a major-unit price to the gateway's integer subunits.
func subunits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Initiate starts a purchase: checks availability, registers the
// transaction with the gateway, and records a pending purchase. The payer
// email comes from the request; the buyer identity from the session. The
// amount is captured from the car's current price and never recomputed
// later.
func (u *PurchaseUseCase) Initiate(ctx context.Context, customerID, carID, email string) (*model.Purchase, *paystack.Authorization, error) {
	if !ValidateEmail(email) {
		return nil, nil, domainErrors.ErrInvalidInput
	}

	car, err := u.cars.GetByID(ctx, carID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, nil, domainErrors.ErrCarNotFound
		}
		return nil, nil, err
	}
	if !car.IsAvailable {
		return nil, nil, domainErrors.ErrCarUnavailable
	}

	customer, err := u.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, nil, domainErrors.ErrCustomerNotFound
		}
		return nil, nil, err
	}

	reference := newReference()
	auth, err := u.gateway.Initialize(ctx, paystack.InitializeRequest{
		Email:       email,
		Amount:      subunits(car.Price),
		Reference:   reference,
		CallbackURL: u.callbackURL,
	})
	if err != nil {
		u.logger.Error("initialize transaction",
			slog.String("reference", reference),
			slog.String("error", err.Error()))
		return nil, nil, domainErrors.ErrPaymentInit
	}
	if auth == nil || auth.AuthorizationURL == "" {
		// A success envelope without a checkout URL is useless to the
		// customer; nothing is recorded.
		u.logger.Error("initialize returned no authorization url",
			slog.String("reference", reference))
		return nil, nil, domainErrors.ErrPaymentInit
	}

	purchase, err := u.purchases.Create(ctx, &model.Purchase{
		Reference:  reference,
		CustomerID: customer.ID,
		CarID:      car.ID,
		Amount:     car.Price,
		Status:     model.PaymentStatusPending,
	})
	if err != nil {
		return nil, nil, err
	}

	u.events.Publish(ctx, events.NewEvent(events.TypePurchaseInitiated, purchase))
	return purchase, auth, nil
}

// ConfirmCallback verifies the transaction with the gateway and settles the
// purchase. Calling it on an already terminal purchase is a no-op returning
// the recorded state, so it is safe to race with the webhook path. A
// transient gateway fault leaves the purchase pending and returns
// ErrVerifyUnavailable.
func (u *PurchaseUseCase) ConfirmCallback(ctx context.Context, reference string) (*model.Purchase, error) {
	if reference == "" {
		return nil, domainErrors.ErrInvalidInput
	}

	purchase, err := u.purchases.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if purchase.Status.IsTerminal() {
		return purchase, nil
	}

	verification, err := u.gateway.Verify(ctx, reference)
	if err != nil {
		var unavailable *paystack.UnavailableError
		if errors.As(err, &unavailable) {
			u.logger.Warn("verification unavailable, purchase left pending",
				slog.String("reference", reference),
				slog.String("error", err.Error()))
			return nil, domainErrors.ErrVerifyUnavailable
		}
		if errors.Is(err, paystack.ErrTransactionNotFound) {
			// The gateway has no record of the reference, so there is
			// nothing to wait for.
			return u.failVerification(ctx, reference)
		}
		return nil, domainErrors.ErrVerifyUnavailable
	}

	if verification.Status == paystack.StatusSuccess && verification.Amount == subunits(purchase.Amount) {
		return u.complete(ctx, reference)
	}

	if verification.Status == paystack.StatusSuccess {
		u.logger.Error("verification amount mismatch",
			slog.String("reference", reference),
			slog.Int64("expected", subunits(purchase.Amount)),
			slog.Int64("got", verification.Amount))
	}
	return u.failVerification(ctx, reference)
}

// failVerification records the terminal failure and surfaces it to the
// caller as an authoritative verification failure.
func (u *PurchaseUseCase) failVerification(ctx context.Context, reference string) (*model.Purchase, error) {
	settled, err := u.fail(ctx, reference)
	if err != nil {
		return nil, err
	}
	return settled, domainErrors.ErrVerificationFailed
}

// WebhookPayload is the provider's event envelope. Amount is optional in
// the provider's schema, so absence must be distinguishable from zero.
type WebhookPayload struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Amount    *int64 `json:"amount"`
		Status    string `json:"status"`
	} `json:"data"`
}

// ValidSignature checks the HMAC-SHA512 hex signature over the raw body.
func (u *PurchaseUseCase) ValidSignature(body []byte, signature string) bool {
	mac := hmac.New(sha512.New, u.webhookSecret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// HandleWebhook settles a purchase from a provider event. The signature is
// checked against the raw body before anything is parsed or touched.
// Unknown event types and unknown references are acknowledged so the
// provider stops retrying.
func (u *PurchaseUseCase) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if !u.ValidSignature(body, signature) {
		return domainErrors.ErrInvalidSignature
	}

	var payload WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return domainErrors.ErrInvalidInput
	}

	switch payload.Event {
	case webhookChargeSuccess:
		purchase, err := u.purchases.GetByReference(ctx, payload.Data.Reference)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				u.logger.Warn("webhook for unknown purchase", slog.String("reference", payload.Data.Reference))
				return nil
			}
			return err
		}
		if purchase.Status.IsTerminal() {
			return nil
		}
		// The amount field is optional; a charge.success without it is
		// still authoritative and must complete the purchase.
		if payload.Data.Amount != nil && *payload.Data.Amount != subunits(purchase.Amount) {
			u.logger.Error("webhook amount mismatch",
				slog.String("reference", payload.Data.Reference),
				slog.Int64("expected", subunits(purchase.Amount)),
				slog.Int64("got", *payload.Data.Amount))
			_, err := u.fail(ctx, payload.Data.Reference)
			return err
		}
		_, err = u.complete(ctx, payload.Data.Reference)
		return err
	case webhookChargeFailed:
		if _, err := u.fail(ctx, payload.Data.Reference); err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
			return err
		}
		return nil
	default:
		u.logger.Info("ignoring webhook event", slog.String("event", payload.Event))
		return nil
	}
}

// GetByReference fetches a purchase record.
func (u *PurchaseUseCase) GetByReference(ctx context.Context, reference string) (*model.Purchase, error) {
	return u.purchases.GetByReference(ctx, reference)
}

// StalePending lists pending purchases older than the cutoff for
// background re-verification.
func (u *PurchaseUseCase) StalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Purchase, error) {
	return u.purchases.SelectStalePending(ctx, olderThan, limit)
}

// complete runs the conditional terminal transition; side effects fire only
// on the call that actually performed it.
func (u *PurchaseUseCase) complete(ctx context.Context, reference string) (*model.Purchase, error) {
	purchase, transitioned, err := u.purchases.Complete(ctx, reference)
	if err != nil {
		return nil, err
	}
	if !transitioned {
		return purchase, nil
	}

	u.logger.Info("purchase completed",
		slog.String("reference", purchase.Reference),
		slog.String("car_id", purchase.CarID))
	u.events.Publish(ctx, events.NewEvent(events.TypePurchaseCompleted, purchase))
	u.notifyCompletion(ctx, purchase)
	return purchase, nil
}

func (u *PurchaseUseCase) fail(ctx context.Context, reference string) (*model.Purchase, error) {
	purchase, transitioned, err := u.purchases.Fail(ctx, reference)
	if err != nil {
		return nil, err
	}
	if transitioned {
		u.logger.Info("purchase failed", slog.String("reference", purchase.Reference))
		u.events.Publish(ctx, events.NewEvent(events.TypePurchaseFailed, purchase))
	}
	return purchase, nil
}

func (u *PurchaseUseCase) notifyCompletion(ctx context.Context, purchase *model.Purchase) {
	customer, err := u.customers.GetByID(ctx, purchase.CustomerID)
	if err != nil {
		u.logger.Error("load customer for confirmation mail",
			slog.String("reference", purchase.Reference),
			slog.String("error", err.Error()))
		return
	}
	if err := u.mail.SendPurchaseConfirmation(ctx, customer.Email, purchase.Reference, purchase.Amount); err != nil {
		u.logger.Error("send confirmation mail",
			slog.String("reference", purchase.Reference),
			slog.String("error", err.Error()))
	}
}
