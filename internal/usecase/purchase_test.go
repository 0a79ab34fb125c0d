package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ventry/ventry/internal/adapter/events"
	"github.com/ventry/ventry/internal/adapter/paystack"
	domainErrors "github.com/ventry/ventry/internal/domain/errors"
	"github.com/ventry/ventry/internal/domain/model"
	testhelpers "github.com/ventry/ventry/internal/test"
)

const testWebhookSecret = "whsec_test"

type purchaseFixture struct {
	uc        *PurchaseUseCase
	purchases *testhelpers.PurchaseRepositoryStub
	cars      *testhelpers.CarRepositoryStub
	customers *testhelpers.CustomerRepositoryStub
	gateway   *testhelpers.GatewayStub
	mail      *testhelpers.MailerStub
	events    *testhelpers.PublisherStub
}

func newPurchaseFixture(t *testing.T) *purchaseFixture {
	t.Helper()

	cars := &testhelpers.CarRepositoryStub{
		Cars: []model.Car{{ID: "car-1", Brand: "Toyota", Model: "Corolla", Price: 25000, IsAvailable: true}},
	}
	customers := testhelpers.NewCustomerRepositoryStub()
	if _, err := customers.Create(context.Background(), &model.Customer{ID: "cust-1", Email: "jane@example.com", IsVerified: true}); err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	purchases := testhelpers.NewPurchaseRepositoryStub()
	purchases.Cars = cars
	gateway := &testhelpers.GatewayStub{}
	mail := &testhelpers.MailerStub{}
	publisher := &testhelpers.PublisherStub{}

	uc := NewPurchaseUseCase(purchases, cars, customers, gateway, mail, publisher,
		"https://ventry.dev/api/purchases/callback", testWebhookSecret, discardLogger())

	return &purchaseFixture{
		uc:        uc,
		purchases: purchases,
		cars:      cars,
		customers: customers,
		gateway:   gateway,
		mail:      mail,
		events:    publisher,
	}
}

func fixedReference(t *testing.T, reference string) {
	t.Helper()
	orig := newReference
	newReference = func() string { return reference }
	t.Cleanup(func() { newReference = orig })
}

func sign(body []byte) string {
	mac := hmac.New(sha512.New, []byte(testWebhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestPurchaseInitiate(t *testing.T) {
	fixedReference(t, "ventry_fixed")
	f := newPurchaseFixture(t)
	ctx := context.Background()

	purchase, auth, err := f.uc.Initiate(ctx, "cust-1", "car-1", "buyer@example.com")
	if err != nil {
		t.Fatalf("initiate returned error: %v", err)
	}
	if purchase.Reference != "ventry_fixed" {
		t.Fatalf("unexpected reference %q", purchase.Reference)
	}
	if purchase.Status != model.PaymentStatusPending {
		t.Fatalf("new purchase must be pending, got %s", purchase.Status)
	}
	if purchase.Amount != 25000 {
		t.Fatalf("purchase amount must be the major-unit price, got %v", purchase.Amount)
	}
	if auth.AuthorizationURL == "" || auth.AccessCode == "" {
		t.Fatalf("checkout handle missing: %+v", auth)
	}

	if len(f.gateway.Initialized) != 1 {
		t.Fatalf("expected one gateway call, got %d", len(f.gateway.Initialized))
	}
	req := f.gateway.Initialized[0]
	if req.Amount != 2500000 {
		t.Fatalf("gateway amount must be in subunits, got %d", req.Amount)
	}
	if req.Email != "buyer@example.com" {
		t.Fatalf("gateway must receive the request payer email, got %s", req.Email)
	}
	if req.CallbackURL != "https://ventry.dev/api/purchases/callback" {
		t.Fatalf("callback url mismatch: %s", req.CallbackURL)
	}

	published := f.events.Published()
	if len(published) != 1 || published[0].Type != events.TypePurchaseInitiated {
		t.Fatalf("expected one initiated event, got %+v", published)
	}
}

func TestPurchaseInitiateUnavailableCar(t *testing.T) {
	f := newPurchaseFixture(t)
	f.cars.Cars[0].IsAvailable = false

	_, _, err := f.uc.Initiate(context.Background(), "cust-1", "car-1", "jane@example.com")
	if !errors.Is(err, domainErrors.ErrCarUnavailable) {
		t.Fatalf("expected ErrCarUnavailable, got %v", err)
	}
	if len(f.gateway.Initialized) != 0 {
		t.Fatalf("gateway must not be called for an unavailable car")
	}
}

func TestPurchaseInitiateGatewayFailure(t *testing.T) {
	fixedReference(t, "ventry_fixed")
	f := newPurchaseFixture(t)
	f.gateway.InitializeFn = func(context.Context, paystack.InitializeRequest) (*paystack.Authorization, error) {
		return nil, &paystack.UnavailableError{Status: "503 Service Unavailable", Err: errors.New("bad gateway")}
	}

	_, _, err := f.uc.Initiate(context.Background(), "cust-1", "car-1", "jane@example.com")
	if !errors.Is(err, domainErrors.ErrPaymentInit) {
		t.Fatalf("expected ErrPaymentInit, got %v", err)
	}
	if _, err := f.purchases.GetByReference(context.Background(), "ventry_fixed"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("no purchase must be recorded when initialization fails")
	}
}

func TestPurchaseInitiateMissingAuthorizationURL(t *testing.T) {
	fixedReference(t, "ventry_fixed")
	f := newPurchaseFixture(t)
	f.gateway.InitializeFn = func(_ context.Context, req paystack.InitializeRequest) (*paystack.Authorization, error) {
		return &paystack.Authorization{Reference: req.Reference}, nil
	}

	_, _, err := f.uc.Initiate(context.Background(), "cust-1", "car-1", "jane@example.com")
	if !errors.Is(err, domainErrors.ErrPaymentInit) {
		t.Fatalf("a success envelope without a checkout URL must fail initiation, got %v", err)
	}
	if _, err := f.purchases.GetByReference(context.Background(), "ventry_fixed"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("no purchase must be recorded without a checkout URL")
	}
}

func TestPurchaseInitiateInvalidEmail(t *testing.T) {
	f := newPurchaseFixture(t)

	for _, email := range []string{"", "not-an-email"} {
		if _, _, err := f.uc.Initiate(context.Background(), "cust-1", "car-1", email); !errors.Is(err, domainErrors.ErrInvalidInput) {
			t.Fatalf("email %q: expected ErrInvalidInput, got %v", email, err)
		}
	}
	if len(f.gateway.Initialized) != 0 {
		t.Fatalf("gateway must not be called for an invalid payer email")
	}
}

func TestPurchaseInitiateUnknownEntities(t *testing.T) {
	f := newPurchaseFixture(t)

	if _, _, err := f.uc.Initiate(context.Background(), "ghost", "car-1", "jane@example.com"); !errors.Is(err, domainErrors.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
	if _, _, err := f.uc.Initiate(context.Background(), "cust-1", "ghost", "jane@example.com"); !errors.Is(err, domainErrors.ErrCarNotFound) {
		t.Fatalf("expected ErrCarNotFound, got %v", err)
	}
	// The car is resolved before the customer, so an unknown car wins even
	// when both lookups would miss.
	if _, _, err := f.uc.Initiate(context.Background(), "ghost", "ghost", "jane@example.com"); !errors.Is(err, domainErrors.ErrCarNotFound) {
		t.Fatalf("expected ErrCarNotFound when both are unknown, got %v", err)
	}
}

func initiated(t *testing.T, f *purchaseFixture) *model.Purchase {
	t.Helper()
	purchase, _, err := f.uc.Initiate(context.Background(), "cust-1", "car-1", "jane@example.com")
	if err != nil {
		t.Fatalf("initiate failed: %v", err)
	}
	return purchase
}

func TestPurchaseConfirmCallbackSuccess(t *testing.T) {
	f := newPurchaseFixture(t)
	purchase := initiated(t, f)

	f.gateway.VerifyFn = func(_ context.Context, reference string) (*paystack.Verification, error) {
		return &paystack.Verification{Status: paystack.StatusSuccess, Reference: reference, Amount: 2500000}, nil
	}

	settled, err := f.uc.ConfirmCallback(context.Background(), purchase.Reference)
	if err != nil {
		t.Fatalf("confirm returned error: %v", err)
	}
	if settled.Status != model.PaymentStatusCompleted {
		t.Fatalf("expected completed, got %s", settled.Status)
	}
	if f.cars.Cars[0].IsAvailable {
		t.Fatalf("car must be flipped unavailable on completion")
	}
	if len(f.mail.Confirmations) != 1 || f.mail.Confirmations[0] != purchase.Reference {
		t.Fatalf("confirmation mail not sent: %v", f.mail.Confirmations)
	}

	var completed int
	for _, e := range f.events.Published() {
		if e.Type == events.TypePurchaseCompleted {
			completed++
		}
	}
	if completed != 1 {
		t.Fatalf("expected exactly one completed event, got %d", completed)
	}
}

func TestPurchaseConfirmCallbackTerminalIsNoOp(t *testing.T) {
	f := newPurchaseFixture(t)
	purchase := initiated(t, f)

	if _, _, err := f.purchases.Complete(context.Background(), purchase.Reference); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	settled, err := f.uc.ConfirmCallback(context.Background(), purchase.Reference)
	if err != nil {
		t.Fatalf("confirm returned error: %v", err)
	}
	if settled.Status != model.PaymentStatusCompleted {
		t.Fatalf("expected recorded terminal state, got %s", settled.Status)
	}
	if len(f.gateway.Verified) != 0 {
		t.Fatalf("gateway must not be re-verified for a settled purchase")
	}
}

func TestPurchaseConfirmCallbackVerifyUnavailable(t *testing.T) {
	f := newPurchaseFixture(t)
	purchase := initiated(t, f)

	f.gateway.VerifyFn = func(context.Context, string) (*paystack.Verification, error) {
		return nil, &paystack.UnavailableError{Status: "502 Bad Gateway", Err: errors.New("upstream down")}
	}

	if _, err := f.uc.ConfirmCallback(context.Background(), purchase.Reference); !errors.Is(err, domainErrors.ErrVerifyUnavailable) {
		t.Fatalf("expected ErrVerifyUnavailable, got %v", err)
	}

	stored, err := f.purchases.GetByReference(context.Background(), purchase.Reference)
	if err != nil {
		t.Fatalf("get purchase: %v", err)
	}
	if stored.Status != model.PaymentStatusPending {
		t.Fatalf("purchase must stay pending on transient fault, got %s", stored.Status)
	}
}

func TestPurchaseConfirmCallbackUnknownAtGateway(t *testing.T) {
	f := newPurchaseFixture(t)
	purchase := initiated(t, f)

	f.gateway.VerifyFn = func(context.Context, string) (*paystack.Verification, error) {
		return nil, paystack.ErrTransactionNotFound
	}

	settled, err := f.uc.ConfirmCallback(context.Background(), purchase.Reference)
	if !errors.Is(err, domainErrors.ErrVerificationFailed) {
		t.Fatalf("expected ErrVerificationFailed, got %v", err)
	}
	if settled.Status != model.PaymentStatusFailed {
		t.Fatalf("expected failed for a reference the gateway never saw, got %s", settled.Status)
	}
}

func TestPurchaseConfirmCallbackVerifyNotSuccessful(t *testing.T) {
	f := newPurchaseFixture(t)
	purchase := initiated(t, f)

	f.gateway.VerifyFn = func(_ context.Context, reference string) (*paystack.Verification, error) {
		return &paystack.Verification{Status: "abandoned", Reference: reference, Amount: 2500000}, nil
	}

	settled, err := f.uc.ConfirmCallback(context.Background(), purchase.Reference)
	if !errors.Is(err, domainErrors.ErrVerificationFailed) {
		t.Fatalf("expected ErrVerificationFailed, got %v", err)
	}
	if settled.Status != model.PaymentStatusFailed {
		t.Fatalf("unsuccessful verification must fail the purchase, got %s", settled.Status)
	}
	if !f.cars.Cars[0].IsAvailable {
		t.Fatalf("car must stay available when verification fails")
	}
}

func TestPurchaseConfirmCallbackAmountMismatch(t *testing.T) {
	f := newPurchaseFixture(t)
	purchase := initiated(t, f)

	f.gateway.VerifyFn = func(_ context.Context, reference string) (*paystack.Verification, error) {
		return &paystack.Verification{Status: paystack.StatusSuccess, Reference: reference, Amount: 100}, nil
	}

	settled, err := f.uc.ConfirmCallback(context.Background(), purchase.Reference)
	if !errors.Is(err, domainErrors.ErrVerificationFailed) {
		t.Fatalf("expected ErrVerificationFailed, got %v", err)
	}
	if settled.Status != model.PaymentStatusFailed {
		t.Fatalf("short-paid purchase must fail, got %s", settled.Status)
	}
	if !f.cars.Cars[0].IsAvailable {
		t.Fatalf("car must stay available when payment fails")
	}
}

func TestPurchaseConfirmCallbackValidation(t *testing.T) {
	f := newPurchaseFixture(t)

	if _, err := f.uc.ConfirmCallback(context.Background(), ""); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty reference, got %v", err)
	}
	if _, err := f.uc.ConfirmCallback(context.Background(), "ventry_ghost"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPurchaseWebhookChargeSuccess(t *testing.T) {
	f := newPurchaseFixture(t)
	purchase := initiated(t, f)

	body := []byte(fmt.Sprintf(`{"event":"charge.success","data":{"reference":%q,"amount":2500000,"status":"success"}}`, purchase.Reference))
	if err := f.uc.HandleWebhook(context.Background(), body, sign(body)); err != nil {
		t.Fatalf("webhook returned error: %v", err)
	}

	stored, err := f.purchases.GetByReference(context.Background(), purchase.Reference)
	if err != nil {
		t.Fatalf("get purchase: %v", err)
	}
	if stored.Status != model.PaymentStatusCompleted {
		t.Fatalf("expected completed, got %s", stored.Status)
	}
	if f.cars.Cars[0].IsAvailable {
		t.Fatalf("car must be flipped unavailable")
	}
}

func TestPurchaseWebhookChargeSuccessWithoutAmount(t *testing.T) {
	f := newPurchaseFixture(t)
	purchase := initiated(t, f)

	// The provider's webhook schema leaves amount optional; a charge.success
	// without it is still authoritative.
	body := []byte(fmt.Sprintf(`{"event":"charge.success","data":{"reference":%q,"status":"success"}}`, purchase.Reference))
	if err := f.uc.HandleWebhook(context.Background(), body, sign(body)); err != nil {
		t.Fatalf("webhook returned error: %v", err)
	}

	stored, err := f.purchases.GetByReference(context.Background(), purchase.Reference)
	if err != nil {
		t.Fatalf("get purchase: %v", err)
	}
	if stored.Status != model.PaymentStatusCompleted {
		t.Fatalf("charge.success without amount must still complete, got %s", stored.Status)
	}
}

func TestPurchaseWebhookForgedSignature(t *testing.T) {
	f := newPurchaseFixture(t)
	purchase := initiated(t, f)

	body := []byte(fmt.Sprintf(`{"event":"charge.success","data":{"reference":%q,"amount":2500000}}`, purchase.Reference))
	err := f.uc.HandleWebhook(context.Background(), body, "deadbeef")
	if !errors.Is(err, domainErrors.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}

	stored, _ := f.purchases.GetByReference(context.Background(), purchase.Reference)
	if stored.Status != model.PaymentStatusPending {
		t.Fatalf("forged webhook must not touch the purchase, got %s", stored.Status)
	}
}

func TestPurchaseWebhookMalformedBody(t *testing.T) {
	f := newPurchaseFixture(t)

	body := []byte("{not json")
	if err := f.uc.HandleWebhook(context.Background(), body, sign(body)); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPurchaseWebhookUnknownReferenceAcknowledged(t *testing.T) {
	f := newPurchaseFixture(t)

	body := []byte(`{"event":"charge.success","data":{"reference":"ventry_ghost","amount":100}}`)
	if err := f.uc.HandleWebhook(context.Background(), body, sign(body)); err != nil {
		t.Fatalf("unknown reference must be acknowledged, got %v", err)
	}
}

func TestPurchaseWebhookAmountMismatchFails(t *testing.T) {
	f := newPurchaseFixture(t)
	purchase := initiated(t, f)

	body := []byte(fmt.Sprintf(`{"event":"charge.success","data":{"reference":%q,"amount":1}}`, purchase.Reference))
	if err := f.uc.HandleWebhook(context.Background(), body, sign(body)); err != nil {
		t.Fatalf("webhook returned error: %v", err)
	}

	stored, _ := f.purchases.GetByReference(context.Background(), purchase.Reference)
	if stored.Status != model.PaymentStatusFailed {
		t.Fatalf("short-paid webhook must fail the purchase, got %s", stored.Status)
	}
}

func TestPurchaseWebhookChargeFailed(t *testing.T) {
	f := newPurchaseFixture(t)
	purchase := initiated(t, f)

	body := []byte(fmt.Sprintf(`{"event":"charge.failed","data":{"reference":%q,"status":"failed"}}`, purchase.Reference))
	if err := f.uc.HandleWebhook(context.Background(), body, sign(body)); err != nil {
		t.Fatalf("webhook returned error: %v", err)
	}

	stored, _ := f.purchases.GetByReference(context.Background(), purchase.Reference)
	if stored.Status != model.PaymentStatusFailed {
		t.Fatalf("expected failed, got %s", stored.Status)
	}
}

func TestPurchaseWebhookUnknownEventIgnored(t *testing.T) {
	f := newPurchaseFixture(t)
	purchase := initiated(t, f)

	body := []byte(`{"event":"transfer.success","data":{"reference":"whatever"}}`)
	if err := f.uc.HandleWebhook(context.Background(), body, sign(body)); err != nil {
		t.Fatalf("unknown event must be acknowledged, got %v", err)
	}

	stored, _ := f.purchases.GetByReference(context.Background(), purchase.Reference)
	if stored.Status != model.PaymentStatusPending {
		t.Fatalf("unknown event must not touch purchases")
	}
}

func TestPurchaseWebhookOnSettledPurchaseIsNoOp(t *testing.T) {
	f := newPurchaseFixture(t)
	purchase := initiated(t, f)

	if _, _, err := f.purchases.Complete(context.Background(), purchase.Reference); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	body := []byte(fmt.Sprintf(`{"event":"charge.success","data":{"reference":%q,"amount":2500000}}`, purchase.Reference))
	if err := f.uc.HandleWebhook(context.Background(), body, sign(body)); err != nil {
		t.Fatalf("webhook returned error: %v", err)
	}
	if f.purchases.Completions != 1 {
		t.Fatalf("settled purchase must not transition again, completions=%d", f.purchases.Completions)
	}
}

// Both confirmation paths race on the same purchase; the conditional
// transition guarantees exactly one of them performs the terminal write.
func TestPurchaseCallbackAndWebhookConverge(t *testing.T) {
	f := newPurchaseFixture(t)
	purchase := initiated(t, f)

	f.gateway.VerifyFn = func(_ context.Context, reference string) (*paystack.Verification, error) {
		return &paystack.Verification{Status: paystack.StatusSuccess, Reference: reference, Amount: 2500000}, nil
	}
	body := []byte(fmt.Sprintf(`{"event":"charge.success","data":{"reference":%q,"amount":2500000,"status":"success"}}`, purchase.Reference))
	signature := sign(body)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if _, err := f.uc.ConfirmCallback(context.Background(), purchase.Reference); err != nil {
			t.Errorf("callback path: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := f.uc.HandleWebhook(context.Background(), body, signature); err != nil {
			t.Errorf("webhook path: %v", err)
		}
	}()
	wg.Wait()

	if f.purchases.Completions != 1 {
		t.Fatalf("exactly one terminal write expected, got %d", f.purchases.Completions)
	}
	stored, _ := f.purchases.GetByReference(context.Background(), purchase.Reference)
	if stored.Status != model.PaymentStatusCompleted {
		t.Fatalf("expected completed, got %s", stored.Status)
	}

	var completed int
	for _, e := range f.events.Published() {
		if e.Type == events.TypePurchaseCompleted {
			completed++
		}
	}
	if completed != 1 {
		t.Fatalf("expected one completed event, got %d", completed)
	}
}
