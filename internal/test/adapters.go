package test

import (
	"context"
	"sync"

	"github.com/ventry/ventry/internal/adapter/events"
	"github.com/ventry/ventry/internal/adapter/paystack"
)

// GatewayStub simulates the payment gateway client.
type GatewayStub struct {
	InitializeFn func(context.Context, paystack.InitializeRequest) (*paystack.Authorization, error)
	VerifyFn     func(context.Context, string) (*paystack.Verification, error)

	mu          sync.Mutex
	Initialized []paystack.InitializeRequest
	Verified    []string
}

// Initialize records the request and returns configured response.
func (s *GatewayStub) Initialize(ctx context.Context, req paystack.InitializeRequest) (*paystack.Authorization, error) {
	s.mu.Lock()
	s.Initialized = append(s.Initialized, req)
	s.mu.Unlock()
	if s.InitializeFn != nil {
		return s.InitializeFn(ctx, req)
	}
	return &paystack.Authorization{
		AuthorizationURL: "https://checkout.example/" + req.Reference,
		AccessCode:       "access-" + req.Reference,
		Reference:        req.Reference,
	}, nil
}

// Verify records the reference and returns configured response.
func (s *GatewayStub) Verify(ctx context.Context, reference string) (*paystack.Verification, error) {
	s.mu.Lock()
	s.Verified = append(s.Verified, reference)
	s.mu.Unlock()
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, reference)
	}
	return &paystack.Verification{Status: paystack.StatusSuccess, Reference: reference}, nil
}

// MailerStub records outgoing mail for assertions.
type MailerStub struct {
	SendOTPFn          func(context.Context, string, string) error
	SendConfirmationFn func(context.Context, string, string, float64) error

	mu            sync.Mutex
	OTPs          []string
	Confirmations []string
}

// SendOTP records the recipient or delegates to the override.
func (s *MailerStub) SendOTP(ctx context.Context, email, code string) error {
	if s.SendOTPFn != nil {
		return s.SendOTPFn(ctx, email, code)
	}
	s.mu.Lock()
	s.OTPs = append(s.OTPs, email)
	s.mu.Unlock()
	return nil
}

// SendPurchaseConfirmation records the reference or delegates to the override.
func (s *MailerStub) SendPurchaseConfirmation(ctx context.Context, email, reference string, amount float64) error {
	if s.SendConfirmationFn != nil {
		return s.SendConfirmationFn(ctx, email, reference, amount)
	}
	s.mu.Lock()
	s.Confirmations = append(s.Confirmations, reference)
	s.mu.Unlock()
	return nil
}

// PublisherStub collects published events.
type PublisherStub struct {
	mu     sync.Mutex
	Events []events.Event
}

// Publish stores the event for later assertions.
func (s *PublisherStub) Publish(ctx context.Context, event events.Event) {
	s.mu.Lock()
	s.Events = append(s.Events, event)
	s.mu.Unlock()
}

// Published returns a snapshot of collected events.
func (s *PublisherStub) Published() []events.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]events.Event, len(s.Events))
	copy(out, s.Events)
	return out
}

var _ paystack.Client = (*GatewayStub)(nil)
var _ events.Publisher = (*PublisherStub)(nil)
