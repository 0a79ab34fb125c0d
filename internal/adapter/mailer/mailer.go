package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"
)

// Mailer sends transactional email. Delivery is best effort: callers log
// failures and move on, business state never depends on the outcome.
type Mailer interface {
	SendOTP(ctx context.Context, email, code string) error
	SendPurchaseConfirmation(ctx context.Context, email, reference string, amount float64) error
}

// HTTPMailer implements Mailer on top of a SendGrid-compatible JSON API.
type HTTPMailer struct {
	baseURL    *url.URL
	apiKey     string
	fromEmail  string
	httpClient *http.Client
	logger     *slog.Logger
}

type mailAddress struct {
	Email string `json:"email"`
}

type mailContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type mailPersonalization struct {
	To []mailAddress `json:"to"`
}

type mailRequest struct {
	Personalizations []mailPersonalization `json:"personalizations"`
	From             mailAddress           `json:"from"`
	Subject          string                `json:"subject"`
	Content          []mailContent         `json:"content"`
}

// NewHTTPMailer creates a mail client with default timeout.
func NewHTTPMailer(baseURL, apiKey, fromEmail string, logger *slog.Logger) (*HTTPMailer, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse mail url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("mail url must be absolute")
	}
	return &HTTPMailer{
		baseURL:   parsed,
		apiKey:    apiKey,
		fromEmail: fromEmail,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// SendOTP delivers a signup verification code.
func (m *HTTPMailer) SendOTP(ctx context.Context, email, code string) error {
	body := fmt.Sprintf("Your verification code is %s. It expires shortly.", code)
	return m.send(ctx, email, "Verify your email", body)
}

// SendPurchaseConfirmation delivers a payment receipt.
func (m *HTTPMailer) SendPurchaseConfirmation(ctx context.Context, email, reference string, amount float64) error {
	body := fmt.Sprintf("Your payment of %.2f for purchase %s was successful.", amount, reference)
	return m.send(ctx, email, "Purchase confirmed", body)
}

func (m *HTTPMailer) send(ctx context.Context, to, subject, body string) error {
	payload, err := json.Marshal(mailRequest{
		Personalizations: []mailPersonalization{{To: []mailAddress{{Email: to}}}},
		From:             mailAddress{Email: m.fromEmail},
		Subject:          subject,
		Content:          []mailContent{{Type: "text/plain", Value: body}},
	})
	if err != nil {
		return err
	}

	endpoint := *m.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v3/mail/send")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("mail send failed: %s", resp.Status)
	}
	return nil
}

// NopMailer drops mail on the floor. Used when no mail provider is
// configured so the rest of the system keeps working.
type NopMailer struct {
	logger *slog.Logger
}

// NewNopMailer creates a mailer that only logs.
func NewNopMailer(logger *slog.Logger) *NopMailer {
	return &NopMailer{logger: logger}
}

func (m *NopMailer) SendOTP(ctx context.Context, email, code string) error {
	m.logger.Info("mail provider not configured, skipping otp mail", slog.String("email", email))
	return nil
}

func (m *NopMailer) SendPurchaseConfirmation(ctx context.Context, email, reference string, amount float64) error {
	m.logger.Info("mail provider not configured, skipping confirmation mail",
		slog.String("email", email), slog.String("reference", reference))
	return nil
}
