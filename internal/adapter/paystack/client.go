package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"
)

// ErrTransactionNotFound indicates the gateway doesn't know the reference.
var ErrTransactionNotFound = errors.New("transaction not found")

// UnavailableError represents a transient gateway fault: transport errors
// and 5xx responses. Callers must not treat it as an authoritative verdict.
type UnavailableError struct {
	Status string
	Err    error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("paystack unavailable: %v", e.Err)
	}
	return fmt.Sprintf("paystack unavailable: %s", e.Status)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// StatusSuccess is the transaction status the gateway reports for a
// successfully charged transaction.
const StatusSuccess = "success"

// InitializeRequest carries the fields for starting a transaction. Amount
// is in currency subunits.
type InitializeRequest struct {
	Email       string
	Amount      int64
	Reference   string
	CallbackURL string
}

// Authorization is the checkout handle returned by the gateway.
type Authorization struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// Verification is the gateway's record of a transaction. Amount is in
// currency subunits.
type Verification struct {
	Status          string
	Reference       string
	Amount          int64
	GatewayResponse string
}

// Client exposes operations against the payment gateway.
type Client interface {
	Initialize(ctx context.Context, req InitializeRequest) (*Authorization, error)
	Verify(ctx context.Context, reference string) (*Verification, error)
}

// HTTPClient implements Client via the Paystack REST API.
type HTTPClient struct {
	baseURL    *url.URL
	secretKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	Status          string `json:"status"`
	Reference       string `json:"reference"`
	Amount          int64  `json:"amount"`
	GatewayResponse string `json:"gateway_response"`
}

// NewHTTPClient creates HTTP gateway client with default timeout.
func NewHTTPClient(baseURL, secretKey string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse paystack url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("paystack url must be absolute")
	}
	if secretKey == "" {
		return nil, fmt.Errorf("paystack secret key is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:   parsed,
		secretKey: secretKey,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Initialize starts a transaction and returns the checkout authorization.
// The amount is sent as a subunit string, which is what the gateway expects.
func (c *HTTPClient) Initialize(ctx context.Context, req InitializeRequest) (*Authorization, error) {
	payload, err := json.Marshal(map[string]string{
		"email":        req.Email,
		"amount":       strconv.FormatInt(req.Amount, 10),
		"reference":    req.Reference,
		"callback_url": req.CallbackURL,
	})
	if err != nil {
		return nil, err
	}

	data, err := c.do(ctx, http.MethodPost, "/transaction/initialize", payload)
	if err != nil {
		return nil, err
	}

	var auth initializeData
	if err := json.Unmarshal(data, &auth); err != nil {
		return nil, err
	}
	return &Authorization{
		AuthorizationURL: auth.AuthorizationURL,
		AccessCode:       auth.AccessCode,
		Reference:        auth.Reference,
	}, nil
}

// Verify fetches the gateway's record for the reference.
func (c *HTTPClient) Verify(ctx context.Context, reference string) (*Verification, error) {
	data, err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}

	var v verifyData
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &Verification{
		Status:          v.Status,
		Reference:       v.Reference,
		Amount:          v.Amount,
		GatewayResponse: v.GatewayResponse,
	}, nil
}

func (c *HTTPClient) do(ctx context.Context, method, endpointPath string, payload []byte) (json.RawMessage, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, endpointPath)

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		c.logger.Error("paystack request failed",
			slog.String("method", method),
			slog.String("path", endpointPath),
			slog.Int("status", resp.StatusCode))
		return nil, &UnavailableError{Status: resp.Status}
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrTransactionNotFound
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode paystack response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !env.Status {
		c.logger.Error("paystack request rejected",
			slog.String("method", method),
			slog.String("path", endpointPath),
			slog.Int("status", resp.StatusCode),
			slog.String("message", env.Message))
		return nil, fmt.Errorf("paystack error: %s", env.Message)
	}
	return env.Data, nil
}
