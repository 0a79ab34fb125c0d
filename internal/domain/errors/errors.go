package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	// Entity-specific lookup failures wrap ErrNotFound so callers can match
	// either the generic sentinel or the exact entity.
	ErrCarNotFound        = fmt.Errorf("car %w", ErrNotFound)
	ErrCustomerNotFound   = fmt.Errorf("customer %w", ErrNotFound)
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("account not verified")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
	ErrCarUnavailable     = errors.New("car not available")
	ErrPaymentInit        = errors.New("payment initialization failed")
	ErrVerificationFailed = errors.New("payment verification failed")
	ErrInvalidSignature   = errors.New("invalid webhook signature")
	// ErrVerifyUnavailable marks a transient gateway fault. The purchase
	// stays pending so verification can be retried; it must never be
	// confused with an authoritative failed payment.
	ErrVerifyUnavailable = errors.New("payment verification unavailable")
)
