package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ventry/ventry/internal/adapter/mailer"
	domainErrors "github.com/ventry/ventry/internal/domain/errors"
	"github.com/ventry/ventry/internal/domain/model"
	"github.com/ventry/ventry/internal/domain/repository"
	pkgAuth "github.com/ventry/ventry/internal/pkg/auth"
)

var generateOTP = func() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// CustomerUseCase handles customer signup and email verification.
type CustomerUseCase struct {
	customers repository.CustomerRepository
	otps      repository.OTPRepository
	hasher    pkgAuth.PasswordHasher
	mail      mailer.Mailer
	otpTTL    time.Duration
	logger    *slog.Logger
}

// NewCustomerUseCase constructs CustomerUseCase.
func NewCustomerUseCase(customers repository.CustomerRepository, otps repository.OTPRepository, hasher pkgAuth.PasswordHasher, mail mailer.Mailer, otpTTL time.Duration, logger *slog.Logger) *CustomerUseCase {
	return &CustomerUseCase{
		customers: customers,
		otps:      otps,
		hasher:    hasher,
		mail:      mail,
		otpTTL:    otpTTL,
		logger:    logger,
	}
}

// Signup registers an unverified customer and issues a one-time code to
// their email. The account stays unusable until the code is redeemed.
func (u *CustomerUseCase) Signup(ctx context.Context, email, password, firstName, lastName string) (*model.Customer, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !ValidateEmail(email) || !ValidatePassword(password) {
		return nil, domainErrors.ErrInvalidInput
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	customer, err := u.customers.Create(ctx, &model.Customer{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
	})
	if err != nil {
		return nil, err
	}

	if err := u.sendOTP(ctx, email); err != nil {
		return nil, err
	}
	return customer, nil
}

// VerifyOTP redeems the code and marks the customer verified. A code is
// single use: a second redemption with the same code fails.
func (u *CustomerUseCase) VerifyOTP(ctx context.Context, email, code string) (*model.Customer, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || code == "" {
		return nil, domainErrors.ErrInvalidInput
	}

	ok, err := u.otps.Consume(ctx, email, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domainErrors.ErrInvalidOTP
	}
	return u.customers.MarkVerified(ctx, email)
}

// ResendOTP issues a fresh code for a registered, unverified customer.
func (u *CustomerUseCase) ResendOTP(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	customer, err := u.customers.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if customer.IsVerified {
		return domainErrors.ErrInvalidInput
	}
	return u.sendOTP(ctx, email)
}

// GetByID fetches a customer by identifier.
func (u *CustomerUseCase) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	return u.customers.GetByID(ctx, id)
}

func (u *CustomerUseCase) sendOTP(ctx context.Context, email string) error {
	code, err := generateOTP()
	if err != nil {
		return err
	}
	if err := u.otps.Save(ctx, email, code, u.otpTTL); err != nil {
		return err
	}
	if err := u.mail.SendOTP(ctx, email, code); err != nil {
		u.logger.Error("send otp mail", slog.String("email", email), slog.String("error", err.Error()))
	}
	return nil
}
