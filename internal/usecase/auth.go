package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/ventry/ventry/internal/domain/errors"
	"github.com/ventry/ventry/internal/domain/model"
	"github.com/ventry/ventry/internal/domain/repository"
	pkgAuth "github.com/ventry/ventry/internal/pkg/auth"
)

// Account is the role-agnostic view of an authenticated user.
type Account struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Role      model.Role
}

// AuthUseCase handles login across staff and customer accounts and token
// management.
type AuthUseCase struct {
	managers  repository.ManagerRepository
	customers repository.CustomerRepository
	hasher    pkgAuth.PasswordHasher
	tokens    pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(managers repository.ManagerRepository, customers repository.CustomerRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{managers: managers, customers: customers, hasher: hasher, tokens: strategy}
}

// Authenticate validates credentials and returns the account with an auth
// token. Staff accounts are checked first; an unverified customer is
// rejected even with the right password.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*Account, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	manager, err := u.managers.GetByEmail(ctx, email)
	if err == nil {
		if err := u.hasher.Compare(manager.PasswordHash, password); err != nil {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return u.issue(manager.ID, manager.Email, manager.FirstName, manager.LastName, manager.Role)
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, "", err
	}

	customer, err := u.customers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := u.hasher.Compare(customer.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if !customer.IsVerified {
		return nil, "", domainErrors.ErrNotVerified
	}
	return u.issue(customer.ID, customer.Email, customer.FirstName, customer.LastName, model.RoleCustomer)
}

func (u *AuthUseCase) issue(id, email, firstName, lastName string, role model.Role) (*Account, string, error) {
	token, err := u.tokens.IssueToken(id, role)
	if err != nil {
		return nil, "", err
	}
	return &Account{ID: id, Email: email, FirstName: firstName, LastName: lastName, Role: role}, token, nil
}

// ParseToken extracts the claims from a bearer token.
func (u *AuthUseCase) ParseToken(token string) (*pkgAuth.Claims, error) {
	if token == "" {
		return nil, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}
