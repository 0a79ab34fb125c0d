package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/ventry/ventry/internal/domain/errors"
	"github.com/ventry/ventry/internal/domain/model"
	"github.com/ventry/ventry/internal/domain/repository"
	pkgAuth "github.com/ventry/ventry/internal/pkg/auth"
)

// ManagerUseCase handles staff account administration.
type ManagerUseCase struct {
	managers repository.ManagerRepository
	hasher   pkgAuth.PasswordHasher
}

// NewManagerUseCase constructs ManagerUseCase.
func NewManagerUseCase(managers repository.ManagerRepository, hasher pkgAuth.PasswordHasher) *ManagerUseCase {
	return &ManagerUseCase{managers: managers, hasher: hasher}
}

// Create registers a new manager account. Only the manager role can be
// minted this way; the superadmin is seeded out of band.
func (u *ManagerUseCase) Create(ctx context.Context, email, password, firstName, lastName string) (*model.Manager, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !ValidateEmail(email) || !ValidatePassword(password) {
		return nil, domainErrors.ErrInvalidInput
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	return u.managers.Create(ctx, &model.Manager{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Role:         model.RoleManager,
	})
}

// List returns a page of staff accounts with the total count.
func (u *ManagerUseCase) List(ctx context.Context, filter model.ManagerFilter) ([]model.Manager, int, error) {
	return u.managers.List(ctx, filter)
}

// DeleteByEmail removes a manager account. Superadmin accounts cannot be
// deleted through this path.
func (u *ManagerUseCase) DeleteByEmail(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	manager, err := u.managers.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if manager.Role == model.RoleSuperadmin {
		return domainErrors.ErrInvalidInput
	}
	return u.managers.DeleteByEmail(ctx, email)
}
