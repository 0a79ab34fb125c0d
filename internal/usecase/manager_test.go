package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/ventry/ventry/internal/domain/errors"
	"github.com/ventry/ventry/internal/domain/model"
	testhelpers "github.com/ventry/ventry/internal/test"
)

func TestManagerUseCaseCreate(t *testing.T) {
	repo := testhelpers.NewManagerRepositoryStub()
	uc := NewManagerUseCase(repo, testhelpers.HasherStub{})

	ctx := context.Background()
	manager, err := uc.Create(ctx, "Staff@Ventry.dev", "password1", " Ada ", " Lovelace ")
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if manager.Role != model.RoleManager {
		t.Fatalf("created staff must carry the manager role, got %s", manager.Role)
	}
	if manager.Email != "staff@ventry.dev" {
		t.Fatalf("email not normalized: %s", manager.Email)
	}

	stored, err := repo.GetByEmail(ctx, "staff@ventry.dev")
	if err != nil {
		t.Fatalf("expected manager in repository: %v", err)
	}
	if stored.PasswordHash != "hash:password1" {
		t.Fatalf("password hash not stored: %s", stored.PasswordHash)
	}
}

func TestManagerUseCaseCreateDuplicate(t *testing.T) {
	repo := testhelpers.NewManagerRepositoryStub()
	uc := NewManagerUseCase(repo, testhelpers.HasherStub{})

	email := testhelpers.RandomEmail()
	if _, err := uc.Create(context.Background(), email, "password1", "A", "B"); err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if _, err := uc.Create(context.Background(), email, "password1", "A", "B"); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestManagerUseCaseCreateValidation(t *testing.T) {
	uc := NewManagerUseCase(testhelpers.NewManagerRepositoryStub(), testhelpers.HasherStub{})

	if _, err := uc.Create(context.Background(), "bad-email", "password1", "A", "B"); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.Create(context.Background(), "staff@ventry.dev", "short", "A", "B"); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestManagerUseCaseDeleteByEmail(t *testing.T) {
	repo := testhelpers.NewManagerRepositoryStub()
	uc := NewManagerUseCase(repo, testhelpers.HasherStub{})

	ctx := context.Background()
	if _, err := repo.Create(ctx, &model.Manager{ID: "m-1", Email: "staff@ventry.dev", Role: model.RoleManager}); err != nil {
		t.Fatalf("seed manager: %v", err)
	}
	if _, err := repo.Create(ctx, &model.Manager{ID: "m-0", Email: "root@ventry.dev", Role: model.RoleSuperadmin}); err != nil {
		t.Fatalf("seed superadmin: %v", err)
	}

	if err := uc.DeleteByEmail(ctx, "staff@ventry.dev"); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	if _, err := repo.GetByEmail(ctx, "staff@ventry.dev"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("manager not deleted")
	}

	if err := uc.DeleteByEmail(ctx, "root@ventry.dev"); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("superadmin must not be deletable, got %v", err)
	}
	if err := uc.DeleteByEmail(ctx, "nobody@ventry.dev"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
