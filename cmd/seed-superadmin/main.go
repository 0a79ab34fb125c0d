// Command seed-superadmin provisions the single superadmin account from
// SUPERADMIN_EMAIL and SUPERADMIN_PASSWORD. Safe to run repeatedly: an
// existing account is left untouched unless -force is given.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/ventry/ventry/internal/config"
	domainErrors "github.com/ventry/ventry/internal/domain/errors"
	"github.com/ventry/ventry/internal/domain/model"
	"github.com/ventry/ventry/internal/logger"
	pkgAuth "github.com/ventry/ventry/internal/pkg/auth"
	"github.com/ventry/ventry/internal/storage/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Config flags (-d, -r, ...) pass through to config.LoadArgs; only
	// -force is consumed here.
	force := false
	rest := make([]string, 0, len(os.Args)-1)
	for _, arg := range os.Args[1:] {
		if arg == "-force" || arg == "--force" {
			force = true
			continue
		}
		rest = append(rest, arg)
	}

	if err := seed(ctx, rest, force); err != nil {
		fmt.Fprintf(os.Stderr, "seed-superadmin: %v\n", err)
		os.Exit(1)
	}
}

func seed(ctx context.Context, args []string, force bool) error {
	cfg, err := config.LoadArgs(args)
	if err != nil {
		return err
	}

	email := strings.TrimSpace(strings.ToLower(cfg.SuperadminEmail))
	password := cfg.SuperadminPassword
	if email == "" || password == "" {
		return errors.New("SUPERADMIN_EMAIL and SUPERADMIN_PASSWORD must be set")
	}

	log := logger.New()
	storage, err := postgres.New(ctx, cfg.DatabaseURI, log)
	if err != nil {
		return err
	}
	defer storage.Close()

	managers := storage.Managers()
	existing, err := managers.GetByEmail(ctx, email)
	switch {
	case err == nil && !force:
		log.Info("superadmin already present", "email", existing.Email)
		return nil
	case err == nil && force:
		if err := managers.DeleteByEmail(ctx, email); err != nil {
			return err
		}
		log.Info("replacing existing superadmin", "email", email)
	case !errors.Is(err, domainErrors.ErrNotFound):
		return err
	}

	hash, err := pkgAuth.NewBcryptHasher(0).Hash(password)
	if err != nil {
		return err
	}

	created, err := managers.Create(ctx, &model.Manager{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Super",
		LastName:     "Admin",
		Role:         model.RoleSuperadmin,
	})
	if err != nil {
		return err
	}

	log.Info("superadmin seeded", "email", created.Email)
	return nil
}
