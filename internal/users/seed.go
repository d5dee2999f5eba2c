package users

import (
	"context"
	"fmt"

	"github.com/manuslibros/libros-backend/pkg/config"
	"github.com/manuslibros/libros-backend/pkg/db/models"
	"github.com/manuslibros/libros-backend/pkg/enums"
	"github.com/manuslibros/libros-backend/pkg/logger"
	"github.com/manuslibros/libros-backend/pkg/security"
)

// EnsureSeedAdmin provisions the bootstrap admin account when the users table
// is empty. The configured password is stored hashed, never verbatim.
func EnsureSeedAdmin(ctx context.Context, repo Repository, seed config.SeedConfig, pwCfg config.PasswordConfig, logg *logger.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		return nil
	}

	username := NormalizeUsername(seed.AdminUsername)
	if username == "" || seed.AdminPassword == "" {
		if logg != nil {
			logg.Warn(ctx, "users table empty and no seed admin configured")
		}
		return nil
	}

	hash, err := security.HashPassword(seed.AdminPassword, pwCfg)
	if err != nil {
		return fmt.Errorf("hashing seed admin password: %w", err)
	}

	admin := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         enums.AccountRoleAdmin,
		Name:         seed.AdminName,
		IsActive:     true,
	}
	if _, err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("creating seed admin: %w", err)
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "username", username), "seed admin account created")
	}
	return nil
}
