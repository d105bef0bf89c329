package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/campuserp/campuserp/internal/app/models"
	"github.com/campuserp/campuserp/internal/app/repositories"
	"github.com/campuserp/campuserp/internal/pkg/auth"
)

// Default admin credential created on first start.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin"
)

// EnsureDefaultAdmin creates the admin/admin credential when no admin user
// exists yet. The default password is meant to be changed immediately.
func EnsureDefaultAdmin(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)

	count, err := userRepo.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	user := &models.User{
		Username: defaultAdminUsername,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		return err
	}

	lgr.Warn().Str("username", defaultAdminUsername).Msg("Created default admin credential, change the password")
	return nil
}
