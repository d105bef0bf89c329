package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuserp/campuserp/internal/app/models"
	"github.com/campuserp/campuserp/internal/pkg/apperrors"
)

// TokenRepository stores opaque refresh tokens.
type TokenRepository struct {
	db *pgxpool.Pool
}

// NewTokenRepository creates a new token repository.
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{db: db}
}

// Create inserts a refresh token for the user.
func (r *TokenRepository) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
	`

	if _, err := r.db.Exec(ctx, query, userID, token, expiresAt); err != nil {
		return fmt.Errorf("error storing refresh token: %w", err)
	}
	return nil
}

// GetUserByToken resolves an unexpired refresh token to its credential.
func (r *TokenRepository) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	query := `
		SELECT u.id, u.username, u.password, u.role, u.student_id
		FROM refresh_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.token = $1 AND t.expires_at > now()
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, token).Scan(
		&user.ID, &user.Username, &user.Password, &user.Role, &user.StudentID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("error resolving refresh token: %w", err)
	}
	return &user, nil
}

// Delete removes a single refresh token.
func (r *TokenRepository) Delete(ctx context.Context, token string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, token); err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}

// DeleteExpired clears tokens past their expiry.
func (r *TokenRepository) DeleteExpired(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at <= now()`); err != nil {
		return fmt.Errorf("error deleting expired refresh tokens: %w", err)
	}
	return nil
}
