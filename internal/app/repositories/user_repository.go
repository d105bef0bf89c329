package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuserp/campuserp/internal/app/models"
	"github.com/campuserp/campuserp/internal/pkg/apperrors"
	"github.com/campuserp/campuserp/internal/pkg/dberrors"
)

// UserRepository handles database operations for login credentials.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new credential and fills in its id.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, password, role, student_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		user.Username, user.Password, user.Role, user.StudentID,
	).Scan(&user.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrUsernameExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByUsername retrieves a credential by username. An empty role matches any
// role.
func (r *UserRepository) GetByUsername(ctx context.Context, username string, role models.Role) (*models.User, error) {
	query := `
		SELECT id, username, password, role, student_id
		FROM users
		WHERE username = $1 AND ($2 = '' OR role = $2)
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, username, string(role)).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.Role,
		&user.StudentID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// DeleteByStudentID removes the credential linked to a student, if any.
func (r *UserRepository) DeleteByStudentID(ctx context.Context, studentID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE student_id = $1`, studentID)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	return nil
}

// CountByRole returns how many credentials carry the given role.
func (r *UserRepository) CountByRole(ctx context.Context, role models.Role) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM users WHERE role = $1`, string(role)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}
