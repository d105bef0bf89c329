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

// DriverRepository handles database operations for drivers.
type DriverRepository struct {
	db *pgxpool.Pool
}

// NewDriverRepository creates a new driver repository.
func NewDriverRepository(db *pgxpool.Pool) *DriverRepository {
	return &DriverRepository{db: db}
}

// Create inserts a new driver and fills in its id.
func (r *DriverRepository) Create(ctx context.Context, driver *models.Driver) error {
	query := `
		INSERT INTO drivers (name, license_no, contact)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, driver.Name, driver.LicenseNo, driver.Contact).Scan(&driver.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrLicenseExists
		}
		return fmt.Errorf("error creating driver: %w", err)
	}
	return nil
}

// GetByID retrieves a driver by id.
func (r *DriverRepository) GetByID(ctx context.Context, id int64) (*models.Driver, error) {
	query := `SELECT id, name, license_no, contact FROM drivers WHERE id = $1`

	var driver models.Driver
	err := r.db.QueryRow(ctx, query, id).Scan(&driver.ID, &driver.Name, &driver.LicenseNo, &driver.Contact)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDriverNotFound
		}
		return nil, fmt.Errorf("error retrieving driver: %w", err)
	}
	return &driver, nil
}

// GetAll retrieves all drivers.
func (r *DriverRepository) GetAll(ctx context.Context) ([]*models.Driver, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, license_no, contact FROM drivers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*models.Driver
	for rows.Next() {
		var driver models.Driver
		if err := rows.Scan(&driver.ID, &driver.Name, &driver.LicenseNo, &driver.Contact); err != nil {
			return nil, err
		}
		drivers = append(drivers, &driver)
	}

	return drivers, rows.Err()
}

// Update applies the non-nil fields of upd to the driver row.
func (r *DriverRepository) Update(ctx context.Context, id int64, upd models.DriverUpdate) error {
	set, args := buildSet([]setClause{
		{"name", upd.Name},
		{"license_no", upd.LicenseNo},
		{"contact", upd.Contact},
	})
	if set == "" {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE drivers SET %s WHERE id = $%d`, set, len(args))

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrLicenseExists
		}
		return fmt.Errorf("error updating driver: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDriverNotFound
	}
	return nil
}

// Delete unsets the driver from any buses, then removes the driver row.
func (r *DriverRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `UPDATE buses SET driver_id = NULL WHERE driver_id = $1`, id); err != nil {
		return fmt.Errorf("error unassigning driver from buses: %w", err)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting driver: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDriverNotFound
	}
	return nil
}
