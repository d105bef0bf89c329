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

// BusRepository handles database operations for buses.
type BusRepository struct {
	db *pgxpool.Pool
}

// NewBusRepository creates a new bus repository.
func NewBusRepository(db *pgxpool.Pool) *BusRepository {
	return &BusRepository{db: db}
}

// Create inserts a new bus and fills in its id.
func (r *BusRepository) Create(ctx context.Context, bus *models.Bus) error {
	query := `
		INSERT INTO buses (registration, capacity, driver_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, bus.Registration, bus.Capacity, bus.DriverID).Scan(&bus.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrRegistrationExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrDriverNotFound
		}
		return fmt.Errorf("error creating bus: %w", err)
	}
	return nil
}

// GetByID retrieves a bus by id.
func (r *BusRepository) GetByID(ctx context.Context, id int64) (*models.Bus, error) {
	query := `SELECT id, registration, capacity, driver_id FROM buses WHERE id = $1`

	var bus models.Bus
	err := r.db.QueryRow(ctx, query, id).Scan(&bus.ID, &bus.Registration, &bus.Capacity, &bus.DriverID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBusNotFound
		}
		return nil, fmt.Errorf("error retrieving bus: %w", err)
	}
	return &bus, nil
}

// GetAll retrieves all buses with driver name and license joined in.
func (r *BusRepository) GetAll(ctx context.Context) ([]*models.Bus, error) {
	query := `
		SELECT b.id, b.registration, b.capacity, b.driver_id, d.name, d.license_no
		FROM buses b
		LEFT JOIN drivers d ON b.driver_id = d.id
		ORDER BY b.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buses []*models.Bus
	for rows.Next() {
		var bus models.Bus
		if err := rows.Scan(&bus.ID, &bus.Registration, &bus.Capacity, &bus.DriverID, &bus.DriverName, &bus.LicenseNo); err != nil {
			return nil, err
		}
		buses = append(buses, &bus)
	}

	return buses, rows.Err()
}

// Update applies the non-nil fields of upd to the bus row.
func (r *BusRepository) Update(ctx context.Context, id int64, upd models.BusUpdate) error {
	set, args := buildSet([]setClause{
		{"registration", upd.Registration},
		{"capacity", upd.Capacity},
		{"driver_id", upd.DriverID},
	})
	if set == "" {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE buses SET %s WHERE id = $%d`, set, len(args))

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrRegistrationExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrDriverNotFound
		}
		return fmt.Errorf("error updating bus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrBusNotFound
	}
	return nil
}

// Delete unsets the bus from any routes, then removes the bus row.
func (r *BusRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `UPDATE routes SET bus_id = NULL WHERE bus_id = $1`, id); err != nil {
		return fmt.Errorf("error unassigning bus from routes: %w", err)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM buses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting bus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrBusNotFound
	}
	return nil
}
