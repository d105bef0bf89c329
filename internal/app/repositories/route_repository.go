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

// RouteRepository handles database operations for transport routes.
type RouteRepository struct {
	db *pgxpool.Pool
}

// NewRouteRepository creates a new route repository.
func NewRouteRepository(db *pgxpool.Pool) *RouteRepository {
	return &RouteRepository{db: db}
}

// Create inserts a new route and fills in its id.
func (r *RouteRepository) Create(ctx context.Context, route *models.Route) error {
	query := `
		INSERT INTO routes (name, pickup_location, bus_id, fee)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, route.Name, route.PickupLocation, route.BusID, route.Fee).Scan(&route.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrBusNotFound
		}
		return fmt.Errorf("error creating route: %w", err)
	}
	return nil
}

// GetByID retrieves a route by id, through q so existence checks can share
// the assignment transaction.
func (r *RouteRepository) GetByID(ctx context.Context, q Querier, id int64) (*models.Route, error) {
	query := `SELECT id, name, pickup_location, bus_id, fee FROM routes WHERE id = $1`

	var route models.Route
	err := q.QueryRow(ctx, query, id).Scan(&route.ID, &route.Name, &route.PickupLocation, &route.BusID, &route.Fee)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRouteNotFound
		}
		return nil, fmt.Errorf("error retrieving route: %w", err)
	}
	return &route, nil
}

// GetAll retrieves all routes.
func (r *RouteRepository) GetAll(ctx context.Context) ([]*models.Route, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, pickup_location, bus_id, fee FROM routes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []*models.Route
	for rows.Next() {
		var route models.Route
		if err := rows.Scan(&route.ID, &route.Name, &route.PickupLocation, &route.BusID, &route.Fee); err != nil {
			return nil, err
		}
		routes = append(routes, &route)
	}

	return routes, rows.Err()
}

// Update applies the non-nil fields of upd to the route row.
func (r *RouteRepository) Update(ctx context.Context, id int64, upd models.RouteUpdate) error {
	set, args := buildSet([]setClause{
		{"name", upd.Name},
		{"pickup_location", upd.PickupLocation},
		{"bus_id", upd.BusID},
		{"fee", upd.Fee},
	})
	if set == "" {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE routes SET %s WHERE id = $%d`, set, len(args))

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrBusNotFound
		}
		return fmt.Errorf("error updating route: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRouteNotFound
	}
	return nil
}
