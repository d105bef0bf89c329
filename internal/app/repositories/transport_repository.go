package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuserp/campuserp/internal/app/models"
	"github.com/campuserp/campuserp/internal/pkg/apperrors"
	"github.com/campuserp/campuserp/internal/pkg/dberrors"
)

// TransportRepository handles transport allocations, payments, attendance
// and the transport reports.
type TransportRepository struct {
	db *pgxpool.Pool
}

// NewTransportRepository creates a new transport repository.
func NewTransportRepository(db *pgxpool.Pool) *TransportRepository {
	return &TransportRepository{db: db}
}

// HasActiveAllocation checks for an active allocation on the exact
// (student, route) pair, through q.
func (r *TransportRepository) HasActiveAllocation(ctx context.Context, q Querier, studentID, routeID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM transport_allocations
			WHERE student_id = $1 AND route_id = $2 AND active
		)
	`
	if err := q.QueryRow(ctx, query, studentID, routeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking active allocation: %w", err)
	}
	return exists, nil
}

// InsertAllocation inserts an active allocation through q. The partial unique
// index on active (student, route) pairs rejects a concurrent duplicate.
func (r *TransportRepository) InsertAllocation(ctx context.Context, q Querier, studentID, routeID int64) (int64, error) {
	var id int64
	query := `
		INSERT INTO transport_allocations (student_id, route_id, active)
		VALUES ($1, $2, TRUE)
		RETURNING id
	`
	if err := q.QueryRow(ctx, query, studentID, routeID).Scan(&id); err != nil {
		if dberrors.IsUniqueViolationOn(err, "uq_transport_allocations_active") {
			return 0, apperrors.ErrAlreadyAssigned
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrRouteNotFound
		}
		return 0, fmt.Errorf("error inserting transport allocation: %w", err)
	}
	return id, nil
}

// AllocationsForStudent returns a student's transport allocations with route
// name, pickup and fee joined in.
func (r *TransportRepository) AllocationsForStudent(ctx context.Context, studentID int64) ([]models.TransportAllocation, error) {
	query := `
		SELECT t.id, t.student_id, t.route_id, t.active, r.name, r.pickup_location, r.fee
		FROM transport_allocations t
		JOIN routes r ON t.route_id = r.id
		WHERE t.student_id = $1
		ORDER BY t.id
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []models.TransportAllocation
	for rows.Next() {
		var a models.TransportAllocation
		if err := rows.Scan(&a.ID, &a.StudentID, &a.RouteID, &a.Active, &a.RouteName, &a.PickupLocation, &a.Fee); err != nil {
			return nil, err
		}
		allocations = append(allocations, a)
	}

	return allocations, rows.Err()
}

// InsertPayment records a transport payment.
func (r *TransportRepository) InsertPayment(ctx context.Context, p *models.TransportPayment) error {
	query := `
		INSERT INTO transport_payments (student_id, amount, date, receipt_no)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, p.StudentID, p.Amount, p.Date, p.ReceiptNo).Scan(&p.ID)
	if err != nil {
		if dberrors.IsCheckViolation(err) {
			return apperrors.ErrConstraint
		}
		return fmt.Errorf("error inserting transport payment: %w", err)
	}
	return nil
}

// PaymentsForStudent returns all transport payments for a student.
func (r *TransportRepository) PaymentsForStudent(ctx context.Context, studentID int64) ([]models.TransportPayment, error) {
	query := `
		SELECT id, student_id, amount, date, receipt_no
		FROM transport_payments
		WHERE student_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.TransportPayment
	for rows.Next() {
		var p models.TransportPayment
		if err := rows.Scan(&p.ID, &p.StudentID, &p.Amount, &p.Date, &p.ReceiptNo); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

// InsertAttendance records a bus attendance mark; there is no per-day dedup.
func (r *TransportRepository) InsertAttendance(ctx context.Context, a *models.BusAttendance) error {
	query := `
		INSERT INTO bus_attendance (student_id, route_id, date, present)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, a.StudentID, a.RouteID, a.Date, a.Present).Scan(&a.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrRouteNotFound
		}
		return fmt.Errorf("error inserting attendance: %w", err)
	}
	return nil
}

// ActiveRoutesReport returns every route with its bus registration and the
// count of active riders.
func (r *TransportRepository) ActiveRoutesReport(ctx context.Context) ([]models.ActiveRoute, error) {
	query := `
		SELECT r.id, r.name, r.pickup_location, r.bus_id, r.fee, b.registration, COUNT(ta.id) AS riders
		FROM routes r
		LEFT JOIN buses b ON r.bus_id = b.id
		LEFT JOIN transport_allocations ta ON r.id = ta.route_id AND ta.active
		GROUP BY r.id, b.registration
		ORDER BY r.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []models.ActiveRoute
	for rows.Next() {
		var a models.ActiveRoute
		if err := rows.Scan(&a.ID, &a.Name, &a.PickupLocation, &a.BusID, &a.Fee, &a.BusReg, &a.Riders); err != nil {
			return nil, err
		}
		report = append(report, a)
	}

	return report, rows.Err()
}

// FeeReport returns one row per allocation. Paid is the student's total
// across all their transport payments rather than per allocation; the report
// keeps the historical behavior.
func (r *TransportRepository) FeeReport(ctx context.Context) ([]models.TransportFeeRow, error) {
	query := `
		SELECT t.id, s.name, r.name, r.fee,
		       COALESCE((SELECT SUM(tp.amount) FROM transport_payments tp WHERE tp.student_id = t.student_id), 0) AS paid
		FROM transport_allocations t
		LEFT JOIN students s ON t.student_id = s.id
		LEFT JOIN routes r ON t.route_id = r.id
		ORDER BY t.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []models.TransportFeeRow
	for rows.Next() {
		var row models.TransportFeeRow
		var studentName, routeName *string
		var fee *float64
		if err := rows.Scan(&row.AllocationID, &studentName, &routeName, &fee, &row.Paid); err != nil {
			return nil, err
		}
		if studentName != nil {
			row.StudentName = *studentName
		}
		if routeName != nil {
			row.RouteName = *routeName
		}
		if fee != nil {
			row.Fee = *fee
		}
		report = append(report, row)
	}

	return report, rows.Err()
}

// SumPaymentsForStudent returns the student's total transport payments.
func (r *TransportRepository) SumPaymentsForStudent(ctx context.Context, studentID int64) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(amount), 0) FROM transport_payments WHERE student_id = $1`
	if err := r.db.QueryRow(ctx, query, studentID).Scan(&total); err != nil {
		return 0, fmt.Errorf("error summing transport payments: %w", err)
	}
	return total, nil
}

// Deactivate clears the active flag on an allocation.
func (r *TransportRepository) Deactivate(ctx context.Context, allocationID int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE transport_allocations SET active = FALSE WHERE id = $1`, allocationID)
	if err != nil {
		return fmt.Errorf("error deactivating allocation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
