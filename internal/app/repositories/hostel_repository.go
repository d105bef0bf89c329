package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuserp/campuserp/internal/app/models"
	"github.com/campuserp/campuserp/internal/pkg/apperrors"
	"github.com/campuserp/campuserp/internal/pkg/dberrors"
)

// HostelRepository handles hostel allocations, payments and the occupancy
// reports.
type HostelRepository struct {
	db *pgxpool.Pool
}

// NewHostelRepository creates a new hostel repository.
func NewHostelRepository(db *pgxpool.Pool) *HostelRepository {
	return &HostelRepository{db: db}
}

// CountActive counts allocations for a room with no checkout date, through q
// so the capacity check and insert can share a transaction.
func (r *HostelRepository) CountActive(ctx context.Context, q Querier, roomID int64) (int, error) {
	var count int
	query := `SELECT COUNT(1) FROM hostel_allocations WHERE room_id = $1 AND checkout_date IS NULL`
	if err := q.QueryRow(ctx, query, roomID).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting active allocations: %w", err)
	}
	return count, nil
}

// InsertAllocation inserts an allocation with a null checkout date through q.
func (r *HostelRepository) InsertAllocation(ctx context.Context, q Querier, studentID, roomID int64, checkin time.Time) (int64, error) {
	var id int64
	query := `
		INSERT INTO hostel_allocations (student_id, room_id, checkin_date)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := q.QueryRow(ctx, query, studentID, roomID, checkin).Scan(&id); err != nil {
		return 0, fmt.Errorf("error inserting allocation: %w", err)
	}
	return id, nil
}

// Checkout sets the checkout date on an allocation. Re-running just rewrites
// the date.
func (r *HostelRepository) Checkout(ctx context.Context, allocationID int64, checkout time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE hostel_allocations SET checkout_date = $1 WHERE id = $2`,
		checkout, allocationID)
	if err != nil {
		return fmt.Errorf("error checking out allocation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAllocationNotFound
	}
	return nil
}

// AllocationsForStudent returns a student's allocations, newest first, with
// room block and number joined in.
func (r *HostelRepository) AllocationsForStudent(ctx context.Context, studentID int64) ([]models.HostelAllocation, error) {
	query := `
		SELECT a.id, a.student_id, a.room_id, a.checkin_date, a.checkout_date, r.block, r.room_no
		FROM hostel_allocations a
		JOIN hostel_rooms r ON a.room_id = r.id
		WHERE a.student_id = $1
		ORDER BY a.id DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []models.HostelAllocation
	for rows.Next() {
		var a models.HostelAllocation
		if err := rows.Scan(&a.ID, &a.StudentID, &a.RoomID, &a.CheckinDate, &a.CheckoutDate, &a.Block, &a.RoomNo); err != nil {
			return nil, err
		}
		allocations = append(allocations, a)
	}

	return allocations, rows.Err()
}

// InsertPayment records a hostel payment.
func (r *HostelRepository) InsertPayment(ctx context.Context, p *models.HostelPayment) error {
	query := `
		INSERT INTO hostel_payments (student_id, amount, date, receipt_no)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, p.StudentID, p.Amount, p.Date, p.ReceiptNo).Scan(&p.ID)
	if err != nil {
		if dberrors.IsCheckViolation(err) {
			return apperrors.ErrConstraint
		}
		return fmt.Errorf("error inserting hostel payment: %w", err)
	}
	return nil
}

// PaymentsForStudent returns all hostel payments for a student.
func (r *HostelRepository) PaymentsForStudent(ctx context.Context, studentID int64) ([]models.HostelPayment, error) {
	query := `
		SELECT id, student_id, amount, date, receipt_no
		FROM hostel_payments
		WHERE student_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.HostelPayment
	for rows.Next() {
		var p models.HostelPayment
		if err := rows.Scan(&p.ID, &p.StudentID, &p.Amount, &p.Date, &p.ReceiptNo); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

// OccupancyReport returns one row per room with the count of active
// allocations; rooms with no occupants appear with zero.
func (r *HostelRepository) OccupancyReport(ctx context.Context) ([]models.RoomOccupancy, error) {
	query := `
		SELECT r.id, r.block, r.room_no, r.capacity, COUNT(a.id) AS occupants
		FROM hostel_rooms r
		LEFT JOIN hostel_allocations a ON r.id = a.room_id AND a.checkout_date IS NULL
		GROUP BY r.id
		ORDER BY r.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []models.RoomOccupancy
	for rows.Next() {
		var o models.RoomOccupancy
		if err := rows.Scan(&o.RoomID, &o.Block, &o.RoomNo, &o.Capacity, &o.Occupants); err != nil {
			return nil, err
		}
		report = append(report, o)
	}

	return report, rows.Err()
}

// VacantRooms returns rooms that still have free places.
func (r *HostelRepository) VacantRooms(ctx context.Context) ([]models.VacantRoom, error) {
	query := `
		SELECT r.id, r.block, r.room_no, r.capacity,
		       r.capacity - COALESCE(t.occupants, 0) AS vacant
		FROM hostel_rooms r
		LEFT JOIN (
			SELECT room_id, COUNT(id) AS occupants
			FROM hostel_allocations
			WHERE checkout_date IS NULL
			GROUP BY room_id
		) t ON r.id = t.room_id
		WHERE r.capacity - COALESCE(t.occupants, 0) > 0
		ORDER BY r.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []models.VacantRoom
	for rows.Next() {
		var v models.VacantRoom
		if err := rows.Scan(&v.ID, &v.Block, &v.RoomNo, &v.Capacity, &v.Vacant); err != nil {
			return nil, err
		}
		rooms = append(rooms, v)
	}

	return rooms, rows.Err()
}
