package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuserp/campuserp/internal/app/models"
	"github.com/campuserp/campuserp/internal/app/repositories"
	"github.com/campuserp/campuserp/internal/db"
	"github.com/campuserp/campuserp/internal/metrics"
	"github.com/campuserp/campuserp/internal/pkg/apperrors"
	"github.com/campuserp/campuserp/internal/pkg/logger"
)

// HostelService handles rooms, capacity-checked allocation and hostel
// payments.
type HostelService struct {
	pool       *pgxpool.Pool
	roomRepo   *repositories.RoomRepository
	hostelRepo *repositories.HostelRepository
}

// NewHostelService creates a new hostel service.
func NewHostelService(pool *pgxpool.Pool, roomRepo *repositories.RoomRepository, hostelRepo *repositories.HostelRepository) *HostelService {
	return &HostelService{
		pool:       pool,
		roomRepo:   roomRepo,
		hostelRepo: hostelRepo,
	}
}

// AddRoom inserts a room. Capacity defaults to 1.
func (s *HostelService) AddRoom(ctx context.Context, block, roomNo string, capacity int) (int64, error) {
	if capacity <= 0 {
		capacity = 1
	}

	room := &models.Room{Block: block, RoomNo: roomNo, Capacity: capacity}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return 0, err
	}
	return room.ID, nil
}

// ListRooms returns all rooms.
func (s *HostelService) ListRooms(ctx context.Context) ([]*models.Room, error) {
	return s.roomRepo.GetAll(ctx)
}

// AllocateRoom places a student into a room if capacity allows. The capacity
// read locks the room row, so two concurrent allocators for the same room
// serialize and the loser sees the updated count.
func (s *HostelService) AllocateRoom(ctx context.Context, studentID, roomID int64, checkin time.Time) (int64, error) {
	checkin = orToday(checkin)

	var allocationID int64
	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		capacity, err := s.roomRepo.CapacityForUpdate(ctx, tx, roomID)
		if err != nil {
			return err
		}

		occupants, err := s.hostelRepo.CountActive(ctx, tx, roomID)
		if err != nil {
			return err
		}
		if occupants >= capacity {
			return apperrors.ErrRoomFull
		}

		allocationID, err = s.hostelRepo.InsertAllocation(ctx, tx, studentID, roomID, checkin)
		return err
	})
	if err != nil {
		return 0, err
	}

	metrics.HostelAllocations.Inc()
	logger.Info().Int64("studentId", studentID).Int64("roomId", roomID).Int64("allocationId", allocationID).Msg("Room allocated")
	return allocationID, nil
}

// CheckoutStudent sets the checkout date on an allocation. Calling it again
// just rewrites the date.
func (s *HostelService) CheckoutStudent(ctx context.Context, allocationID int64, checkout time.Time) error {
	return s.hostelRepo.Checkout(ctx, allocationID, orToday(checkout))
}

// RecordHostelPayment appends a payment with a generated receipt number.
func (s *HostelService) RecordHostelPayment(ctx context.Context, studentID int64, amount float64, date time.Time) (*models.HostelPayment, error) {
	if amount < 0 {
		return nil, apperrors.NewValidationError("payment amount cannot be negative")
	}

	now := time.Now()
	payment := &models.HostelPayment{
		StudentID: studentID,
		Amount:    amount,
		Date:      orToday(date),
		ReceiptNo: receiptNumber(receiptPrefixHostel, now, studentID),
	}
	if err := s.hostelRepo.InsertPayment(ctx, payment); err != nil {
		return nil, err
	}

	metrics.PaymentsRecorded.WithLabelValues("hostel").Inc()
	return payment, nil
}

// HostelPaymentsForStudent returns a student's hostel payments.
func (s *HostelService) HostelPaymentsForStudent(ctx context.Context, studentID int64) ([]models.HostelPayment, error) {
	return s.hostelRepo.PaymentsForStudent(ctx, studentID)
}

// OccupancyReport returns every room with its active occupant count.
func (s *HostelService) OccupancyReport(ctx context.Context) ([]models.RoomOccupancy, error) {
	return s.hostelRepo.OccupancyReport(ctx)
}

// VacantRoomsReport returns rooms with at least one free place.
func (s *HostelService) VacantRoomsReport(ctx context.Context) ([]models.VacantRoom, error) {
	return s.hostelRepo.VacantRooms(ctx)
}
