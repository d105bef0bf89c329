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

// TransportService handles the driver/bus/route registry, duplicate-checked
// route assignment, transport payments and attendance.
type TransportService struct {
	pool          *pgxpool.Pool
	driverRepo    *repositories.DriverRepository
	busRepo       *repositories.BusRepository
	routeRepo     *repositories.RouteRepository
	transportRepo *repositories.TransportRepository
}

// NewTransportService creates a new transport service.
func NewTransportService(
	pool *pgxpool.Pool,
	driverRepo *repositories.DriverRepository,
	busRepo *repositories.BusRepository,
	routeRepo *repositories.RouteRepository,
	transportRepo *repositories.TransportRepository,
) *TransportService {
	return &TransportService{
		pool:          pool,
		driverRepo:    driverRepo,
		busRepo:       busRepo,
		routeRepo:     routeRepo,
		transportRepo: transportRepo,
	}
}

// RegisterDriver inserts a driver. A non-empty license number must be unique.
func (s *TransportService) RegisterDriver(ctx context.Context, name, licenseNo, contact string) (int64, error) {
	driver := &models.Driver{
		Name:      name,
		LicenseNo: optional(licenseNo),
		Contact:   optional(contact),
	}
	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return 0, err
	}
	return driver.ID, nil
}

// ListDrivers returns all drivers.
func (s *TransportService) ListDrivers(ctx context.Context) ([]*models.Driver, error) {
	return s.driverRepo.GetAll(ctx)
}

// UpdateDriver applies a partial update; license uniqueness is enforced by
// the store.
func (s *TransportService) UpdateDriver(ctx context.Context, id int64, upd models.DriverUpdate) error {
	if upd.IsEmpty() {
		return nil
	}
	return s.driverRepo.Update(ctx, id, upd)
}

// DeleteDriver unsets the driver from its buses and removes it.
func (s *TransportService) DeleteDriver(ctx context.Context, id int64) error {
	return s.driverRepo.Delete(ctx, id)
}

// RegisterBus inserts a bus. Capacity defaults to 20.
func (s *TransportService) RegisterBus(ctx context.Context, registration string, capacity int, driverID *int64) (int64, error) {
	if capacity <= 0 {
		capacity = 20
	}

	bus := &models.Bus{Registration: registration, Capacity: capacity, DriverID: driverID}
	if err := s.busRepo.Create(ctx, bus); err != nil {
		return 0, err
	}
	return bus.ID, nil
}

// ListBuses returns all buses with driver details.
func (s *TransportService) ListBuses(ctx context.Context) ([]*models.Bus, error) {
	return s.busRepo.GetAll(ctx)
}

// UpdateBus applies a partial update.
func (s *TransportService) UpdateBus(ctx context.Context, id int64, upd models.BusUpdate) error {
	if upd.IsEmpty() {
		return nil
	}
	return s.busRepo.Update(ctx, id, upd)
}

// DeleteBus unsets the bus from its routes and removes it.
func (s *TransportService) DeleteBus(ctx context.Context, id int64) error {
	return s.busRepo.Delete(ctx, id)
}

// RegisterRoute inserts a route.
func (s *TransportService) RegisterRoute(ctx context.Context, name, pickupLocation string, busID *int64, fee float64) (int64, error) {
	if fee < 0 {
		return 0, apperrors.NewValidationError("route fee cannot be negative")
	}

	route := &models.Route{Name: name, PickupLocation: pickupLocation, BusID: busID, Fee: fee}
	if err := s.routeRepo.Create(ctx, route); err != nil {
		return 0, err
	}
	return route.ID, nil
}

// ListRoutes returns all routes.
func (s *TransportService) ListRoutes(ctx context.Context) ([]*models.Route, error) {
	return s.routeRepo.GetAll(ctx)
}

// UpdateRoute applies a partial update.
func (s *TransportService) UpdateRoute(ctx context.Context, id int64, upd models.RouteUpdate) error {
	if upd.IsEmpty() {
		return nil
	}
	return s.routeRepo.Update(ctx, id, upd)
}

// AssignStudentToRoute creates an active allocation unless one already exists
// for this exact (student, route) pair. A student may hold active allocations
// on different routes at the same time. The check and insert share a
// transaction; the partial unique index catches whatever slips between them.
func (s *TransportService) AssignStudentToRoute(ctx context.Context, studentID, routeID int64) (int64, error) {
	var allocationID int64
	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := s.routeRepo.GetByID(ctx, tx, routeID); err != nil {
			return err
		}

		active, err := s.transportRepo.HasActiveAllocation(ctx, tx, studentID, routeID)
		if err != nil {
			return err
		}
		if active {
			return apperrors.ErrAlreadyAssigned
		}

		allocationID, err = s.transportRepo.InsertAllocation(ctx, tx, studentID, routeID)
		return err
	})
	if err != nil {
		return 0, err
	}

	metrics.RouteAssignments.Inc()
	logger.Info().Int64("studentId", studentID).Int64("routeId", routeID).Int64("allocationId", allocationID).Msg("Student assigned to route")
	return allocationID, nil
}

// DeactivateAllocation clears the active flag; the student can be assigned
// to the route again afterwards with a fresh row.
func (s *TransportService) DeactivateAllocation(ctx context.Context, allocationID int64) error {
	return s.transportRepo.Deactivate(ctx, allocationID)
}

// RecordTransportPayment appends a payment with a generated receipt number.
func (s *TransportService) RecordTransportPayment(ctx context.Context, studentID int64, amount float64, date time.Time) (*models.TransportPayment, error) {
	if amount < 0 {
		return nil, apperrors.NewValidationError("payment amount cannot be negative")
	}

	now := time.Now()
	payment := &models.TransportPayment{
		StudentID: studentID,
		Amount:    amount,
		Date:      orToday(date),
		ReceiptNo: receiptNumber(receiptPrefixTransport, now, studentID),
	}
	if err := s.transportRepo.InsertPayment(ctx, payment); err != nil {
		return nil, err
	}

	metrics.PaymentsRecorded.WithLabelValues("transport").Inc()
	return payment, nil
}

// MarkBusAttendance appends an attendance record.
func (s *TransportService) MarkBusAttendance(ctx context.Context, studentID, routeID int64, date time.Time, present bool) (int64, error) {
	attendance := &models.BusAttendance{
		StudentID: studentID,
		RouteID:   routeID,
		Date:      orToday(date),
		Present:   present,
	}
	if err := s.transportRepo.InsertAttendance(ctx, attendance); err != nil {
		return 0, err
	}
	return attendance.ID, nil
}

// ActiveRoutesReport returns every route with bus registration and active
// rider count.
func (s *TransportService) ActiveRoutesReport(ctx context.Context) ([]models.ActiveRoute, error) {
	return s.transportRepo.ActiveRoutesReport(ctx)
}

// TransportFeeReport returns one row per allocation with the student's total
// transport payments as the paid column.
func (s *TransportService) TransportFeeReport(ctx context.Context) ([]models.TransportFeeRow, error) {
	return s.transportRepo.FeeReport(ctx)
}
