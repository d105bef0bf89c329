//go:build testutil
// +build testutil

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuserp/campuserp/internal/app/models"
	"github.com/campuserp/campuserp/internal/app/repositories"
	"github.com/campuserp/campuserp/internal/pkg/apperrors"
	"github.com/campuserp/campuserp/internal/testutil/testdb"
)

func startDeps(t *testing.T) (*testdb.DBHandle, *repositories.Repositories) {
	t.Helper()
	handle, err := testdb.Start(context.Background())
	require.NoError(t, err)
	t.Cleanup(handle.Close)
	return handle, repositories.NewRepositories(handle.Pool)
}

func addStudent(t *testing.T, svc *StudentService, name string) int64 {
	t.Helper()
	id, err := svc.AddStudent(context.Background(), AddStudentInput{Name: name})
	require.NoError(t, err)
	return id
}

func TestAllocateRoomEnforcesCapacity(t *testing.T) {
	handle, repos := startDeps(t)
	ctx := context.Background()

	studentSvc := NewStudentService(repos.StudentRepository, repos.UserRepository)
	hostelSvc := NewHostelService(handle.Pool, repos.RoomRepository, repos.HostelRepository)

	alice := addStudent(t, studentSvc, "Alice")
	bob := addStudent(t, studentSvc, "Bob")
	charlie := addStudent(t, studentSvc, "Charlie")

	roomID, err := hostelSvc.AddRoom(ctx, "A", "101", 2)
	require.NoError(t, err)

	_, err = hostelSvc.AllocateRoom(ctx, alice, roomID, time.Time{})
	require.NoError(t, err)
	_, err = hostelSvc.AllocateRoom(ctx, bob, roomID, time.Time{})
	require.NoError(t, err)

	_, err = hostelSvc.AllocateRoom(ctx, charlie, roomID, time.Time{})
	assert.ErrorIs(t, err, apperrors.ErrRoomFull)

	occupancy, err := hostelSvc.OccupancyReport(ctx)
	require.NoError(t, err)
	require.Len(t, occupancy, 1)
	assert.Equal(t, 2, occupancy[0].Occupants)

	vacant, err := hostelSvc.VacantRoomsReport(ctx)
	require.NoError(t, err)
	assert.Empty(t, vacant)
}

func TestCheckoutFreesThePlace(t *testing.T) {
	handle, repos := startDeps(t)
	ctx := context.Background()

	studentSvc := NewStudentService(repos.StudentRepository, repos.UserRepository)
	hostelSvc := NewHostelService(handle.Pool, repos.RoomRepository, repos.HostelRepository)

	alice := addStudent(t, studentSvc, "Alice")
	bob := addStudent(t, studentSvc, "Bob")

	roomID, err := hostelSvc.AddRoom(ctx, "B", "7", 1)
	require.NoError(t, err)

	allocID, err := hostelSvc.AllocateRoom(ctx, alice, roomID, time.Time{})
	require.NoError(t, err)

	_, err = hostelSvc.AllocateRoom(ctx, bob, roomID, time.Time{})
	require.ErrorIs(t, err, apperrors.ErrRoomFull)

	require.NoError(t, hostelSvc.CheckoutStudent(ctx, allocID, time.Time{}))

	_, err = hostelSvc.AllocateRoom(ctx, bob, roomID, time.Time{})
	assert.NoError(t, err)
}

func TestAllocateRoomUnknownRoom(t *testing.T) {
	handle, repos := startDeps(t)
	ctx := context.Background()

	studentSvc := NewStudentService(repos.StudentRepository, repos.UserRepository)
	hostelSvc := NewHostelService(handle.Pool, repos.RoomRepository, repos.HostelRepository)

	alice := addStudent(t, studentSvc, "Alice")

	_, err := hostelSvc.AllocateRoom(ctx, alice, 9999, time.Time{})
	assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)
}

func TestHostelPaymentsSumAndReceipts(t *testing.T) {
	handle, repos := startDeps(t)
	ctx := context.Background()

	studentSvc := NewStudentService(repos.StudentRepository, repos.UserRepository)
	hostelSvc := NewHostelService(handle.Pool, repos.RoomRepository, repos.HostelRepository)

	alice := addStudent(t, studentSvc, "Alice")

	p1, err := hostelSvc.RecordHostelPayment(ctx, alice, 1500, time.Time{})
	require.NoError(t, err)
	assert.Contains(t, p1.ReceiptNo, "H-")

	_, err = hostelSvc.RecordHostelPayment(ctx, alice, 500.50, time.Time{})
	require.NoError(t, err)

	_, err = hostelSvc.RecordHostelPayment(ctx, alice, -5, time.Time{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	payments, err := hostelSvc.HostelPaymentsForStudent(ctx, alice)
	require.NoError(t, err)
	require.Len(t, payments, 2)

	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	assert.InDelta(t, 2000.50, total, 0.001)
}

func TestCheckConstraintsMapToConstraintError(t *testing.T) {
	_, repos := startDeps(t)
	ctx := context.Background()

	studentSvc := NewStudentService(repos.StudentRepository, repos.UserRepository)
	alice := addStudent(t, studentSvc, "Alice")

	// The schema backstops the service-level validation.
	err := repos.HostelRepository.InsertPayment(ctx, &models.HostelPayment{
		StudentID: alice,
		Amount:    -5,
		Date:      time.Now(),
		ReceiptNo: "H-0-0",
	})
	assert.ErrorIs(t, err, apperrors.ErrConstraint)

	err = repos.TransportRepository.InsertPayment(ctx, &models.TransportPayment{
		StudentID: alice,
		Amount:    -5,
		Date:      time.Now(),
		ReceiptNo: "T-0-0",
	})
	assert.ErrorIs(t, err, apperrors.ErrConstraint)

	err = repos.RoomRepository.Create(ctx, &models.Room{Block: "A", RoomNo: "101", Capacity: 0})
	assert.ErrorIs(t, err, apperrors.ErrConstraint)
}
