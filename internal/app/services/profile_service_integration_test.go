//go:build testutil
// +build testutil

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuserp/campuserp/internal/pkg/apperrors"
)

func TestStudentProfileAggregatesDues(t *testing.T) {
	handle, repos := startDeps(t)
	ctx := context.Background()

	studentSvc := NewStudentService(repos.StudentRepository, repos.UserRepository)
	hostelSvc := NewHostelService(handle.Pool, repos.RoomRepository, repos.HostelRepository)
	transportSvc := NewTransportService(handle.Pool, repos.DriverRepository, repos.BusRepository, repos.RouteRepository, repos.TransportRepository)
	profileSvc := NewProfileService(repos.StudentRepository, repos.HostelRepository, repos.TransportRepository)

	alice := addStudent(t, studentSvc, "Alice")

	roomID, err := hostelSvc.AddRoom(ctx, "A", "101", 2)
	require.NoError(t, err)
	_, err = hostelSvc.AllocateRoom(ctx, alice, roomID, time.Time{})
	require.NoError(t, err)
	_, err = hostelSvc.RecordHostelPayment(ctx, alice, 3000, time.Time{})
	require.NoError(t, err)

	north, err := transportSvc.RegisterRoute(ctx, "North Loop", "Main Gate", nil, 1200)
	require.NoError(t, err)
	allocID, err := transportSvc.AssignStudentToRoute(ctx, alice, north)
	require.NoError(t, err)
	_, err = transportSvc.RecordTransportPayment(ctx, alice, 400, time.Time{})
	require.NoError(t, err)

	profile, err := profileSvc.GetStudentProfile(ctx, alice)
	require.NoError(t, err)

	assert.Equal(t, "Alice", profile.Student.Name)
	assert.Len(t, profile.HostelAllocations, 1)
	assert.Len(t, profile.TransportAllocations, 1)
	assert.InDelta(t, 3000, profile.TotalHostelPaid, 0.001)
	assert.InDelta(t, 400, profile.TotalTransportPaid, 0.001)
	assert.InDelta(t, 1200, profile.TotalRouteFee, 0.001)
	assert.InDelta(t, 800, profile.TotalDues, 0.001)

	// Inactive allocations keep their fee in the total.
	require.NoError(t, transportSvc.DeactivateAllocation(ctx, allocID))
	profile, err = profileSvc.GetStudentProfile(ctx, alice)
	require.NoError(t, err)
	assert.InDelta(t, 1200, profile.TotalRouteFee, 0.001)
}

func TestStudentProfileDuesFlooredAtZero(t *testing.T) {
	handle, repos := startDeps(t)
	ctx := context.Background()

	studentSvc := NewStudentService(repos.StudentRepository, repos.UserRepository)
	transportSvc := NewTransportService(handle.Pool, repos.DriverRepository, repos.BusRepository, repos.RouteRepository, repos.TransportRepository)
	profileSvc := NewProfileService(repos.StudentRepository, repos.HostelRepository, repos.TransportRepository)

	alice := addStudent(t, studentSvc, "Alice")
	route, err := transportSvc.RegisterRoute(ctx, "South Loop", "Library", nil, 300)
	require.NoError(t, err)
	_, err = transportSvc.AssignStudentToRoute(ctx, alice, route)
	require.NoError(t, err)
	_, err = transportSvc.RecordTransportPayment(ctx, alice, 1000, time.Time{})
	require.NoError(t, err)

	profile, err := profileSvc.GetStudentProfile(ctx, alice)
	require.NoError(t, err)
	assert.Zero(t, profile.TotalDues)
}

func TestStudentProfileUnknownStudent(t *testing.T) {
	_, repos := startDeps(t)

	profileSvc := NewProfileService(repos.StudentRepository, repos.HostelRepository, repos.TransportRepository)
	_, err := profileSvc.GetStudentProfile(context.Background(), 12345)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestDeleteStudentKeepsHistory(t *testing.T) {
	handle, repos := startDeps(t)
	ctx := context.Background()

	studentSvc := NewStudentService(repos.StudentRepository, repos.UserRepository)
	hostelSvc := NewHostelService(handle.Pool, repos.RoomRepository, repos.HostelRepository)

	alice := addStudent(t, studentSvc, "Alice")
	roomID, err := hostelSvc.AddRoom(ctx, "A", "101", 1)
	require.NoError(t, err)
	_, err = hostelSvc.AllocateRoom(ctx, alice, roomID, time.Time{})
	require.NoError(t, err)
	_, err = hostelSvc.RecordHostelPayment(ctx, alice, 100, time.Time{})
	require.NoError(t, err)

	require.NoError(t, studentSvc.DeleteStudent(ctx, alice))

	_, err = studentSvc.GetStudent(ctx, alice)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	// History rows survive the student.
	allocations, err := repos.HostelRepository.AllocationsForStudent(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, allocations, 1)

	payments, err := repos.HostelRepository.PaymentsForStudent(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}
