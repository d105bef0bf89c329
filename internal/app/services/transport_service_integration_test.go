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

func TestAssignStudentToRouteRejectsDuplicates(t *testing.T) {
	handle, repos := startDeps(t)
	ctx := context.Background()

	studentSvc := NewStudentService(repos.StudentRepository, repos.UserRepository)
	transportSvc := NewTransportService(handle.Pool, repos.DriverRepository, repos.BusRepository, repos.RouteRepository, repos.TransportRepository)

	alice := addStudent(t, studentSvc, "Alice")

	north, err := transportSvc.RegisterRoute(ctx, "North Loop", "Main Gate", nil, 1200)
	require.NoError(t, err)
	south, err := transportSvc.RegisterRoute(ctx, "South Loop", "Library", nil, 900)
	require.NoError(t, err)

	_, err = transportSvc.AssignStudentToRoute(ctx, alice, north)
	require.NoError(t, err)

	// Same route again while active.
	_, err = transportSvc.AssignStudentToRoute(ctx, alice, north)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyAssigned)

	// A different route is fine.
	_, err = transportSvc.AssignStudentToRoute(ctx, alice, south)
	assert.NoError(t, err)
}

func TestAssignAfterDeactivateSucceeds(t *testing.T) {
	handle, repos := startDeps(t)
	ctx := context.Background()

	studentSvc := NewStudentService(repos.StudentRepository, repos.UserRepository)
	transportSvc := NewTransportService(handle.Pool, repos.DriverRepository, repos.BusRepository, repos.RouteRepository, repos.TransportRepository)

	alice := addStudent(t, studentSvc, "Alice")
	route, err := transportSvc.RegisterRoute(ctx, "East Loop", "Hostel Gate", nil, 800)
	require.NoError(t, err)

	allocID, err := transportSvc.AssignStudentToRoute(ctx, alice, route)
	require.NoError(t, err)

	require.NoError(t, transportSvc.DeactivateAllocation(ctx, allocID))

	_, err = transportSvc.AssignStudentToRoute(ctx, alice, route)
	assert.NoError(t, err)
}

func TestAssignStudentToRouteUnknownRoute(t *testing.T) {
	handle, repos := startDeps(t)
	ctx := context.Background()

	studentSvc := NewStudentService(repos.StudentRepository, repos.UserRepository)
	transportSvc := NewTransportService(handle.Pool, repos.DriverRepository, repos.BusRepository, repos.RouteRepository, repos.TransportRepository)

	alice := addStudent(t, studentSvc, "Alice")

	_, err := transportSvc.AssignStudentToRoute(ctx, alice, 4242)
	assert.ErrorIs(t, err, apperrors.ErrRouteNotFound)
}

func TestTransportFeeReportUsesStudentTotals(t *testing.T) {
	handle, repos := startDeps(t)
	ctx := context.Background()

	studentSvc := NewStudentService(repos.StudentRepository, repos.UserRepository)
	transportSvc := NewTransportService(handle.Pool, repos.DriverRepository, repos.BusRepository, repos.RouteRepository, repos.TransportRepository)

	alice := addStudent(t, studentSvc, "Alice")

	north, err := transportSvc.RegisterRoute(ctx, "North Loop", "Main Gate", nil, 1200)
	require.NoError(t, err)
	south, err := transportSvc.RegisterRoute(ctx, "South Loop", "Library", nil, 900)
	require.NoError(t, err)

	_, err = transportSvc.AssignStudentToRoute(ctx, alice, north)
	require.NoError(t, err)
	_, err = transportSvc.AssignStudentToRoute(ctx, alice, south)
	require.NoError(t, err)

	p, err := transportSvc.RecordTransportPayment(ctx, alice, 500, time.Time{})
	require.NoError(t, err)
	assert.Contains(t, p.ReceiptNo, "T-")

	rows, err := transportSvc.TransportFeeReport(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Paid is the student's total transport payments on every row, not the
	// amount attributable to that row's route.
	for _, row := range rows {
		assert.InDelta(t, 500, row.Paid, 0.001)
	}
}

func TestDriverLicenseUniqueness(t *testing.T) {
	handle, repos := startDeps(t)
	ctx := context.Background()

	transportSvc := NewTransportService(handle.Pool, repos.DriverRepository, repos.BusRepository, repos.RouteRepository, repos.TransportRepository)

	_, err := transportSvc.RegisterDriver(ctx, "Ravi", "DL-998877", "555-0101")
	require.NoError(t, err)

	_, err = transportSvc.RegisterDriver(ctx, "Suresh", "DL-998877", "555-0102")
	assert.ErrorIs(t, err, apperrors.ErrLicenseExists)
}
