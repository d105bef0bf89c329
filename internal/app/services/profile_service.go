package services

import (
	"context"

	"github.com/campuserp/campuserp/internal/app/models"
	"github.com/campuserp/campuserp/internal/app/repositories"
)

// ProfileService assembles the composite per-student view.
type ProfileService struct {
	studentRepo   *repositories.StudentRepository
	hostelRepo    *repositories.HostelRepository
	transportRepo *repositories.TransportRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(
	studentRepo *repositories.StudentRepository,
	hostelRepo *repositories.HostelRepository,
	transportRepo *repositories.TransportRepository,
) *ProfileService {
	return &ProfileService{
		studentRepo:   studentRepo,
		hostelRepo:    hostelRepo,
		transportRepo: transportRepo,
	}
}

// GetStudentProfile returns the student record together with every hostel and
// transport allocation, the payment histories and the derived fee totals.
func (s *ProfileService) GetStudentProfile(ctx context.Context, studentID int64) (*models.StudentProfile, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	hostelAllocations, err := s.hostelRepo.AllocationsForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	transportAllocations, err := s.transportRepo.AllocationsForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	hostelPayments, err := s.hostelRepo.PaymentsForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	transportPayments, err := s.transportRepo.PaymentsForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	transportPaid, err := s.transportRepo.SumPaymentsForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	profile := &models.StudentProfile{
		Student:              student,
		HostelAllocations:    hostelAllocations,
		TransportAllocations: transportAllocations,
		HostelPayments:       hostelPayments,
		TransportPayments:    transportPayments,
		TotalTransportPaid:   transportPaid,
	}
	for _, p := range hostelPayments {
		profile.TotalHostelPaid += p.Amount
	}
	// Inactive allocations keep contributing to the fee total; dues only
	// shrink through payments, never by leaving a route.
	for _, a := range transportAllocations {
		profile.TotalRouteFee += a.Fee
	}
	profile.TotalDues = profile.TotalRouteFee - profile.TotalTransportPaid
	if profile.TotalDues < 0 {
		profile.TotalDues = 0
	}

	return profile, nil
}
