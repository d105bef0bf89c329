package services

import (
	"context"
	"time"

	"github.com/campuserp/campuserp/internal/app/models"
	"github.com/campuserp/campuserp/internal/app/repositories"
	"github.com/campuserp/campuserp/internal/pkg/apperrors"
	"github.com/campuserp/campuserp/internal/pkg/logger"
)

// AnnouncementService manages admin broadcasts and per-student dismissals.
type AnnouncementService struct {
	announcementRepo *repositories.AnnouncementRepository
}

// NewAnnouncementService creates a new announcement service.
func NewAnnouncementService(announcementRepo *repositories.AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{announcementRepo: announcementRepo}
}

// CreateAnnouncementInput carries the fields for a new announcement.
type CreateAnnouncementInput struct {
	Title     string
	Message   string
	StartDate *time.Time
	EndDate   *time.Time
}

// CreateAnnouncement publishes an announcement, active immediately, limited
// to the schedule window when one is given.
func (s *AnnouncementService) CreateAnnouncement(ctx context.Context, in CreateAnnouncementInput) (int64, error) {
	if in.Title == "" {
		return 0, apperrors.NewValidationError("announcement title is required")
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return 0, apperrors.NewValidationError("announcement end date precedes start date")
	}

	announcement := &models.Announcement{
		Title:     in.Title,
		Message:   in.Message,
		Created:   time.Now(),
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Active:    true,
	}
	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return 0, err
	}

	logger.Info().Int64("announcementId", announcement.ID).Str("title", announcement.Title).Msg("Announcement published")
	return announcement.ID, nil
}

// GetAnnouncement returns one announcement by id.
func (s *AnnouncementService) GetAnnouncement(ctx context.Context, id int64) (*models.Announcement, error) {
	return s.announcementRepo.GetByID(ctx, id)
}

// ListAnnouncements returns every announcement inside its schedule window,
// newest first. Pass onlyActive to filter on the active flag.
func (s *AnnouncementService) ListAnnouncements(ctx context.Context, onlyActive *bool) ([]models.Announcement, error) {
	return s.announcementRepo.List(ctx, repositories.AnnouncementFilter{OnlyActive: onlyActive})
}

// AnnouncementsForStudent returns the active announcements visible to one
// student. Dismissed announcements are dropped unless includeDismissed is
// set, in which case they come back flagged.
func (s *AnnouncementService) AnnouncementsForStudent(ctx context.Context, studentID int64, includeDismissed bool) ([]models.Announcement, error) {
	active := true
	return s.announcementRepo.List(ctx, repositories.AnnouncementFilter{
		OnlyActive:       &active,
		StudentID:        &studentID,
		IncludeDismissed: includeDismissed,
	})
}

// UpdateAnnouncement applies a partial update.
func (s *AnnouncementService) UpdateAnnouncement(ctx context.Context, id int64, upd models.AnnouncementUpdate) error {
	if upd.IsEmpty() {
		return nil
	}
	return s.announcementRepo.Update(ctx, id, upd)
}

// DeactivateAnnouncement clears the active flag without touching the schedule.
func (s *AnnouncementService) DeactivateAnnouncement(ctx context.Context, id int64) error {
	active := false
	return s.announcementRepo.Update(ctx, id, models.AnnouncementUpdate{Active: &active})
}

// DeleteAnnouncement removes an announcement together with its dismissals.
func (s *AnnouncementService) DeleteAnnouncement(ctx context.Context, id int64) error {
	return s.announcementRepo.Delete(ctx, id)
}

// DismissAnnouncement hides an announcement from one student's listing.
// Dismissing twice is a no-op beyond the extra row.
func (s *AnnouncementService) DismissAnnouncement(ctx context.Context, studentID, announcementID int64) error {
	if _, err := s.announcementRepo.GetByID(ctx, announcementID); err != nil {
		return err
	}
	_, err := s.announcementRepo.InsertDismissal(ctx, studentID, announcementID)
	return err
}
