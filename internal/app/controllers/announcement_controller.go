package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campuserp/campuserp/internal/app/models"
	"github.com/campuserp/campuserp/internal/app/models/dto"
	"github.com/campuserp/campuserp/internal/app/services"
	"github.com/campuserp/campuserp/internal/middleware"
)

// AnnouncementController handles admin broadcasts and student dismissals.
type AnnouncementController struct {
	announcementService *services.AnnouncementService
	logger              zerolog.Logger
}

// NewAnnouncementController creates a new AnnouncementController.
func NewAnnouncementController(announcementService *services.AnnouncementService, logger zerolog.Logger) *AnnouncementController {
	return &AnnouncementController{announcementService: announcementService, logger: logger}
}

func optionalDate(c *gin.Context, value string) (*time.Time, bool) {
	t, ok := parseDate(c, value)
	if !ok {
		return nil, false
	}
	if t.IsZero() {
		return nil, true
	}
	return &t, true
}

// Create publishes a new announcement.
func (c *AnnouncementController) Create(ctx *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if !bindJSON(ctx, &req) {
		return
	}
	start, ok := optionalDate(ctx, req.StartDate)
	if !ok {
		return
	}
	end, ok := optionalDate(ctx, req.EndDate)
	if !ok {
		return
	}

	id, err := c.announcementService.CreateAnnouncement(ctx.Request.Context(), services.CreateAnnouncementInput{
		Title:     req.Title,
		Message:   req.Message,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.IDResponse{ID: id}))
}

// List returns announcements inside their schedule window. ?active=true or
// ?active=false filters on the active flag.
func (c *AnnouncementController) List(ctx *gin.Context) {
	var onlyActive *bool
	switch ctx.Query("active") {
	case "true":
		v := true
		onlyActive = &v
	case "false":
		v := false
		onlyActive = &v
	}

	announcements, err := c.announcementService.ListAnnouncements(ctx.Request.Context(), onlyActive)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(announcements))
}

// Get returns one announcement.
func (c *AnnouncementController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	announcement, err := c.announcementService.GetAnnouncement(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(announcement))
}

// ForStudent returns the announcements visible to the authenticated student.
// ?includeDismissed=true keeps dismissed ones, flagged.
func (c *AnnouncementController) ForStudent(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
			WithDetails("No student record is linked to this account")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(detail))
		return
	}

	includeDismissed := ctx.Query("includeDismissed") == "true"
	announcements, err := c.announcementService.AnnouncementsForStudent(ctx.Request.Context(), studentID, includeDismissed)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(announcements))
}

// Update applies a partial announcement update.
func (c *AnnouncementController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var upd models.AnnouncementUpdate
	if !bindJSON(ctx, &upd) {
		return
	}

	if err := c.announcementService.UpdateAnnouncement(ctx.Request.Context(), id, upd); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Announcement updated"}))
}

// Deactivate clears the active flag on an announcement.
func (c *AnnouncementController) Deactivate(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.announcementService.DeactivateAnnouncement(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Announcement deactivated"}))
}

// Delete removes an announcement and its dismissals.
func (c *AnnouncementController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.announcementService.DeleteAnnouncement(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Announcement deleted"}))
}

// Dismiss hides an announcement from the authenticated student's listing.
func (c *AnnouncementController) Dismiss(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
			WithDetails("No student record is linked to this account")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(detail))
		return
	}

	var req dto.DismissRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.announcementService.DismissAnnouncement(ctx.Request.Context(), studentID, req.AnnouncementID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Announcement dismissed"}))
}
