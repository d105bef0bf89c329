package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campuserp/campuserp/internal/app/models"
	"github.com/campuserp/campuserp/internal/app/models/dto"
	"github.com/campuserp/campuserp/internal/app/services"
	"github.com/campuserp/campuserp/internal/middleware"
)

// StudentController handles student records and the composite profile view.
type StudentController struct {
	studentService *services.StudentService
	profileService *services.ProfileService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController.
func NewStudentController(studentService *services.StudentService, profileService *services.ProfileService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		profileService: profileService,
		logger:         logger,
	}
}

// Create registers a new student, optionally with a login credential.
func (c *StudentController) Create(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	id, err := c.studentService.AddStudent(ctx.Request.Context(), services.AddStudentInput{
		Name:       req.Name,
		RollNo:     req.RollNo,
		Department: req.Department,
		Contact:    req.Contact,
		Address:    req.Address,
		Username:   req.Username,
		Password:   req.Password,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.IDResponse{ID: id}))
}

// Get returns a single student by id.
func (c *StudentController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}

// List returns all students.
func (c *StudentController) List(ctx *gin.Context) {
	students, err := c.studentService.ListStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}

// Update applies a partial student update.
func (c *StudentController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var upd models.StudentUpdate
	if !bindJSON(ctx, &upd) {
		return
	}

	if err := c.studentService.UpdateStudent(ctx.Request.Context(), id, upd); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Student updated"}))
}

// Delete removes the student and its credential. Allocation and payment
// history stays behind.
func (c *StudentController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("studentId", id).Msg("Student deleted")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Student deleted"}))
}

// Profile returns the composite view with allocations, payments and dues.
func (c *StudentController) Profile(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	profile, err := c.profileService.GetStudentProfile(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// OwnProfile returns the profile of the authenticated student.
func (c *StudentController) OwnProfile(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
			WithDetails("No student record is linked to this account")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(detail))
		return
	}

	profile, err := c.profileService.GetStudentProfile(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}
