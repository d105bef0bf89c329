package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campuserp/campuserp/internal/app/models/dto"
	"github.com/campuserp/campuserp/internal/app/services"
	"github.com/campuserp/campuserp/internal/middleware"
)

// HostelController handles rooms, allocations and hostel payments.
type HostelController struct {
	hostelService *services.HostelService
	logger        zerolog.Logger
}

// NewHostelController creates a new HostelController.
func NewHostelController(hostelService *services.HostelService, logger zerolog.Logger) *HostelController {
	return &HostelController{hostelService: hostelService, logger: logger}
}

// CreateRoom registers a hostel room.
func (c *HostelController) CreateRoom(ctx *gin.Context) {
	var req dto.CreateRoomRequest
	if !bindJSON(ctx, &req) {
		return
	}

	id, err := c.hostelService.AddRoom(ctx.Request.Context(), req.Block, req.RoomNo, req.Capacity)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.IDResponse{ID: id}))
}

// ListRooms returns all rooms.
func (c *HostelController) ListRooms(ctx *gin.Context) {
	rooms, err := c.hostelService.ListRooms(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rooms))
}

// Allocate places a student into a room, capacity permitting.
func (c *HostelController) Allocate(ctx *gin.Context) {
	var req dto.AllocateRoomRequest
	if !bindJSON(ctx, &req) {
		return
	}
	checkin, ok := parseDate(ctx, req.CheckinDate)
	if !ok {
		return
	}

	id, err := c.hostelService.AllocateRoom(ctx.Request.Context(), req.StudentID, req.RoomID, checkin)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.IDResponse{ID: id}))
}

// Checkout ends an allocation.
func (c *HostelController) Checkout(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CheckoutRequest
	if !bindJSON(ctx, &req) {
		return
	}
	checkout, ok := parseDate(ctx, req.CheckoutDate)
	if !ok {
		return
	}

	if err := c.hostelService.CheckoutStudent(ctx.Request.Context(), id, checkout); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Student checked out"}))
}

// RecordPayment stores a hostel payment and returns it with its receipt.
func (c *HostelController) RecordPayment(ctx *gin.Context) {
	var req dto.PaymentRequest
	if !bindJSON(ctx, &req) {
		return
	}
	date, ok := parseDate(ctx, req.Date)
	if !ok {
		return
	}

	payment, err := c.hostelService.RecordHostelPayment(ctx.Request.Context(), req.StudentID, req.Amount, date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(payment))
}

// ListPayments returns a student's hostel payment history.
func (c *HostelController) ListPayments(ctx *gin.Context) {
	studentID, ok := pathID(ctx, "studentId")
	if !ok {
		return
	}

	payments, err := c.hostelService.HostelPaymentsForStudent(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(payments))
}
