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

// TransportController handles drivers, buses, routes, assignments, transport
// payments and bus attendance.
type TransportController struct {
	transportService *services.TransportService
	logger           zerolog.Logger
}

// NewTransportController creates a new TransportController.
func NewTransportController(transportService *services.TransportService, logger zerolog.Logger) *TransportController {
	return &TransportController{transportService: transportService, logger: logger}
}

// CreateDriver registers a driver.
func (c *TransportController) CreateDriver(ctx *gin.Context) {
	var req dto.RegisterDriverRequest
	if !bindJSON(ctx, &req) {
		return
	}

	id, err := c.transportService.RegisterDriver(ctx.Request.Context(), req.Name, req.LicenseNo, req.Contact)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.IDResponse{ID: id}))
}

// ListDrivers returns all drivers.
func (c *TransportController) ListDrivers(ctx *gin.Context) {
	drivers, err := c.transportService.ListDrivers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(drivers))
}

// UpdateDriver applies a partial driver update.
func (c *TransportController) UpdateDriver(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var upd models.DriverUpdate
	if !bindJSON(ctx, &upd) {
		return
	}

	if err := c.transportService.UpdateDriver(ctx.Request.Context(), id, upd); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Driver updated"}))
}

// DeleteDriver removes a driver; its buses lose their driver link.
func (c *TransportController) DeleteDriver(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.transportService.DeleteDriver(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Driver deleted"}))
}

// CreateBus registers a bus.
func (c *TransportController) CreateBus(ctx *gin.Context) {
	var req dto.RegisterBusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	id, err := c.transportService.RegisterBus(ctx.Request.Context(), req.Registration, req.Capacity, req.DriverID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.IDResponse{ID: id}))
}

// ListBuses returns all buses with driver details.
func (c *TransportController) ListBuses(ctx *gin.Context) {
	buses, err := c.transportService.ListBuses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(buses))
}

// UpdateBus applies a partial bus update.
func (c *TransportController) UpdateBus(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var upd models.BusUpdate
	if !bindJSON(ctx, &upd) {
		return
	}

	if err := c.transportService.UpdateBus(ctx.Request.Context(), id, upd); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Bus updated"}))
}

// DeleteBus removes a bus; its routes lose their bus link.
func (c *TransportController) DeleteBus(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.transportService.DeleteBus(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Bus deleted"}))
}

// CreateRoute registers a route.
func (c *TransportController) CreateRoute(ctx *gin.Context) {
	var req dto.RegisterRouteRequest
	if !bindJSON(ctx, &req) {
		return
	}

	id, err := c.transportService.RegisterRoute(ctx.Request.Context(), req.Name, req.PickupLocation, req.BusID, req.Fee)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.IDResponse{ID: id}))
}

// ListRoutes returns all routes.
func (c *TransportController) ListRoutes(ctx *gin.Context) {
	routes, err := c.transportService.ListRoutes(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(routes))
}

// UpdateRoute applies a partial route update.
func (c *TransportController) UpdateRoute(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var upd models.RouteUpdate
	if !bindJSON(ctx, &upd) {
		return
	}

	if err := c.transportService.UpdateRoute(ctx.Request.Context(), id, upd); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Route updated"}))
}

// Assign puts a student on a route unless an identical active assignment
// exists.
func (c *TransportController) Assign(ctx *gin.Context) {
	var req dto.AssignRouteRequest
	if !bindJSON(ctx, &req) {
		return
	}

	id, err := c.transportService.AssignStudentToRoute(ctx.Request.Context(), req.StudentID, req.RouteID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.IDResponse{ID: id}))
}

// Deactivate clears the active flag on an allocation.
func (c *TransportController) Deactivate(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.transportService.DeactivateAllocation(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Allocation deactivated"}))
}

// RecordPayment stores a transport payment and returns it with its receipt.
func (c *TransportController) RecordPayment(ctx *gin.Context) {
	var req dto.PaymentRequest
	if !bindJSON(ctx, &req) {
		return
	}
	date, ok := parseDate(ctx, req.Date)
	if !ok {
		return
	}

	payment, err := c.transportService.RecordTransportPayment(ctx.Request.Context(), req.StudentID, req.Amount, date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(payment))
}

// MarkAttendance stores a bus attendance record. Present defaults to true.
func (c *TransportController) MarkAttendance(ctx *gin.Context) {
	var req dto.AttendanceRequest
	if !bindJSON(ctx, &req) {
		return
	}
	date, ok := parseDate(ctx, req.Date)
	if !ok {
		return
	}

	present := true
	if req.Present != nil {
		present = *req.Present
	}

	id, err := c.transportService.MarkBusAttendance(ctx.Request.Context(), req.StudentID, req.RouteID, date, present)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.IDResponse{ID: id}))
}
