package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campuserp/campuserp/internal/app/models/dto"
	"github.com/campuserp/campuserp/internal/app/services"
	"github.com/campuserp/campuserp/internal/export"
	"github.com/campuserp/campuserp/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportController serves the hostel and transport reports, as JSON or as an
// xlsx download when ?format=xlsx is given.
type ReportController struct {
	hostelService    *services.HostelService
	transportService *services.TransportService
	logger           zerolog.Logger
}

// NewReportController creates a new ReportController.
func NewReportController(hostelService *services.HostelService, transportService *services.TransportService, logger zerolog.Logger) *ReportController {
	return &ReportController{
		hostelService:    hostelService,
		transportService: transportService,
		logger:           logger,
	}
}

func wantsXLSX(ctx *gin.Context) bool {
	return ctx.Query("format") == "xlsx"
}

func (c *ReportController) serveWorkbook(ctx *gin.Context, filename string, sheets ...export.Sheet) {
	buf, err := export.Workbook(sheets)
	if err != nil {
		c.logger.Error().Err(err).Str("report", filename).Msg("Failed to render workbook")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Occupancy reports every room with its occupant count.
func (c *ReportController) Occupancy(ctx *gin.Context) {
	rows, err := c.hostelService.OccupancyReport(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if wantsXLSX(ctx) {
		c.serveWorkbook(ctx, "occupancy.xlsx", export.OccupancySheet(rows))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rows))
}

// VacantRooms reports rooms with free places.
func (c *ReportController) VacantRooms(ctx *gin.Context) {
	rows, err := c.hostelService.VacantRoomsReport(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if wantsXLSX(ctx) {
		c.serveWorkbook(ctx, "vacant_rooms.xlsx", export.VacantRoomsSheet(rows))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rows))
}

// ActiveRoutes reports every route with its bus and rider count.
func (c *ReportController) ActiveRoutes(ctx *gin.Context) {
	rows, err := c.transportService.ActiveRoutesReport(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if wantsXLSX(ctx) {
		c.serveWorkbook(ctx, "active_routes.xlsx", export.ActiveRoutesSheet(rows))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rows))
}

// TransportFees reports every allocation with the student's total paid.
func (c *ReportController) TransportFees(ctx *gin.Context) {
	rows, err := c.transportService.TransportFeeReport(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if wantsXLSX(ctx) {
		c.serveWorkbook(ctx, "transport_fees.xlsx", export.TransportFeesSheet(rows))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rows))
}
