// Package controllers handles HTTP request handling.
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campuserp/campuserp/internal/app/models/dto"
)

const dateLayout = "2006-01-02"

// pathID parses the named path parameter as an int64 id. On failure it writes
// the 400 response and reports false.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid id").
			WithDetails("Path parameter '" + name + "' must be a positive integer")
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return 0, false
	}
	return id, true
}

// parseDate parses an optional YYYY-MM-DD value; empty means the zero time.
// On failure it writes the 400 response and reports false.
func parseDate(c *gin.Context, value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid date").
			WithDetails("Dates must use the YYYY-MM-DD format")
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return time.Time{}, false
	}
	return t, true
}

// bindJSON binds the request body. On failure it writes the 400 response and
// reports false.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").
			WithDetails(err.Error())
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return false
	}
	return true
}
