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

// AuthController handles authentication related operations.
type AuthController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController.
func NewAuthController(authService *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

// Login verifies credentials and returns a token pair.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(ctx, &req) {
		return
	}

	result, err := c.authService.Login(ctx.Request.Context(), req.Username, req.Password, models.Role(req.Role))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.TokenResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
		Role:         string(result.User.Role),
		StudentID:    result.User.StudentID,
	}))
}

// Refresh exchanges a refresh token for a new token pair.
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshRequest
	if !bindJSON(ctx, &req) {
		return
	}

	result, err := c.authService.Refresh(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.TokenResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
		Role:         string(result.User.Role),
		StudentID:    result.User.StudentID,
	}))
}
