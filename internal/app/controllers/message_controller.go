package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campuserp/campuserp/internal/app/models/dto"
	"github.com/campuserp/campuserp/internal/app/services"
	"github.com/campuserp/campuserp/internal/middleware"
)

// MessageController handles contact messages and the per-student thread view.
type MessageController struct {
	messageService *services.MessageService
	logger         zerolog.Logger
}

// NewMessageController creates a new MessageController.
func NewMessageController(messageService *services.MessageService, logger zerolog.Logger) *MessageController {
	return &MessageController{messageService: messageService, logger: logger}
}

// Create records a new message from the authenticated student.
func (c *MessageController) Create(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
			WithDetails("No student record is linked to this account")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(detail))
		return
	}

	var req dto.ContactMessageRequest
	if !bindJSON(ctx, &req) {
		return
	}

	id, err := c.messageService.RecordMessage(ctx.Request.Context(), services.RecordMessageInput{
		StudentID: studentID,
		ToRole:    req.ToRole,
		ToID:      req.ToID,
		Subject:   req.Subject,
		Message:   req.Message,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.IDResponse{ID: id}))
}

// List returns the newest messages across all students. ?limit sets the cap.
func (c *MessageController) List(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "200"))

	messages, err := c.messageService.ListMessages(ctx.Request.Context(), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(messages))
}

// Get returns one message.
func (c *MessageController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	message, err := c.messageService.GetMessage(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(message))
}

// Reply attaches an admin reply to the thread of the given message.
func (c *MessageController) Reply(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ReplyRequest
	if !bindJSON(ctx, &req) {
		return
	}

	role, _ := ctx.Get(middleware.ContextRole)
	roleStr, _ := role.(string)
	userID, _ := ctx.Get(middleware.ContextUserID)
	senderID, _ := userID.(int64)

	replyID, err := c.messageService.Reply(ctx.Request.Context(), id, roleStr, senderID, req.Message)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.IDResponse{ID: replyID}))
}

// Threads returns the authenticated student's messages grouped into threads.
func (c *MessageController) Threads(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
			WithDetails("No student record is linked to this account")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(detail))
		return
	}

	threads, err := c.messageService.ThreadsForStudent(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(threads))
}

// Thread returns the full thread containing the given message, scoped to the
// authenticated student.
func (c *MessageController) Thread(ctx *gin.Context) {
	studentID, ok := middleware.StudentIDFromContext(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
			WithDetails("No student record is linked to this account")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(detail))
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	thread, err := c.messageService.Thread(ctx.Request.Context(), studentID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(thread))
}

// MarkRead marks the whole thread of the given message as read.
func (c *MessageController) MarkRead(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.messageService.MarkThreadRead(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Thread marked as read"}))
}
