package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuserp/campuserp/internal/app/controllers"
	"github.com/campuserp/campuserp/internal/app/models"
	"github.com/campuserp/campuserp/internal/metrics"
	"github.com/campuserp/campuserp/internal/middleware"
)

// SetupRouter configures all application routes.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	hostelController *controllers.HostelController,
	transportController *controllers.TransportController,
	reportController *controllers.ReportController,
	announcementController *controllers.AnnouncementController,
	messageController *controllers.MessageController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	adminOnly := authMiddleware.RoleRequired(models.RoleAdmin)
	studentOnly := authMiddleware.RoleRequired(models.RoleStudent)

	students := authenticated.Group("/students")
	{
		students.GET("", adminOnly, studentController.List)
		students.POST("", adminOnly, studentController.Create)
		students.GET("/:id", adminOnly, studentController.Get)
		students.PUT("/:id", adminOnly, studentController.Update)
		students.DELETE("/:id", adminOnly, studentController.Delete)
		students.GET("/:id/profile", adminOnly, studentController.Profile)
	}

	// Students see their own data through /me.
	me := authenticated.Group("/me", studentOnly)
	{
		me.GET("/profile", studentController.OwnProfile)
		me.GET("/announcements", announcementController.ForStudent)
		me.POST("/announcements/dismiss", announcementController.Dismiss)
		me.GET("/messages", messageController.Threads)
		me.POST("/messages", messageController.Create)
		me.GET("/messages/:id/thread", messageController.Thread)
	}

	hostel := authenticated.Group("/hostel", adminOnly)
	{
		hostel.GET("/rooms", hostelController.ListRooms)
		hostel.POST("/rooms", hostelController.CreateRoom)
		hostel.POST("/allocations", hostelController.Allocate)
		hostel.POST("/allocations/:id/checkout", hostelController.Checkout)
		hostel.POST("/payments", hostelController.RecordPayment)
		hostel.GET("/payments/:studentId", hostelController.ListPayments)
	}

	transport := authenticated.Group("/transport", adminOnly)
	{
		transport.GET("/drivers", transportController.ListDrivers)
		transport.POST("/drivers", transportController.CreateDriver)
		transport.PUT("/drivers/:id", transportController.UpdateDriver)
		transport.DELETE("/drivers/:id", transportController.DeleteDriver)

		transport.GET("/buses", transportController.ListBuses)
		transport.POST("/buses", transportController.CreateBus)
		transport.PUT("/buses/:id", transportController.UpdateBus)
		transport.DELETE("/buses/:id", transportController.DeleteBus)

		transport.GET("/routes", transportController.ListRoutes)
		transport.POST("/routes", transportController.CreateRoute)
		transport.PUT("/routes/:id", transportController.UpdateRoute)

		transport.POST("/allocations", transportController.Assign)
		transport.POST("/allocations/:id/deactivate", transportController.Deactivate)
		transport.POST("/payments", transportController.RecordPayment)
		transport.POST("/attendance", transportController.MarkAttendance)
	}

	reports := authenticated.Group("/reports", adminOnly)
	{
		reports.GET("/occupancy", reportController.Occupancy)
		reports.GET("/vacant-rooms", reportController.VacantRooms)
		reports.GET("/active-routes", reportController.ActiveRoutes)
		reports.GET("/transport-fees", reportController.TransportFees)
	}

	announcements := authenticated.Group("/announcements")
	{
		announcements.GET("", announcementController.List)
		announcements.GET("/:id", announcementController.Get)
		announcements.POST("", adminOnly, announcementController.Create)
		announcements.PUT("/:id", adminOnly, announcementController.Update)
		announcements.POST("/:id/deactivate", adminOnly, announcementController.Deactivate)
		announcements.DELETE("/:id", adminOnly, announcementController.Delete)
	}

	messages := authenticated.Group("/messages", adminOnly)
	{
		messages.GET("", messageController.List)
		messages.GET("/:id", messageController.Get)
		messages.POST("/:id/reply", messageController.Reply)
		messages.POST("/:id/read", messageController.MarkRead)
	}
}
