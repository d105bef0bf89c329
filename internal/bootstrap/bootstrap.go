// Package bootstrap wires configuration, database, repositories, services,
// controllers and the router together.
package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/campuserp/campuserp/internal/app/controllers"
	appMigrations "github.com/campuserp/campuserp/internal/app/migrations"
	appRepos "github.com/campuserp/campuserp/internal/app/repositories"
	appRoutes "github.com/campuserp/campuserp/internal/app/routes"
	appServices "github.com/campuserp/campuserp/internal/app/services"
	"github.com/campuserp/campuserp/internal/config"
	"github.com/campuserp/campuserp/internal/db"
	appMiddleware "github.com/campuserp/campuserp/internal/middleware"
	"github.com/campuserp/campuserp/internal/pkg/auth"
	"github.com/campuserp/campuserp/internal/pkg/logger"
	"github.com/campuserp/campuserp/internal/seed"
	"github.com/campuserp/campuserp/migrations"
)

// Dependencies holds all the application dependencies.
type Dependencies struct {
	Repos *appRepos.Repositories

	JWTService *auth.JWTService

	AuthService         *appServices.AuthService
	StudentService      *appServices.StudentService
	ProfileService      *appServices.ProfileService
	HostelService       *appServices.HostelService
	TransportService    *appServices.TransportService
	AnnouncementService *appServices.AnnouncementService
	MessageService      *appServices.MessageService

	AuthController         *appControllers.AuthController
	StudentController      *appControllers.StudentController
	HostelController       *appControllers.HostelController
	TransportController    *appControllers.TransportController
	ReportController       *appControllers.ReportController
	AnnouncementController *appControllers.AnnouncementController
	MessageController      *appControllers.MessageController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  strings.ToLower(cfg.Logging.Level),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs the embedded
// migrations and seeds the default admin credential.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)
	if err := migrator.Migrate(context.Background(), migrations.Files); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.EnsureDefaultAdmin(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed default admin, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  cfg.AccessTokenDuration(),
		RefreshTokenExp: cfg.RefreshTokenDuration(),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.Repos.TokenRepository, deps.JWTService)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, deps.Repos.UserRepository)
	deps.ProfileService = appServices.NewProfileService(
		deps.Repos.StudentRepository,
		deps.Repos.HostelRepository,
		deps.Repos.TransportRepository,
	)
	deps.HostelService = appServices.NewHostelService(dbPool, deps.Repos.RoomRepository, deps.Repos.HostelRepository)
	deps.TransportService = appServices.NewTransportService(
		dbPool,
		deps.Repos.DriverRepository,
		deps.Repos.BusRepository,
		deps.Repos.RouteRepository,
		deps.Repos.TransportRepository,
	)
	deps.AnnouncementService = appServices.NewAnnouncementService(deps.Repos.AnnouncementRepository)
	deps.MessageService = appServices.NewMessageService(deps.Repos.MessageRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.ProfileService, lgr)
	deps.HostelController = appControllers.NewHostelController(deps.HostelService, lgr)
	deps.TransportController = appControllers.NewTransportController(deps.TransportService, lgr)
	deps.ReportController = appControllers.NewReportController(deps.HostelService, deps.TransportService, lgr)
	deps.AnnouncementController = appControllers.NewAnnouncementController(deps.AnnouncementService, lgr)
	deps.MessageController = appControllers.NewMessageController(deps.MessageService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.HostelController,
		deps.TransportController,
		deps.ReportController,
		deps.AnnouncementController,
		deps.MessageController,
		deps.AuthMiddleware,
	)

	return router
}
