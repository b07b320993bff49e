package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/mathplan/internal/app/controllers"
	appMigrations "github.com/yigit/mathplan/internal/app/migrations"
	"github.com/yigit/mathplan/internal/app/models"
	appRepos "github.com/yigit/mathplan/internal/app/repositories"
	appRoutes "github.com/yigit/mathplan/internal/app/routes"
	appServices "github.com/yigit/mathplan/internal/app/services"
	"github.com/yigit/mathplan/internal/config"
	"github.com/yigit/mathplan/internal/db"
	appMiddleware "github.com/yigit/mathplan/internal/middleware"
	pkgAuth "github.com/yigit/mathplan/internal/pkg/auth"
	"github.com/yigit/mathplan/internal/pkg/helpers"
	"github.com/yigit/mathplan/internal/pkg/logger"
	"github.com/yigit/mathplan/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	CatalogService    appServices.CatalogService
	PlanService       appServices.PlanService
	StudentService    appServices.StudentService
	CatalogController *appControllers.CatalogController
	PlanController    *appControllers.PlanController
	StudentController *appControllers.StudentController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	Logger            zerolog.Logger
}

// ConfigPath returns the configuration file location, overridable with CONFIG_PATH.
func ConfigPath() string {
	return config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(ConfigPath())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds the catalog.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Database.Seed {
		if err := seed.CreateDefaultData(ctx, database, lgr); err != nil {
			// The API can still serve whatever catalog is already stored
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return database, nil
}

// txStudentStore saves each record in its own transaction.
type txStudentStore struct {
	*appRepos.StudentRepository
	database *db.PostgresDB
}

func (s txStudentStore) SaveRecord(ctx context.Context, rec *models.StudentRecord) error {
	return s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.StudentRepository.WithTx(tx).SaveRecord(ctx, rec)
	})
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 8*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.CatalogService = appServices.NewCatalogService(
		deps.Repos.CatalogRepository,
		cfg.PlanningReference(),
		helpers.ParseDuration(cfg.Planning.CatalogReloadInterval, 5*time.Minute),
		lgr,
	)
	deps.PlanService = appServices.NewPlanService(
		deps.CatalogService,
		deps.Repos.StudentRepository,
		helpers.ParseDuration(cfg.Planning.PlanCacheTTL, 30*time.Second),
		cfg.Planning.MaxMajors,
		lgr,
	)
	deps.StudentService = appServices.NewStudentService(
		txStudentStore{StudentRepository: deps.Repos.StudentRepository, database: database},
		deps.CatalogService,
		deps.PlanService,
		lgr,
	)

	// Load the catalog up front so a broken catalog fails at startup rather than on first request
	if _, err := deps.CatalogService.Reload(context.Background()); err != nil {
		lgr.Error().Err(err).Msg("Failed to load reference catalog")
		return nil, fmt.Errorf("failed to load reference catalog: %w", err)
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.CatalogController = appControllers.NewCatalogController(deps.CatalogService)
	deps.PlanController = appControllers.NewPlanController(deps.PlanService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestID(), appMiddleware.RequestLogger(lgr))

	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	appRoutes.SetupRouter(router,
		deps.CatalogController,
		deps.PlanController,
		deps.StudentController,
		deps.AuthMiddleware,
	)

	return router, nil
}
