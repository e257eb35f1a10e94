package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	authMiddleware "github.com/sero63211/daye-course-builder/internal/auth/middleware"
	authService "github.com/sero63211/daye-course-builder/internal/auth/service"
	"github.com/sero63211/daye-course-builder/internal/config"
	"github.com/sero63211/daye-course-builder/internal/editor"
	"github.com/sero63211/daye-course-builder/internal/handlers"
	"github.com/sero63211/daye-course-builder/internal/logger"
	loggerMiddleware "github.com/sero63211/daye-course-builder/internal/logger/middleware"
	"github.com/sero63211/daye-course-builder/internal/middlewares"
	"github.com/sero63211/daye-course-builder/internal/repositories"
	"github.com/sero63211/daye-course-builder/internal/services"
	"github.com/sero63211/daye-course-builder/internal/storage"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

const maxRequestSize = 50 * 1024 * 1024 // 50MB for media uploads

// @title Daye Course Builder API
// @version 1.0
// @description API for authoring language learning courses

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key for service-to-service authentication
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Daye Course Builder")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT token generator (for auth middleware)
	tokenGenerator := authService.NewTokenGenerator(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// Initialize storage
	fileStorage, err := newStorage(cfg)
	if err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}

	// Initialize repositories
	courseRepo := repositories.NewCourseRepository(db)
	chapterRepo := repositories.NewChapterRepository(db)
	lessonRepo := repositories.NewLessonRepository(db)
	contentRepo := repositories.NewContentItemRepository(db)
	metadataRepo := repositories.NewMetadataRepository(db)

	// Initialize services
	authoringService := services.NewAuthoringService(courseRepo, chapterRepo)
	lessonService := services.NewLessonService(lessonRepo, chapterRepo, courseRepo)
	contentService := services.NewContentService(contentRepo)
	mediaService := services.NewMediaService(metadataRepo, fileStorage)
	editorService := services.NewEditorService(
		editor.NewManager(),
		lessonRepo,
		mediaService,
		cfg.Server.BaseURL,
		logger.Logger,
	)

	// Initialize middleware
	authMw := authMiddleware.AuthMiddleware(tokenGenerator)
	apiKeyMw := authMiddleware.APIKeyMiddleware(cfg.APIKey)

	// Initialize handlers
	courseHandler := handlers.NewCourseHandler(authoringService, logger.Logger)
	lessonHandler := handlers.NewLessonHandler(lessonService, logger.Logger)
	contentHandler := handlers.NewContentHandler(contentService, logger.Logger)
	editorHandler := handlers.NewEditorHandler(editorService, logger.Logger)
	mediaHandler := handlers.NewMediaHandler(mediaService, cfg.Server.BaseURL, logger.Logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(maxRequestSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		// Public media metadata and download endpoints
		mediaHandler.RegisterPublicRoutes(r)

		// Media upload and delete require API key
		r.Group(func(r chi.Router) {
			r.Use(apiKeyMw)
			mediaHandler.RegisterManagementRoutes(r)
		})

		// Authoring endpoints require an authenticated author
		r.Group(func(r chi.Router) {
			r.Use(authMw)
			courseHandler.RegisterRoutes(r)
			lessonHandler.RegisterRoutes(r)
			contentHandler.RegisterRoutes(r)
			editorHandler.RegisterRoutes(r)
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second, // Longer timeout for file uploads
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// newStorage builds the file storage backend selected by configuration
func newStorage(cfg *config.Config) (services.Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverGCS:
		return storage.NewGCSStorage(context.Background(), cfg.Storage.GCSBucket, cfg.Storage.GCSCredentialsFile)
	case config.StorageDriverLocal:
		return storage.NewLocalStorage(cfg.Storage.MediaBasePath), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "course_builder_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
