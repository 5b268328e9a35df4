package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/wanderly/trailhead/internal/auth"
	"github.com/wanderly/trailhead/internal/background"
	"github.com/wanderly/trailhead/internal/config"
	"github.com/wanderly/trailhead/internal/database"
	"github.com/wanderly/trailhead/internal/handlers"
	middlewareCustom "github.com/wanderly/trailhead/internal/middleware"
	"github.com/wanderly/trailhead/internal/repositories"
	"github.com/wanderly/trailhead/internal/routes"
	"github.com/wanderly/trailhead/internal/services"
	pkglogger "github.com/wanderly/trailhead/pkg/logger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	// Initialize database
	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := db.Migrate(migrateCtx); err != nil {
		migrateCancel()
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	migrateCancel()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	tourRepo := repositories.NewTourRepository(db)

	// Initialize cleanup manager
	cleanupManager := background.NewCleanupManager(userRepo, logger, cfg.Auth.CleanupInterval)

	// Initialize token manager
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	auditLogger := pkglogger.NewAuditLogger(logger)

	// AWS SES mailer
	mailer, err := services.NewAWSSESMailer(cfg.Email.AWSRegion, cfg.Email.FromAddress, logger)
	if err != nil {
		logger.Error("failed to initialize email service", slog.Any("error", err))
		os.Exit(1)
	}

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenManager, mailer, logger, auditLogger, cfg.Auth.ResetTokenTTL)
	userService := services.NewUserService(userRepo, logger)
	tourService := services.NewTourService(tourRepo, logger)

	// Initialize handlers
	cookieConfig := auth.CookieConfig{
		ExpiresDays: cfg.Auth.CookieExpiresDays,
		Secure:      cfg.Server.IsProduction(),
	}
	authHandler := handlers.NewAuthHandler(authService, cookieConfig, cfg.Server.Env)
	userHandler := handlers.NewUserHandler(userService, cfg.Server.Env)
	tourHandler := handlers.NewTourHandler(tourService, cfg.Server.Env)

	// Bootstrap first admin user if configured
	bootstrapCtx, bootstrapCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := services.EnsureAdminUser(bootstrapCtx, userRepo, logger,
		os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		logger.Error("failed to ensure admin user", slog.Any("error", err))
	}
	bootstrapCancel()

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.CORS(middlewareCustom.DefaultCORSConfig(cfg.Server.AllowedOrigins)))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// Register routes
	rateLimit := middlewareCustom.RateLimitByIP(middlewareCustom.RateLimitConfig{
		RequestsPerMinute: cfg.Auth.RateLimitPerMinute,
	})
	routes.RegisterRoutes(router, authHandler, userHandler, tourHandler, tokenManager, userRepo, rateLimit)

	// Health check with database and pool stats
	router.Get("/health", handlers.Health(db))

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start cleanup task
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()

	go cleanupManager.Start(cleanupCtx)

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	cleanupCancel()
	cleanupManager.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}
