package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/squareonerentals/squareone/internal/auth"
	"github.com/squareonerentals/squareone/internal/background"
	"github.com/squareonerentals/squareone/internal/config"
	"github.com/squareonerentals/squareone/internal/database"
	"github.com/squareonerentals/squareone/internal/handlers"
	middlewareCustom "github.com/squareonerentals/squareone/internal/middleware"
	"github.com/squareonerentals/squareone/internal/models"
	"github.com/squareonerentals/squareone/internal/repositories"
	"github.com/squareonerentals/squareone/internal/routes"
	"github.com/squareonerentals/squareone/internal/services"
	pkgauth "github.com/squareonerentals/squareone/pkg/auth"
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

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	listingRepo := repositories.NewListingRepository(db)
	favoriteRepo := repositories.NewFavoriteRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	resetRepo := repositories.NewPasswordResetRepository(db)
	activityRepo := repositories.NewActivityRepository(db)

	// Initialize cleanup manager for expired reset tokens
	cleanupManager := background.NewCleanupManager(resetRepo, logger, cfg.Auth.CleanupInterval)

	// Initialize token manager
	tokenManager := auth.NewTokenManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenExpiry,
		cfg.Auth.RefreshTokenExpiry,
	)

	// AWS SES email service, only when configured
	var emailService services.EmailService
	if cfg.Email.FromAddress != "" {
		sesService, err := services.NewAWSSESEmailService(
			cfg.Email.AWSRegion,
			cfg.Email.FromAddress,
			cfg.Email.ResetURLBase,
			logger,
		)
		if err != nil {
			logger.Error("failed to initialize email service", slog.Any("error", err))
			os.Exit(1)
		}
		emailService = sesService
	} else {
		logger.Warn("EMAIL_FROM_ADDRESS not set, password reset emails disabled")
	}

	// Google OAuth, only when configured
	var oauthExchanger services.OAuthExchanger
	if cfg.OAuth.GoogleClientID != "" {
		oauthExchanger = auth.NewGoogleOAuth(cfg.OAuth)
	} else {
		logger.Warn("GOOGLE_CLIENT_ID not set, social sign-in disabled")
	}

	// Cloudinary upload service
	uploadService, err := services.NewCloudinaryUploadService(cfg.Upload.CloudinaryURL, cfg.Upload.Folder, logger)
	if err != nil {
		logger.Error("failed to initialize upload service", slog.Any("error", err))
		os.Exit(1)
	}

	// Initialize services
	activityLogger := services.NewActivityLogger(activityRepo, logger)
	authService := services.NewAuthService(userRepo, resetRepo, tokenManager, emailService, oauthExchanger, cfg.Auth.ResetTokenExpiry, logger)
	userService := services.NewUserService(userRepo, activityLogger, logger)
	listingService := services.NewListingService(listingRepo, userRepo, activityLogger, cfg.Server.SiteOrigin, logger)
	favoriteService := services.NewFavoriteService(favoriteRepo, listingRepo, logger)
	reportService := services.NewReportService(reportRepo, listingRepo, activityLogger, logger)
	notificationService := services.NewNotificationService(notificationRepo, logger)
	adminService := services.NewAdminService(listingRepo, reportRepo, userRepo, activityRepo, notificationService, activityLogger, logger)

	// Initialize handlers
	h := routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService),
		User:         handlers.NewUserHandler(userService),
		Listing:      handlers.NewListingHandler(listingService),
		Favorite:     handlers.NewFavoriteHandler(favoriteService),
		Report:       handlers.NewReportHandler(reportService),
		Notification: handlers.NewNotificationHandler(notificationService),
		Admin:        handlers.NewAdminHandler(adminService),
		Upload:       handlers.NewUploadHandler(uploadService),
	}

	// Bootstrap first admin user if configured
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ensureAdminUser(ctx, userRepo, logger); err != nil {
		logger.Error("failed to ensure admin user", slog.Any("error", err))
	}
	cancel()

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(middlewareCustom.NewCORSConfig(cfg.Server.AllowedOrigins)))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// Register routes
	routes.RegisterRoutes(router, h, tokenManager, userRepo)

	// Health check with database
	router.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	})

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

// ensureAdminUser creates the first admin user if ADMIN_EMAIL and ADMIN_PASSWORD are set
func ensureAdminUser(ctx context.Context, userRepo *repositories.UserRepository, logger *slog.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		logger.Info("no ADMIN_EMAIL or ADMIN_PASSWORD set, skipping admin user creation")
		return nil
	}

	// Check if admin already exists
	_, err := userRepo.GetByEmail(ctx, adminEmail)
	if err == nil {
		logger.Info("admin user already exists")
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("failed to check if admin exists: %w", err)
	}

	// Hash password
	hashedPassword, err := pkgauth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := time.Now()
	admin := &models.User{
		Email:         adminEmail,
		PasswordHash:  hashedPassword,
		Name:          "Admin",
		Role:          models.RoleAdmin,
		EmailVerified: &now,
	}

	_, err = userRepo.Create(ctx, admin)
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("admin user created successfully")
	return nil
}
