package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/squareonerentals/squareone/internal/auth"
	"github.com/squareonerentals/squareone/internal/config"
	"github.com/squareonerentals/squareone/internal/database"
	"github.com/squareonerentals/squareone/internal/handlers"
	middlewareCustom "github.com/squareonerentals/squareone/internal/middleware"
	"github.com/squareonerentals/squareone/internal/routes"
	"github.com/squareonerentals/squareone/internal/services"
)

// SentEmail represents a captured email message
type SentEmail struct {
	To    string
	Token string
}

// MockEmailService captures password reset emails for test assertions
type MockEmailService struct {
	SentEmails []SentEmail
	mu         sync.Mutex
}

// SendPasswordResetEmail records the email
func (m *MockEmailService) SendPasswordResetEmail(ctx context.Context, email, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SentEmails = append(m.SentEmails, SentEmail{To: email, Token: token})
	return nil
}

// GetLastEmail returns the most recent email sent
func (m *MockEmailService) GetLastEmail() *SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.SentEmails) == 0 {
		return nil
	}
	return &m.SentEmails[len(m.SentEmails)-1]
}

// TestServer wraps httptest.Server with database and all dependencies
type TestServer struct {
	Server       *httptest.Server
	Pool         *database.DB
	EmailService *MockEmailService
	Config       *config.Config
	TokenManager *auth.TokenManager

	logger *slog.Logger
}

// NewTestServer initializes a complete HTTP server with real database + mocked email
func NewTestServer(db *database.DB) *TestServer {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:          "test-secret-32-characters-long-for-testing",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
			ResetTokenExpiry:   1 * time.Hour,
			CleanupInterval:    1 * time.Hour,
		},
		Server: config.ServerConfig{
			Port:           "0",
			Env:            "test",
			AllowedOrigins: []string{},
			SiteOrigin:     "https://squareonerentals.com",
		},
	}

	userRepo, listingRepo, favoriteRepo, reportRepo, notificationRepo, resetRepo, activityRepo :=
		InitializeRepositories(db)

	mockEmail := &MockEmailService{
		SentEmails: []SentEmail{},
	}

	tokenManager := auth.NewTokenManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenExpiry,
		cfg.Auth.RefreshTokenExpiry,
	)

	activityLogger := services.NewActivityLogger(activityRepo, logger)
	authService := services.NewAuthService(userRepo, resetRepo, tokenManager, mockEmail, nil, cfg.Auth.ResetTokenExpiry, logger)
	userService := services.NewUserService(userRepo, activityLogger, logger)
	listingService := services.NewListingService(listingRepo, userRepo, activityLogger, cfg.Server.SiteOrigin, logger)
	favoriteService := services.NewFavoriteService(favoriteRepo, listingRepo, logger)
	reportService := services.NewReportService(reportRepo, listingRepo, activityLogger, logger)
	notificationService := services.NewNotificationService(notificationRepo, logger)
	adminService := services.NewAdminService(listingRepo, reportRepo, userRepo, activityRepo, notificationService, activityLogger, logger)

	h := routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService),
		User:         handlers.NewUserHandler(userService),
		Listing:      handlers.NewListingHandler(listingService),
		Favorite:     handlers.NewFavoriteHandler(favoriteService),
		Report:       handlers.NewReportHandler(reportService),
		Notification: handlers.NewNotificationHandler(notificationService),
		Admin:        handlers.NewAdminHandler(adminService),
		Upload:       handlers.NewUploadHandler(&MockUploadService{}),
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(r, h, tokenManager, userRepo)

	server := httptest.NewServer(r)

	return &TestServer{
		Server:       server,
		Pool:         db,
		EmailService: mockEmail,
		Config:       cfg,
		TokenManager: tokenManager,
		logger:       logger,
	}
}

// MockUploadService returns a canned upload result without touching Cloudinary.
type MockUploadService struct{}

func (m *MockUploadService) Upload(ctx context.Context, file io.Reader, filename string) (*services.UploadResult, error) {
	return &services.UploadResult{
		URL:      "https://res.cloudinary.com/test/image/upload/" + filename,
		PublicID: "listings/" + filename,
	}, nil
}

// Close shuts down the test server
func (ts *TestServer) Close() {
	if ts.Server != nil {
		ts.Server.Close()
	}
}

// AccessTokenFor issues a valid access token for user, bypassing the login flow.
func (ts *TestServer) AccessTokenFor(userID, email string) (string, error) {
	return ts.TokenManager.GenerateAccessToken(userID, email)
}

// Request makes an HTTP request to the test server
func (ts *TestServer) Request(method, path string, body interface{}, headers map[string]string) (*http.Response, error) {
	url := ts.Server.URL + path

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return http.DefaultClient.Do(req)
}

// RequestWithAuth makes an authenticated HTTP request with access token
func (ts *TestServer) RequestWithAuth(method, path, accessToken string, body interface{}) (*http.Response, error) {
	headers := map[string]string{
		"Authorization": "Bearer " + accessToken,
	}
	return ts.Request(method, path, body, headers)
}

// ParseJSONResponse parses JSON response body into target struct
func ParseJSONResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(target)
}

// ExtractTokensFromResponse extracts access/refresh tokens from auth response
func ExtractTokensFromResponse(resp *http.Response) (accessToken, refreshToken string, err error) {
	defer resp.Body.Close()

	var authResp map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		return "", "", fmt.Errorf("failed to parse response: %w", err)
	}

	if access, ok := authResp["accessToken"].(string); ok {
		accessToken = access
	}
	if refresh, ok := authResp["refreshToken"].(string); ok {
		refreshToken = refresh
	}

	return
}

// GetErrorMessage extracts error message from error response
func GetErrorMessage(resp *http.Response) (string, error) {
	defer resp.Body.Close()
	var errResp map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		return "", err
	}
	if msg, ok := errResp["error"].(string); ok {
		return msg, nil
	}
	return "", nil
}
