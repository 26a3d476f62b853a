package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/squareonerentals/squareone/internal/auth"
	"github.com/squareonerentals/squareone/internal/models"
	pkgauth "github.com/squareonerentals/squareone/pkg/auth"
	pkglogger "github.com/squareonerentals/squareone/pkg/logger"
)

// PasswordResetRepository defines the interface for reset token operations
type PasswordResetRepository interface {
	Create(ctx context.Context, userID, token string, expiresAt time.Time) (*models.PasswordReset, error)
	GetByToken(ctx context.Context, token string) (*models.PasswordReset, error)
	MarkUsed(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// OAuthExchanger trades an authorization code for a provider profile
type OAuthExchanger interface {
	Exchange(ctx context.Context, code string) (*auth.OAuthProfile, error)
}

// AuthService handles authentication business logic
type AuthService struct {
	repo        UserRepository
	resetRepo   PasswordResetRepository
	tm          *auth.TokenManager
	email       EmailService
	oauth       OAuthExchanger
	resetExpiry time.Duration
	logger      *slog.Logger
}

// NewAuthService creates a new AuthService. oauth may be nil when no
// provider is configured; email may be nil when password resets are
// disabled.
func NewAuthService(repo UserRepository, resetRepo PasswordResetRepository, tm *auth.TokenManager, email EmailService, oauth OAuthExchanger, resetExpiry time.Duration, logger *slog.Logger) *AuthService {
	return &AuthService{
		repo:        repo,
		resetRepo:   resetRepo,
		tm:          tm,
		email:       email,
		oauth:       oauth,
		resetExpiry: resetExpiry,
		logger:      logger,
	}
}

// AuthResponse represents the response from auth operations
type AuthResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	User         *UserResponse `json:"user"`
}

func (s *AuthService) issueTokens(user *models.User) (*AuthResponse, error) {
	accessToken, err := s.tm.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error("failed to generate access token", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	refreshToken, err := s.tm.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error("failed to generate refresh token", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toUserResponse(user),
	}, nil
}

// Register creates a new account and signs the user in.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(name) == "" {
		return nil, models.ErrBadRequest
	}
	if err := pkgauth.ValidatePassword(password); err != nil {
		return nil, models.ErrBadRequest
	}

	hash, err := pkgauth.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	user, err := s.repo.Create(ctx, &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to create user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("email", pkglogger.SanitizedEmail(user.Email)))

	return s.issueTokens(user)
}

// Login authenticates a user by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, models.ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("login failed: invalid credentials")
			return nil, models.ErrInvalidCredentials
		}
		s.logger.Error("failed to get user by email", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	// OAuth-only accounts have no password to verify.
	if user.PasswordHash == "" {
		s.logger.Info("login failed: password not set", slog.String("user_id", user.ID))
		return nil, models.ErrPasswordNotSet
	}

	if err := pkgauth.ComparePassword(user.PasswordHash, password); err != nil {
		s.logger.Info("login failed: invalid credentials", slog.String("user_id", user.ID))
		return nil, models.ErrInvalidCredentials
	}

	s.logger.Info("user logged in", slog.String("user_id", user.ID))
	return s.issueTokens(user)
}

// Refresh validates a refresh token and issues a fresh token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.tm.ValidateToken(refreshToken)
	if err != nil || claims.Type != "refresh" {
		return nil, models.ErrUnauthorized
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthorized
		}
		s.logger.Error("failed to get user for refresh", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return s.issueTokens(user)
}

// GoogleSignIn exchanges a Google authorization code for a session,
// creating the account on first sign-in.
func (s *AuthService) GoogleSignIn(ctx context.Context, code string) (*AuthResponse, error) {
	if s.oauth == nil {
		s.logger.Warn("oauth sign-in attempted but no provider configured")
		return nil, models.ErrBadRequest
	}
	if strings.TrimSpace(code) == "" {
		return nil, models.ErrBadRequest
	}

	profile, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		s.logger.Info("oauth exchange failed", slog.Any("error", err))
		return nil, models.ErrUnauthorized
	}

	email := strings.ToLower(strings.TrimSpace(profile.Email))
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.logger.Error("failed to get user by email", slog.Any("error", err))
			return nil, models.ErrInternalServer
		}
		now := time.Now()
		user, err = s.repo.Create(ctx, &models.User{
			Email:         email,
			Name:          profile.Name,
			Image:         profile.Picture,
			EmailVerified: &now,
		})
		if err != nil {
			s.logger.Error("failed to create oauth user", slog.Any("error", err))
			return nil, models.ErrInternalServer
		}
		s.logger.Info("user created via oauth", slog.String("user_id", user.ID))
	}

	return s.issueTokens(user)
}

// ForgotPassword issues a reset token and emails it to the account
// holder. Unknown emails succeed without effect so the endpoint does
// not reveal which addresses have accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return models.ErrBadRequest
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("password reset requested for unknown email")
			return nil
		}
		s.logger.Error("failed to get user by email", slog.Any("error", err))
		return models.ErrInternalServer
	}

	token, err := pkgauth.GenerateResetToken()
	if err != nil {
		s.logger.Error("failed to generate reset token", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if _, err := s.resetRepo.Create(ctx, user.ID, token, time.Now().Add(s.resetExpiry)); err != nil {
		s.logger.Error("failed to store reset token", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if s.email == nil {
		s.logger.Warn("password reset requested but email delivery not configured",
			slog.String("user_id", user.ID))
		return nil
	}
	if err := s.email.SendPasswordResetEmail(ctx, user.Email, token); err != nil {
		// Keep the response neutral; the failure is already logged.
		return nil
	}

	return nil
}

// ResetPassword redeems a reset token and sets a new password. Tokens
// are single-use: a second redemption fails even within the expiry
// window.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := pkgauth.ValidatePassword(newPassword); err != nil {
		return models.ErrBadRequest
	}

	reset, err := s.resetRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrTokenInvalid
		}
		s.logger.Error("failed to look up reset token", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if !reset.Usable(time.Now()) {
		return models.ErrTokenInvalid
	}

	// Claim the token before touching the password so concurrent
	// redemptions cannot both succeed.
	if err := s.resetRepo.MarkUsed(ctx, reset.ID); err != nil {
		if errors.Is(err, models.ErrTokenInvalid) {
			return models.ErrTokenInvalid
		}
		s.logger.Error("failed to mark reset token used", slog.Any("error", err))
		return models.ErrInternalServer
	}

	hash, err := pkgauth.HashPassword(newPassword)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if err := s.repo.UpdatePassword(ctx, reset.UserID, hash); err != nil {
		s.logger.Error("failed to update password", slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("password reset completed", slog.String("user_id", reset.UserID))
	return nil
}
