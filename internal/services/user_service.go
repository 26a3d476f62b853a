package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/squareonerentals/squareone/internal/models"
	pkgauth "github.com/squareonerentals/squareone/pkg/auth"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id string, user *models.User) (*models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateRole(ctx context.Context, id, role string) (*models.User, error)
	Delete(ctx context.Context, id string) error
	CountTotal(ctx context.Context) (int64, error)
}

// UserService handles user profile business logic
type UserService struct {
	repo     UserRepository
	activity *ActivityLogger
	logger   *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(repo UserRepository, activity *ActivityLogger, logger *slog.Logger) *UserService {
	return &UserService{repo: repo, activity: activity, logger: logger}
}

// UserResponse represents a user in HTTP responses
type UserResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Image         string `json:"image,omitempty"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

func toUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Image:         user.Image,
		Role:          user.Role,
		EmailVerified: user.EmailVerified != nil,
		CreatedAt:     user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     user.UpdatedAt.Format(time.RFC3339),
	}
}

// GetByID returns the user with the given ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return toUserResponse(user), nil
}

// ProfileResponse is the public view of another user
type ProfileResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Profile returns the public profile of the user with the given ID.
func (s *UserService) Profile(ctx context.Context, id string) (*ProfileResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user profile", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return &ProfileResponse{ID: user.ID, Name: user.Name, Image: user.Image}, nil
}

// UpdateProfileInput carries a partial profile update. Nil fields are
// left unchanged. Changing the password requires CurrentPassword.
type UpdateProfileInput struct {
	Name            *string
	Image           *string
	Email           *string
	CurrentPassword *string
	NewPassword     *string
}

// UpdateProfile updates the caller's own account. Email changes are
// rejected when the address is already taken; password changes verify
// the current password and are unavailable to OAuth-only accounts.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user for update", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, models.ErrBadRequest
		}
		user.Name = name
	}
	if input.Image != nil {
		user.Image = strings.TrimSpace(*input.Image)
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email == "" {
			return nil, models.ErrBadRequest
		}
		if email != user.Email {
			existing, err := s.repo.GetByEmail(ctx, email)
			if err != nil && !errors.Is(err, models.ErrNotFound) {
				s.logger.Error("failed to check email availability", slog.Any("error", err))
				return nil, models.ErrInternalServer
			}
			if existing != nil && existing.ID != userID {
				return nil, models.ErrBadRequest
			}
			user.Email = email
			// The new address has not been verified.
			user.EmailVerified = nil
		}
	}

	if input.NewPassword != nil {
		if err := s.changePassword(ctx, user, input.CurrentPassword, *input.NewPassword); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, userID, user)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to update user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.activity.Log(ctx, models.ActivityUserUpdated,
		"User "+updated.Name+" updated their profile",
		map[string]string{"userId": updated.ID})

	return toUserResponse(updated), nil
}

func (s *UserService) changePassword(ctx context.Context, user *models.User, current *string, newPassword string) error {
	// OAuth-only accounts have no password to change against.
	if user.PasswordHash == "" {
		return models.ErrBadRequest
	}
	if current == nil {
		return models.ErrBadRequest
	}
	if err := pkgauth.ComparePassword(user.PasswordHash, *current); err != nil {
		return models.ErrBadRequest
	}
	if err := pkgauth.ValidatePassword(newPassword); err != nil {
		return models.ErrBadRequest
	}

	hash, err := pkgauth.HashPassword(newPassword)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return models.ErrInternalServer
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		s.logger.Error("failed to update password", slog.Any("error", err))
		return models.ErrInternalServer
	}
	return nil
}
