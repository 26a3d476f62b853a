package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/squareonerentals/squareone/internal/models"
)

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) (*models.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Notification, error)
	SetRead(ctx context.Context, id, userID string, read bool) (*models.Notification, error)
}

// NotificationService handles in-app notification business logic
type NotificationService struct {
	repo   NotificationRepository
	logger *slog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo NotificationRepository, logger *slog.Logger) *NotificationService {
	return &NotificationService{repo: repo, logger: logger}
}

// Notify creates a notification for the user. Failures are logged and
// swallowed so notification delivery never blocks the triggering action.
func (s *NotificationService) Notify(ctx context.Context, userID, title, description string) {
	_, err := s.repo.Create(ctx, &models.Notification{
		UserID:      userID,
		Title:       title,
		Description: description,
	})
	if err != nil {
		s.logger.Error("failed to create notification",
			slog.String("user_id", userID), slog.Any("error", err))
	}
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	notifications, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list notifications", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return notifications, nil
}

// SetRead flips the read flag on a notification owned by userID.
// Notifications that don't exist or belong to another user return
// ErrNotFound.
func (s *NotificationService) SetRead(ctx context.Context, id, userID string, read bool) (*models.Notification, error) {
	notification, err := s.repo.SetRead(ctx, id, userID, read)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to update notification", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return notification, nil
}
