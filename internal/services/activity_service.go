package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/squareonerentals/squareone/internal/models"
)

// ActivityRepository defines the interface for activity feed storage
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	ListRecent(ctx context.Context, limit int) ([]*models.Activity, error)
}

// ActivityLogger records events for the admin activity feed. Failures
// are logged and swallowed so feed writes never disrupt the main flow.
type ActivityLogger struct {
	repo   ActivityRepository
	logger *slog.Logger
}

func NewActivityLogger(repo ActivityRepository, logger *slog.Logger) *ActivityLogger {
	return &ActivityLogger{repo: repo, logger: logger}
}

// Log records an activity event. Metadata keys are event-specific
// identifiers (userId, listingId, reportId).
func (l *ActivityLogger) Log(ctx context.Context, eventType, description string, metadata map[string]string) {
	activity := &models.Activity{
		Type:        eventType,
		Description: description,
	}

	if len(metadata) > 0 {
		encoded, err := json.Marshal(metadata)
		if err == nil {
			activity.Metadata = string(encoded)
		}
	}

	if err := l.repo.Create(ctx, activity); err != nil {
		l.logger.Error("failed to record activity",
			slog.String("type", eventType), slog.Any("error", err))
	}
}
