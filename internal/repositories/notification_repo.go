package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/squareonerentals/squareone/internal/database"
	"github.com/squareonerentals/squareone/internal/models"
)

type NotificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	n.ID = uuid.New().String()
	n.CreatedAt = time.Now()

	query := `
		INSERT INTO notifications (id, user_id, title, description, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Pool.Exec(ctx, query, n.ID, n.UserID, n.Title, n.Description, n.Read, n.CreatedAt)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return n, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	query := `
		SELECT id, user_id, title, description, read, created_at
		FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]*models.Notification, 0)
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Description, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notifications, nil
}

// SetRead updates the read flag, scoped to the owner so one user cannot
// mark another user's notifications.
func (r *NotificationRepository) SetRead(ctx context.Context, id, userID string, read bool) (*models.Notification, error) {
	query := `
		UPDATE notifications SET read = $1
		WHERE id = $2 AND user_id = $3
		RETURNING id, user_id, title, description, read, created_at`

	var n models.Notification
	err := r.db.Pool.QueryRow(ctx, query, read, id, userID).
		Scan(&n.ID, &n.UserID, &n.Title, &n.Description, &n.Read, &n.CreatedAt)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &n, nil
}
