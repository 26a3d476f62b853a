package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/squareonerentals/squareone/internal/database"
	"github.com/squareonerentals/squareone/internal/models"
)

type ActivityRepository struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	activity.ID = uuid.New().String()
	activity.CreatedAt = time.Now()

	var metadata *string
	if activity.Metadata != "" {
		metadata = &activity.Metadata
	}

	query := `
		INSERT INTO activities (id, type, description, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Pool.Exec(ctx, query,
		activity.ID, activity.Type, activity.Description, metadata, activity.CreatedAt)
	if err != nil {
		return database.MapPostgresError(err)
	}
	return nil
}

func (r *ActivityRepository) ListRecent(ctx context.Context, limit int) ([]*models.Activity, error) {
	query := `
		SELECT id, type, description, metadata, created_at
		FROM activities ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	activities := make([]*models.Activity, 0)
	for rows.Next() {
		var a models.Activity
		var metadata *string
		if err := rows.Scan(&a.ID, &a.Type, &a.Description, &metadata, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		if metadata != nil {
			a.Metadata = *metadata
		}
		activities = append(activities, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return activities, nil
}
