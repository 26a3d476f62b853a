package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/squareonerentals/squareone/internal/database"
	"github.com/squareonerentals/squareone/internal/models"
)

type FavoriteRepository struct {
	db *database.DB
}

func NewFavoriteRepository(db *database.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add records the (user, listing) pair. Adding an existing pair is a
// no-op; membership is a set, not a count.
func (r *FavoriteRepository) Add(ctx context.Context, userID, listingID string) error {
	query := `
		INSERT INTO favorites (user_id, listing_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, listing_id) DO NOTHING`

	_, err := r.db.Pool.Exec(ctx, query, userID, listingID, time.Now())
	if err != nil {
		return database.MapPostgresError(err)
	}
	return nil
}

// Remove deletes the pair. Removing a non-member pair succeeds silently.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, listingID string) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND listing_id = $2`,
		userID, listingID)
	if err != nil {
		return database.MapPostgresError(err)
	}
	return nil
}

// ListByUser returns the user's favorite listings, newest favorite first.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]*models.Listing, error) {
	query := listingWithOwnerQuery + `
		JOIN favorites f ON f.listing_id = l.id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}

	return scanListingRows(rows)
}

// Exists reports whether the pair is a member of the favorites set.
func (r *FavoriteRepository) Exists(ctx context.Context, userID, listingID string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND listing_id = $2)`,
		userID, listingID).Scan(&exists)
	if err != nil {
		return false, database.MapPostgresError(err)
	}
	return exists, nil
}
