package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/squareonerentals/squareone/internal/database"
	"github.com/squareonerentals/squareone/internal/models"
	"github.com/squareonerentals/squareone/pkg/listfield"
)

type ListingRepository struct {
	db *database.DB
}

func NewListingRepository(db *database.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

const listingColumns = `l.id, l.title, l.description, l.price, l.location,
	l.bedrooms, l.bathrooms, l.size, l.images, l.amenities, l.building_amenities,
	l.property_type, l.lease_type, l.status, l.featured, l.user_id, l.created_at, l.updated_at`

const listingWithOwnerQuery = `
	SELECT ` + listingColumns + `, u.id, u.name, u.email, u.image
	FROM listings l
	JOIN users u ON u.id = l.user_id`

// scanListingRow populates a Listing (with owner summary) from a joined row.
// The encoded list columns are decoded here so the storage convention never
// leaks past the repository.
func scanListingRow(scanner rowScanner) (*models.Listing, error) {
	var listing models.Listing
	var images, amenities, buildingAmenities string
	var owner models.UserSummary

	err := scanner.Scan(
		&listing.ID, &listing.Title, &listing.Description, &listing.Price, &listing.Location,
		&listing.Bedrooms, &listing.Bathrooms, &listing.Size,
		&images, &amenities, &buildingAmenities,
		&listing.PropertyType, &listing.LeaseType, &listing.Status, &listing.Featured,
		&listing.UserID, &listing.CreatedAt, &listing.UpdatedAt,
		&owner.ID, &owner.Name, &owner.Email, &owner.Image,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	listing.Images = listfield.Decode(images)
	listing.Amenities = listfield.Decode(amenities)
	listing.BuildingAmenities = listfield.Decode(buildingAmenities)
	listing.Owner = &owner

	return &listing, nil
}

func scanListingRows(rows pgx.Rows) ([]*models.Listing, error) {
	defer rows.Close()

	listings := make([]*models.Listing, 0)
	for rows.Next() {
		listing, err := scanListingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return listings, nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	query := listingWithOwnerQuery + ` WHERE l.id = $1`
	return scanListingRow(r.db.Pool.QueryRow(ctx, query, id))
}

// List returns listings matching the filter, newest first.
func (r *ListingRepository) List(ctx context.Context, filter models.ListingFilter) ([]*models.Listing, error) {
	query := listingWithOwnerQuery + ` WHERE 1=1`
	args := []interface{}{}

	if filter.Featured {
		query += ` AND l.featured = TRUE`
	}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		query += fmt.Sprintf(` AND l.user_id = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND l.status = $%d`, len(args))
	}

	query += ` ORDER BY l.created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}

	return scanListingRows(rows)
}

// ListSummariesByUser returns the compact dashboard view of a user's listings.
func (r *ListingRepository) ListSummariesByUser(ctx context.Context, userID string) ([]*models.ListingSummary, error) {
	query := `
		SELECT id, title, price, location, status, created_at
		FROM listings WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	summaries := make([]*models.ListingSummary, 0)
	for rows.Next() {
		var s models.ListingSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Price, &s.Location, &s.Status, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan listing summary: %w", err)
		}
		summaries = append(summaries, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return summaries, nil
}

func (r *ListingRepository) Create(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	listing.ID = uuid.New().String()

	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	if listing.Status == "" {
		listing.Status = models.ListingStatusAvailable
	}
	if listing.PropertyType == "" {
		listing.PropertyType = models.DefaultPropertyType
	}
	if listing.LeaseType == "" {
		listing.LeaseType = models.DefaultLeaseType
	}

	query := `
		INSERT INTO listings (id, title, description, price, location, bedrooms, bathrooms, size,
			images, amenities, building_amenities, property_type, lease_type, status, featured,
			user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := r.db.Pool.Exec(ctx, query,
		listing.ID, listing.Title, listing.Description, listing.Price, listing.Location,
		listing.Bedrooms, listing.Bathrooms, listing.Size,
		listfield.Encode(listing.Images), listfield.Encode(listing.Amenities), listfield.Encode(listing.BuildingAmenities),
		listing.PropertyType, listing.LeaseType, listing.Status, listing.Featured,
		listing.UserID, listing.CreatedAt, listing.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return r.GetByID(ctx, listing.ID)
}

// Update applies a partial update; nil fields keep their stored value.
func (r *ListingRepository) Update(ctx context.Context, id string, update models.ListingUpdate) (*models.Listing, error) {
	set := []string{}
	args := []interface{}{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Title != nil {
		add("title", *update.Title)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.Price != nil {
		add("price", *update.Price)
	}
	if update.Location != nil {
		add("location", *update.Location)
	}
	if update.Bedrooms != nil {
		add("bedrooms", *update.Bedrooms)
	}
	if update.Bathrooms != nil {
		add("bathrooms", *update.Bathrooms)
	}
	if update.Size != nil {
		add("size", *update.Size)
	}
	if update.PropertyType != nil {
		add("property_type", *update.PropertyType)
	}
	if update.LeaseType != nil {
		add("lease_type", *update.LeaseType)
	}
	if update.Images != nil {
		add("images", listfield.Encode(*update.Images))
	}
	if update.Amenities != nil {
		add("amenities", listfield.Encode(*update.Amenities))
	}
	if update.BuildingAmenities != nil {
		add("building_amenities", listfield.Encode(*update.BuildingAmenities))
	}

	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	add("updated_at", time.Now())
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE listings SET %s WHERE id = $%d`,
		strings.Join(set, ", "), len(args))

	tag, err := r.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// UpdateModeration sets the moderation-controlled fields. Nil fields are
// left unchanged.
func (r *ListingRepository) UpdateModeration(ctx context.Context, id string, status *string, featured *bool) (*models.Listing, error) {
	set := []string{}
	args := []interface{}{}

	if status != nil {
		args = append(args, *status)
		set = append(set, fmt.Sprintf("status = $%d", len(args)))
	}
	if featured != nil {
		args = append(args, *featured)
		set = append(set, fmt.Sprintf("featured = $%d", len(args)))
	}

	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, time.Now())
	set = append(set, fmt.Sprintf("updated_at = $%d", len(args)))
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE listings SET %s WHERE id = $%d`, strings.Join(set, ", "), len(args))

	tag, err := r.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *ListingRepository) CountTotal(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM listings`).Scan(&count)
	if err != nil {
		return 0, database.MapPostgresError(err)
	}
	return count, nil
}

func (r *ListingRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM listings WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, database.MapPostgresError(err)
	}
	return count, nil
}
