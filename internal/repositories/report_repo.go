package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/squareonerentals/squareone/internal/database"
	"github.com/squareonerentals/squareone/internal/models"
)

type ReportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

const reportWithRelationsQuery = `
	SELECT r.id, r.type, r.target_id, r.reason, r.description, r.status,
		r.reporter_id, r.listing_id, r.created_at, r.updated_at,
		u.id, u.name, u.email, u.image,
		l.id, l.title, l.price, l.location, l.status, l.created_at
	FROM reports r
	JOIN users u ON u.id = r.reporter_id
	LEFT JOIN listings l ON l.id = r.listing_id`

func scanReportRow(scanner rowScanner) (*models.Report, error) {
	var report models.Report
	var description *string
	var reporter models.UserSummary
	var listingID, lTitle, lLocation, lStatus *string
	var lPrice *float64
	var lCreatedAt *time.Time

	err := scanner.Scan(
		&report.ID, &report.Type, &report.TargetID, &report.Reason, &description, &report.Status,
		&report.ReporterID, &report.ListingID, &report.CreatedAt, &report.UpdatedAt,
		&reporter.ID, &reporter.Name, &reporter.Email, &reporter.Image,
		&listingID, &lTitle, &lPrice, &lLocation, &lStatus, &lCreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	if description != nil {
		report.Description = *description
	}
	report.Reporter = &reporter

	if listingID != nil {
		report.Listing = &models.ListingSummary{
			ID:        *listingID,
			Title:     *lTitle,
			Price:     *lPrice,
			Location:  *lLocation,
			Status:    *lStatus,
			CreatedAt: *lCreatedAt,
		}
	}

	return &report, nil
}

func (r *ReportRepository) Create(ctx context.Context, report *models.Report) (*models.Report, error) {
	report.ID = uuid.New().String()

	now := time.Now()
	report.CreatedAt = now
	report.UpdatedAt = now

	if report.Status == "" {
		report.Status = models.ReportStatusPending
	}

	var description *string
	if report.Description != "" {
		description = &report.Description
	}

	query := `
		INSERT INTO reports (id, type, target_id, reason, description, status, reporter_id, listing_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Pool.Exec(ctx, query,
		report.ID, report.Type, report.TargetID, report.Reason, description,
		report.Status, report.ReporterID, report.ListingID, report.CreatedAt, report.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return r.GetByID(ctx, report.ID)
}

func (r *ReportRepository) GetByID(ctx context.Context, id string) (*models.Report, error) {
	query := reportWithRelationsQuery + ` WHERE r.id = $1`
	return scanReportRow(r.db.Pool.QueryRow(ctx, query, id))
}

// List returns reports matching the filter, newest first.
func (r *ReportRepository) List(ctx context.Context, filter models.ReportFilter) ([]*models.Report, error) {
	query := reportWithRelationsQuery + ` WHERE 1=1`
	args := []interface{}{}

	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(` AND r.type = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND r.status = $%d`, len(args))
	}

	query += ` ORDER BY r.created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	reports := make([]*models.Report, 0)
	for rows.Next() {
		report, err := scanReportRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return reports, nil
}

// UpdateStatus sets the report status. Re-setting the current status is
// a storage-level no-op that still succeeds (last write wins).
func (r *ReportRepository) UpdateStatus(ctx context.Context, id, status string) (*models.Report, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE reports SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *ReportRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *ReportRepository) CountTotal(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM reports`).Scan(&count)
	if err != nil {
		return 0, database.MapPostgresError(err)
	}
	return count, nil
}
