package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/squareonerentals/squareone/internal/models"
)

// ReportRepository defines the interface for report data operations
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) (*models.Report, error)
	GetByID(ctx context.Context, id string) (*models.Report, error)
	List(ctx context.Context, filter models.ReportFilter) ([]*models.Report, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Report, error)
	Delete(ctx context.Context, id string) error
	CountTotal(ctx context.Context) (int64, error)
}

// ReportService handles report submission business logic
type ReportService struct {
	repo        ReportRepository
	listingRepo ListingRepository
	activity    *ActivityLogger
	logger      *slog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(repo ReportRepository, listingRepo ListingRepository, activity *ActivityLogger, logger *slog.Logger) *ReportService {
	return &ReportService{
		repo:        repo,
		listingRepo: listingRepo,
		activity:    activity,
		logger:      logger,
	}
}

// ReportResponse represents a report in HTTP responses
type ReportResponse struct {
	ID          string                 `json:"id"`
	Type        string                 `json:"type"`
	TargetID    string                 `json:"targetId"`
	Reason      string                 `json:"reason"`
	Description string                 `json:"description,omitempty"`
	Status      string                 `json:"status"`
	ReporterID  string                 `json:"reporterId"`
	CreatedAt   string                 `json:"createdAt"`
	UpdatedAt   string                 `json:"updatedAt"`
	Reporter    *models.UserSummary    `json:"reporter,omitempty"`
	Listing     *models.ListingSummary `json:"listing,omitempty"`
}

func toReportResponse(report *models.Report) *ReportResponse {
	return &ReportResponse{
		ID:          report.ID,
		Type:        report.Type,
		TargetID:    report.TargetID,
		Reason:      report.Reason,
		Description: report.Description,
		Status:      report.Status,
		ReporterID:  report.ReporterID,
		CreatedAt:   report.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   report.UpdatedAt.Format(time.RFC3339),
		Reporter:    report.Reporter,
		Listing:     report.Listing,
	}
}

// CreateReportInput carries the fields accepted on report submission.
type CreateReportInput struct {
	Type        string
	TargetID    string
	Reason      string
	Description string
}

// Create submits a new report in PENDING status. LISTING reports must
// target an existing listing.
func (s *ReportService) Create(ctx context.Context, reporterID string, input CreateReportInput) (*ReportResponse, error) {
	if !models.ValidReportType(input.Type) {
		return nil, models.ErrBadRequest
	}
	if strings.TrimSpace(input.TargetID) == "" {
		return nil, models.ErrBadRequest
	}
	if strings.TrimSpace(input.Reason) == "" {
		return nil, models.ErrBadRequest
	}

	report := &models.Report{
		Type:        input.Type,
		TargetID:    input.TargetID,
		Reason:      input.Reason,
		Description: input.Description,
		ReporterID:  reporterID,
	}

	if input.Type == models.ReportTypeListing {
		if _, err := s.listingRepo.GetByID(ctx, input.TargetID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, models.ErrNotFound
			}
			s.logger.Error("failed to verify reported listing", slog.Any("error", err))
			return nil, models.ErrInternalServer
		}
		listingID := input.TargetID
		report.ListingID = &listingID
	}

	created, err := s.repo.Create(ctx, report)
	if err != nil {
		s.logger.Error("failed to create report", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("report created",
		slog.String("report_id", created.ID),
		slog.String("type", created.Type))
	s.activity.Log(ctx, models.ActivityReportCreated,
		"New "+strings.ToLower(created.Type)+" report: "+created.Reason,
		map[string]string{"reportId": created.ID, "targetId": created.TargetID})

	return toReportResponse(created), nil
}
