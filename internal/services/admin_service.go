package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/squareonerentals/squareone/internal/models"
)

// activityFeedLimit bounds the admin dashboard activity feed.
const activityFeedLimit = 10

// AdminService handles moderation and dashboard business logic
type AdminService struct {
	listingRepo   ListingRepository
	reportRepo    ReportRepository
	userRepo      UserRepository
	activityRepo  ActivityRepository
	notifications *NotificationService
	activity      *ActivityLogger
	logger        *slog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(listingRepo ListingRepository, reportRepo ReportRepository, userRepo UserRepository, activityRepo ActivityRepository, notifications *NotificationService, activity *ActivityLogger, logger *slog.Logger) *AdminService {
	return &AdminService{
		listingRepo:   listingRepo,
		reportRepo:    reportRepo,
		userRepo:      userRepo,
		activityRepo:  activityRepo,
		notifications: notifications,
		activity:      activity,
		logger:        logger,
	}
}

// ListListings returns all listings matching the filter for moderation.
func (s *AdminService) ListListings(ctx context.Context, filter models.ListingFilter) ([]*ListingResponse, error) {
	listings, err := s.listingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list listings for moderation", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return toListingResponses(listings), nil
}

// ModerateListing sets a listing's moderation status and/or featured
// flag. Status must be one of ACTIVE, INACTIVE or PENDING. The owner
// is notified when the status changes.
func (s *AdminService) ModerateListing(ctx context.Context, listingID string, status *string, featured *bool) (*ListingResponse, error) {
	if status == nil && featured == nil {
		return nil, models.ErrBadRequest
	}
	if status != nil && !models.ValidModerationStatus(*status) {
		return nil, models.ErrBadRequest
	}

	updated, err := s.listingRepo.UpdateModeration(ctx, listingID, status, featured)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to moderate listing", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if status != nil {
		s.notifications.Notify(ctx, updated.UserID,
			"Listing status updated",
			fmt.Sprintf("Your listing %q is now %s.", updated.Title, *status))
	}

	s.logger.Info("listing moderated", slog.String("listing_id", listingID))
	return toListingResponse(updated), nil
}

// GetListing returns a single listing for moderation review.
func (s *AdminService) GetListing(ctx context.Context, listingID string) (*ListingResponse, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get listing", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return toListingResponse(listing), nil
}

// DeleteListing removes a listing as a moderation action.
func (s *AdminService) DeleteListing(ctx context.Context, listingID string) error {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to get listing for delete", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if err := s.listingRepo.Delete(ctx, listingID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete listing", slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.activity.Log(ctx, models.ActivityListingDeleted,
		"Listing removed by moderation: "+listing.Title,
		map[string]string{"listingId": listingID})

	s.logger.Info("listing deleted by admin", slog.String("listing_id", listingID))
	return nil
}

// GetReport returns a single report with reporter and listing details.
func (s *AdminService) GetReport(ctx context.Context, reportID string) (*ReportResponse, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get report", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return toReportResponse(report), nil
}

// ListReports returns reports matching the filter with reporter and
// listing details.
func (s *AdminService) ListReports(ctx context.Context, filter models.ReportFilter) ([]*ReportResponse, error) {
	if filter.Type != "" && !models.ValidReportType(filter.Type) {
		return nil, models.ErrBadRequest
	}
	if filter.Status != "" && !models.ValidReportStatus(filter.Status) {
		return nil, models.ErrBadRequest
	}

	reports, err := s.reportRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list reports", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	responses := make([]*ReportResponse, 0, len(reports))
	for _, report := range reports {
		responses = append(responses, toReportResponse(report))
	}
	return responses, nil
}

// UpdateReportStatus sets a report's status. Re-setting the current
// status is an idempotent no-op at the storage level. Moving a report
// out of PENDING notifies the reporter of the outcome.
func (s *AdminService) UpdateReportStatus(ctx context.Context, reportID, status string) (*ReportResponse, error) {
	if !models.ValidReportStatus(status) {
		return nil, models.ErrBadRequest
	}

	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get report", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	updated, err := s.reportRepo.UpdateStatus(ctx, reportID, status)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to update report status", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	resolved := status != models.ReportStatusPending && report.Status != status
	if resolved {
		outcome := "resolved"
		if status == models.ReportStatusRejected {
			outcome = "reviewed and rejected"
		}
		s.notifications.Notify(ctx, updated.ReporterID,
			"Report "+status,
			fmt.Sprintf("Your report %q has been %s.", updated.Reason, outcome))

		s.activity.Log(ctx, models.ActivityReportResolved,
			"Report "+status+": "+updated.Reason,
			map[string]string{"reportId": updated.ID})
	}

	s.logger.Info("report status updated",
		slog.String("report_id", reportID),
		slog.String("status", status))
	return toReportResponse(updated), nil
}

// DeleteReport removes a report outright.
func (s *AdminService) DeleteReport(ctx context.Context, reportID string) error {
	if err := s.reportRepo.Delete(ctx, reportID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete report", slog.Any("error", err))
		return models.ErrInternalServer
	}
	return nil
}

// ListUsers returns a page of users for the admin dashboard.
func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]*UserResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("failed to list users", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	responses := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}
	return responses, nil
}

// UpdateUserRole changes a user's role to USER or ADMIN.
func (s *AdminService) UpdateUserRole(ctx context.Context, userID, role string) (*UserResponse, error) {
	if !models.ValidRole(role) {
		return nil, models.ErrBadRequest
	}

	updated, err := s.userRepo.UpdateRole(ctx, userID, role)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to update user role", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.activity.Log(ctx, models.ActivityUserUpdated,
		"User "+updated.Name+" role changed to "+role,
		map[string]string{"userId": updated.ID})

	s.logger.Info("user role updated",
		slog.String("user_id", userID),
		slog.String("role", role))
	return toUserResponse(updated), nil
}

// DeleteUser removes a user account. Admins cannot delete themselves.
func (s *AdminService) DeleteUser(ctx context.Context, callerID, userID string) error {
	if callerID == userID {
		return models.ErrBadRequest
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete user", slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("user deleted",
		slog.String("user_id", userID),
		slog.String("deleted_by", callerID))
	return nil
}

// StatsResponse is the admin dashboard counters payload
type StatsResponse struct {
	TotalUsers     int64 `json:"totalUsers"`
	TotalListings  int64 `json:"totalListings"`
	TotalReports   int64 `json:"totalReports"`
	ActiveListings int64 `json:"activeListings"`
}

// Stats returns aggregate counters for the admin dashboard.
func (s *AdminService) Stats(ctx context.Context) (*StatsResponse, error) {
	totalUsers, err := s.userRepo.CountTotal(ctx)
	if err != nil {
		s.logger.Error("failed to count users", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	totalListings, err := s.listingRepo.CountTotal(ctx)
	if err != nil {
		s.logger.Error("failed to count listings", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	totalReports, err := s.reportRepo.CountTotal(ctx)
	if err != nil {
		s.logger.Error("failed to count reports", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	activeListings, err := s.listingRepo.CountByStatus(ctx, models.ListingStatusActive)
	if err != nil {
		s.logger.Error("failed to count active listings", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return &StatsResponse{
		TotalUsers:     totalUsers,
		TotalListings:  totalListings,
		TotalReports:   totalReports,
		ActiveListings: activeListings,
	}, nil
}

// ActivityResponse is one admin feed entry
type ActivityResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Metadata    string `json:"metadata,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

// RecentActivity returns the latest entries in the admin activity feed.
func (s *AdminService) RecentActivity(ctx context.Context) ([]*ActivityResponse, error) {
	activities, err := s.activityRepo.ListRecent(ctx, activityFeedLimit)
	if err != nil {
		s.logger.Error("failed to list activity", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	responses := make([]*ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		responses = append(responses, &ActivityResponse{
			ID:          activity.ID,
			Type:        activity.Type,
			Description: activity.Description,
			Metadata:    activity.Metadata,
			CreatedAt:   activity.CreatedAt.Format(time.RFC3339),
		})
	}
	return responses, nil
}
