package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/squareonerentals/squareone/internal/auth"
	"github.com/squareonerentals/squareone/internal/models"
	"github.com/squareonerentals/squareone/internal/services"
	pkghttp "github.com/squareonerentals/squareone/pkg/http"
)

// AdminServiceInterface defines the interface for moderation operations
type AdminServiceInterface interface {
	ListListings(ctx context.Context, filter models.ListingFilter) ([]*services.ListingResponse, error)
	GetListing(ctx context.Context, listingID string) (*services.ListingResponse, error)
	ModerateListing(ctx context.Context, listingID string, status *string, featured *bool) (*services.ListingResponse, error)
	DeleteListing(ctx context.Context, listingID string) error
	ListReports(ctx context.Context, filter models.ReportFilter) ([]*services.ReportResponse, error)
	GetReport(ctx context.Context, reportID string) (*services.ReportResponse, error)
	UpdateReportStatus(ctx context.Context, reportID, status string) (*services.ReportResponse, error)
	DeleteReport(ctx context.Context, reportID string) error
	ListUsers(ctx context.Context, limit, offset int) ([]*services.UserResponse, error)
	UpdateUserRole(ctx context.Context, userID, role string) (*services.UserResponse, error)
	DeleteUser(ctx context.Context, callerID, userID string) error
	Stats(ctx context.Context) (*services.StatsResponse, error)
	RecentActivity(ctx context.Context) ([]*services.ActivityResponse, error)
}

// AdminHandler handles admin moderation HTTP requests
type AdminHandler struct {
	service AdminServiceInterface
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(service AdminServiceInterface) *AdminHandler {
	return &AdminHandler{service: service}
}

// ModerateListingRequest represents the request body for moderation
type ModerateListingRequest struct {
	Status   *string `json:"status"`
	Featured *bool   `json:"featured"`
}

// UpdateReportRequest represents the request body for a status change
type UpdateReportRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateUserRoleRequest represents the request body for a role change
type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// ListListings handles GET /admin/listings
func (h *AdminHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	filter := models.ListingFilter{
		Featured: r.URL.Query().Get("featured") == "true",
		UserID:   r.URL.Query().Get("userId"),
		Status:   r.URL.Query().Get("status"),
	}

	listings, err := h.service.ListListings(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, listings)
}

// GetListing handles GET /admin/listings/{id}
func (h *AdminHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	listing, err := h.service.GetListing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, listing)
}

// ModerateListing handles PATCH /admin/listings/{id}
func (h *AdminHandler) ModerateListing(w http.ResponseWriter, r *http.Request) {
	var req ModerateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	listing, err := h.service.ModerateListing(r.Context(), chi.URLParam(r, "id"), req.Status, req.Featured)
	if err != nil {
		if errors.Is(err, models.ErrBadRequest) {
			pkghttp.WriteBadRequest(w, "Status must be ACTIVE, INACTIVE or PENDING")
			return
		}
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, listing)
}

// DeleteListing handles DELETE /admin/listings/{id}
func (h *AdminHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteListing(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"message": "Listing deleted"})
}

// ListReports handles GET /reports with type and status filters
func (h *AdminHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	filter := models.ReportFilter{
		Type:   r.URL.Query().Get("type"),
		Status: r.URL.Query().Get("status"),
	}

	reports, err := h.service.ListReports(r.Context(), filter)
	if err != nil {
		if errors.Is(err, models.ErrBadRequest) {
			pkghttp.WriteBadRequest(w, "Unknown report type or status filter")
			return
		}
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, reports)
}

// GetReport handles GET /admin/reports/{id}
func (h *AdminHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.GetReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, report)
}

// UpdateReport handles PATCH /admin/reports/{id}
func (h *AdminHandler) UpdateReport(w http.ResponseWriter, r *http.Request) {
	var req UpdateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	report, err := h.service.UpdateReportStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		if errors.Is(err, models.ErrBadRequest) {
			pkghttp.WriteBadRequest(w, "Status must be PENDING, RESOLVED or REJECTED")
			return
		}
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, report)
}

// DeleteReport handles DELETE /admin/reports/{id}
func (h *AdminHandler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteReport(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"message": "Report deleted"})
}

// ListUsers handles GET /admin/users with limit/offset paging
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	users, err := h.service.ListUsers(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, users)
}

// UpdateUserRole handles PATCH /admin/users/{id}
func (h *AdminHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	user, err := h.service.UpdateUserRole(r.Context(), chi.URLParam(r, "id"), req.Role)
	if err != nil {
		if errors.Is(err, models.ErrBadRequest) {
			pkghttp.WriteBadRequest(w, "Role must be USER or ADMIN")
			return
		}
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /admin/users/{id}
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.DeleteUser(r.Context(), claims.UserID, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, models.ErrBadRequest) {
			pkghttp.WriteBadRequest(w, "You cannot delete your own account")
			return
		}
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

// Stats handles GET /admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, stats)
}

// Activity handles GET /admin/activity
func (h *AdminHandler) Activity(w http.ResponseWriter, r *http.Request) {
	feed, err := h.service.RecentActivity(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, feed)
}
