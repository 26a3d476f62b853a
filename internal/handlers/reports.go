package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/squareonerentals/squareone/internal/auth"
	"github.com/squareonerentals/squareone/internal/models"
	"github.com/squareonerentals/squareone/internal/services"
	pkghttp "github.com/squareonerentals/squareone/pkg/http"
)

// ReportServiceInterface defines the interface for report submission
type ReportServiceInterface interface {
	Create(ctx context.Context, reporterID string, input services.CreateReportInput) (*services.ReportResponse, error)
}

// ReportHandler handles report submission HTTP requests
type ReportHandler struct {
	service ReportServiceInterface
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service ReportServiceInterface) *ReportHandler {
	return &ReportHandler{service: service}
}

// CreateReportRequest represents the request body for report submission
type CreateReportRequest struct {
	Type        string `json:"type" validate:"required"`
	TargetID    string `json:"targetId" validate:"required"`
	Reason      string `json:"reason" validate:"required,min=1"`
	Description string `json:"description"`
}

// Create handles POST /reports
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	report, err := h.service.Create(r.Context(), claims.UserID, services.CreateReportInput{
		Type:        req.Type,
		TargetID:    req.TargetID,
		Reason:      req.Reason,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, "Report type must be LISTING or USER and a reason is required")
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "Reported listing not found")
		default:
			writeServiceError(w, err)
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, report)
}
