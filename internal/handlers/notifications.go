package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/squareonerentals/squareone/internal/auth"
	"github.com/squareonerentals/squareone/internal/models"
	pkghttp "github.com/squareonerentals/squareone/pkg/http"
)

// NotificationServiceInterface defines the interface for notifications
type NotificationServiceInterface interface {
	ListForUser(ctx context.Context, userID string) ([]*models.Notification, error)
	SetRead(ctx context.Context, id, userID string, read bool) (*models.Notification, error)
}

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	service NotificationServiceInterface
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(service NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// UpdateNotificationRequest represents the request body for the read flag
type UpdateNotificationRequest struct {
	Read *bool `json:"read" validate:"required"`
}

// List handles GET /notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}

	notifications, err := h.service.ListForUser(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, notifications)
}

// Update handles PATCH /notifications/{id}
func (h *NotificationHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}
	id := chi.URLParam(r, "id")

	var req UpdateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Read == nil {
		pkghttp.WriteBadRequest(w, "read flag is required")
		return
	}

	notification, err := h.service.SetRead(r.Context(), id, claims.UserID, *req.Read)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, notification)
}
