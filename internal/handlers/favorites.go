package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/squareonerentals/squareone/internal/auth"
	"github.com/squareonerentals/squareone/internal/services"
	pkghttp "github.com/squareonerentals/squareone/pkg/http"
)

// FavoriteServiceInterface defines the interface for favorite business logic
type FavoriteServiceInterface interface {
	Add(ctx context.Context, userID, listingID string) error
	Remove(ctx context.Context, userID, listingID string) error
	List(ctx context.Context, userID string) ([]*services.ListingResponse, error)
}

// FavoriteHandler handles favorite HTTP requests
type FavoriteHandler struct {
	service FavoriteServiceInterface
}

// NewFavoriteHandler creates a new FavoriteHandler
func NewFavoriteHandler(service FavoriteServiceInterface) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// List handles GET /favorites
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}

	listings, err := h.service.List(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, listings)
}

// Add handles POST /favorites/{listingId}
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}
	listingID := chi.URLParam(r, "listingId")

	if err := h.service.Add(r.Context(), claims.UserID, listingID); err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"message": "Listing saved to favorites"})
}

// Remove handles DELETE /favorites/{listingId}
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}
	listingID := chi.URLParam(r, "listingId")

	if err := h.service.Remove(r.Context(), claims.UserID, listingID); err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"message": "Listing removed from favorites"})
}
