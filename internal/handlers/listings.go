package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/squareonerentals/squareone/internal/auth"
	"github.com/squareonerentals/squareone/internal/models"
	"github.com/squareonerentals/squareone/internal/services"
	pkghttp "github.com/squareonerentals/squareone/pkg/http"
)

// ListingServiceInterface defines the interface for listing business logic
type ListingServiceInterface interface {
	List(ctx context.Context, filter models.ListingFilter) ([]*services.ListingResponse, error)
	GetByID(ctx context.Context, id string) (*services.ListingResponse, error)
	ListByUser(ctx context.Context, callerID, userID string) ([]*models.ListingSummary, error)
	Create(ctx context.Context, userID string, input services.CreateListingInput) (*services.ListingResponse, error)
	Update(ctx context.Context, callerID, listingID string, update models.ListingUpdate) (*services.ListingResponse, error)
	Delete(ctx context.Context, callerID, listingID string) error
}

// ListingHandler handles listing HTTP requests
type ListingHandler struct {
	service ListingServiceInterface
}

// NewListingHandler creates a new ListingHandler
func NewListingHandler(service ListingServiceInterface) *ListingHandler {
	return &ListingHandler{service: service}
}

// CreateListingRequest represents the request body for listing creation
type CreateListingRequest struct {
	Title             string   `json:"title" validate:"required,min=1,max=200"`
	Description       string   `json:"description" validate:"required,min=1"`
	Price             float64  `json:"price" validate:"required,gte=0"`
	Location          string   `json:"location" validate:"required,min=1"`
	Bedrooms          int      `json:"bedrooms" validate:"gte=0"`
	Bathrooms         int      `json:"bathrooms" validate:"gte=0"`
	Size              int      `json:"size" validate:"gte=0"`
	Images            []string `json:"images"`
	Amenities         []string `json:"amenities"`
	BuildingAmenities []string `json:"buildingAmenities"`
	PropertyType      string   `json:"propertyType"`
	LeaseType         string   `json:"leaseType"`
}

// UpdateListingRequest represents the request body for a partial update
type UpdateListingRequest struct {
	Title             *string   `json:"title"`
	Description       *string   `json:"description"`
	Price             *float64  `json:"price"`
	Location          *string   `json:"location"`
	Bedrooms          *int      `json:"bedrooms"`
	Bathrooms         *int      `json:"bathrooms"`
	Size              *int      `json:"size"`
	PropertyType      *string   `json:"propertyType"`
	LeaseType         *string   `json:"leaseType"`
	Images            *[]string `json:"images"`
	Amenities         *[]string `json:"amenities"`
	BuildingAmenities *[]string `json:"buildingAmenities"`
}

func (r *UpdateListingRequest) toUpdate() models.ListingUpdate {
	return models.ListingUpdate{
		Title:             r.Title,
		Description:       r.Description,
		Price:             r.Price,
		Location:          r.Location,
		Bedrooms:          r.Bedrooms,
		Bathrooms:         r.Bathrooms,
		Size:              r.Size,
		PropertyType:      r.PropertyType,
		LeaseType:         r.LeaseType,
		Images:            r.Images,
		Amenities:         r.Amenities,
		BuildingAmenities: r.BuildingAmenities,
	}
}

// List handles GET /listings with optional featured, userId and status
// query filters.
func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := models.ListingFilter{
		Featured: r.URL.Query().Get("featured") == "true",
		UserID:   r.URL.Query().Get("userId"),
		Status:   r.URL.Query().Get("status"),
	}

	listings, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, listings)
}

// Get handles GET /listings/{id}
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	listing, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, listing)
}

// ListByUser handles GET /listings/user/{userId}
func (h *ListingHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}
	userID := chi.URLParam(r, "userId")

	summaries, err := h.service.ListByUser(r.Context(), claims.UserID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, summaries)
}

// Create handles POST /listings
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	listing, err := h.service.Create(r.Context(), claims.UserID, services.CreateListingInput{
		Title:             req.Title,
		Description:       req.Description,
		Price:             req.Price,
		Location:          req.Location,
		Bedrooms:          req.Bedrooms,
		Bathrooms:         req.Bathrooms,
		Size:              req.Size,
		Images:            req.Images,
		Amenities:         req.Amenities,
		BuildingAmenities: req.BuildingAmenities,
		PropertyType:      req.PropertyType,
		LeaseType:         req.LeaseType,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, listing)
}

// Update handles PATCH /listings/{id}
func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}
	id := chi.URLParam(r, "id")

	var req UpdateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	listing, err := h.service.Update(r.Context(), claims.UserID, id, req.toUpdate())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, listing)
}

// Delete handles DELETE /listings/{id}
func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "Authentication required")
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), claims.UserID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"message": "Listing deleted"})
}
