package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/squareonerentals/squareone/internal/auth"
	"github.com/squareonerentals/squareone/internal/models"
	"github.com/squareonerentals/squareone/pkg/listfield"
)

// ListingRepository defines the interface for listing data operations
type ListingRepository interface {
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	List(ctx context.Context, filter models.ListingFilter) ([]*models.Listing, error)
	ListSummariesByUser(ctx context.Context, userID string) ([]*models.ListingSummary, error)
	Create(ctx context.Context, listing *models.Listing) (*models.Listing, error)
	Update(ctx context.Context, id string, update models.ListingUpdate) (*models.Listing, error)
	UpdateModeration(ctx context.Context, id string, status *string, featured *bool) (*models.Listing, error)
	Delete(ctx context.Context, id string) error
	CountTotal(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// ListingService handles listing business logic
type ListingService struct {
	repo       ListingRepository
	userRepo   UserRepository
	activity   *ActivityLogger
	siteOrigin string
	logger     *slog.Logger
}

// NewListingService creates a new ListingService
func NewListingService(repo ListingRepository, userRepo UserRepository, activity *ActivityLogger, siteOrigin string, logger *slog.Logger) *ListingService {
	return &ListingService{
		repo:       repo,
		userRepo:   userRepo,
		activity:   activity,
		siteOrigin: siteOrigin,
		logger:     logger,
	}
}

// ListingResponse represents a listing in HTTP responses
type ListingResponse struct {
	ID                string              `json:"id"`
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	Price             float64             `json:"price"`
	Location          string              `json:"location"`
	Bedrooms          int                 `json:"bedrooms"`
	Bathrooms         int                 `json:"bathrooms"`
	Size              int                 `json:"size"`
	Images            []string            `json:"images"`
	Amenities         []string            `json:"amenities"`
	BuildingAmenities []string            `json:"buildingAmenities"`
	PropertyType      string              `json:"propertyType"`
	LeaseType         string              `json:"leaseType"`
	Status            string              `json:"status"`
	Featured          bool                `json:"featured"`
	UserID            string              `json:"userId"`
	CreatedAt         string              `json:"createdAt"`
	UpdatedAt         string              `json:"updatedAt"`
	User              *models.UserSummary `json:"user,omitempty"`
}

func toListingResponse(listing *models.Listing) *ListingResponse {
	return &ListingResponse{
		ID:                listing.ID,
		Title:             listing.Title,
		Description:       listing.Description,
		Price:             listing.Price,
		Location:          listing.Location,
		Bedrooms:          listing.Bedrooms,
		Bathrooms:         listing.Bathrooms,
		Size:              listing.Size,
		Images:            nonNil(listing.Images),
		Amenities:         nonNil(listing.Amenities),
		BuildingAmenities: nonNil(listing.BuildingAmenities),
		PropertyType:      listing.PropertyType,
		LeaseType:         listing.LeaseType,
		Status:            listing.Status,
		Featured:          listing.Featured,
		UserID:            listing.UserID,
		CreatedAt:         listing.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         listing.UpdatedAt.Format(time.RFC3339),
		User:              listing.Owner,
	}
}

func toListingResponses(listings []*models.Listing) []*ListingResponse {
	responses := make([]*ListingResponse, 0, len(listings))
	for _, listing := range listings {
		responses = append(responses, toListingResponse(listing))
	}
	return responses
}

// nonNil guarantees list fields serialize to [] rather than null.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// List returns listings matching the filter, newest first.
func (s *ListingService) List(ctx context.Context, filter models.ListingFilter) ([]*ListingResponse, error) {
	listings, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list listings", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return toListingResponses(listings), nil
}

// GetByID returns a single listing with its owner summary.
func (s *ListingService) GetByID(ctx context.Context, id string) (*ListingResponse, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get listing", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return toListingResponse(listing), nil
}

// ListByUser returns compact summaries of a user's listings. Callers
// may only read their own listings unless they are an admin.
func (s *ListingService) ListByUser(ctx context.Context, callerID, userID string) ([]*models.ListingSummary, error) {
	if callerID != userID {
		caller, err := s.callerUser(ctx, callerID)
		if err != nil {
			return nil, err
		}
		if !caller.IsAdmin() {
			return nil, models.ErrForbidden
		}
	}

	summaries, err := s.repo.ListSummariesByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list user listings", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return summaries, nil
}

// CreateListingInput carries the fields accepted on listing creation.
type CreateListingInput struct {
	Title             string
	Description       string
	Price             float64
	Location          string
	Bedrooms          int
	Bathrooms         int
	Size              int
	Images            []string
	Amenities         []string
	BuildingAmenities []string
	PropertyType      string
	LeaseType         string
}

// Create stores a new listing owned by userID. Relative image URLs are
// rewritten against the configured site origin before persistence.
func (s *ListingService) Create(ctx context.Context, userID string, input CreateListingInput) (*ListingResponse, error) {
	listing := &models.Listing{
		Title:             input.Title,
		Description:       input.Description,
		Price:             input.Price,
		Location:          input.Location,
		Bedrooms:          input.Bedrooms,
		Bathrooms:         input.Bathrooms,
		Size:              input.Size,
		Images:            listfield.NormalizeImageURLs(input.Images, s.siteOrigin),
		Amenities:         input.Amenities,
		BuildingAmenities: input.BuildingAmenities,
		PropertyType:      input.PropertyType,
		LeaseType:         input.LeaseType,
		UserID:            userID,
	}

	created, err := s.repo.Create(ctx, listing)
	if err != nil {
		s.logger.Error("failed to create listing", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("listing created",
		slog.String("listing_id", created.ID),
		slog.String("user_id", userID))
	s.activity.Log(ctx, models.ActivityListingCreated,
		"New listing created: "+created.Title,
		map[string]string{"listingId": created.ID, "userId": userID})

	return toListingResponse(created), nil
}

// Update applies a partial update to a listing. Only the owner or an
// admin may update; anyone else gets ErrForbidden.
func (s *ListingService) Update(ctx context.Context, callerID, listingID string, update models.ListingUpdate) (*ListingResponse, error) {
	listing, err := s.repo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get listing for update", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	caller, err := s.callerUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !auth.CanManageResource(caller, listing.UserID) {
		return nil, models.ErrForbidden
	}

	if update.Images != nil {
		normalized := listfield.NormalizeImageURLs(*update.Images, s.siteOrigin)
		update.Images = &normalized
	}

	updated, err := s.repo.Update(ctx, listingID, update)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to update listing", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.activity.Log(ctx, models.ActivityListingUpdated,
		"Listing updated: "+updated.Title,
		map[string]string{"listingId": updated.ID, "userId": callerID})

	return toListingResponse(updated), nil
}

// Delete removes a listing. Only the owner or an admin may delete.
func (s *ListingService) Delete(ctx context.Context, callerID, listingID string) error {
	listing, err := s.repo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to get listing for delete", slog.Any("error", err))
		return models.ErrInternalServer
	}

	caller, err := s.callerUser(ctx, callerID)
	if err != nil {
		return err
	}
	if !auth.CanManageResource(caller, listing.UserID) {
		return models.ErrForbidden
	}

	if err := s.repo.Delete(ctx, listingID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete listing", slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("listing deleted",
		slog.String("listing_id", listingID),
		slog.String("user_id", callerID))
	s.activity.Log(ctx, models.ActivityListingDeleted,
		"Listing deleted: "+listing.Title,
		map[string]string{"listingId": listingID, "userId": callerID})

	return nil
}

func (s *ListingService) callerUser(ctx context.Context, callerID string) (*models.User, error) {
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthorized
		}
		s.logger.Error("failed to load caller", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return caller, nil
}
