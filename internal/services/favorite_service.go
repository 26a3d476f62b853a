package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/squareonerentals/squareone/internal/models"
)

// FavoriteRepository defines the interface for favorite data operations
type FavoriteRepository interface {
	Add(ctx context.Context, userID, listingID string) error
	Remove(ctx context.Context, userID, listingID string) error
	ListByUser(ctx context.Context, userID string) ([]*models.Listing, error)
	Exists(ctx context.Context, userID, listingID string) (bool, error)
}

// FavoriteService handles favorite business logic
type FavoriteService struct {
	repo        FavoriteRepository
	listingRepo ListingRepository
	logger      *slog.Logger
}

// NewFavoriteService creates a new FavoriteService
func NewFavoriteService(repo FavoriteRepository, listingRepo ListingRepository, logger *slog.Logger) *FavoriteService {
	return &FavoriteService{repo: repo, listingRepo: listingRepo, logger: logger}
}

// Add marks a listing as a favorite of the user. Adding an existing
// favorite is a no-op.
func (s *FavoriteService) Add(ctx context.Context, userID, listingID string) error {
	if _, err := s.listingRepo.GetByID(ctx, listingID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to verify listing for favorite", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if err := s.repo.Add(ctx, userID, listingID); err != nil {
		s.logger.Error("failed to add favorite", slog.Any("error", err))
		return models.ErrInternalServer
	}
	return nil
}

// Remove unmarks a favorite. Removing an absent favorite is a no-op.
func (s *FavoriteService) Remove(ctx context.Context, userID, listingID string) error {
	if err := s.repo.Remove(ctx, userID, listingID); err != nil {
		s.logger.Error("failed to remove favorite", slog.Any("error", err))
		return models.ErrInternalServer
	}
	return nil
}

// List returns the user's favorited listings, most recently saved first.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]*ListingResponse, error) {
	listings, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list favorites", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return toListingResponses(listings), nil
}

// IsFavorite reports whether the user has favorited the listing.
func (s *FavoriteService) IsFavorite(ctx context.Context, userID, listingID string) (bool, error) {
	exists, err := s.repo.Exists(ctx, userID, listingID)
	if err != nil {
		s.logger.Error("failed to check favorite", slog.Any("error", err))
		return false, models.ErrInternalServer
	}
	return exists, nil
}
