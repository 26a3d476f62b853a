package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squareonerentals/squareone/internal/models"
)

func TestFavoriteService_Add_Success(t *testing.T) {
	listing := NewTestListing("listing123", "owner1")
	mockListingRepo := &MockListingRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Listing, error) {
			return listing, nil
		},
	}

	added := false
	mockFavoriteRepo := &MockFavoriteRepository{
		AddFunc: func(ctx context.Context, userID, listingID string) error {
			assert.Equal(t, "user123", userID)
			assert.Equal(t, "listing123", listingID)
			added = true
			return nil
		},
	}

	svc := NewFavoriteService(mockFavoriteRepo, mockListingRepo, testLogger())

	err := svc.Add(context.Background(), "user123", "listing123")

	assert.NoError(t, err)
	assert.True(t, added)
}

func TestFavoriteService_Add_UnknownListing(t *testing.T) {
	mockFavoriteRepo := &MockFavoriteRepository{
		AddFunc: func(ctx context.Context, userID, listingID string) error {
			t.Fatal("add should not be reached for a missing listing")
			return nil
		},
	}

	svc := NewFavoriteService(mockFavoriteRepo, &MockListingRepository{}, testLogger())

	err := svc.Add(context.Background(), "user123", "missing")

	assert.Equal(t, models.ErrNotFound, err)
}

func TestFavoriteService_Remove_AbsentFavoriteIsNoOp(t *testing.T) {
	svc := NewFavoriteService(&MockFavoriteRepository{}, &MockListingRepository{}, testLogger())

	err := svc.Remove(context.Background(), "user123", "listing123")

	assert.NoError(t, err)
}

func TestFavoriteService_List(t *testing.T) {
	mockFavoriteRepo := &MockFavoriteRepository{
		ListByUserFunc: func(ctx context.Context, userID string) ([]*models.Listing, error) {
			return []*models.Listing{NewTestListing("listing123", "owner1")}, nil
		},
	}

	svc := NewFavoriteService(mockFavoriteRepo, &MockListingRepository{}, testLogger())

	result, err := svc.List(context.Background(), "user123")

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "listing123", result[0].ID)
}
