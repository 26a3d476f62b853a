package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/squareonerentals/squareone/internal/models"
	"github.com/squareonerentals/squareone/internal/services"
)

type mockFavoriteService struct {
	AddFunc    func(ctx context.Context, userID, listingID string) error
	RemoveFunc func(ctx context.Context, userID, listingID string) error
	ListFunc   func(ctx context.Context, userID string) ([]*services.ListingResponse, error)
}

func (m *mockFavoriteService) Add(ctx context.Context, userID, listingID string) error {
	return m.AddFunc(ctx, userID, listingID)
}

func (m *mockFavoriteService) Remove(ctx context.Context, userID, listingID string) error {
	return m.RemoveFunc(ctx, userID, listingID)
}

func (m *mockFavoriteService) List(ctx context.Context, userID string) ([]*services.ListingResponse, error) {
	return m.ListFunc(ctx, userID)
}

func TestFavoriteHandler_Add_Success(t *testing.T) {
	handler := NewFavoriteHandler(&mockFavoriteService{
		AddFunc: func(ctx context.Context, userID, listingID string) error {
			assert.Equal(t, "user123", userID)
			assert.Equal(t, "listing123", listingID)
			return nil
		},
	})

	req := WithAuthContext(NewTestRequest(t, http.MethodPost, "/favorites/listing123", nil), "user123", "user@example.com")
	req = WithURLParam(req, "listingId", "listing123")
	w := httptest.NewRecorder()

	handler.Add(w, req)

	var resp map[string]string
	AssertJSONResponse(t, w, http.StatusOK, &resp)
}

func TestFavoriteHandler_Add_UnknownListing(t *testing.T) {
	handler := NewFavoriteHandler(&mockFavoriteService{
		AddFunc: func(ctx context.Context, userID, listingID string) error {
			return models.ErrNotFound
		},
	})

	req := WithAuthContext(NewTestRequest(t, http.MethodPost, "/favorites/missing", nil), "user123", "user@example.com")
	req = WithURLParam(req, "listingId", "missing")
	w := httptest.NewRecorder()

	handler.Add(w, req)

	AssertErrorResponse(t, w, http.StatusNotFound)
}

func TestFavoriteHandler_List_RequiresAuth(t *testing.T) {
	handler := NewFavoriteHandler(&mockFavoriteService{})

	req := NewTestRequest(t, http.MethodGet, "/favorites", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	AssertErrorResponse(t, w, http.StatusUnauthorized)
}

func TestFavoriteHandler_Remove_Idempotent(t *testing.T) {
	handler := NewFavoriteHandler(&mockFavoriteService{
		RemoveFunc: func(ctx context.Context, userID, listingID string) error {
			return nil
		},
	})

	req := WithAuthContext(NewTestRequest(t, http.MethodDelete, "/favorites/listing123", nil), "user123", "user@example.com")
	req = WithURLParam(req, "listingId", "listing123")
	w := httptest.NewRecorder()

	handler.Remove(w, req)

	var resp map[string]string
	AssertJSONResponse(t, w, http.StatusOK, &resp)
}
