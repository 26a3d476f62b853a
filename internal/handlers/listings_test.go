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

type mockListingService struct {
	ListFunc       func(ctx context.Context, filter models.ListingFilter) ([]*services.ListingResponse, error)
	GetByIDFunc    func(ctx context.Context, id string) (*services.ListingResponse, error)
	ListByUserFunc func(ctx context.Context, callerID, userID string) ([]*models.ListingSummary, error)
	CreateFunc     func(ctx context.Context, userID string, input services.CreateListingInput) (*services.ListingResponse, error)
	UpdateFunc     func(ctx context.Context, callerID, listingID string, update models.ListingUpdate) (*services.ListingResponse, error)
	DeleteFunc     func(ctx context.Context, callerID, listingID string) error
}

func (m *mockListingService) List(ctx context.Context, filter models.ListingFilter) ([]*services.ListingResponse, error) {
	return m.ListFunc(ctx, filter)
}

func (m *mockListingService) GetByID(ctx context.Context, id string) (*services.ListingResponse, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockListingService) ListByUser(ctx context.Context, callerID, userID string) ([]*models.ListingSummary, error) {
	return m.ListByUserFunc(ctx, callerID, userID)
}

func (m *mockListingService) Create(ctx context.Context, userID string, input services.CreateListingInput) (*services.ListingResponse, error) {
	return m.CreateFunc(ctx, userID, input)
}

func (m *mockListingService) Update(ctx context.Context, callerID, listingID string, update models.ListingUpdate) (*services.ListingResponse, error) {
	return m.UpdateFunc(ctx, callerID, listingID, update)
}

func (m *mockListingService) Delete(ctx context.Context, callerID, listingID string) error {
	return m.DeleteFunc(ctx, callerID, listingID)
}

func TestListingHandler_List_PublicWithFilters(t *testing.T) {
	handler := NewListingHandler(&mockListingService{
		ListFunc: func(ctx context.Context, filter models.ListingFilter) ([]*services.ListingResponse, error) {
			assert.True(t, filter.Featured)
			assert.Equal(t, models.ListingStatusActive, filter.Status)
			return []*services.ListingResponse{{ID: "listing123", Title: "Loft"}}, nil
		},
	})

	req := NewTestRequest(t, http.MethodGet, "/listings?featured=true&status=ACTIVE", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	var resp []*services.ListingResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Len(t, resp, 1)
}

func TestListingHandler_Get_NotFound(t *testing.T) {
	handler := NewListingHandler(&mockListingService{
		GetByIDFunc: func(ctx context.Context, id string) (*services.ListingResponse, error) {
			return nil, models.ErrNotFound
		},
	})

	req := WithURLParam(NewTestRequest(t, http.MethodGet, "/listings/missing", nil), "id", "missing")
	w := httptest.NewRecorder()

	handler.Get(w, req)

	AssertErrorResponse(t, w, http.StatusNotFound)
}

func TestListingHandler_Create_RequiresAuth(t *testing.T) {
	handler := NewListingHandler(&mockListingService{})

	req := NewTestRequest(t, http.MethodPost, "/listings", CreateListingRequest{Title: "X"})
	w := httptest.NewRecorder()

	handler.Create(w, req)

	AssertErrorResponse(t, w, http.StatusUnauthorized)
}

func TestListingHandler_Create_Success(t *testing.T) {
	handler := NewListingHandler(&mockListingService{
		CreateFunc: func(ctx context.Context, userID string, input services.CreateListingInput) (*services.ListingResponse, error) {
			assert.Equal(t, "user123", userID)
			assert.Equal(t, "Sunny 2BR", input.Title)
			return &services.ListingResponse{ID: "listing123", Title: input.Title, UserID: userID}, nil
		},
	})

	req := WithAuthContext(NewTestRequest(t, http.MethodPost, "/listings", CreateListingRequest{
		Title:       "Sunny 2BR",
		Description: "Bright and airy",
		Price:       1800,
		Location:    "Brooklyn, NY",
	}), "user123", "user@example.com")
	w := httptest.NewRecorder()

	handler.Create(w, req)

	var resp services.ListingResponse
	AssertJSONResponse(t, w, http.StatusCreated, &resp)
	assert.Equal(t, "listing123", resp.ID)
}

func TestListingHandler_Create_ValidationFailure(t *testing.T) {
	handler := NewListingHandler(&mockListingService{})

	req := WithAuthContext(NewTestRequest(t, http.MethodPost, "/listings", map[string]interface{}{
		"title": "No price or location",
	}), "user123", "user@example.com")
	w := httptest.NewRecorder()

	handler.Create(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest)
}

func TestListingHandler_Update_Forbidden(t *testing.T) {
	handler := NewListingHandler(&mockListingService{
		UpdateFunc: func(ctx context.Context, callerID, listingID string, update models.ListingUpdate) (*services.ListingResponse, error) {
			return nil, models.ErrForbidden
		},
	})

	req := WithAuthContext(NewTestRequest(t, http.MethodPatch, "/listings/listing123", map[string]string{
		"title": "Hijacked",
	}), "user999", "other@example.com")
	req = WithURLParam(req, "id", "listing123")
	w := httptest.NewRecorder()

	handler.Update(w, req)

	AssertErrorResponse(t, w, http.StatusForbidden)
}

func TestListingHandler_Delete_Success(t *testing.T) {
	handler := NewListingHandler(&mockListingService{
		DeleteFunc: func(ctx context.Context, callerID, listingID string) error {
			assert.Equal(t, "user123", callerID)
			assert.Equal(t, "listing123", listingID)
			return nil
		},
	})

	req := WithAuthContext(NewTestRequest(t, http.MethodDelete, "/listings/listing123", nil), "user123", "user@example.com")
	req = WithURLParam(req, "id", "listing123")
	w := httptest.NewRecorder()

	handler.Delete(w, req)

	var resp map[string]string
	AssertJSONResponse(t, w, http.StatusOK, &resp)
}

func TestListingHandler_ListByUser_OtherUserForbidden(t *testing.T) {
	handler := NewListingHandler(&mockListingService{
		ListByUserFunc: func(ctx context.Context, callerID, userID string) ([]*models.ListingSummary, error) {
			return nil, models.ErrForbidden
		},
	})

	req := WithAuthContext(NewTestRequest(t, http.MethodGet, "/listings/user/user123", nil), "user999", "other@example.com")
	req = WithURLParam(req, "userId", "user123")
	w := httptest.NewRecorder()

	handler.ListByUser(w, req)

	AssertErrorResponse(t, w, http.StatusForbidden)
}
