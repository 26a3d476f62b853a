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

type mockUserService struct {
	GetByIDFunc       func(ctx context.Context, id string) (*services.UserResponse, error)
	ProfileFunc       func(ctx context.Context, id string) (*services.ProfileResponse, error)
	UpdateProfileFunc func(ctx context.Context, userID string, input services.UpdateProfileInput) (*services.UserResponse, error)
}

func (m *mockUserService) GetByID(ctx context.Context, id string) (*services.UserResponse, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockUserService) Profile(ctx context.Context, id string) (*services.ProfileResponse, error) {
	return m.ProfileFunc(ctx, id)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, userID string, input services.UpdateProfileInput) (*services.UserResponse, error) {
	return m.UpdateProfileFunc(ctx, userID, input)
}

func TestUserHandler_Me(t *testing.T) {
	handler := NewUserHandler(&mockUserService{
		GetByIDFunc: func(ctx context.Context, id string) (*services.UserResponse, error) {
			assert.Equal(t, "user123", id)
			return &services.UserResponse{ID: id, Email: "user@example.com", Role: models.RoleUser}, nil
		},
	})

	req := WithAuthContext(NewTestRequest(t, http.MethodGet, "/user", nil), "user123", "user@example.com")
	w := httptest.NewRecorder()

	handler.Me(w, req)

	var resp services.UserResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, "user123", resp.ID)
}

func TestUserHandler_Get_PublicProfileOmitsEmail(t *testing.T) {
	handler := NewUserHandler(&mockUserService{
		ProfileFunc: func(ctx context.Context, id string) (*services.ProfileResponse, error) {
			return &services.ProfileResponse{ID: id, Name: "Other User"}, nil
		},
	})

	req := WithAuthContext(NewTestRequest(t, http.MethodGet, "/users/user999", nil), "user123", "user@example.com")
	req = WithURLParam(req, "id", "user999")
	w := httptest.NewRecorder()

	handler.Get(w, req)

	var resp map[string]interface{}
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, "user999", resp["id"])
	assert.NotContains(t, resp, "email")
}

func TestUserHandler_Update_EmailTaken(t *testing.T) {
	handler := NewUserHandler(&mockUserService{
		UpdateProfileFunc: func(ctx context.Context, userID string, input services.UpdateProfileInput) (*services.UserResponse, error) {
			return nil, models.ErrBadRequest
		},
	})

	req := WithAuthContext(NewTestRequest(t, http.MethodPatch, "/user", map[string]string{
		"email": "taken@example.com",
	}), "user123", "user@example.com")
	w := httptest.NewRecorder()

	handler.Update(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest)
}

func TestUserHandler_Update_RequiresAuth(t *testing.T) {
	handler := NewUserHandler(&mockUserService{})

	req := NewTestRequest(t, http.MethodPatch, "/user", map[string]string{"name": "New"})
	w := httptest.NewRecorder()

	handler.Update(w, req)

	AssertErrorResponse(t, w, http.StatusUnauthorized)
}
