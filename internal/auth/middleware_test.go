package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squareonerentals/squareone/internal/models"
)

type mockUserRepo struct {
	GetByIDFunc func(ctx context.Context, id string) (*models.User, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func newTestTokenManager() *TokenManager {
	return NewTokenManager("unit-test-secret-32-characters!!", 15*time.Minute, 24*time.Hour)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_MissingHeader(t *testing.T) {
	handler := Middleware(newTestTokenManager())(okHandler())

	req := httptest.NewRequest("POST", "/listings", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	handler := Middleware(newTestTokenManager())(okHandler())

	req := httptest.NewRequest("POST", "/listings", nil)
	req.Header.Set("Authorization", "Token abc123")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_ValidTokenInjectsClaims(t *testing.T) {
	tm := newTestTokenManager()
	token, err := tm.GenerateAccessToken("user1", "user@example.com")
	require.NoError(t, err)

	var gotClaims *models.TokenClaims
	handler := Middleware(tm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = GetUserFromContext(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/listings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotClaims)
	assert.Equal(t, "user1", gotClaims.UserID)
	assert.Equal(t, "user@example.com", gotClaims.Email)
}

func TestMiddleware_RefreshTokenRejected(t *testing.T) {
	tm := newTestTokenManager()
	token, err := tm.GenerateRefreshToken("user1", "user@example.com")
	require.NoError(t, err)

	handler := Middleware(tm)(okHandler())

	req := httptest.NewRequest("POST", "/listings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_NonAdminForbidden(t *testing.T) {
	tm := newTestTokenManager()
	token, err := tm.GenerateAccessToken("user1", "user@example.com")
	require.NoError(t, err)

	repo := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleUser}, nil
		},
	}

	handler := Middleware(tm)(RequireRole(repo, models.RoleAdmin)(okHandler()))

	req := httptest.NewRequest("GET", "/admin/reports", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_AdminAllowed(t *testing.T) {
	tm := newTestTokenManager()
	token, err := tm.GenerateAccessToken("admin1", "admin@example.com")
	require.NoError(t, err)

	repo := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleAdmin}, nil
		},
	}

	handler := Middleware(tm)(RequireRole(repo, models.RoleAdmin)(okHandler()))

	req := httptest.NewRequest("GET", "/admin/reports", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_DeletedUserUnauthorized(t *testing.T) {
	tm := newTestTokenManager()
	token, err := tm.GenerateAccessToken("ghost", "ghost@example.com")
	require.NoError(t, err)

	repo := &mockUserRepo{}

	handler := Middleware(tm)(RequireRole(repo, models.RoleAdmin)(okHandler()))

	req := httptest.NewRequest("GET", "/admin/reports", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
