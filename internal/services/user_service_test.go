package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squareonerentals/squareone/internal/models"
	pkgauth "github.com/squareonerentals/squareone/pkg/auth"
)

func TestUserService_GetByID_Success(t *testing.T) {
	user := NewTestUser("user123", "user@example.com", "Test User")
	mockUserRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return user, nil
		},
	}

	svc := NewUserService(mockUserRepo, newTestActivityLogger(), testLogger())

	result, err := svc.GetByID(context.Background(), "user123")

	require.NoError(t, err)
	assert.Equal(t, "user123", result.ID)
	assert.Equal(t, "user@example.com", result.Email)
	assert.False(t, result.EmailVerified)
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	svc := NewUserService(&MockUserRepository{}, newTestActivityLogger(), testLogger())

	result, err := svc.GetByID(context.Background(), "missing")

	assert.Nil(t, result)
	assert.Equal(t, models.ErrNotFound, err)
}

func TestUserService_UpdateProfile_Success(t *testing.T) {
	user := NewTestUser("user123", "user@example.com", "Old Name")
	mockUserRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return user, nil
		},
		UpdateFunc: func(ctx context.Context, id string, u *models.User) (*models.User, error) {
			return u, nil
		},
	}
	activityRepo := &MockActivityRepository{}

	svc := NewUserService(mockUserRepo, NewActivityLogger(activityRepo, testLogger()), testLogger())

	name := "  New Name "
	image := "https://cdn.example.com/avatar.png"
	result, err := svc.UpdateProfile(context.Background(), "user123", UpdateProfileInput{Name: &name, Image: &image})

	require.NoError(t, err)
	assert.Equal(t, "New Name", result.Name)
	assert.Equal(t, image, result.Image)
	require.Len(t, activityRepo.Recorded, 1)
	assert.Equal(t, models.ActivityUserUpdated, activityRepo.Recorded[0].Type)
}

func TestUserService_UpdateProfile_EmailTaken(t *testing.T) {
	user := NewTestUser("user123", "user@example.com", "Test User")
	other := NewTestUser("user999", "taken@example.com", "Other")

	mockUserRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return user, nil
		},
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return other, nil
		},
	}

	svc := NewUserService(mockUserRepo, newTestActivityLogger(), testLogger())

	email := "taken@example.com"
	result, err := svc.UpdateProfile(context.Background(), "user123", UpdateProfileInput{Email: &email})

	assert.Nil(t, result)
	assert.Equal(t, models.ErrBadRequest, err)
}

func TestUserService_UpdateProfile_PasswordChangeRequiresCurrent(t *testing.T) {
	user := NewTestUser("user123", "user@example.com", "Test User")
	hash, err := pkgauth.HashPassword("current-password")
	require.NoError(t, err)
	user.PasswordHash = hash

	mockUserRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return user, nil
		},
	}

	svc := NewUserService(mockUserRepo, newTestActivityLogger(), testLogger())

	wrong := "not-the-password"
	newPassword := "brand-new-password"
	result, err := svc.UpdateProfile(context.Background(), "user123", UpdateProfileInput{
		CurrentPassword: &wrong,
		NewPassword:     &newPassword,
	})

	assert.Nil(t, result)
	assert.Equal(t, models.ErrBadRequest, err)
}

func TestUserService_UpdateProfile_PasswordChangeOAuthOnly(t *testing.T) {
	user := NewTestUser("user123", "user@example.com", "Test User")
	// No password hash: OAuth-only account.

	mockUserRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return user, nil
		},
	}

	svc := NewUserService(mockUserRepo, newTestActivityLogger(), testLogger())

	current := "anything"
	newPassword := "brand-new-password"
	result, err := svc.UpdateProfile(context.Background(), "user123", UpdateProfileInput{
		CurrentPassword: &current,
		NewPassword:     &newPassword,
	})

	assert.Nil(t, result)
	assert.Equal(t, models.ErrBadRequest, err)
}

func TestUserService_UpdateProfile_EmptyName(t *testing.T) {
	user := NewTestUser("user123", "user@example.com", "Old Name")
	mockUserRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return user, nil
		},
	}

	svc := NewUserService(mockUserRepo, newTestActivityLogger(), testLogger())

	name := "   "
	result, err := svc.UpdateProfile(context.Background(), "user123", UpdateProfileInput{Name: &name})

	assert.Nil(t, result)
	assert.Equal(t, models.ErrBadRequest, err)
}
