package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/squareonerentals/squareone/internal/auth"
	"github.com/squareonerentals/squareone/internal/models"
)

// MockUserRepository implements UserRepository for testing
type MockUserRepository struct {
	GetByIDFunc        func(ctx context.Context, id string) (*models.User, error)
	GetByEmailFunc     func(ctx context.Context, email string) (*models.User, error)
	ListFunc           func(ctx context.Context, limit, offset int) ([]*models.User, error)
	CreateFunc         func(ctx context.Context, user *models.User) (*models.User, error)
	UpdateFunc         func(ctx context.Context, id string, user *models.User) (*models.User, error)
	UpdatePasswordFunc func(ctx context.Context, id, passwordHash string) error
	UpdateRoleFunc     func(ctx context.Context, id, role string) (*models.User, error)
	DeleteFunc         func(ctx context.Context, id string) error
	CountTotalFunc     func(ctx context.Context) (int64, error)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []*models.User{}, nil
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) Update(ctx context.Context, id string, user *models.User) (*models.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id, role string) (*models.User, error) {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, id, role)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) CountTotal(ctx context.Context) (int64, error) {
	if m.CountTotalFunc != nil {
		return m.CountTotalFunc(ctx)
	}
	return 0, nil
}

// MockListingRepository implements ListingRepository for testing
type MockListingRepository struct {
	GetByIDFunc             func(ctx context.Context, id string) (*models.Listing, error)
	ListFunc                func(ctx context.Context, filter models.ListingFilter) ([]*models.Listing, error)
	ListSummariesByUserFunc func(ctx context.Context, userID string) ([]*models.ListingSummary, error)
	CreateFunc              func(ctx context.Context, listing *models.Listing) (*models.Listing, error)
	UpdateFunc              func(ctx context.Context, id string, update models.ListingUpdate) (*models.Listing, error)
	UpdateModerationFunc    func(ctx context.Context, id string, status *string, featured *bool) (*models.Listing, error)
	DeleteFunc              func(ctx context.Context, id string) error
	CountTotalFunc          func(ctx context.Context) (int64, error)
	CountByStatusFunc       func(ctx context.Context, status string) (int64, error)
}

func (m *MockListingRepository) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockListingRepository) List(ctx context.Context, filter models.ListingFilter) ([]*models.Listing, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []*models.Listing{}, nil
}

func (m *MockListingRepository) ListSummariesByUser(ctx context.Context, userID string) ([]*models.ListingSummary, error) {
	if m.ListSummariesByUserFunc != nil {
		return m.ListSummariesByUserFunc(ctx, userID)
	}
	return []*models.ListingSummary{}, nil
}

func (m *MockListingRepository) Create(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, listing)
	}
	return nil, models.ErrInternalServer
}

func (m *MockListingRepository) Update(ctx context.Context, id string, update models.ListingUpdate) (*models.Listing, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, update)
	}
	return nil, models.ErrInternalServer
}

func (m *MockListingRepository) UpdateModeration(ctx context.Context, id string, status *string, featured *bool) (*models.Listing, error) {
	if m.UpdateModerationFunc != nil {
		return m.UpdateModerationFunc(ctx, id, status, featured)
	}
	return nil, models.ErrInternalServer
}

func (m *MockListingRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockListingRepository) CountTotal(ctx context.Context) (int64, error) {
	if m.CountTotalFunc != nil {
		return m.CountTotalFunc(ctx)
	}
	return 0, nil
}

func (m *MockListingRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, status)
	}
	return 0, nil
}

// MockFavoriteRepository implements FavoriteRepository for testing
type MockFavoriteRepository struct {
	AddFunc        func(ctx context.Context, userID, listingID string) error
	RemoveFunc     func(ctx context.Context, userID, listingID string) error
	ListByUserFunc func(ctx context.Context, userID string) ([]*models.Listing, error)
	ExistsFunc     func(ctx context.Context, userID, listingID string) (bool, error)
}

func (m *MockFavoriteRepository) Add(ctx context.Context, userID, listingID string) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, userID, listingID)
	}
	return nil
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, listingID string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, userID, listingID)
	}
	return nil
}

func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID string) ([]*models.Listing, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return []*models.Listing{}, nil
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, listingID string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, userID, listingID)
	}
	return false, nil
}

// MockReportRepository implements ReportRepository for testing
type MockReportRepository struct {
	CreateFunc       func(ctx context.Context, report *models.Report) (*models.Report, error)
	GetByIDFunc      func(ctx context.Context, id string) (*models.Report, error)
	ListFunc         func(ctx context.Context, filter models.ReportFilter) ([]*models.Report, error)
	UpdateStatusFunc func(ctx context.Context, id, status string) (*models.Report, error)
	DeleteFunc       func(ctx context.Context, id string) error
	CountTotalFunc   func(ctx context.Context) (int64, error)
}

func (m *MockReportRepository) Create(ctx context.Context, report *models.Report) (*models.Report, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, report)
	}
	return nil, models.ErrInternalServer
}

func (m *MockReportRepository) GetByID(ctx context.Context, id string) (*models.Report, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockReportRepository) List(ctx context.Context, filter models.ReportFilter) ([]*models.Report, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []*models.Report{}, nil
}

func (m *MockReportRepository) UpdateStatus(ctx context.Context, id, status string) (*models.Report, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil, models.ErrInternalServer
}

func (m *MockReportRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockReportRepository) CountTotal(ctx context.Context) (int64, error) {
	if m.CountTotalFunc != nil {
		return m.CountTotalFunc(ctx)
	}
	return 0, nil
}

// MockNotificationRepository implements NotificationRepository for testing
type MockNotificationRepository struct {
	CreateFunc     func(ctx context.Context, n *models.Notification) (*models.Notification, error)
	ListByUserFunc func(ctx context.Context, userID string) ([]*models.Notification, error)
	SetReadFunc    func(ctx context.Context, id, userID string, read bool) (*models.Notification, error)
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, n)
	}
	n.ID = "notification-id"
	return n, nil
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return []*models.Notification{}, nil
}

func (m *MockNotificationRepository) SetRead(ctx context.Context, id, userID string, read bool) (*models.Notification, error) {
	if m.SetReadFunc != nil {
		return m.SetReadFunc(ctx, id, userID, read)
	}
	return nil, models.ErrNotFound
}

// MockActivityRepository implements ActivityRepository for testing
type MockActivityRepository struct {
	CreateFunc     func(ctx context.Context, activity *models.Activity) error
	ListRecentFunc func(ctx context.Context, limit int) ([]*models.Activity, error)

	Recorded []*models.Activity
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, activity)
	}
	m.Recorded = append(m.Recorded, activity)
	return nil
}

func (m *MockActivityRepository) ListRecent(ctx context.Context, limit int) ([]*models.Activity, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return []*models.Activity{}, nil
}

// MockPasswordResetRepository implements PasswordResetRepository for testing
type MockPasswordResetRepository struct {
	CreateFunc        func(ctx context.Context, userID, token string, expiresAt time.Time) (*models.PasswordReset, error)
	GetByTokenFunc    func(ctx context.Context, token string) (*models.PasswordReset, error)
	MarkUsedFunc      func(ctx context.Context, id string) error
	DeleteExpiredFunc func(ctx context.Context) (int64, error)
}

func (m *MockPasswordResetRepository) Create(ctx context.Context, userID, token string, expiresAt time.Time) (*models.PasswordReset, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, token, expiresAt)
	}
	return &models.PasswordReset{ID: "reset-id", UserID: userID, Token: token, ExpiresAt: expiresAt}, nil
}

func (m *MockPasswordResetRepository) GetByToken(ctx context.Context, token string) (*models.PasswordReset, error) {
	if m.GetByTokenFunc != nil {
		return m.GetByTokenFunc(ctx, token)
	}
	return nil, models.ErrNotFound
}

func (m *MockPasswordResetRepository) MarkUsed(ctx context.Context, id string) error {
	if m.MarkUsedFunc != nil {
		return m.MarkUsedFunc(ctx, id)
	}
	return nil
}

func (m *MockPasswordResetRepository) DeleteExpired(ctx context.Context) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx)
	}
	return 0, nil
}

// MockEmailService implements EmailService for testing
type MockEmailService struct {
	SendPasswordResetEmailFunc func(ctx context.Context, email, token string) error

	SentTo     []string
	SentTokens []string
}

func (m *MockEmailService) SendPasswordResetEmail(ctx context.Context, email, token string) error {
	if m.SendPasswordResetEmailFunc != nil {
		return m.SendPasswordResetEmailFunc(ctx, email, token)
	}
	m.SentTo = append(m.SentTo, email)
	m.SentTokens = append(m.SentTokens, token)
	return nil
}

// MockOAuthExchanger implements OAuthExchanger for testing
type MockOAuthExchanger struct {
	ExchangeFunc func(ctx context.Context, code string) (*auth.OAuthProfile, error)
}

func (m *MockOAuthExchanger) Exchange(ctx context.Context, code string) (*auth.OAuthProfile, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code)
	}
	return nil, models.ErrUnauthorized
}

// MockUploadService implements UploadService for testing
type MockUploadService struct {
	UploadFunc func(ctx context.Context, file io.Reader, filename string) (*UploadResult, error)
}

func (m *MockUploadService) Upload(ctx context.Context, file io.Reader, filename string) (*UploadResult, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, file, filename)
	}
	return &UploadResult{URL: "https://res.example.com/image.jpg", PublicID: "listings/image"}, nil
}

// NewTestUser builds a user with sensible defaults for tests
func NewTestUser(id, email, name string) *models.User {
	now := time.Now()
	return &models.User{
		ID:        id,
		Email:     email,
		Name:      name,
		Role:      models.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestListing builds a listing owned by userID for tests
func NewTestListing(id, userID string) *models.Listing {
	now := time.Now()
	return &models.Listing{
		ID:           id,
		Title:        "Sunny 2BR near the park",
		Description:  "Bright apartment with balcony",
		Price:        1800,
		Location:     "Brooklyn, NY",
		Bedrooms:     2,
		Bathrooms:    1,
		Size:         75,
		Images:       []string{"https://cdn.example.com/1.jpg"},
		PropertyType: models.DefaultPropertyType,
		LeaseType:    models.DefaultLeaseType,
		Status:       models.ListingStatusAvailable,
		UserID:       userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestActivityLogger() *ActivityLogger {
	return NewActivityLogger(&MockActivityRepository{}, testLogger())
}
