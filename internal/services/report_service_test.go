package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squareonerentals/squareone/internal/models"
)

func newTestReportService(repo ReportRepository, listingRepo ListingRepository) *ReportService {
	return NewReportService(repo, listingRepo, newTestActivityLogger(), testLogger())
}

func TestReportService_Create_ListingReport(t *testing.T) {
	listing := NewTestListing("listing123", "user123")
	mockListingRepo := &MockListingRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Listing, error) {
			assert.Equal(t, "listing123", id)
			return listing, nil
		},
	}
	mockReportRepo := &MockReportRepository{
		CreateFunc: func(ctx context.Context, report *models.Report) (*models.Report, error) {
			require.NotNil(t, report.ListingID)
			assert.Equal(t, "listing123", *report.ListingID)
			report.ID = "report123"
			report.Status = models.ReportStatusPending
			return report, nil
		},
	}

	svc := newTestReportService(mockReportRepo, mockListingRepo)

	result, err := svc.Create(context.Background(), "reporter1", CreateReportInput{
		Type:     models.ReportTypeListing,
		TargetID: "listing123",
		Reason:   "Misleading photos",
	})

	require.NoError(t, err)
	assert.Equal(t, "report123", result.ID)
	assert.Equal(t, models.ReportStatusPending, result.Status)
	assert.Equal(t, "reporter1", result.ReporterID)
}

func TestReportService_Create_UserReportSkipsListingLookup(t *testing.T) {
	mockListingRepo := &MockListingRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Listing, error) {
			t.Fatal("listing lookup should not happen for user reports")
			return nil, nil
		},
	}
	mockReportRepo := &MockReportRepository{
		CreateFunc: func(ctx context.Context, report *models.Report) (*models.Report, error) {
			assert.Nil(t, report.ListingID)
			report.ID = "report123"
			report.Status = models.ReportStatusPending
			return report, nil
		},
	}

	svc := newTestReportService(mockReportRepo, mockListingRepo)

	result, err := svc.Create(context.Background(), "reporter1", CreateReportInput{
		Type:     models.ReportTypeUser,
		TargetID: "user999",
		Reason:   "Spam messages",
	})

	require.NoError(t, err)
	assert.Equal(t, models.ReportTypeUser, result.Type)
}

func TestReportService_Create_UnknownListing(t *testing.T) {
	svc := newTestReportService(&MockReportRepository{}, &MockListingRepository{})

	result, err := svc.Create(context.Background(), "reporter1", CreateReportInput{
		Type:     models.ReportTypeListing,
		TargetID: "missing",
		Reason:   "Scam",
	})

	assert.Nil(t, result)
	assert.Equal(t, models.ErrNotFound, err)
}

func TestReportService_Create_Validation(t *testing.T) {
	svc := newTestReportService(&MockReportRepository{}, &MockListingRepository{})

	cases := []struct {
		name  string
		input CreateReportInput
	}{
		{"invalid type", CreateReportInput{Type: "BOGUS", TargetID: "x", Reason: "r"}},
		{"empty target", CreateReportInput{Type: models.ReportTypeUser, TargetID: "  ", Reason: "r"}},
		{"empty reason", CreateReportInput{Type: models.ReportTypeUser, TargetID: "x", Reason: ""}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.Create(context.Background(), "reporter1", tc.input)
			assert.Nil(t, result)
			assert.Equal(t, models.ErrBadRequest, err)
		})
	}
}
