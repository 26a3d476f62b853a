package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/squareonerentals/squareone/internal/auth"
	"github.com/squareonerentals/squareone/internal/handlers"
	"github.com/squareonerentals/squareone/internal/middleware"
	"github.com/squareonerentals/squareone/internal/models"
	pkghttp "github.com/squareonerentals/squareone/pkg/http"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Listing      *handlers.ListingHandler
	Favorite     *handlers.FavoriteHandler
	Report       *handlers.ReportHandler
	Notification *handlers.NotificationHandler
	Admin        *handlers.AdminHandler
	Upload       *handlers.UploadHandler
}

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	h Handlers,
	tokenManager *auth.TokenManager,
	userRepo auth.UserRepository,
) {
	authRateLimit := middleware.RateLimitByIP(middleware.DefaultAuthRateLimit())
	uploadRateLimit := middleware.RateLimitByIP(middleware.DefaultUploadRateLimit())

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public routes - no authentication required
	router.Get("/listings", h.Listing.List)
	router.Get("/listings/{id}", h.Listing.Get)

	// Auth endpoints - rate limited per IP
	router.Group(func(r chi.Router) {
		r.Use(authRateLimit)

		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/refresh", h.Auth.Refresh)
		r.Post("/auth/oauth/google", h.Auth.GoogleSignIn)
		r.Post("/auth/forgot-password", h.Auth.ForgotPassword)
		r.Post("/auth/reset-password", h.Auth.ResetPassword)
	})

	// Protected routes - authentication required
	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(tokenManager))

		r.Post("/listings", h.Listing.Create)
		r.Patch("/listings/{id}", h.Listing.Update)
		r.Delete("/listings/{id}", h.Listing.Delete)
		r.Get("/listings/user/{userId}", h.Listing.ListByUser)

		r.Get("/favorites", h.Favorite.List)
		r.Post("/favorites/{listingId}", h.Favorite.Add)
		r.Delete("/favorites/{listingId}", h.Favorite.Remove)

		r.Post("/reports", h.Report.Create)

		r.Get("/notifications", h.Notification.List)
		r.Patch("/notifications/{id}", h.Notification.Update)

		r.Get("/user", h.User.Me)
		r.Patch("/user", h.User.Update)
		r.Get("/users/{id}", h.User.Get)

		r.With(uploadRateLimit).Post("/upload", h.Upload.Upload)

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(userRepo, models.RoleAdmin))

			r.Get("/reports", h.Admin.ListReports)

			r.Get("/admin/listings", h.Admin.ListListings)
			r.Get("/admin/listings/{id}", h.Admin.GetListing)
			r.Patch("/admin/listings/{id}", h.Admin.ModerateListing)
			r.Delete("/admin/listings/{id}", h.Admin.DeleteListing)

			r.Get("/admin/reports", h.Admin.ListReports)
			r.Get("/admin/reports/{id}", h.Admin.GetReport)
			r.Patch("/admin/reports/{id}", h.Admin.UpdateReport)
			r.Delete("/admin/reports/{id}", h.Admin.DeleteReport)

			r.Get("/admin/users", h.Admin.ListUsers)
			r.Patch("/admin/users/{id}", h.Admin.UpdateUserRole)
			r.Delete("/admin/users/{id}", h.Admin.DeleteUser)

			r.Get("/admin/stats", h.Admin.Stats)
			r.Get("/admin/activity", h.Admin.Activity)
		})
	})
}
