package routes

import (
	"net/http"

	"github.com/rahul-nakum14/formcraft/internal/app"
	"github.com/rahul-nakum14/formcraft/internal/handler"
	"github.com/rahul-nakum14/formcraft/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService, app.SubscriptionService)
	form := handler.NewFormHandler(app.FormService, app.SubmissionService, app.UploadService)
	public := handler.NewPublicHandler(app.FormService, app.SubmissionService, app.AnalyticsService, app.UploadService)
	analytics := handler.NewAnalyticsHandler(app.AnalyticsService)
	billing := handler.NewBillingHandler(app.PaymentService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Public form endpoints (rate limited)
	publicLimiter := middleware.RateLimitPublic()

	mux.HandleFunc("GET /api/public/forms/{id}", public.Form)
	mux.HandleFunc("POST /api/public/forms/{id}/view", publicLimiter(public.RecordView))
	mux.HandleFunc("POST /api/public/forms/{id}/submit", publicLimiter(public.Submit))
	mux.HandleFunc("POST /api/public/forms/{id}/files", publicLimiter(public.UploadFile))

	// Auth (rate limited)
	authLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("POST /api/auth/register", authLimiter(auth.Register))
	mux.HandleFunc("POST /api/auth/login", authLimiter(auth.Login))
	mux.HandleFunc("POST /api/auth/logout", auth.Logout)
	mux.HandleFunc("GET /api/auth/verify-email/{token}", auth.VerifyEmail)
	mux.HandleFunc("POST /api/auth/forgot-password", authLimiter(auth.ForgotPassword))
	mux.HandleFunc("POST /api/auth/reset-password", authLimiter(auth.ResetPassword))

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(auth.Profile))

	// Forms
	mux.HandleFunc("GET /api/forms", middleware.RequireAuth(form.List))
	mux.HandleFunc("POST /api/forms", middleware.RequireAuth(form.Create))
	mux.HandleFunc("GET /api/forms/{id}", middleware.RequireAuth(form.Get))
	mux.HandleFunc("PUT /api/forms/{id}", middleware.RequireAuth(form.Update))
	mux.HandleFunc("DELETE /api/forms/{id}", middleware.RequireAuth(form.Delete))
	mux.HandleFunc("GET /api/forms/{id}/submissions", middleware.RequireAuth(form.ListSubmissions))
	mux.HandleFunc("GET /api/forms/{id}/analytics", middleware.RequireAuth(analytics.FormAnalytics))

	// Dashboard
	mux.HandleFunc("GET /api/dashboard/stats", middleware.RequireAuth(analytics.DashboardStats))

	// Billing
	mux.HandleFunc("POST /api/billing/checkout", middleware.RequireAuth(billing.CreateCheckout))
	mux.HandleFunc("GET /api/billing/portal", middleware.RequireAuth(billing.CustomerPortal))

	// ============================================================================
	// WEBHOOKS
	// ============================================================================

	mux.HandleFunc("POST /webhooks/payment", billing.Webhook)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg),
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService, app.SubscriptionService),
	)

	return handler
}
