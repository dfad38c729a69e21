package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/rahul-nakum14/formcraft/internal/ctxkeys"
	"github.com/rahul-nakum14/formcraft/internal/repository"
	"github.com/rahul-nakum14/formcraft/internal/service"
)

type analyticsHandler struct {
	analyticsService *service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *analyticsHandler {
	return &analyticsHandler{analyticsService: analyticsService}
}

func (h *analyticsHandler) FormAnalytics(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	formID := r.PathValue("id")

	end := time.Now()
	start := end.Add(-service.DefaultAnalyticsRange)

	if raw := r.URL.Query().Get("startDate"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid startDate, expected YYYY-MM-DD")
			return
		}
		start = t
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid endDate, expected YYYY-MM-DD")
			return
		}
		end = t
	}

	analytics, err := h.analyticsService.FormAnalytics(user.ID, formID, start, end)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			respondError(w, http.StatusNotFound, "Form not found")
			return
		}
		slog.Error("failed to load analytics", "error", err, "form_id", formID)
		respondError(w, http.StatusInternalServerError, "Failed to load analytics")
		return
	}

	respondJSON(w, http.StatusOK, analytics)
}

func (h *analyticsHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	stats, err := h.analyticsService.DashboardStats(user.ID)
	if err != nil {
		slog.Error("failed to load dashboard stats", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
