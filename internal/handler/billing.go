package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/rahul-nakum14/formcraft/internal/ctxkeys"
	"github.com/rahul-nakum14/formcraft/internal/service/payment"
)

type billingHandler struct {
	paymentService payment.Provider
}

func NewBillingHandler(paymentService payment.Provider) *billingHandler {
	return &billingHandler{paymentService: paymentService}
}

func (h *billingHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		PlanID   string `json:"planId"`
		Interval string `json:"interval"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.PlanID == "" {
		respondError(w, http.StatusBadRequest, "Invalid plan selected")
		return
	}
	if req.Interval == "" {
		req.Interval = "monthly"
	}

	checkoutURL, err := h.paymentService.CreateCheckoutURL(user.ID, req.PlanID, req.Interval, user.Email, user.Username)
	if err != nil {
		slog.Error("failed to create checkout", "error", err, "user_id", user.ID, "plan_id", req.PlanID, "provider", h.paymentService.Name())
		respondError(w, http.StatusInternalServerError, "Failed to create checkout session")
		return
	}

	slog.Info("checkout session created", "user_id", user.ID, "provider", h.paymentService.Name())
	respondJSON(w, http.StatusOK, map[string]string{"url": checkoutURL})
}

func (h *billingHandler) CustomerPortal(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	portalURL, err := h.paymentService.CustomerPortalURL(user.ID)
	if err != nil {
		slog.Error("failed to get customer portal", "error", err, "user_id", user.ID, "provider", h.paymentService.Name())
		respondError(w, http.StatusInternalServerError, "Failed to access customer portal")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"url": portalURL})
}

func (h *billingHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("failed to read webhook payload", "error", err)
		respondError(w, http.StatusBadRequest, "Failed to read payload")
		return
	}
	defer func() {
		closeErr := r.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close request body", "error", closeErr)
		}
	}()

	err = h.paymentService.HandleWebhook(payload, r.Header)
	if err != nil {
		slog.Error("failed to handle webhook", "error", err, "provider", h.paymentService.Name())
		respondError(w, http.StatusBadRequest, "Failed to process webhook")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"received": true}`))
}
