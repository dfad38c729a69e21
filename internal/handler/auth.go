package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rahul-nakum14/formcraft/internal/ctxkeys"
	"github.com/rahul-nakum14/formcraft/internal/service"
	"github.com/rahul-nakum14/formcraft/internal/validation"
)

type authHandler struct {
	authService         *service.AuthService
	subscriptionService *service.SubscriptionService
}

func NewAuthHandler(authService *service.AuthService, subscriptionService *service.SubscriptionService) *authHandler {
	return &authHandler{
		authService:         authService,
		subscriptionService: subscriptionService,
	}
}

func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.authService.Register(strings.TrimSpace(req.Username), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyExists):
			respondError(w, http.StatusConflict, "Email already registered")
		case errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrUsernameRequired),
			errors.Is(err, validation.ErrPasswordPolicy):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("registration failed", "error", err, "email", req.Email)
			respondError(w, http.StatusInternalServerError, "Registration failed")
		}
		return
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Registration successful. Please check your email to verify your account.",
		"user":    user,
	})
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.authService.Login(strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailNotVerified):
			respondError(w, http.StatusForbidden, "Please verify your email before logging in")
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(w, http.StatusUnauthorized, "Invalid email or password")
		default:
			slog.Error("login failed", "error", err, "email", req.Email)
			respondError(w, http.StatusInternalServerError, "Login failed")
		}
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate JWT", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	h.authService.SetJWTCookie(w, token, time.Now().Add(h.authService.JWTExpiry()))

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)
	respondJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *authHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	user, err := h.authService.VerifyEmail(token)
	if err != nil {
		slog.Warn("email verification failed", "error", err)
		respondError(w, http.StatusBadRequest, "Invalid or expired verification link")
		return
	}

	slog.Info("email verified", "user_id", user.ID, "email", user.Email)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Email verified. You can now log in."})
}

func (h *authHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = h.authService.SendPasswordReset(strings.TrimSpace(req.Email))
	if err != nil {
		// Don't reveal specific errors to prevent email enumeration
		slog.Warn("password reset send failed", "error", err, "email", req.Email)
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "If that email is registered, a reset link has been sent.",
	})
}

func (h *authHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = h.authService.ResetPassword(req.Token, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			respondError(w, http.StatusBadRequest, "Invalid or expired reset link")
		case errors.Is(err, validation.ErrPasswordPolicy):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("password reset failed", "error", err)
			respondError(w, http.StatusInternalServerError, "Password reset failed")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Password updated. You can now log in."})
}

func (h *authHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	subscription := ctxkeys.Subscription(r.Context())

	respondJSON(w, http.StatusOK, map[string]any{
		"user":         user,
		"subscription": subscription,
	})
}
