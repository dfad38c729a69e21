package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rahul-nakum14/formcraft/internal/ctxkeys"
	"github.com/rahul-nakum14/formcraft/internal/model"
	"github.com/rahul-nakum14/formcraft/internal/repository"
	"github.com/rahul-nakum14/formcraft/internal/service"
)

type formHandler struct {
	formService       *service.FormService
	submissionService *service.SubmissionService
	uploadService     *service.UploadService
}

func NewFormHandler(formService *service.FormService, submissionService *service.SubmissionService, uploadService *service.UploadService) *formHandler {
	return &formHandler{
		formService:       formService,
		submissionService: submissionService,
		uploadService:     uploadService,
	}
}

type formRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      string             `json:"status"`
	Fields      model.FieldList    `json:"fields"`
	Settings    model.FormSettings `json:"settings"`
	Theme       model.FormTheme    `json:"theme"`
	ExpiresAt   *time.Time         `json:"expiresAt"`
}

func (req *formRequest) input() service.FormInput {
	return service.FormInput{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Fields:      req.Fields,
		Settings:    req.Settings,
		Theme:       req.Theme,
		ExpiresAt:   req.ExpiresAt,
	}
}

func (h *formHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	forms, err := h.formService.Forms(user.ID)
	if err != nil {
		slog.Error("failed to list forms", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Failed to load forms")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"forms": forms})
}

func (h *formHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req formRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "Title is required")
		return
	}

	form, err := h.formService.Create(user.ID, req.input())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFormLimitReached):
			respondError(w, http.StatusForbidden, "Form limit reached. Upgrade to premium for unlimited forms.")
		case errors.Is(err, model.ErrInvalidFieldDefinition),
			errors.Is(err, model.ErrUnknownFieldType):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("failed to create form", "error", err, "user_id", user.ID)
			respondError(w, http.StatusInternalServerError, "Failed to create form")
		}
		return
	}

	slog.Info("form created", "form_id", form.ID, "user_id", user.ID)
	respondJSON(w, http.StatusCreated, form)
}

func (h *formHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	formID := r.PathValue("id")

	form, err := h.formService.ByID(user.ID, formID)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			respondError(w, http.StatusNotFound, "Form not found")
			return
		}
		slog.Error("failed to load form", "error", err, "form_id", formID)
		respondError(w, http.StatusInternalServerError, "Failed to load form")
		return
	}

	respondJSON(w, http.StatusOK, form)
}

func (h *formHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	formID := r.PathValue("id")

	var req formRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	form, err := h.formService.Update(user.ID, formID, req.Status, req.input())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrFormNotFound):
			respondError(w, http.StatusNotFound, "Form not found")
		case errors.Is(err, service.ErrInvalidStatus),
			errors.Is(err, model.ErrInvalidFieldDefinition),
			errors.Is(err, model.ErrUnknownFieldType):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("failed to update form", "error", err, "form_id", formID)
			respondError(w, http.StatusInternalServerError, "Failed to update form")
		}
		return
	}

	respondJSON(w, http.StatusOK, form)
}

func (h *formHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	formID := r.PathValue("id")

	// Verify ownership before touching storage
	_, err := h.formService.ByID(user.ID, formID)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			respondError(w, http.StatusNotFound, "Form not found")
			return
		}
		slog.Error("failed to load form", "error", err, "form_id", formID)
		respondError(w, http.StatusInternalServerError, "Failed to delete form")
		return
	}

	// Stored files don't cascade with the rows, clean them up first
	err = h.uploadService.DeleteFormUploads(formID)
	if err != nil {
		slog.Warn("failed to clean up form uploads", "error", err, "form_id", formID)
	}

	err = h.formService.Delete(user.ID, formID)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			respondError(w, http.StatusNotFound, "Form not found")
			return
		}
		slog.Error("failed to delete form", "error", err, "form_id", formID)
		respondError(w, http.StatusInternalServerError, "Failed to delete form")
		return
	}

	slog.Info("form deleted", "form_id", formID, "user_id", user.ID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Form deleted"})
}

func (h *formHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	formID := r.PathValue("id")

	start, end, err := parseDateRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	submissions, err := h.submissionService.Submissions(user.ID, formID, start, end)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			respondError(w, http.StatusNotFound, "Form not found")
			return
		}
		slog.Error("failed to list submissions", "error", err, "form_id", formID)
		respondError(w, http.StatusInternalServerError, "Failed to load submissions")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"submissions": submissions})
}

// parseDateRange reads optional startDate/endDate query params (YYYY-MM-DD).
func parseDateRange(r *http.Request) (*time.Time, *time.Time, error) {
	var start, end *time.Time

	if raw := r.URL.Query().Get("startDate"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, nil, err
		}
		start = &t
	}

	if raw := r.URL.Query().Get("endDate"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, nil, err
		}
		// Include the whole end day
		t = t.Add(24*time.Hour - time.Nanosecond)
		end = &t
	}

	return start, end, nil
}
