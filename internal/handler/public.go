package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rahul-nakum14/formcraft/internal/repository"
	"github.com/rahul-nakum14/formcraft/internal/service"
	"github.com/rahul-nakum14/formcraft/internal/validation"
)

// maxUploadMemory bounds the multipart parse buffer, not the file size.
const maxUploadMemory = 10 << 20

type publicHandler struct {
	formService       *service.FormService
	submissionService *service.SubmissionService
	analyticsService  *service.AnalyticsService
	uploadService     *service.UploadService
}

func NewPublicHandler(
	formService *service.FormService,
	submissionService *service.SubmissionService,
	analyticsService *service.AnalyticsService,
	uploadService *service.UploadService,
) *publicHandler {
	return &publicHandler{
		formService:       formService,
		submissionService: submissionService,
		analyticsService:  analyticsService,
		uploadService:     uploadService,
	}
}

func (h *publicHandler) Form(w http.ResponseWriter, r *http.Request) {
	formID := r.PathValue("id")

	form, err := h.formService.PublicForm(formID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrFormNotFound):
			respondError(w, http.StatusNotFound, "Form not found")
		case errors.Is(err, service.ErrFormNotPublished):
			respondError(w, http.StatusNotFound, "Form not available")
		default:
			slog.Error("failed to load public form", "error", err, "form_id", formID)
			respondError(w, http.StatusInternalServerError, "Failed to load form")
		}
		return
	}

	respondJSON(w, http.StatusOK, form)
}

func (h *publicHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	formID := r.PathValue("id")

	var req struct {
		Referrer string `json:"referrer"`
		Country  string `json:"country"`
	}
	// Body is optional, ignore decode failures
	_ = decodeJSON(r, &req)

	if req.Referrer == "" {
		req.Referrer = r.Header.Get("Referer")
	}
	if req.Country == "" {
		req.Country = r.Header.Get("CF-IPCountry")
	}

	err := h.analyticsService.RecordView(formID, clientIP(r), r.UserAgent(), req.Referrer, req.Country)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrFormNotFound), errors.Is(err, service.ErrFormNotPublished):
			respondError(w, http.StatusNotFound, "Form not found")
		default:
			slog.Error("failed to record view", "error", err, "form_id", formID)
			respondError(w, http.StatusInternalServerError, "Failed to record view")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"recorded": true})
}

func (h *publicHandler) Submit(w http.ResponseWriter, r *http.Request) {
	formID := r.PathValue("id")

	var payload map[string]any
	err := decodeJSON(r, &payload)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	meta := service.SubmissionMeta{
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	}

	result, err := h.submissionService.Submit(r.Context(), formID, payload, meta)
	if err != nil {
		h.submitError(w, formID, err)
		return
	}

	resp := map[string]any{"message": result.Message}
	if result.RedirectURL != "" {
		resp["redirectUrl"] = result.RedirectURL
	}
	respondJSON(w, http.StatusCreated, resp)
}

func (h *publicHandler) submitError(w http.ResponseWriter, formID string, err error) {
	var required *service.RequiredFieldError
	switch {
	case errors.Is(err, repository.ErrFormNotFound), errors.Is(err, service.ErrFormNotPublished):
		respondError(w, http.StatusNotFound, "Form not found")
	case errors.Is(err, service.ErrFormExpired):
		respondError(w, http.StatusGone, "This form has expired")
	case errors.Is(err, service.ErrSubmissionLimitExceeded):
		respondError(w, http.StatusForbidden, "This form is no longer accepting submissions")
	case errors.As(err, &required):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, validation.ErrFileTooLarge), errors.Is(err, validation.ErrFileTypeNotAllowed):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("submission failed", "error", err, "form_id", formID)
		respondError(w, http.StatusInternalServerError, "Submission failed")
	}
}

func (h *publicHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	formID := r.PathValue("id")

	err := r.ParseMultipartForm(maxUploadMemory)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart request")
		return
	}

	fieldID := r.FormValue("fieldId")
	if fieldID == "" {
		respondError(w, http.StatusBadRequest, "fieldId is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer func() {
		closeErr := file.Close()
		if closeErr != nil {
			slog.Error("failed to close uploaded file", "error", closeErr)
		}
	}()

	value, err := h.uploadService.Upload(formID, fieldID, file, header)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrFormNotFound), errors.Is(err, service.ErrFormNotPublished):
			respondError(w, http.StatusNotFound, "Form not found")
		case errors.Is(err, service.ErrFieldNotFound):
			respondError(w, http.StatusBadRequest, "Unknown file field")
		case errors.Is(err, validation.ErrFileTooLarge), errors.Is(err, validation.ErrFileTypeNotAllowed):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("file upload failed", "error", err, "form_id", formID, "field_id", fieldID)
			respondError(w, http.StatusInternalServerError, "Upload failed")
		}
		return
	}

	respondJSON(w, http.StatusCreated, value)
}
