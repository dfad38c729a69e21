package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rahul-nakum14/formcraft/internal/model"
	"github.com/rahul-nakum14/formcraft/internal/repository"
	"github.com/rahul-nakum14/formcraft/internal/validation"
)

var (
	ErrFormExpired             = errors.New("form has expired")
	ErrSubmissionLimitExceeded = errors.New("submission limit exceeded")
)

// RequiredFieldError identifies one required field left empty in a payload.
type RequiredFieldError struct {
	FieldID string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("required field missing: %s", e.FieldID)
}

// SubmissionNotifier delivers submission notifications to the form owner's
// configured addresses.
type SubmissionNotifier interface {
	SendSubmissionNotification(to []string, formTitle string, data map[string]any) error
}

type SubmissionService struct {
	repo                repository.SubmissionRepository
	formRepo            repository.FormRepository
	subscriptionService *SubscriptionService
	notifier            SubmissionNotifier
}

func NewSubmissionService(
	repo repository.SubmissionRepository,
	formRepo repository.FormRepository,
	subscriptionService *SubscriptionService,
	notifier SubmissionNotifier,
) *SubmissionService {
	return &SubmissionService{
		repo:                repo,
		formRepo:            formRepo,
		subscriptionService: subscriptionService,
		notifier:            notifier,
	}
}

// SubmissionMeta carries request provenance recorded with each submission.
type SubmissionMeta struct {
	IPAddress string
	UserAgent string
}

// SubmitResult is returned for an accepted submission.
type SubmitResult struct {
	Message     string `json:"message"`
	RedirectURL string `json:"redirectUrl,omitempty"`
}

const defaultSuccessMessage = "Thank you for your submission!"

// Submit is the authoritative validation path for a submission. Checks run
// in a fixed order: publication, expiry, quota, then required fields. Any
// failure is a terminal rejection with nothing persisted.
func (s *SubmissionService) Submit(ctx context.Context, formID string, payload map[string]any, meta SubmissionMeta) (*SubmitResult, error) {
	form, err := s.formRepo.ByIDAny(formID)
	if err != nil {
		return nil, err
	}

	if !form.IsPublished() {
		return nil, ErrFormNotPublished
	}

	if form.IsExpired() {
		return nil, ErrFormExpired
	}

	subscription, err := s.subscriptionService.Subscription(form.UserID)
	if err != nil {
		return nil, err
	}

	limit := subscription.GetSubmissionLimit()
	if limit != -1 {
		count, err := s.repo.CountByFormID(formID)
		if err != nil {
			return nil, err
		}
		if count >= limit {
			return nil, ErrSubmissionLimitExceeded
		}
	}

	err = validatePayload(form, payload)
	if err != nil {
		return nil, err
	}

	submission := &model.Submission{
		ID:        uuid.New().String(),
		FormID:    formID,
		Data:      normalizePayload(form, payload),
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		CreatedAt: time.Now(),
	}

	err = s.repo.Create(submission)
	if err != nil {
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	s.notify(form, submission)

	message := form.Settings.SuccessMessage
	if message == "" {
		message = defaultSuccessMessage
	}

	return &SubmitResult{
		Message:     message,
		RedirectURL: form.Settings.RedirectURL,
	}, nil
}

// Submissions lists a form's submissions for its owner, optionally limited
// to an inclusive date range.
func (s *SubmissionService) Submissions(userID, formID string, start, end *time.Time) ([]*model.Submission, error) {
	// Verify ownership
	_, err := s.formRepo.ByID(userID, formID)
	if err != nil {
		return nil, err
	}

	if start != nil && end != nil {
		return s.repo.ByFormIDInRange(formID, *start, *end)
	}
	return s.repo.ByFormID(formID)
}

// validatePayload checks every required field and re-runs the file rules
// server-side. All required fields are inspected so a rejection names each
// missing one, not just the first.
func validatePayload(form *model.Form, payload map[string]any) error {
	var errs []error
	for i := range form.Fields {
		field := &form.Fields[i]

		value, present := payload[field.ID]
		if field.Required && (!present || isEmptyValue(field, value)) {
			errs = append(errs, &RequiredFieldError{FieldID: field.ID})
			continue
		}

		if present && field.Type == model.FieldTypeFile {
			file, ok := fileValue(value)
			if !ok {
				continue
			}
			err := validation.CheckFile(file.Name, file.MimeType, file.Size, validation.FileConstraints{
				MaxSize:       field.MaxFileSizeBytes(),
				AcceptedTypes: field.Properties.AcceptedFileTypes,
			})
			if err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// isEmptyValue decides emptiness per control: blank strings, unchecked
// checkboxes, unselected options and absent file descriptors all count.
func isEmptyValue(field *model.FieldDefinition, value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case bool:
		return field.Type == model.FieldTypeCheckbox && !v
	case map[string]any:
		if field.Type == model.FieldTypeFile {
			_, ok := fileValue(v)
			return !ok
		}
		return len(v) == 0
	default:
		return false
	}
}

// normalizePayload reduces file answers to stored descriptors. Keys not in
// the definition pass through untouched.
func normalizePayload(form *model.Form, payload map[string]any) model.SubmissionData {
	fileFields := make(map[string]bool)
	for _, field := range form.Fields {
		if field.Type == model.FieldTypeFile {
			fileFields[field.ID] = true
		}
	}

	data := make(model.SubmissionData, len(payload))
	for key, value := range payload {
		if fileFields[key] {
			if file, ok := fileValue(value); ok {
				data[key] = map[string]any{
					"name":         file.Name,
					"size":         file.Size,
					"mimeType":     file.MimeType,
					"lastModified": file.LastModified,
				}
				continue
			}
		}
		data[key] = value
	}
	return data
}

// fileValue decodes a client file descriptor. Clients send either mimeType
// or the browser's type key.
func fileValue(value any) (model.FileValue, bool) {
	m, ok := value.(map[string]any)
	if !ok {
		return model.FileValue{}, false
	}

	name, _ := m["name"].(string)
	if name == "" {
		return model.FileValue{}, false
	}

	mimeType, _ := m["mimeType"].(string)
	if mimeType == "" {
		mimeType, _ = m["type"].(string)
	}

	return model.FileValue{
		Name:         name,
		Size:         asInt64(m["size"]),
		MimeType:     mimeType,
		LastModified: asInt64(m["lastModified"]),
	}, true
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func (s *SubmissionService) notify(form *model.Form, submission *model.Submission) {
	if s.notifier == nil || !form.Settings.EmailNotifications || len(form.Settings.NotificationEmails) == 0 {
		return
	}

	err := s.notifier.SendSubmissionNotification(form.Settings.NotificationEmails, form.Title, submission.Data)
	if err != nil {
		// Notification failures never block an accepted submission.
		slog.Warn("failed to send submission notification", "error", err, "form_id", form.ID)
	}
}
