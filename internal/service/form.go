package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rahul-nakum14/formcraft/internal/model"
	"github.com/rahul-nakum14/formcraft/internal/repository"
)

var (
	ErrFormLimitReached = errors.New("free plan form limit reached")
	ErrFormNotPublished = errors.New("form not available")
	ErrInvalidStatus    = errors.New("invalid form status")
)

type FormService struct {
	repo                repository.FormRepository
	subscriptionService *SubscriptionService
}

func NewFormService(repo repository.FormRepository, subscriptionService *SubscriptionService) *FormService {
	return &FormService{
		repo:                repo,
		subscriptionService: subscriptionService,
	}
}

// FormInput carries the owner-editable parts of a form definition.
type FormInput struct {
	Title       string
	Description string
	Fields      model.FieldList
	Settings    model.FormSettings
	Theme       model.FormTheme
	ExpiresAt   *time.Time
}

func (s *FormService) Create(userID string, in FormInput) (*model.Form, error) {
	subscription, err := s.subscriptionService.Subscription(userID)
	if err != nil {
		return nil, err
	}

	// Check form limit based on plan
	limit := subscription.GetFormLimit()
	if limit != -1 { // -1 means unlimited
		count, err := s.repo.CountUserForms(userID)
		if err != nil {
			return nil, err
		}

		if count >= limit {
			return nil, ErrFormLimitReached
		}
	}

	now := time.Now()
	form := &model.Form{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Status:      model.FormStatusDraft,
		Fields:      in.Fields,
		Settings:    in.Settings,
		Theme:       in.Theme,
		ExpiresAt:   in.ExpiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if form.Fields == nil {
		form.Fields = model.FieldList{}
	}

	err = form.ValidateFields()
	if err != nil {
		return nil, err
	}

	err = s.repo.Create(form)
	if err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	return form, nil
}

func (s *FormService) ByID(userID, formID string) (*model.Form, error) {
	return s.repo.ByID(userID, formID)
}

func (s *FormService) Forms(userID string) ([]*model.Form, error) {
	return s.repo.Forms(userID)
}

// Update replaces the editable parts of a form. Publishing and unpublishing
// happen through the status argument; unpublishing keeps submission history.
func (s *FormService) Update(userID, formID, status string, in FormInput) (*model.Form, error) {
	if status != model.FormStatusDraft && status != model.FormStatusPublished {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	form, err := s.repo.ByID(userID, formID)
	if err != nil {
		return nil, err
	}

	form.Title = in.Title
	form.Description = in.Description
	form.Status = status
	form.Fields = in.Fields
	form.Settings = in.Settings
	form.Theme = in.Theme
	form.ExpiresAt = in.ExpiresAt
	form.UpdatedAt = time.Now()
	if form.Fields == nil {
		form.Fields = model.FieldList{}
	}

	err = form.ValidateFields()
	if err != nil {
		return nil, err
	}

	err = s.repo.Update(form)
	if err != nil {
		return nil, err
	}

	return form, nil
}

// Delete removes a form. Submissions and view records cascade in the schema.
func (s *FormService) Delete(userID, formID string) error {
	return s.repo.Delete(userID, formID)
}

// PublicForm returns the respondent-facing shape of a published form.
// Unpublished forms report ErrFormNotPublished so existence never leaks.
func (s *FormService) PublicForm(formID string) (*model.PublicForm, error) {
	form, err := s.repo.ByIDAny(formID)
	if err != nil {
		return nil, err
	}

	if !form.IsPublished() {
		return nil, ErrFormNotPublished
	}

	return form.Public(), nil
}
