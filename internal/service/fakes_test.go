package service

import (
	"time"

	"github.com/rahul-nakum14/formcraft/internal/model"
	"github.com/rahul-nakum14/formcraft/internal/repository"
)

// In-memory repository fakes shared by the service tests.

type fakeFormRepo struct {
	forms map[string]*model.Form
}

func newFakeFormRepo(forms ...*model.Form) *fakeFormRepo {
	repo := &fakeFormRepo{forms: make(map[string]*model.Form)}
	for _, f := range forms {
		repo.forms[f.ID] = f
	}
	return repo
}

func (r *fakeFormRepo) Create(form *model.Form) error {
	r.forms[form.ID] = form
	return nil
}

func (r *fakeFormRepo) ByID(userID, formID string) (*model.Form, error) {
	form, ok := r.forms[formID]
	if !ok || form.UserID != userID {
		return nil, repository.ErrFormNotFound
	}
	return form, nil
}

func (r *fakeFormRepo) ByIDAny(formID string) (*model.Form, error) {
	form, ok := r.forms[formID]
	if !ok {
		return nil, repository.ErrFormNotFound
	}
	return form, nil
}

func (r *fakeFormRepo) Forms(userID string) ([]*model.Form, error) {
	var out []*model.Form
	for _, f := range r.forms {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFormRepo) CountUserForms(userID string) (int, error) {
	count := 0
	for _, f := range r.forms {
		if f.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeFormRepo) Update(form *model.Form) error {
	if _, ok := r.forms[form.ID]; !ok {
		return repository.ErrFormNotFound
	}
	r.forms[form.ID] = form
	return nil
}

func (r *fakeFormRepo) Delete(userID, formID string) error {
	form, ok := r.forms[formID]
	if !ok || form.UserID != userID {
		return repository.ErrFormNotFound
	}
	delete(r.forms, formID)
	return nil
}

func (r *fakeFormRepo) IncrementViews(formID string) error {
	form, ok := r.forms[formID]
	if !ok {
		return repository.ErrFormNotFound
	}
	form.Views++
	return nil
}

func (r *fakeFormRepo) Stats(userID string) (*repository.FormStats, error) {
	stats := &repository.FormStats{}
	for _, f := range r.forms {
		if f.UserID != userID {
			continue
		}
		stats.TotalForms++
		stats.TotalViews += f.Views
		if f.IsPublished() {
			stats.ActiveForms++
		}
	}
	return stats, nil
}

type fakeSubmissionRepo struct {
	submissions []*model.Submission
	createErr   error
}

func (r *fakeSubmissionRepo) Create(submission *model.Submission) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.submissions = append(r.submissions, submission)
	return nil
}

func (r *fakeSubmissionRepo) ByFormID(formID string) ([]*model.Submission, error) {
	var out []*model.Submission
	for _, s := range r.submissions {
		if s.FormID == formID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) ByFormIDInRange(formID string, start, end time.Time) ([]*model.Submission, error) {
	var out []*model.Submission
	for _, s := range r.submissions {
		if s.FormID == formID && !s.CreatedAt.Before(start) && !s.CreatedAt.After(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) CountByFormID(formID string) (int, error) {
	subs, _ := r.ByFormID(formID)
	return len(subs), nil
}

func (r *fakeSubmissionRepo) CountByUserID(userID string) (int, error) {
	return len(r.submissions), nil
}

type fakeViewRepo struct {
	views []*model.ViewRecord
}

func (r *fakeViewRepo) Create(view *model.ViewRecord) error {
	r.views = append(r.views, view)
	return nil
}

func (r *fakeViewRepo) ByFormID(formID string) ([]*model.ViewRecord, error) {
	var out []*model.ViewRecord
	for _, v := range r.views {
		if v.FormID == formID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeViewRepo) ByFormIDInRange(formID string, start, end time.Time) ([]*model.ViewRecord, error) {
	var out []*model.ViewRecord
	for _, v := range r.views {
		if v.FormID == formID && !v.CreatedAt.Before(start) && !v.CreatedAt.After(end) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeViewRepo) CountByFormID(formID string) (int, error) {
	views, _ := r.ByFormID(formID)
	return len(views), nil
}

type fakeSubscriptionRepo struct {
	subs map[string]*model.Subscription
}

func newFakeSubscriptionRepo(subs ...*model.Subscription) *fakeSubscriptionRepo {
	repo := &fakeSubscriptionRepo{subs: make(map[string]*model.Subscription)}
	for _, s := range subs {
		repo.subs[s.UserID] = s
	}
	return repo
}

func (r *fakeSubscriptionRepo) Create(sub *model.Subscription) error {
	r.subs[sub.UserID] = sub
	return nil
}

func (r *fakeSubscriptionRepo) ByUserID(userID string) (*model.Subscription, error) {
	sub, ok := r.subs[userID]
	if !ok {
		return nil, repository.ErrSubscriptionNotFound
	}
	return sub, nil
}

func (r *fakeSubscriptionRepo) ByProviderSubscriptionID(providerSubID string) (*model.Subscription, error) {
	for _, s := range r.subs {
		if s.ProviderSubscriptionID != nil && *s.ProviderSubscriptionID == providerSubID {
			return s, nil
		}
	}
	return nil, repository.ErrSubscriptionNotFound
}

func (r *fakeSubscriptionRepo) ByProviderCustomerID(providerCustomerID string) (*model.Subscription, error) {
	for _, s := range r.subs {
		if s.ProviderCustomerID != nil && *s.ProviderCustomerID == providerCustomerID {
			return s, nil
		}
	}
	return nil, repository.ErrSubscriptionNotFound
}

func (r *fakeSubscriptionRepo) Update(sub *model.Subscription) error {
	r.subs[sub.UserID] = sub
	return nil
}

type fakeNotifier struct {
	sent []fakeNotification
	err  error
}

type fakeNotification struct {
	to        []string
	formTitle string
	data      map[string]any
}

func (n *fakeNotifier) SendSubmissionNotification(to []string, formTitle string, data map[string]any) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, fakeNotification{to: to, formTitle: formTitle, data: data})
	return nil
}

func freeSubscription(userID string) *model.Subscription {
	return &model.Subscription{
		ID:     "sub-" + userID,
		UserID: userID,
		PlanID: model.SubscriptionPlanFree,
		Status: model.SubscriptionStatusActive,
	}
}

func premiumSubscription(userID string) *model.Subscription {
	return &model.Subscription{
		ID:     "sub-" + userID,
		UserID: userID,
		PlanID: model.SubscriptionPlanPremium,
		Status: model.SubscriptionStatusActive,
	}
}
