package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rahul-nakum14/formcraft/internal/model"
	"github.com/rahul-nakum14/formcraft/internal/repository"
	"github.com/rahul-nakum14/formcraft/internal/validation"
)

func publishedForm() *model.Form {
	return &model.Form{
		ID:     "form-1",
		UserID: "user-1",
		Status: model.FormStatusPublished,
		Title:  "Contact",
		Fields: model.FieldList{
			{ID: "name", Type: model.FieldTypeText, Label: "Name", Required: true},
			{ID: "email", Type: model.FieldTypeEmail, Label: "Email", Required: true},
			{ID: "note", Type: model.FieldTypeTextarea, Label: "Note"},
			{ID: "cv", Type: model.FieldTypeFile, Label: "CV", Properties: model.FieldProperties{MaxFileSize: 1, AcceptedFileTypes: ".pdf"}},
		},
		CreatedAt: time.Now(),
	}
}

func newSubmissionService(form *model.Form, sub *model.Subscription) (*SubmissionService, *fakeSubmissionRepo, *fakeNotifier) {
	submissionRepo := &fakeSubmissionRepo{}
	notifier := &fakeNotifier{}
	svc := NewSubmissionService(
		submissionRepo,
		newFakeFormRepo(form),
		NewSubscriptionService(newFakeSubscriptionRepo(sub)),
		notifier,
	)
	return svc, submissionRepo, notifier
}

func TestSubmitSuccess(t *testing.T) {
	form := publishedForm()
	svc, repo, _ := newSubmissionService(form, freeSubscription(form.UserID))

	result, err := svc.Submit(context.Background(), form.ID, map[string]any{
		"name":  "Ada",
		"email": "ada@example.com",
	}, SubmissionMeta{IPAddress: "1.2.3.4", UserAgent: "test"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if result.Message != "Thank you for your submission!" {
		t.Fatalf("message = %q", result.Message)
	}
	if result.RedirectURL != "" {
		t.Fatalf("redirect = %q, want none", result.RedirectURL)
	}

	if len(repo.submissions) != 1 {
		t.Fatalf("%d submissions persisted", len(repo.submissions))
	}
	stored := repo.submissions[0]
	if stored.IPAddress != "1.2.3.4" || stored.UserAgent != "test" {
		t.Fatalf("meta not recorded: %+v", stored)
	}
}

func TestSubmitCustomSuccessMessage(t *testing.T) {
	form := publishedForm()
	form.Settings.SuccessMessage = "Got it!"
	form.Settings.RedirectURL = "https://example.com/thanks"
	svc, _, _ := newSubmissionService(form, freeSubscription(form.UserID))

	result, err := svc.Submit(context.Background(), form.ID, map[string]any{"name": "Ada", "email": "a@b.c"}, SubmissionMeta{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Message != "Got it!" || result.RedirectURL != "https://example.com/thanks" {
		t.Fatalf("result = %+v", result)
	}
}

func TestSubmitUnknownForm(t *testing.T) {
	form := publishedForm()
	svc, _, _ := newSubmissionService(form, freeSubscription(form.UserID))

	_, err := svc.Submit(context.Background(), "nope", nil, SubmissionMeta{})
	if !errors.Is(err, repository.ErrFormNotFound) {
		t.Fatalf("got %v, want ErrFormNotFound", err)
	}
}

func TestSubmitDraftForm(t *testing.T) {
	form := publishedForm()
	form.Status = model.FormStatusDraft
	svc, _, _ := newSubmissionService(form, freeSubscription(form.UserID))

	_, err := svc.Submit(context.Background(), form.ID, map[string]any{"name": "Ada", "email": "a@b.c"}, SubmissionMeta{})
	if !errors.Is(err, ErrFormNotPublished) {
		t.Fatalf("got %v, want ErrFormNotPublished", err)
	}
}

func TestSubmitExpiredForm(t *testing.T) {
	form := publishedForm()
	past := time.Now().Add(-time.Hour)
	form.ExpiresAt = &past
	svc, _, _ := newSubmissionService(form, freeSubscription(form.UserID))

	_, err := svc.Submit(context.Background(), form.ID, map[string]any{"name": "Ada", "email": "a@b.c"}, SubmissionMeta{})
	if !errors.Is(err, ErrFormExpired) {
		t.Fatalf("got %v, want ErrFormExpired", err)
	}
}

func TestSubmitQuotaExceeded(t *testing.T) {
	form := publishedForm()
	svc, repo, _ := newSubmissionService(form, freeSubscription(form.UserID))

	for i := 0; i < 100; i++ {
		repo.submissions = append(repo.submissions, &model.Submission{ID: "s", FormID: form.ID})
	}

	_, err := svc.Submit(context.Background(), form.ID, map[string]any{"name": "Ada", "email": "a@b.c"}, SubmissionMeta{})
	if !errors.Is(err, ErrSubmissionLimitExceeded) {
		t.Fatalf("got %v, want ErrSubmissionLimitExceeded", err)
	}
	if len(repo.submissions) != 100 {
		t.Fatal("rejected submission was persisted")
	}
}

func TestSubmitPremiumUnlimited(t *testing.T) {
	form := publishedForm()
	svc, repo, _ := newSubmissionService(form, premiumSubscription(form.UserID))

	for i := 0; i < 500; i++ {
		repo.submissions = append(repo.submissions, &model.Submission{ID: "s", FormID: form.ID})
	}

	_, err := svc.Submit(context.Background(), form.ID, map[string]any{"name": "Ada", "email": "a@b.c"}, SubmissionMeta{})
	if err != nil {
		t.Fatalf("premium plan hit a limit: %v", err)
	}
}

func TestSubmitCheckOrder(t *testing.T) {
	// An expired draft reports unpublished, not expired
	form := publishedForm()
	form.Status = model.FormStatusDraft
	past := time.Now().Add(-time.Hour)
	form.ExpiresAt = &past
	svc, _, _ := newSubmissionService(form, freeSubscription(form.UserID))

	_, err := svc.Submit(context.Background(), form.ID, nil, SubmissionMeta{})
	if !errors.Is(err, ErrFormNotPublished) {
		t.Fatalf("got %v, want ErrFormNotPublished first", err)
	}
}

func TestSubmitRequiredFields(t *testing.T) {
	form := publishedForm()
	svc, repo, _ := newSubmissionService(form, freeSubscription(form.UserID))

	_, err := svc.Submit(context.Background(), form.ID, map[string]any{
		"name": "   ", // whitespace counts as empty
	}, SubmissionMeta{})

	var required *RequiredFieldError
	if !errors.As(err, &required) {
		t.Fatalf("got %v, want RequiredFieldError", err)
	}

	// Both missing fields are reported, not just the first
	msg := err.Error()
	for _, fieldID := range []string{"name", "email"} {
		if !containsField(err, fieldID) {
			t.Fatalf("error %q does not name field %s", msg, fieldID)
		}
	}

	if len(repo.submissions) != 0 {
		t.Fatal("rejected submission was persisted")
	}
}

func containsField(err error, fieldID string) bool {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			if containsField(e, fieldID) {
				return true
			}
		}
		return false
	}
	var required *RequiredFieldError
	return errors.As(err, &required) && required.FieldID == fieldID
}

func TestSubmitUncheckedRequiredCheckbox(t *testing.T) {
	form := publishedForm()
	form.Fields = append(form.Fields, model.FieldDefinition{
		ID: "agree", Type: model.FieldTypeCheckbox, Label: "Agree", Required: true,
	})
	svc, _, _ := newSubmissionService(form, freeSubscription(form.UserID))

	_, err := svc.Submit(context.Background(), form.ID, map[string]any{
		"name": "Ada", "email": "a@b.c", "agree": false,
	}, SubmissionMeta{})

	var required *RequiredFieldError
	if !errors.As(err, &required) || required.FieldID != "agree" {
		t.Fatalf("got %v, want required agree", err)
	}
}

func TestSubmitFileRulesServerSide(t *testing.T) {
	form := publishedForm()
	svc, _, _ := newSubmissionService(form, freeSubscription(form.UserID))

	_, err := svc.Submit(context.Background(), form.ID, map[string]any{
		"name": "Ada", "email": "a@b.c",
		"cv": map[string]any{"name": "huge.pdf", "type": "application/pdf", "size": float64(2 << 20)},
	}, SubmissionMeta{})
	if !errors.Is(err, validation.ErrFileTooLarge) {
		t.Fatalf("got %v, want ErrFileTooLarge", err)
	}

	_, err = svc.Submit(context.Background(), form.ID, map[string]any{
		"name": "Ada", "email": "a@b.c",
		"cv": map[string]any{"name": "photo.png", "type": "image/png", "size": float64(100)},
	}, SubmissionMeta{})
	if !errors.Is(err, validation.ErrFileTypeNotAllowed) {
		t.Fatalf("got %v, want ErrFileTypeNotAllowed", err)
	}
}

func TestSubmitNormalizesFileValues(t *testing.T) {
	form := publishedForm()
	svc, repo, _ := newSubmissionService(form, freeSubscription(form.UserID))

	_, err := svc.Submit(context.Background(), form.ID, map[string]any{
		"name":  "Ada",
		"email": "a@b.c",
		"cv": map[string]any{
			"name": "resume.pdf", "type": "application/pdf",
			"size": float64(1024), "lastModified": float64(1700000000000),
			"webkitRelativePath": "ignored",
		},
	}, SubmissionMeta{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	stored, ok := repo.submissions[0].Data["cv"].(map[string]any)
	if !ok {
		t.Fatalf("cv stored as %T", repo.submissions[0].Data["cv"])
	}
	if stored["name"] != "resume.pdf" || stored["mimeType"] != "application/pdf" {
		t.Fatalf("stored descriptor = %+v", stored)
	}
	if stored["size"] != int64(1024) || stored["lastModified"] != int64(1700000000000) {
		t.Fatalf("stored descriptor = %+v", stored)
	}
	if _, leaked := stored["webkitRelativePath"]; leaked {
		t.Fatal("extraneous file descriptor keys were stored")
	}
}

func TestSubmitExtraKeysPassThrough(t *testing.T) {
	form := publishedForm()
	svc, repo, _ := newSubmissionService(form, freeSubscription(form.UserID))

	_, err := svc.Submit(context.Background(), form.ID, map[string]any{
		"name": "Ada", "email": "a@b.c", "utm_source": "newsletter",
	}, SubmissionMeta{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if repo.submissions[0].Data["utm_source"] != "newsletter" {
		t.Fatalf("extra key dropped: %+v", repo.submissions[0].Data)
	}
}

func TestSubmitNotifications(t *testing.T) {
	form := publishedForm()
	form.Settings.EmailNotifications = true
	form.Settings.NotificationEmails = []string{"owner@example.com"}
	svc, _, notifier := newSubmissionService(form, freeSubscription(form.UserID))

	_, err := svc.Submit(context.Background(), form.ID, map[string]any{"name": "Ada", "email": "a@b.c"}, SubmissionMeta{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("%d notifications sent", len(notifier.sent))
	}
	if notifier.sent[0].formTitle != "Contact" || notifier.sent[0].to[0] != "owner@example.com" {
		t.Fatalf("notification = %+v", notifier.sent[0])
	}
}

func TestSubmitNotificationFailureDoesNotBlock(t *testing.T) {
	form := publishedForm()
	form.Settings.EmailNotifications = true
	form.Settings.NotificationEmails = []string{"owner@example.com"}
	svc, repo, notifier := newSubmissionService(form, freeSubscription(form.UserID))
	notifier.err = errors.New("smtp down")

	_, err := svc.Submit(context.Background(), form.ID, map[string]any{"name": "Ada", "email": "a@b.c"}, SubmissionMeta{})
	if err != nil {
		t.Fatalf("Submit failed on notification error: %v", err)
	}
	if len(repo.submissions) != 1 {
		t.Fatal("submission not persisted")
	}
}

func TestSubmissionsOwnership(t *testing.T) {
	form := publishedForm()
	svc, repo, _ := newSubmissionService(form, freeSubscription(form.UserID))
	repo.submissions = append(repo.submissions, &model.Submission{ID: "s1", FormID: form.ID, CreatedAt: time.Now()})

	subs, err := svc.Submissions(form.UserID, form.ID, nil, nil)
	if err != nil {
		t.Fatalf("Submissions: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("%d submissions", len(subs))
	}

	_, err = svc.Submissions("someone-else", form.ID, nil, nil)
	if !errors.Is(err, repository.ErrFormNotFound) {
		t.Fatalf("got %v, want ErrFormNotFound for non-owner", err)
	}
}
