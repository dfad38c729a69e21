package render

import (
	"errors"
	"fmt"
	"time"

	"github.com/rahul-nakum14/formcraft/internal/model"
	"github.com/rahul-nakum14/formcraft/internal/validation"
)

// RedirectDelay is how long a completed session shows the success message
// before following the redirect URL.
const RedirectDelay = 2 * time.Second

const (
	StateEditing    = "editing"
	StateSubmitting = "submitting"
	StateSubmitted  = "submitted"
)

var (
	ErrNotEditing    = errors.New("session is not editing")
	ErrNotSubmitting = errors.New("session is not submitting")
	ErrNoSuchField   = errors.New("no such field")
)

// Session collects a respondent's values for one form and tracks the
// submission lifecycle. A failed submission returns to editing with all
// values preserved; a successful one is terminal.
type Session struct {
	form        *model.Form
	values      map[string]any
	state       string
	lastError   error
	message     string
	redirectURL string
}

func NewSession(form *model.Form) *Session {
	return &Session{
		form:   form,
		values: make(map[string]any),
		state:  StateEditing,
	}
}

func (s *Session) State() string {
	return s.state
}

// LastError returns the rejection from the most recent failed submit attempt,
// or nil.
func (s *Session) LastError() error {
	return s.lastError
}

// SetValue stores a value for a field while editing.
func (s *Session) SetValue(fieldID string, value any) error {
	if s.state != StateEditing {
		return ErrNotEditing
	}
	s.values[fieldID] = value
	return nil
}

// SetFile runs the client-side pre-check before accepting a file descriptor.
// Oversized or disallowed files are rejected without touching the session's
// values.
func (s *Session) SetFile(fieldID string, file model.FileValue) error {
	if s.state != StateEditing {
		return ErrNotEditing
	}

	field, ok := s.field(fieldID)
	if !ok || field.Type != model.FieldTypeFile {
		return fmt.Errorf("%w: %s", ErrNoSuchField, fieldID)
	}

	err := validation.CheckFile(file.Name, file.MimeType, file.Size, validation.FileConstraints{
		MaxSize:       field.MaxFileSizeBytes(),
		AcceptedTypes: field.Properties.AcceptedFileTypes,
	})
	if err != nil {
		return err
	}

	s.values[fieldID] = file
	return nil
}

// Values returns a copy of the collected values.
func (s *Session) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Rendered renders the form with the session's current values.
func (s *Session) Rendered() []RenderedField {
	return RenderForm(s.form, s.values)
}

// Begin moves the session into submitting. Values are frozen until the
// attempt resolves.
func (s *Session) Begin() error {
	if s.state != StateEditing {
		return ErrNotEditing
	}
	s.state = StateSubmitting
	return nil
}

// Fail records a rejected submission and returns to editing. Collected
// values stay intact so the respondent can correct and resubmit.
func (s *Session) Fail(err error) error {
	if s.state != StateSubmitting {
		return ErrNotSubmitting
	}
	s.lastError = err
	s.state = StateEditing
	return nil
}

// Complete records an accepted submission. The state is terminal; when a
// redirect URL is present the client follows it after RedirectDelay.
func (s *Session) Complete(message, redirectURL string) error {
	if s.state != StateSubmitting {
		return ErrNotSubmitting
	}
	s.lastError = nil
	s.message = message
	s.redirectURL = redirectURL
	s.state = StateSubmitted
	return nil
}

// Result returns the success message and optional redirect URL of a
// submitted session.
func (s *Session) Result() (message, redirectURL string) {
	return s.message, s.redirectURL
}

func (s *Session) field(fieldID string) (model.FieldDefinition, bool) {
	for _, f := range s.form.Fields {
		if f.ID == fieldID {
			return f, true
		}
	}
	return model.FieldDefinition{}, false
}
