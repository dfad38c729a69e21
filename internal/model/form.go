package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	FormStatusDraft     = "draft"
	FormStatusPublished = "published"
)

// FieldList stores the ordered field definitions of a form as a JSON column.
type FieldList []FieldDefinition

func (l FieldList) Value() (driver.Value, error) {
	if l == nil {
		l = FieldList{}
	}
	return json.Marshal(l)
}

func (l *FieldList) Scan(src any) error {
	return scanJSON(src, l)
}

type FormSettings struct {
	SuccessMessage     string   `json:"successMessage,omitempty"`
	RedirectURL        string   `json:"redirectUrl,omitempty"`
	EmailNotifications bool     `json:"emailNotifications"`
	NotificationEmails []string `json:"notificationEmails,omitempty"`
}

func (s FormSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *FormSettings) Scan(src any) error {
	return scanJSON(src, s)
}

// FormTheme carries the renderer styling options. They are stored and echoed
// back to clients without interpretation.
type FormTheme struct {
	PrimaryColor        string `json:"primaryColor,omitempty"`
	BackgroundColor     string `json:"backgroundColor,omitempty"`
	TextColor           string `json:"textColor,omitempty"`
	PageBackgroundColor string `json:"pageBackgroundColor,omitempty"`
	BackgroundImage     string `json:"backgroundImage,omitempty"`
}

func (t FormTheme) Value() (driver.Value, error) {
	return json.Marshal(t)
}

func (t *FormTheme) Scan(src any) error {
	return scanJSON(src, t)
}

type Form struct {
	ID          string       `db:"id" json:"id"`
	UserID      string       `db:"user_id" json:"userId"`
	Title       string       `db:"title" json:"title"`
	Description string       `db:"description" json:"description"`
	Status      string       `db:"status" json:"status"`
	Fields      FieldList    `db:"fields" json:"fields"`
	Settings    FormSettings `db:"settings" json:"settings"`
	Theme       FormTheme    `db:"theme" json:"theme"`
	ExpiresAt   *time.Time   `db:"expires_at" json:"expiresAt,omitempty"`
	Views       int          `db:"views" json:"views"`
	CreatedAt   time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updatedAt"`
}

func (f *Form) IsPublished() bool {
	return f.Status == FormStatusPublished
}

func (f *Form) IsExpired() bool {
	return f.ExpiresAt != nil && time.Now().After(*f.ExpiresAt)
}

// PublicForm is the wire shape served to respondents. Settings, owner
// identity and counters are never exposed.
type PublicForm struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Fields      FieldList `json:"fields"`
	Theme       FormTheme `json:"theme"`
}

func (f *Form) Public() *PublicForm {
	fields := f.Fields
	if fields == nil {
		fields = FieldList{}
	}
	return &PublicForm{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		Fields:      fields,
		Theme:       f.Theme,
	}
}

// ValidateFields checks every field definition and rejects duplicate ids.
func (f *Form) ValidateFields() error {
	seen := make(map[string]bool, len(f.Fields))
	for i := range f.Fields {
		field := &f.Fields[i]
		if err := field.Validate(); err != nil {
			return err
		}
		if seen[field.ID] {
			return fmt.Errorf("%w: duplicate field id %s", ErrInvalidFieldDefinition, field.ID)
		}
		seen[field.ID] = true
	}
	return nil
}

// scanJSON decodes a JSON database column into dst. Both SQLite (string) and
// PostgreSQL (bytes) representations are handled.
func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}
