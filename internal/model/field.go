package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	FieldTypeText     = "text"
	FieldTypeEmail    = "email"
	FieldTypePhone    = "phone"
	FieldTypeTextarea = "textarea"
	FieldTypeDropdown = "dropdown"
	FieldTypeCheckbox = "checkbox"
	FieldTypeRadio    = "radio"
	FieldTypeFile     = "file"
)

const (
	FieldCategoryBasic     = "basic"
	FieldCategorySelection = "selection"
	FieldCategoryAdvanced  = "advanced"
)

var (
	ErrUnknownFieldType       = errors.New("unknown field type")
	ErrInvalidFieldDefinition = errors.New("invalid field definition")
)

// FieldProperties holds the per-type extras of a field definition.
// Only the fields relevant to the type are populated.
type FieldProperties struct {
	HelpText          string `json:"helpText,omitempty"`
	Rows              int    `json:"rows,omitempty"`
	MaxFileSize       int    `json:"maxFileSize,omitempty"` // MB
	AcceptedFileTypes string `json:"acceptedFileTypes,omitempty"`
}

type FieldDefinition struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Label       string          `json:"label"`
	Placeholder string          `json:"placeholder,omitempty"`
	Required    bool            `json:"required"`
	Options     []string        `json:"options,omitempty"`
	Properties  FieldProperties `json:"properties"`
}

// fieldTypeInfo describes one entry of the closed field type set.
type fieldTypeInfo struct {
	Label    string
	Category string
	Default  func(id string) FieldDefinition
}

var fieldTypes = map[string]fieldTypeInfo{
	FieldTypeText: {
		Label:    "Text",
		Category: FieldCategoryBasic,
		Default: func(id string) FieldDefinition {
			return FieldDefinition{ID: id, Type: FieldTypeText, Label: "Text Input", Placeholder: "Enter text"}
		},
	},
	FieldTypeEmail: {
		Label:    "Email",
		Category: FieldCategoryBasic,
		Default: func(id string) FieldDefinition {
			return FieldDefinition{ID: id, Type: FieldTypeEmail, Label: "Email Address", Placeholder: "name@example.com"}
		},
	},
	FieldTypePhone: {
		Label:    "Phone",
		Category: FieldCategoryBasic,
		Default: func(id string) FieldDefinition {
			return FieldDefinition{ID: id, Type: FieldTypePhone, Label: "Phone Number", Placeholder: "Enter phone number"}
		},
	},
	FieldTypeTextarea: {
		Label:    "Long Text",
		Category: FieldCategoryBasic,
		Default: func(id string) FieldDefinition {
			return FieldDefinition{
				ID: id, Type: FieldTypeTextarea, Label: "Long Text", Placeholder: "Enter your message",
				Properties: FieldProperties{Rows: 4},
			}
		},
	},
	FieldTypeDropdown: {
		Label:    "Dropdown",
		Category: FieldCategorySelection,
		Default: func(id string) FieldDefinition {
			return FieldDefinition{
				ID: id, Type: FieldTypeDropdown, Label: "Select an option",
				Options: []string{"Option 1", "Option 2", "Option 3"},
			}
		},
	},
	FieldTypeCheckbox: {
		Label:    "Checkbox",
		Category: FieldCategorySelection,
		Default: func(id string) FieldDefinition {
			return FieldDefinition{ID: id, Type: FieldTypeCheckbox, Label: "I agree to the terms and conditions"}
		},
	},
	FieldTypeRadio: {
		Label:    "Radio Group",
		Category: FieldCategorySelection,
		Default: func(id string) FieldDefinition {
			return FieldDefinition{
				ID: id, Type: FieldTypeRadio, Label: "Choose one option",
				Options: []string{"Option 1", "Option 2", "Option 3"},
			}
		},
	},
	FieldTypeFile: {
		Label:    "File Upload",
		Category: FieldCategoryAdvanced,
		Default: func(id string) FieldDefinition {
			return FieldDefinition{
				ID: id, Type: FieldTypeFile, Label: "Upload a file",
				Properties: FieldProperties{MaxFileSize: 5, AcceptedFileTypes: ".pdf,.jpg,.jpeg,.png"},
			}
		},
	},
}

// KnownFieldType reports whether t is part of the supported field type set.
func KnownFieldType(t string) bool {
	_, ok := fieldTypes[t]
	return ok
}

// FieldTypeLabel returns the builder display label for a field type.
func FieldTypeLabel(t string) (string, error) {
	info, ok := fieldTypes[t]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownFieldType, t)
	}
	return info.Label, nil
}

// FieldTypeCategory returns the builder palette category for a field type.
func FieldTypeCategory(t string) (string, error) {
	info, ok := fieldTypes[t]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownFieldType, t)
	}
	return info.Category, nil
}

// NewDefaultField creates a fresh field definition with a unique id and the
// type's default label, placeholder and properties.
func NewDefaultField(t string) (FieldDefinition, error) {
	info, ok := fieldTypes[t]
	if !ok {
		return FieldDefinition{}, fmt.Errorf("%w: %s", ErrUnknownFieldType, t)
	}
	return info.Default(uuid.New().String()), nil
}

// Validate checks the field definition for builder-facing problems.
func (f *FieldDefinition) Validate() error {
	if !KnownFieldType(f.Type) {
		return fmt.Errorf("%w: %s", ErrUnknownFieldType, f.Type)
	}
	if strings.TrimSpace(f.Label) == "" {
		return fmt.Errorf("%w: label is required", ErrInvalidFieldDefinition)
	}
	if f.Type == FieldTypeDropdown || f.Type == FieldTypeRadio {
		if len(f.Options) == 0 {
			return fmt.Errorf("%w: %s field needs at least one option", ErrInvalidFieldDefinition, f.Type)
		}
	}
	return nil
}

// MaxFileSizeBytes returns the file size limit in bytes, defaulting to 5 MB
// when the definition does not set one.
func (f *FieldDefinition) MaxFileSizeBytes() int64 {
	size := f.Properties.MaxFileSize
	if size <= 0 {
		size = 5
	}
	return int64(size) << 20
}
