// Package render maps form definitions to the control structures a client
// renders. Rendering is pure: the same definition and values always produce
// the same output.
package render

import (
	"github.com/rahul-nakum14/formcraft/internal/model"
)

const (
	ControlInput      = "input"
	ControlTextarea   = "textarea"
	ControlSelect     = "select"
	ControlCheckbox   = "checkbox"
	ControlRadioGroup = "radiogroup"
	ControlFile       = "file"
)

// Choice is one selectable option of a select or radio group control.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FileRules surfaces a file field's constraints to the client pre-check.
type FileRules struct {
	MaxSizeBytes  int64  `json:"maxSizeBytes"`
	AcceptedTypes string `json:"acceptedTypes,omitempty"`
}

// RenderedField is the render contract for a single field.
type RenderedField struct {
	FieldID     string     `json:"fieldId"`
	Control     string     `json:"control"`
	InputType   string     `json:"inputType,omitempty"` // text, email or tel for input controls
	Label       string     `json:"label"`
	Placeholder string     `json:"placeholder,omitempty"`
	Required    bool       `json:"required"`
	HelpText    string     `json:"helpText,omitempty"`
	Rows        int        `json:"rows,omitempty"`
	Options     []Choice   `json:"options,omitempty"`
	GroupName   string     `json:"groupName,omitempty"` // radio inputs share the field id
	Checked     bool       `json:"checked,omitempty"`
	Value       any        `json:"value,omitempty"`
	File        *FileRules `json:"file,omitempty"`
}

// RenderField maps one field definition, with an optional current value, to
// its rendered control. Unknown field types render nothing; the second return
// is false and the caller skips the field.
func RenderField(field model.FieldDefinition, value any) (RenderedField, bool) {
	out := RenderedField{
		FieldID:     field.ID,
		Label:       field.Label,
		Placeholder: field.Placeholder,
		Required:    field.Required,
		HelpText:    field.Properties.HelpText,
		Value:       value,
	}

	switch field.Type {
	case model.FieldTypeText:
		out.Control = ControlInput
		out.InputType = "text"
	case model.FieldTypeEmail:
		out.Control = ControlInput
		out.InputType = "email"
	case model.FieldTypePhone:
		out.Control = ControlInput
		out.InputType = "tel"
	case model.FieldTypeTextarea:
		out.Control = ControlTextarea
		out.Rows = field.Properties.Rows
		if out.Rows <= 0 {
			out.Rows = 4
		}
	case model.FieldTypeDropdown:
		out.Control = ControlSelect
		out.Options = selectChoices(field)
	case model.FieldTypeRadio:
		out.Control = ControlRadioGroup
		out.GroupName = field.ID
		out.Options = choices(field.Options)
	case model.FieldTypeCheckbox:
		out.Control = ControlCheckbox
		// Unchecked unless the current value says otherwise.
		checked, _ := value.(bool)
		out.Checked = checked
	case model.FieldTypeFile:
		out.Control = ControlFile
		out.File = &FileRules{
			MaxSizeBytes:  field.MaxFileSizeBytes(),
			AcceptedTypes: field.Properties.AcceptedFileTypes,
		}
	default:
		return RenderedField{}, false
	}

	return out, true
}

// RenderForm renders every known field of a form in definition order.
// Fields with unknown types are skipped without error.
func RenderForm(form *model.Form, values map[string]any) []RenderedField {
	rendered := make([]RenderedField, 0, len(form.Fields))
	for _, field := range form.Fields {
		out, ok := RenderField(field, values[field.ID])
		if !ok {
			continue
		}
		rendered = append(rendered, out)
	}
	return rendered
}

// selectChoices prepends the placeholder choice so the dropdown starts on an
// unselected entry.
func selectChoices(field model.FieldDefinition) []Choice {
	placeholder := field.Placeholder
	if placeholder == "" {
		placeholder = "Select an option"
	}
	out := make([]Choice, 0, len(field.Options)+1)
	out = append(out, Choice{Value: "", Label: placeholder})
	out = append(out, choices(field.Options)...)
	return out
}

func choices(options []string) []Choice {
	out := make([]Choice, 0, len(options))
	for _, opt := range options {
		out = append(out, Choice{Value: opt, Label: opt})
	}
	return out
}
