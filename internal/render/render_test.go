package render

import (
	"reflect"
	"testing"

	"github.com/rahul-nakum14/formcraft/internal/model"
)

func sampleForm() *model.Form {
	return &model.Form{
		ID:     "form-1",
		Status: model.FormStatusPublished,
		Fields: model.FieldList{
			{ID: "name", Type: model.FieldTypeText, Label: "Name", Placeholder: "Your name", Required: true},
			{ID: "email", Type: model.FieldTypeEmail, Label: "Email"},
			{ID: "phone", Type: model.FieldTypePhone, Label: "Phone"},
			{ID: "bio", Type: model.FieldTypeTextarea, Label: "Bio"},
			{ID: "color", Type: model.FieldTypeDropdown, Label: "Color", Options: []string{"Red", "Blue"}},
			{ID: "side", Type: model.FieldTypeRadio, Label: "Side", Options: []string{"Left", "Right"}},
			{ID: "agree", Type: model.FieldTypeCheckbox, Label: "Agree"},
			{ID: "cv", Type: model.FieldTypeFile, Label: "CV", Properties: model.FieldProperties{MaxFileSize: 2, AcceptedFileTypes: ".pdf"}},
		},
	}
}

func TestRenderFormControls(t *testing.T) {
	rendered := RenderForm(sampleForm(), nil)
	if len(rendered) != 8 {
		t.Fatalf("rendered %d fields, want 8", len(rendered))
	}

	wantControls := []string{
		ControlInput, ControlInput, ControlInput, ControlTextarea,
		ControlSelect, ControlRadioGroup, ControlCheckbox, ControlFile,
	}
	for i, want := range wantControls {
		if rendered[i].Control != want {
			t.Fatalf("field %d control = %s, want %s", i, rendered[i].Control, want)
		}
	}

	wantInputTypes := []string{"text", "email", "tel"}
	for i, want := range wantInputTypes {
		if rendered[i].InputType != want {
			t.Fatalf("field %d input type = %s, want %s", i, rendered[i].InputType, want)
		}
	}
}

func TestRenderFormDeterministic(t *testing.T) {
	form := sampleForm()
	values := map[string]any{"name": "Ada", "agree": true}

	first := RenderForm(form, values)
	second := RenderForm(form, values)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical input produced different renders")
	}
}

func TestRenderDropdownPlaceholderFirst(t *testing.T) {
	field := model.FieldDefinition{ID: "c", Type: model.FieldTypeDropdown, Label: "Color", Options: []string{"Red", "Blue"}}

	out, ok := RenderField(field, nil)
	if !ok {
		t.Fatal("dropdown did not render")
	}
	if len(out.Options) != 3 {
		t.Fatalf("got %d choices, want 3", len(out.Options))
	}
	if out.Options[0].Value != "" || out.Options[0].Label != "Select an option" {
		t.Fatalf("first choice = %+v, want empty-valued placeholder", out.Options[0])
	}

	field.Placeholder = "Pick a color"
	out, _ = RenderField(field, nil)
	if out.Options[0].Label != "Pick a color" {
		t.Fatalf("placeholder choice label = %q", out.Options[0].Label)
	}
}

func TestRenderTextareaDefaultRows(t *testing.T) {
	field := model.FieldDefinition{ID: "b", Type: model.FieldTypeTextarea, Label: "Bio"}
	out, _ := RenderField(field, nil)
	if out.Rows != 4 {
		t.Fatalf("rows = %d, want 4", out.Rows)
	}

	field.Properties.Rows = 10
	out, _ = RenderField(field, nil)
	if out.Rows != 10 {
		t.Fatalf("rows = %d, want 10", out.Rows)
	}
}

func TestRenderRadioGroupName(t *testing.T) {
	field := model.FieldDefinition{ID: "side", Type: model.FieldTypeRadio, Label: "Side", Options: []string{"L", "R"}}
	out, _ := RenderField(field, nil)
	if out.GroupName != "side" {
		t.Fatalf("group name = %q, want field id", out.GroupName)
	}
}

func TestRenderCheckboxChecked(t *testing.T) {
	field := model.FieldDefinition{ID: "a", Type: model.FieldTypeCheckbox, Label: "Agree"}

	out, _ := RenderField(field, nil)
	if out.Checked {
		t.Fatal("checkbox checked without a value")
	}
	out, _ = RenderField(field, true)
	if !out.Checked {
		t.Fatal("checkbox not checked for true value")
	}
	out, _ = RenderField(field, "yes")
	if out.Checked {
		t.Fatal("non-bool value should not check the box")
	}
}

func TestRenderFileRules(t *testing.T) {
	field := model.FieldDefinition{
		ID: "cv", Type: model.FieldTypeFile, Label: "CV",
		Properties: model.FieldProperties{MaxFileSize: 2, AcceptedFileTypes: ".pdf"},
	}
	out, _ := RenderField(field, nil)
	if out.File == nil {
		t.Fatal("file control missing rules")
	}
	if out.File.MaxSizeBytes != 2<<20 {
		t.Fatalf("max size = %d, want %d", out.File.MaxSizeBytes, 2<<20)
	}
	if out.File.AcceptedTypes != ".pdf" {
		t.Fatalf("accepted types = %q", out.File.AcceptedTypes)
	}
}

func TestRenderSkipsUnknownTypes(t *testing.T) {
	form := &model.Form{Fields: model.FieldList{
		{ID: "f1", Type: model.FieldTypeText, Label: "Known"},
		{ID: "f2", Type: "rating", Label: "Unknown"},
		{ID: "f3", Type: model.FieldTypeEmail, Label: "Known too"},
	}}

	rendered := RenderForm(form, nil)
	if len(rendered) != 2 {
		t.Fatalf("rendered %d fields, want 2", len(rendered))
	}
	if rendered[0].FieldID != "f1" || rendered[1].FieldID != "f3" {
		t.Fatalf("order not preserved: %s, %s", rendered[0].FieldID, rendered[1].FieldID)
	}
}
