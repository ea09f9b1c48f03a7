package book

import (
	"github.com/goliatone/go-contactbook/pkg/fieldkit"
	"github.com/goliatone/go-contactbook/pkg/form"
	"github.com/goliatone/go-contactbook/pkg/model"
	"github.com/goliatone/go-contactbook/pkg/table"
	"github.com/goliatone/go-contactbook/pkg/validation"
)

// View is a render-ready snapshot of the page.
type View struct {
	Title        string      `json:"title"`
	ModalTitle   string      `json:"modalTitle"`
	ModalOpen    bool        `json:"modalOpen"`
	Fields       []FieldView `json:"fields"`
	FormErrors   []string    `json:"formErrors,omitempty"`
	Table        table.Model `json:"table"`
	Count        int         `json:"count"`
	EmptyMessage string      `json:"emptyMessage"`
}

// FieldView describes one form control.
type FieldView struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Type  string `json:"type"`
	Value string `json:"value"`
	Error string `json:"error,omitempty"`
	// Icon is a built-in glyph name rendered as a leading decoration.
	Icon string `json:"icon,omitempty"`
}

var _ form.Binder = View{}

// View snapshots the page state.
func (b *Book) View() View {
	fields := make([]FieldView, 0, len(b.shape.Fields))
	for _, field := range b.shape.Fields {
		label := field.Label
		if label == "" {
			label = field.Name
		}
		inputType := "text"
		if field.Format == validation.FormatEmail {
			inputType = "email"
		}
		fields = append(fields, FieldView{
			Name:  field.Name,
			Label: label,
			Type:  inputType,
			Value: b.session.Value(field.Name),
			Error: b.session.Error(field.Name),
			Icon:  fieldIcon(field.Name),
		})
	}

	return View{
		Title:        b.title,
		ModalTitle:   ModalTitle,
		ModalOpen:    b.modalOpen,
		Fields:       fields,
		FormErrors:   b.session.FormErrors(),
		Table:        b.Table(),
		Count:        b.contacts.Len(),
		EmptyMessage: EmptyMessage,
	}
}

// Empty reports whether the list has no contacts.
func (v View) Empty() bool {
	return v.Count == 0
}

// Field returns the view of the named control.
func (v View) Field(name string) (FieldView, bool) {
	for _, field := range v.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldView{}, false
}

// Value returns the draft value captured in the snapshot.
func (v View) Value(name string) string {
	field, _ := v.Field(name)
	return field.Value
}

// Error returns the field error captured in the snapshot.
func (v View) Error(name string) string {
	field, _ := v.Field(name)
	return field.Error
}

func fieldIcon(name string) string {
	switch name {
	case model.FieldFirstName, model.FieldLastName:
		return fieldkit.GlyphUser
	case model.FieldEmail:
		return fieldkit.GlyphEnvelope
	case model.FieldPhoneNumber:
		return fieldkit.GlyphPhone
	default:
		return ""
	}
}

// Shape lists the snapshot's fields as a validation shape (names and labels
// only), for mapping error payloads onto controls.
func (v View) Shape() validation.Shape {
	shape := validation.Shape{Fields: make([]validation.FieldShape, len(v.Fields))}
	for idx, field := range v.Fields {
		shape.Fields[idx] = validation.FieldShape{Name: field.Name, Label: field.Label}
	}
	return shape
}
