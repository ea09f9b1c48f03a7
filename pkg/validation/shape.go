// Package validation checks form drafts against a declared field shape. The
// default validator converts the shape into an OpenAPI schema and maps schema
// errors back to per-field messages.
package validation

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-contactbook/pkg/model"
)

const (
	// FormatEmail constrains a field to an email-address shape.
	FormatEmail = "email"

	// DefaultRequiredMessage is reported when a required field is blank.
	DefaultRequiredMessage = "String must contain at least 1 character(s)"
	// DefaultMissingMessage is reported when a declared field is absent from
	// the draft altogether.
	DefaultMissingMessage = "Required"
	// DefaultEmailMessage is reported when an email field is malformed.
	DefaultEmailMessage = "Invalid email"

	// Dot-separated local part ending in a letter, digit, '_', '+' or '-';
	// dot-separated domain labels that do not start with '-'; a 2+ letter TLD.
	emailPattern = `^(?:[A-Za-z0-9_'+-]+\.)*[A-Za-z0-9_'+-]*[A-Za-z0-9_+-]@(?:[A-Za-z0-9][A-Za-z0-9-]*\.)+[A-Za-z]{2,}$`
)

// FieldShape declares the accepted shape of one draft field.
type FieldShape struct {
	Name     string `json:"name" yaml:"name"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Format   string `json:"format,omitempty" yaml:"format,omitempty"`
	// Pattern is an additional regular expression the value must match.
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	// Messages override the default per-rule messages ("required", "format",
	// "pattern", "missing").
	Messages map[string]string `json:"messages,omitempty" yaml:"messages,omitempty"`
}

// Shape is an ordered set of field declarations.
type Shape struct {
	Fields []FieldShape `json:"fields" yaml:"fields"`
}

// ContactShape declares four required text fields, one of them constrained to
// an email address.
func ContactShape() Shape {
	return Shape{Fields: []FieldShape{
		{Name: model.FieldFirstName, Label: "Name", Required: true},
		{Name: model.FieldLastName, Label: "Surname", Required: true},
		{Name: model.FieldEmail, Label: "E-mail", Format: FormatEmail},
		{Name: model.FieldPhoneNumber, Label: "Phone", Required: true},
	}}
}

// Field returns the declaration for name.
func (s Shape) Field(name string) (FieldShape, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldShape{}, false
}

// Names lists the declared field names in order.
func (s Shape) Names() []string {
	out := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		out = append(out, field.Name)
	}
	return out
}

// Schema converts the shape into an OpenAPI object schema. Every declared
// field is a string property; blank required values fail minLength and
// malformed emails fail the address pattern.
func (s Shape) Schema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	for _, field := range s.Fields {
		if field.Name == "" {
			continue
		}
		property := openapi3.NewStringSchema()
		if field.Required {
			property = property.WithMinLength(1)
		}
		switch {
		case field.Format == FormatEmail:
			property = property.WithPattern(emailPattern)
		case field.Pattern != "":
			property = property.WithPattern(field.Pattern)
		}
		schema = schema.WithProperty(field.Name, property)
	}
	return schema
}

func (f FieldShape) message(rule string) string {
	if msg := f.Messages[rule]; msg != "" {
		return msg
	}
	switch rule {
	case "missing":
		return DefaultMissingMessage
	case "format", "pattern":
		if f.Format == FormatEmail {
			return DefaultEmailMessage
		}
		return "Invalid"
	default:
		return DefaultRequiredMessage
	}
}
