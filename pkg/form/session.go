// Package form holds the mutable draft behind the Add-Contact form. A Session
// is passed explicitly to every bound control instead of being looked up from
// an ambient context.
package form

import (
	"maps"
	"slices"

	"github.com/goliatone/go-contactbook/pkg/model"
	"github.com/goliatone/go-contactbook/pkg/validation"
)

// Binder is the read side of a session used by bound controls.
type Binder interface {
	Value(name string) string
	Error(name string) string
}

// Session owns one draft: the current value of every declared field plus the
// per-field errors of the last failed submit.
type Session struct {
	shape     validation.Shape
	validator validation.Validator

	values     map[string]string
	errors     map[string]string
	formErrors []string
}

var _ Binder = (*Session)(nil)

// NewSession creates an empty draft for shape. A nil validator falls back to
// the schema validator.
func NewSession(shape validation.Shape, validator validation.Validator) *Session {
	if validator == nil {
		validator = validation.NewSchemaValidator()
	}
	s := &Session{shape: shape, validator: validator}
	s.Reset()
	return s
}

// Shape returns the declaration the session validates against.
func (s *Session) Shape() validation.Shape {
	return s.shape
}

// Value returns the current draft value for name.
func (s *Session) Value(name string) string {
	return s.values[name]
}

// SetValue updates one field. Names the shape does not declare are ignored.
func (s *Session) SetValue(name, value string) {
	if _, ok := s.shape.Field(name); !ok {
		return
	}
	s.values[name] = value
}

// Apply sets every declared field present in values.
func (s *Session) Apply(values map[string]string) {
	for name, value := range values {
		s.SetValue(name, value)
	}
}

// Error returns the message attached to name by the last submit, if any.
func (s *Session) Error(name string) string {
	return s.errors[name]
}

// Errors returns a copy of the per-field errors.
func (s *Session) Errors() map[string]string {
	if len(s.errors) == 0 {
		return nil
	}
	return maps.Clone(s.errors)
}

// FormErrors returns messages not tied to a declared field.
func (s *Session) FormErrors() []string {
	return slices.Clone(s.formErrors)
}

// Values returns a copy of the draft.
func (s *Session) Values() map[string]string {
	return maps.Clone(s.values)
}

// Dirty reports whether any field holds a non-empty value.
func (s *Session) Dirty() bool {
	for _, value := range s.values {
		if value != "" {
			return true
		}
	}
	return false
}

// Reset discards the draft and its errors.
func (s *Session) Reset() {
	s.values = make(map[string]string, len(s.shape.Fields))
	for _, name := range s.shape.Names() {
		s.values[name] = ""
	}
	s.errors = nil
	s.formErrors = nil
}

// Submit validates the draft. On success it returns the contact built from
// the draft and clears previous errors; the draft itself is kept so the caller
// decides when to Reset. On failure the errors are attached to the session.
func (s *Session) Submit() (model.Contact, validation.Result) {
	result := s.validator.Validate(s.shape, s.values)
	if !result.Valid {
		s.errors = maps.Clone(result.Errors)
		s.formErrors = slices.Clone(result.Form)
		return model.Contact{}, result
	}
	s.errors = nil
	s.formErrors = nil
	return model.ContactFromDraft(s.values), result
}
