package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrInvalidField is wrapped by Result.Err when at least one field failed its
// declared shape.
var ErrInvalidField = errors.New("validation: invalid field")

// Result is the outcome of validating a draft. Errors maps field names to a
// single human-readable message; Form carries messages that could not be tied
// to a declared field.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
	Form   []string          `json:"form,omitempty"`
}

// Err returns nil for a valid result and a *FieldErrors otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &FieldErrors{Fields: r.Errors, Form: r.Form}
}

// FieldErrors is the error form of an invalid Result.
type FieldErrors struct {
	Fields map[string]string
	Form   []string
}

func (e *FieldErrors) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names)+len(e.Form))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	parts = append(parts, e.Form...)
	return fmt.Sprintf("%s (%s)", ErrInvalidField.Error(), strings.Join(parts, "; "))
}

func (e *FieldErrors) Unwrap() error {
	return ErrInvalidField
}

// Validator checks a draft against a shape. Implementations must be pure: the
// same shape and draft always produce the same result.
type Validator interface {
	Validate(shape Shape, draft map[string]string) Result
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(shape Shape, draft map[string]string) Result

// Validate calls f.
func (f ValidatorFunc) Validate(shape Shape, draft map[string]string) Result {
	return f(shape, draft)
}

// SchemaValidator validates drafts through kin-openapi schema visiting.
type SchemaValidator struct{}

var _ Validator = SchemaValidator{}

// NewSchemaValidator returns the default Validator.
func NewSchemaValidator() SchemaValidator {
	return SchemaValidator{}
}

// Validate reports the first failing rule of every declared field. Keys in the
// draft that the shape does not declare are ignored.
func (SchemaValidator) Validate(shape Shape, draft map[string]string) Result {
	result := Result{Valid: true}

	value := make(map[string]any, len(shape.Fields))
	for _, field := range shape.Fields {
		if field.Name == "" {
			continue
		}
		raw, ok := draft[field.Name]
		if !ok {
			result.addField(field.Name, field.message("missing"))
			continue
		}
		value[field.Name] = raw
	}

	// Missing fields already carry a message; give the schema an empty value
	// so it only reports on the fields that were submitted.
	for _, field := range shape.Fields {
		if _, ok := value[field.Name]; !ok && field.Name != "" {
			value[field.Name] = ""
		}
	}

	err := shape.Schema().VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return result
	}

	for _, issue := range flattenErrors(err) {
		var schemaErr *openapi3.SchemaError
		if !errors.As(issue, &schemaErr) {
			result.addForm(strings.TrimSpace(issue.Error()))
			continue
		}
		name := fieldFromPointer(schemaErr.JSONPointer())
		field, ok := shape.Field(name)
		if !ok {
			result.addForm(strings.TrimSpace(schemaErr.Reason))
			continue
		}
		result.addField(field.Name, field.message(ruleFromSchemaField(schemaErr.SchemaField)))
	}
	return result
}

func (r *Result) addField(name, message string) {
	r.Valid = false
	if r.Errors == nil {
		r.Errors = make(map[string]string)
	}
	if _, exists := r.Errors[name]; exists {
		return
	}
	r.Errors[name] = message
}

func (r *Result) addForm(message string) {
	if message == "" {
		return
	}
	r.Valid = false
	r.Form = append(r.Form, message)
}

func flattenErrors(err error) []error {
	var multi openapi3.MultiError
	if !errors.As(err, &multi) {
		return []error{err}
	}
	var out []error
	for _, nested := range multi {
		out = append(out, flattenErrors(nested)...)
	}
	return out
}

func fieldFromPointer(pointer []string) string {
	if len(pointer) == 0 {
		return ""
	}
	return pointer[0]
}

func ruleFromSchemaField(schemaField string) string {
	switch schemaField {
	case "minLength":
		return "required"
	case "pattern":
		return "pattern"
	case "format":
		return "format"
	default:
		return "required"
	}
}
