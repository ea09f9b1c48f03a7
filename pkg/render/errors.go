package render

import (
	"strings"

	"github.com/goliatone/go-contactbook/pkg/validation"
)

// ErrorMapping splits an error payload into field-level and form-level
// messages keyed by declared field name.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload normalises error payloads keyed by JSON pointer ("/email"),
// dotted path ("body.email") or bare field name onto the fields declared by
// shape. Unknown paths are treated as form-level errors so messages are not
// lost.
func MapErrorPayload(shape validation.Shape, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		return mapping
	}

	declared := make(map[string]struct{}, len(shape.Fields))
	for _, name := range shape.Names() {
		declared[name] = struct{}{}
	}

	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}

		field, ok := mapErrorPath(rawPath, declared)
		if !ok {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[field] = append(mapping.Fields[field], normalized...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// mapErrorPath resolves the last path segment naming a declared field.
func mapErrorPath(raw string, declared map[string]struct{}) (string, bool) {
	segments := pathSegments(raw)
	for idx := len(segments) - 1; idx >= 0; idx-- {
		if _, ok := declared[segments[idx]]; ok {
			return segments[idx], true
		}
	}
	return "", false
}

func pathSegments(path string) []string {
	trimmed := strings.TrimSpace(path)
	trimmed = strings.TrimPrefix(trimmed, "#")
	trimmed = strings.TrimPrefix(trimmed, "$")
	if trimmed == "" {
		return nil
	}
	parts := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '/' || r == '.' || r == '[' || r == ']'
	})
	for idx, part := range parts {
		parts[idx] = strings.ReplaceAll(strings.ReplaceAll(part, "~1", "/"), "~0", "~")
	}
	return parts
}
