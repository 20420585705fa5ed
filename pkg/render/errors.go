package render

import (
	"strings"

	"github.com/goliatone/go-fosterdocs/pkg/model"
)

// ErrorMapping splits an error payload into field-level and form-level
// messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises form-level messages, trimming
// whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload attaches messages to the form fields they name. Keys may
// carry request wrappers ("fields.name", "/body/name"); anything that does
// not resolve to a field becomes a form-level message so nothing is lost.
func MapErrorPayload(form model.FormModel, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}

	known := make(map[string]struct{})
	for _, field := range form.Fields() {
		known[field.Name] = struct{}{}
	}

	for raw, messages := range payload {
		messages = normalizeMessages(messages)
		if len(messages) == 0 {
			continue
		}
		if name := fieldName(raw); name != "" {
			if _, ok := known[name]; ok {
				mapping.Fields[name] = append(mapping.Fields[name], messages...)
				continue
			}
		}
		mapping.Form = append(mapping.Form, messages...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// fieldName strips path wrappers and returns the last path segment.
func fieldName(raw string) string {
	clean := strings.Trim(strings.TrimSpace(raw), "#$./")
	if clean == "" {
		return ""
	}
	parts := strings.FieldsFunc(clean, func(r rune) bool { return r == '.' || r == '/' })
	if len(parts) == 0 {
		return ""
	}
	return strings.TrimSpace(parts[len(parts)-1])
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
