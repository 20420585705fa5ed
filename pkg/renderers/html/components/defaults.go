package components

import (
	"bytes"
	"fmt"

	"github.com/goliatone/go-fosterdocs/pkg/model"
)

const templatePrefix = "templates/components/"

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// form controls.
func NewDefaultRegistry() *Registry {
	registry := New()
	for _, name := range []string{NameInput, NameTextarea, NameSelect, NameCheckbox, NameDate, NameCurrency, NameComputed} {
		registry.MustRegister(name, Descriptor{
			Renderer: templateComponentRenderer(templatePrefix + name + ".tmpl"),
		})
	}
	return registry
}

// ForWidget maps a widget hint onto a component name.
func ForWidget(widget string) string {
	switch normalize(widget) {
	case "computed":
		return NameComputed
	case "checkbox":
		return NameCheckbox
	case "select":
		return NameSelect
	case "date":
		return NameDate
	case "currency":
		return NameCurrency
	case "textarea":
		return NameTextarea
	default:
		return NameInput
	}
}

func templateComponentRenderer(templateName string) Renderer {
	return func(buf *bytes.Buffer, field model.Field, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		payload := map[string]any{
			"field":  field,
			"id":     data.ControlID,
			"errors": data.Errors,
		}
		if _, err := data.Template.RenderTemplate(templateName, payload, buf); err != nil {
			return fmt.Errorf("components: render template %q: %w", templateName, err)
		}
		return nil
	}
}
