package html

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"strings"

	"github.com/goliatone/go-fosterdocs/pkg/model"
	"github.com/goliatone/go-fosterdocs/pkg/render/template"
	"github.com/goliatone/go-fosterdocs/pkg/renderers/html/components"
)

type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry
}

func (r *componentRenderer) render(field model.Field, errs []string) (string, error) {
	componentName := components.ForWidget(field.UIHints["widget"])
	if field.Derived {
		componentName = components.NameComputed
	}

	descriptor, ok := r.registry.Descriptor(componentName)
	if !ok {
		return "", fmt.Errorf("component %q not registered for field %q", componentName, field.Name)
	}

	data := components.ComponentData{
		Template:  r.templates,
		ControlID: controlID(field.Name),
		Errors:    errs,
	}

	var control bytes.Buffer
	if err := descriptor.Renderer(&control, field, data); err != nil {
		return "", fmt.Errorf("render component %q for field %q: %w", componentName, field.Name, err)
	}
	return buildFieldMarkup(field, componentName, control.String(), errs), nil
}

func buildFieldMarkup(field model.Field, componentName, control string, errs []string) string {
	var builder strings.Builder
	builder.Grow(len(control) + 256)

	builder.WriteString(`<div class="`)
	builder.WriteString(string(ClassField))
	builder.WriteString(`" data-component="`)
	builder.WriteString(stdhtml.EscapeString(componentName))
	builder.WriteString(`"`)
	if policy := field.Metadata["policy"]; policy != "" {
		builder.WriteString(` data-policy="`)
		builder.WriteString(stdhtml.EscapeString(policy))
		builder.WriteString(`"`)
	}
	if field.ReadOnly {
		builder.WriteString(` data-readonly="true"`)
	}
	builder.WriteString(">\n")

	if label := strings.TrimSpace(field.Label); label != "" {
		builder.WriteString(`    <label for="`)
		builder.WriteString(stdhtml.EscapeString(controlID(field.Name)))
		builder.WriteString(`" class="`)
		builder.WriteString(string(ClassLabel))
		builder.WriteString(`">`)
		builder.WriteString(stdhtml.EscapeString(label))
		builder.WriteString("</label>\n")
	}

	for _, line := range strings.Split(control, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		builder.WriteString("    ")
		builder.WriteString(line)
		builder.WriteByte('\n')
	}

	for _, msg := range errs {
		builder.WriteString(`    <small class="`)
		builder.WriteString(string(ClassFieldError))
		builder.WriteString(`">`)
		builder.WriteString(stdhtml.EscapeString(msg))
		builder.WriteString("</small>\n")
	}

	builder.WriteString("</div>\n")
	return builder.String()
}

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "fd-" + trimmed
}
