package model

import (
	"strings"

	"github.com/goliatone/go-fosterdocs/pkg/document"
)

// Builder turns a template's field specs plus a record's field bag into a
// FormModel.
type Builder struct {
	options Options
}

// New constructs a Builder.
func New(options Options) *Builder {
	return &Builder{options: Options{Labeler: options.labeler()}}
}

// Build lays out specs in declaration order. Sections appear in the order
// their first field is declared.
func (b *Builder) Build(template, title string, specs []FieldSpec, fields document.Fields, standalone bool) FormModel {
	form := FormModel{
		Template:   template,
		Title:      title,
		Standalone: standalone,
	}

	index := make(map[string]int)
	for _, spec := range specs {
		key := strings.TrimSpace(spec.Key)
		if key == "" {
			continue
		}
		pos, ok := index[spec.Section]
		if !ok {
			form.Sections = append(form.Sections, Section{Title: spec.Section})
			pos = len(form.Sections) - 1
			index[spec.Section] = pos
		}
		form.Sections[pos].Fields = append(form.Sections[pos].Fields, b.field(spec, fields, standalone))
	}
	return form
}

func (b *Builder) field(spec FieldSpec, fields document.Fields, standalone bool) Field {
	fieldType := spec.Type
	if fieldType == "" {
		fieldType = FieldTypeText
	}
	label := strings.TrimSpace(spec.Label)
	if label == "" {
		label = b.options.Labeler(spec.Key)
	}
	policy := spec.Policy
	if policy == "" {
		policy = PolicyEditable
	}

	field := Field{
		Name:        spec.Key,
		Type:        fieldType,
		Label:       label,
		Placeholder: spec.Placeholder,
		ReadOnly:    policy.ReadOnly(standalone),
		Derived:     policy == PolicyDerived,
		Options:     append([]string(nil), spec.Options...),
		Metadata:    map[string]string{"policy": string(policy)},
	}

	if fieldType == FieldTypeCheckbox {
		field.Value = fields.Bool(spec.Key)
		return field
	}
	field.Value = fields.TextOr(spec.Key, spec.Default)
	return field
}
