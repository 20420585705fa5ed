package model

// FieldType is the simplified enum for form-friendly input kinds.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeDate     FieldType = "date"
	FieldTypeNumber   FieldType = "number"
	FieldTypeCurrency FieldType = "currency"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeSelect   FieldType = "select"
	FieldTypePhone    FieldType = "phone"
)

// Policy decides when a field is editable.
type Policy string

const (
	// PolicyEditable fields are always editable.
	PolicyEditable Policy = "editable"
	// PolicyUpstream fields are sourced from the intake record and only
	// editable on standalone documents.
	PolicyUpstream Policy = "upstream"
	// PolicyDerived fields are computed and never editable.
	PolicyDerived Policy = "derived"
	// PolicyOverride fields shadow upstream values and stay editable.
	PolicyOverride Policy = "override"
)

// ReadOnly applies the policy for the given standalone flag.
func (p Policy) ReadOnly(standalone bool) bool {
	switch p {
	case PolicyDerived:
		return true
	case PolicyUpstream:
		return !standalone
	default:
		return false
	}
}

// FieldSpec is a template's declaration of one input.
type FieldSpec struct {
	Key         string
	Label       string
	Type        FieldType
	Section     string
	Policy      Policy
	Default     string
	Options     []string
	Placeholder string
}

// Field models an individual input inside a generated form. Struct fields are
// annotated so renderers can serialise them directly when needed.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Value       any               `json:"value"`
	ReadOnly    bool              `json:"readOnly,omitempty"`
	Derived     bool              `json:"derived,omitempty"`
	Options     []string          `json:"options,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty"`
}

// Section groups fields under a heading.
type Section struct {
	Title  string  `json:"title,omitempty"`
	Fields []Field `json:"fields"`
}

// FormModel is the top-level representation form renderers consume.
type FormModel struct {
	Template    string            `json:"template"`
	Title       string            `json:"title"`
	Standalone  bool              `json:"standalone,omitempty"`
	Placeholder bool              `json:"placeholder,omitempty"`
	Sections    []Section         `json:"sections"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field finds a field by name across sections.
func (f FormModel) Field(name string) (Field, bool) {
	for _, section := range f.Sections {
		for _, field := range section.Fields {
			if field.Name == name {
				return field, true
			}
		}
	}
	return Field{}, false
}

// Fields flattens every section in order.
func (f FormModel) Fields() []Field {
	var out []Field
	for _, section := range f.Sections {
		out = append(out, section.Fields...)
	}
	return out
}
