package templates

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-fosterdocs/pkg/document"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/model"
)

// Registry stores templates by name.
type Registry struct {
	mu         sync.RWMutex
	templates  map[string]Template
	builder    model.Builder
	decorators []model.Decorator
}

// Option customises a Registry.
type Option func(*Registry)

// WithBuilder swaps the form model builder.
func WithBuilder(builder model.Builder) Option {
	return func(r *Registry) {
		if builder != nil {
			r.builder = builder
		}
	}
}

// WithDecorators appends form decorators such as the widget registry.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(r *Registry) {
		for _, d := range decorators {
			if d != nil {
				r.decorators = append(r.decorators, d)
			}
		}
	}
}

// NewRegistry constructs an empty registry.
func NewRegistry(options ...Option) *Registry {
	r := &Registry{
		templates: make(map[string]Template),
		builder:   model.NewBuilder(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Default returns a registry holding every built-in template.
func Default(options ...Option) *Registry {
	r := NewRegistry(options...)
	for _, t := range Builtins() {
		r.MustRegister(t)
	}
	return r
}

// Builtins lists the built-in templates in catalogue order.
func Builtins() []Template {
	return []Template{
		NewNOA(),
		NewIDEmergencyInfo(),
		NewAgencyToFosterParent(),
		NewCHPD(),
		NewCAForm(),
		NewSpendingAllowance(),
		NewMedicationLog(),
		NewConsentToTreat(),
	}
}

// Register adds a template to the registry.
func (r *Registry) Register(t Template) error {
	if t == nil {
		return fmt.Errorf("templates: cannot register nil template")
	}
	name := strings.TrimSpace(t.Name())
	if name == "" {
		return fmt.Errorf("templates: template name must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.templates[name]; exists {
		return fmt.Errorf("templates: template %q already registered", name)
	}

	r.templates[name] = t
	return nil
}

// MustRegister panics when registration fails.
func (r *Registry) MustRegister(t Template) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Get retrieves a template by name.
func (r *Registry) Get(name string) (Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return t, nil
}

// List returns the registered template names sorted alphabetically.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks a record at the registry boundary: it must name a
// registered template and its fields must bind to that template's inputs.
func (r *Registry) Validate(rec *document.Record) error {
	if rec == nil {
		return document.ErrTemplateRequired
	}
	if err := rec.Validate(); err != nil {
		return err
	}
	t, err := r.Get(rec.TemplateName)
	if err != nil {
		return err
	}
	if binder, ok := t.(interface{ Bind(document.Fields) error }); ok {
		if err := binder.Bind(rec.Fields); err != nil {
			return fmt.Errorf("templates: %s: %w", rec.TemplateName, err)
		}
	}
	return nil
}

// ResolveView renders rec through the template called name. Unknown names
// yield the "Template Not Implemented" placeholder.
func (r *Registry) ResolveView(name string, rec *document.Record, opts ViewOptions) layout.Document {
	if rec == nil {
		rec = document.New(name, "")
	}
	t, err := r.Get(name)
	if err != nil {
		return layout.NotImplemented(name, opts.Mode)
	}
	doc := t.View(rec, opts)
	doc.Template = t.Name()
	doc.Mode = opts.Mode
	return doc
}

// ResolveForm builds the editable form for rec. Unknown names yield the
// placeholder form.
func (r *Registry) ResolveForm(name string, rec *document.Record) model.FormModel {
	if rec == nil {
		rec = document.New(name, "")
	}
	t, err := r.Get(name)
	if err != nil {
		return model.FormModel{
			Template:    name,
			Title:       "Template Not Implemented",
			Standalone:  rec.IsStandalone,
			Placeholder: true,
		}
	}

	form := r.builder.Build(t.Name(), t.Title(), t.Fields(), rec.Fields, rec.IsStandalone)
	for _, decorator := range r.decorators {
		// Decorators only annotate; a failing one leaves the form usable.
		_ = decorator.Decorate(&form)
	}
	return form
}
