package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-fosterdocs/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetComputed = "computed"
	WidgetCheckbox = "checkbox"
	WidgetSelect   = "select"
	WidgetDate     = "date"
	WidgetCurrency = "currency"
	WidgetTextarea = "textarea"
	WidgetPhone    = "phone"
)

// Matcher decides whether a widget renderer should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widget renderers for fields based on explicit hints or
// registered matchers. Higher priority wins; ties fall back to registration
// order. An empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in widget matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. An explicit widget hint is
// honoured before matcher evaluation.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := explicitWidget(field); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator, applying registry resolution to every
// field of every section. The chosen name lands in UIHints["widget"] unless a
// value is already present.
func (r *Registry) Decorate(form *model.FormModel) error {
	if r == nil || form == nil {
		return nil
	}
	for i := range form.Sections {
		fields := form.Sections[i].Fields
		for j := range fields {
			fields[j] = r.decorateField(fields[j])
		}
	}
	return nil
}

func (r *Registry) decorateField(field model.Field) model.Field {
	widget, ok := r.Resolve(field)
	if !ok || widget == "" {
		return field
	}
	if field.UIHints == nil {
		field.UIHints = make(map[string]string)
	}
	if field.UIHints["widget"] == "" {
		field.UIHints["widget"] = widget
	}
	return field
}

func explicitWidget(field model.Field) string {
	if field.UIHints != nil {
		if widget := strings.TrimSpace(field.UIHints["widget"]); widget != "" {
			return widget
		}
	}
	if field.Metadata != nil {
		return strings.TrimSpace(field.Metadata["widget"])
	}
	return ""
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetComputed, 100, func(field model.Field) bool {
		return field.Derived
	})

	r.Register(WidgetCheckbox, 90, func(field model.Field) bool {
		return field.Type == model.FieldTypeCheckbox
	})

	r.Register(WidgetSelect, 80, func(field model.Field) bool {
		return field.Type == model.FieldTypeSelect || len(field.Options) > 0
	})

	r.Register(WidgetDate, 70, func(field model.Field) bool {
		return field.Type == model.FieldTypeDate
	})

	r.Register(WidgetCurrency, 60, func(field model.Field) bool {
		return field.Type == model.FieldTypeCurrency
	})

	r.Register(WidgetTextarea, 50, func(field model.Field) bool {
		return field.Type == model.FieldTypeTextarea
	})

	r.Register(WidgetPhone, 40, func(field model.Field) bool {
		return field.Type == model.FieldTypePhone
	})
}
