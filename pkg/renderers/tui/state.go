package tui

import (
	"fmt"
	"sort"
	"strings"
)

// State tracks the answers collected during a session alongside the field
// errors the caller passed in. Only answers that differ from the prefilled
// value count as changes.
type State struct {
	values  map[string]any
	changed map[string]struct{}
	errors  map[string][]string
}

// NewState seeds the state with prefilled values and errors.
func NewState(prefill map[string]any, errs map[string][]string) *State {
	s := &State{
		values:  make(map[string]any, len(prefill)),
		changed: make(map[string]struct{}),
		errors:  make(map[string][]string, len(errs)),
	}
	for k, v := range prefill {
		s.values[k] = v
	}
	for k, v := range errs {
		s.errors[k] = append([]string(nil), v...)
	}
	return s
}

// Value returns the current value for key.
func (s *State) Value(key string) any {
	return s.values[key]
}

// Set records an answer. It reports whether the value changed.
func (s *State) Set(key string, value any) bool {
	if same(s.values[key], value) {
		return false
	}
	s.values[key] = value
	s.changed[key] = struct{}{}
	return true
}

// Changed returns the answers that differ from the prefill.
func (s *State) Changed() map[string]any {
	out := make(map[string]any, len(s.changed))
	for k := range s.changed {
		out[k] = s.values[k]
	}
	return out
}

// Errors returns the messages attached to key.
func (s *State) Errors(key string) []string {
	return s.errors[key]
}

// AddError attaches a message to key.
func (s *State) AddError(key, msg string) {
	s.errors[key] = append(s.errors[key], msg)
}

func same(a, b any) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func prettyPrint(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%v\n", k, values[k])
	}
	return b.String()
}
