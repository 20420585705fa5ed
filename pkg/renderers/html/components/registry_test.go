package components

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fosterdocs/pkg/model"
)

func TestDefaultRegistry_Names(t *testing.T) {
	reg := NewDefaultRegistry()
	want := []string{NameCheckbox, NameComputed, NameCurrency, NameDate, NameInput, NameSelect, NameTextarea}
	if diff := cmp.Diff(want, reg.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_OverrideIsolatedByClone(t *testing.T) {
	base := NewDefaultRegistry()
	cloned := base.Clone()

	custom := func(buf *bytes.Buffer, field model.Field, _ ComponentData) error {
		buf.WriteString("custom:" + field.Name)
		return nil
	}
	if err := cloned.Register(" Input ", Descriptor{Renderer: custom}); err != nil {
		t.Fatalf("register: %v", err)
	}

	var buf bytes.Buffer
	descriptor, ok := cloned.Descriptor("input")
	if !ok {
		t.Fatalf("expected input descriptor")
	}
	if err := descriptor.Renderer(&buf, model.Field{Name: "name"}, ComponentData{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "custom:name" {
		t.Fatalf("override not applied: %q", buf.String())
	}

	original, _ := base.Descriptor("input")
	if err := original.Renderer(&bytes.Buffer{}, model.Field{}, ComponentData{}); err == nil {
		t.Fatalf("original registry should still require a template renderer")
	}
}

func TestRegistry_RejectsInvalid(t *testing.T) {
	reg := New()
	if err := reg.Register("", Descriptor{Renderer: func(*bytes.Buffer, model.Field, ComponentData) error { return nil }}); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if err := reg.Register("x", Descriptor{}); err == nil {
		t.Fatalf("expected nil renderer to fail")
	}
}

func TestForWidget(t *testing.T) {
	cases := map[string]string{
		"computed": NameComputed,
		"checkbox": NameCheckbox,
		"date":     NameDate,
		"phone":    NameInput,
		"":         NameInput,
	}
	for widget, want := range cases {
		if got := ForWidget(widget); got != want {
			t.Fatalf("ForWidget(%q) = %q, want %q", widget, got, want)
		}
	}
}
