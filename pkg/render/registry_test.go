package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/render"
)

type stubRenderer struct{ name string }

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, layout.Document, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry_RegisterAndList(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(stubRenderer{name: "pdf"})
	reg.MustRegister(stubRenderer{name: "html"})

	if diff := cmp.Diff([]string{"html", "pdf"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if err := reg.Register(stubRenderer{name: "pdf"}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if _, err := reg.Get("docx"); err == nil {
		t.Fatalf("expected missing renderer error")
	}
	if !reg.Has("html") {
		t.Fatalf("expected html renderer")
	}
	if _, err := reg.Form("html"); err == nil {
		t.Fatalf("stub renderer should not satisfy FormRenderer")
	}
}
