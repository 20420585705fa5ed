package html_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-fosterdocs/pkg/document"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/render"
	"github.com/goliatone/go-fosterdocs/pkg/renderers/html"
	"github.com/goliatone/go-fosterdocs/pkg/templates"
	"github.com/goliatone/go-fosterdocs/pkg/testsupport"
	"github.com/goliatone/go-fosterdocs/pkg/widgets"
)

const pngRef = "data:image/png;base64,iVBORw0KGgo="

func newRenderer(t *testing.T) *html.Renderer {
	t.Helper()
	r, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRender_DocumentWithDefaults(t *testing.T) {
	r := newRenderer(t)
	reg := templates.Default()
	rec := document.New(templates.NameNOA, document.CategoryIntake)
	rec.Fields.Set("name", "Sam Rivera")
	rec.Fields.Set("dateOfBirth", "2010-02-15")

	doc := reg.ResolveView(templates.NameNOA, rec, templates.ViewOptions{Mode: layout.ModeInteractive})
	out, err := r.Render(testsupport.Context(), doc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(out)

	for _, want := range []string{
		templates.DefaultAgencyName,
		"Sam Rivera",
		"February 15, 2010",
		`data-template="N.O.A."`,
		`class="fd-signature-role"`,
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected %q in output:\n%s", want, page)
		}
	}
	if strings.Contains(page, "&lt;nil&gt;") || strings.Contains(page, ">null<") {
		t.Fatalf("unexpected null literal in output")
	}
}

func TestRender_PrintModeHidesControls(t *testing.T) {
	r := newRenderer(t)
	reg := templates.Default()
	rec := document.New(templates.NameCHPD, document.CategoryIntake)
	if err := rec.PlaceSignature("caseworkerSignature", pngRef); err != nil {
		t.Fatalf("place: %v", err)
	}

	doc := reg.ResolveView(templates.NameCHPD, rec, templates.ViewOptions{Mode: layout.ModePrint})
	out, err := r.Render(testsupport.Context(), doc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(out)
	if strings.Contains(page, `<button`) || strings.Contains(page, `<select class="fd-signature-role"`) {
		t.Fatalf("print mode rendered controls:\n%s", page)
	}
	if !strings.Contains(page, `src="`+pngRef+`"`) {
		t.Fatalf("signature image missing:\n%s", page)
	}
}

func TestSignatureImage_Sanitises(t *testing.T) {
	if got := html.SignatureImage("javascript:alert(1)", "x"); got != "" {
		t.Fatalf("script ref rendered: %q", got)
	}
	got := html.SignatureImage(pngRef, `Caseworker "A"`)
	if !strings.Contains(got, `src="`+pngRef+`"`) || !strings.HasPrefix(got, "<img") {
		t.Fatalf("data URI stripped: %q", got)
	}
}

func TestRenderBatch_PageBreaksBetweenDocuments(t *testing.T) {
	r := newRenderer(t)
	docs := []layout.Document{
		*testsupport.SampleDocument("A"),
		*testsupport.SampleDocument("B"),
		*testsupport.SampleDocument("C"),
	}

	out, err := r.RenderBatch(testsupport.Context(), docs, render.RenderOptions{Title: "packet"})
	if err != nil {
		t.Fatalf("render batch: %v", err)
	}
	page := string(out)

	if got := strings.Count(page, `class="fd-page-break"`); got != 2 {
		t.Fatalf("page breaks = %d, want 2", got)
	}
	a := strings.Index(page, `data-template="A"`)
	b := strings.Index(page, `data-template="B"`)
	c := strings.Index(page, `data-template="C"`)
	if a < 0 || !(a < b && b < c) {
		t.Fatalf("documents out of order: %d %d %d", a, b, c)
	}
	firstBreak := strings.Index(page, `class="fd-page-break"`)
	if firstBreak < a {
		t.Fatalf("page break emitted before first document")
	}
	lastBreak := strings.LastIndex(page, `class="fd-page-break"`)
	if lastBreak > c {
		t.Fatalf("page break emitted after last document")
	}
}

func TestRenderForm_PoliciesAndErrors(t *testing.T) {
	r := newRenderer(t)
	reg := templates.Default(templates.WithDecorators(widgets.NewRegistry()))
	rec := document.New(templates.NameCAForm, document.CategoryIntake)
	rec.Fields.Set("name", "Sam Rivera")

	form := reg.ResolveForm(templates.NameCAForm, rec)
	out, err := r.RenderForm(testsupport.Context(), form, render.RenderOptions{
		Action: "/records/1",
		Errors: map[string][]string{
			"name":  {"Name is read-only"},
			"other": {"Something went wrong"},
		},
	})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	page := string(out)

	for _, want := range []string{
		`id="fd-name" name="name" value="Sam Rivera" readonly`,
		`type="date" id="fd-q1_month1_startDate"`,
		`<output id="fd-q1_month1_balance"`,
		"Name is read-only",
		"Something went wrong",
		`action="/records/1"`,
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected %q in form:\n%s", want, page)
		}
	}
}

func TestRenderForm_Placeholder(t *testing.T) {
	r := newRenderer(t)
	form := templates.Default().ResolveForm("Adoption Packet", nil)
	out, err := r.RenderForm(testsupport.Context(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	if !strings.Contains(string(out), "Template Not Implemented") {
		t.Fatalf("placeholder title missing:\n%s", out)
	}
}

func TestRender_PlaceholderDocument(t *testing.T) {
	r := newRenderer(t)
	rec := document.New("Adoption Packet", document.CategoryIntake)
	doc := templates.Default().ResolveView("Adoption Packet", rec, templates.ViewOptions{Mode: layout.ModePrint})

	out, err := r.Render(testsupport.Context(), doc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render placeholder: %v", err)
	}
	page := string(out)
	if !strings.Contains(page, "Template Not Implemented") || !strings.Contains(page, "Adoption Packet") {
		t.Fatalf("placeholder page missing title or name:\n%s", page)
	}
}
