package pdf_test

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/goliatone/go-fosterdocs/pkg/document"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/render"
	"github.com/goliatone/go-fosterdocs/pkg/renderers/pdf"
	"github.com/goliatone/go-fosterdocs/pkg/templates"
	"github.com/goliatone/go-fosterdocs/pkg/testsupport"
)

func signatureRef(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 40, 12))
	for x := 0; x < 40; x++ {
		img.Set(x, 6, color.NRGBA{A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestRender_Metadata(t *testing.T) {
	r := pdf.New()
	doc := testsupport.SampleDocument("Sample")

	out, err := r.Render(testsupport.Context(), *doc, render.RenderOptions{Title: "intake-packet"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	info, err := pdf.Inspect(out)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if info.Pages != 1 {
		t.Fatalf("pages = %d, want 1", info.Pages)
	}
	if info.Title != "intake-packet" {
		t.Fatalf("title = %q", info.Title)
	}
	if info.Subject != pdf.Subject {
		t.Fatalf("subject = %q", info.Subject)
	}
	if info.Creator != pdf.CreatorName {
		t.Fatalf("creator = %q", info.Creator)
	}
}

func TestRender_TitleFallsBackToDocument(t *testing.T) {
	out, err := pdf.New(pdf.WithCreator("Harbor Light")).Render(testsupport.Context(), *testsupport.SampleDocument("CHPD"), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	info, err := pdf.Inspect(out)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if info.Title != "CHPD" || info.Creator != "Harbor Light" {
		t.Fatalf("unexpected metadata %+v", info)
	}
}

func TestRenderBatch_OnePagePerDocument(t *testing.T) {
	docs := []layout.Document{
		*testsupport.SampleDocument("A"),
		*testsupport.SampleDocument("B"),
		*testsupport.SampleDocument("C"),
	}
	out, err := pdf.New().RenderBatch(testsupport.Context(), docs, render.RenderOptions{Title: "batch"})
	if err != nil {
		t.Fatalf("render batch: %v", err)
	}
	info, err := pdf.Inspect(out)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if info.Pages != 3 {
		t.Fatalf("pages = %d, want 3", info.Pages)
	}
}

func TestRenderBatch_Empty(t *testing.T) {
	_, err := pdf.New().RenderBatch(testsupport.Context(), nil, render.RenderOptions{})
	if !errors.Is(err, pdf.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}

func TestRender_LongTableFlowsOntoNextPage(t *testing.T) {
	rows := make([][]string, 0, 120)
	for i := 0; i < 120; i++ {
		rows = append(rows, []string{"2024-01-01", "Entry", "$1.00"})
	}
	doc := layout.Document{
		Title:  "Ledger",
		Blocks: []layout.Block{layout.Table([]string{"Date", "Item", "Amount"}, rows)},
	}
	out, err := pdf.New().Render(testsupport.Context(), doc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	info, err := pdf.Inspect(out)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if info.Pages < 2 {
		t.Fatalf("pages = %d, want at least 2", info.Pages)
	}
}

func TestRender_SignedTemplate(t *testing.T) {
	reg := templates.Default()
	rec := document.New(templates.NameConsentToTreat, document.CategoryIntake)
	rec.Fields.Set("name", "Sam Rivera")
	ref := signatureRef(t)
	for _, area := range []string{"parentGuardianSignature", "caseworkerSignature"} {
		rec.Signatures.Place(area, ref)
	}
	rec.Signatures.Place("caseworkerSignature", "https://example.org/sig.png")

	doc := reg.ResolveView(rec.TemplateName, rec, templates.ViewOptions{Mode: layout.ModeExport})
	out, err := pdf.New().Render(testsupport.Context(), doc, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestRender_CanceledContext(t *testing.T) {
	ctx, cancel := testsupport.CancelableContext()
	cancel()
	if _, err := pdf.New().Render(ctx, *testsupport.SampleDocument("A"), render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestSettings_Defaults(t *testing.T) {
	got := pdf.New(pdf.WithSettings(pdf.Settings{MarginMM: 8})).Settings()
	want := pdf.Settings{PageSize: "A4", Orientation: "P", MarginMM: 8, ImageScale: 2, JPEGQuality: 95}
	if got != want {
		t.Fatalf("settings = %+v, want %+v", got, want)
	}
}
