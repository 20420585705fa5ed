package export_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-fosterdocs/pkg/copies"
	"github.com/goliatone/go-fosterdocs/pkg/document"
	"github.com/goliatone/go-fosterdocs/pkg/export"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/renderers/pdf"
	"github.com/goliatone/go-fosterdocs/pkg/testsupport"
)

type spyRasterizer struct {
	mu       sync.Mutex
	calls    int
	titles   [][]string
	breaks   []int
	staged   []int
	stage    *export.Stage
	err      error
	block    chan struct{}
	started  chan struct{}
	lastMode layout.Mode
	session  *layout.Session
	seen     []layout.Mode
}

func (s *spyRasterizer) Rasterize(ctx context.Context, c *export.Container) ([]byte, error) {
	s.mu.Lock()
	s.calls++
	var titles []string
	for _, page := range c.Pages {
		titles = append(titles, page.Document.Title)
		s.lastMode = page.Document.Mode
	}
	s.titles = append(s.titles, titles)
	s.breaks = append(s.breaks, c.Breaks())
	if s.session != nil {
		s.seen = append(s.seen, s.session.Mode())
	}
	if s.stage != nil {
		s.staged = append(s.staged, s.stage.Len())
	}
	s.mu.Unlock()

	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.block != nil {
		<-s.block
	}
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-spy"), nil
}

func doc(template string) layout.Document {
	return layout.Document{Template: template, Title: template, Mode: layout.ModeInteractive}
}

func newExporter(t *testing.T, spy *spyRasterizer, opts ...export.Option) *export.Exporter {
	t.Helper()
	stage := export.NewStage()
	spy.stage = stage
	opts = append([]export.Option{export.WithStage(stage)}, opts...)
	e, err := export.New(spy, opts...)
	if err != nil {
		t.Fatalf("new exporter: %v", err)
	}
	return e
}

func TestExport_NilElementNeverRasterizes(t *testing.T) {
	spy := &spyRasterizer{}
	e := newExporter(t, spy)

	_, err := e.Export(testsupport.Context(), export.SingleRequest{Filename: "x"})
	if !errors.Is(err, export.ErrNoElement) {
		t.Fatalf("expected ErrNoElement, got %v", err)
	}
	if err.Error() != "no element provided for PDF generation" {
		t.Fatalf("message = %q", err.Error())
	}
	if spy.calls != 0 {
		t.Fatalf("rasterizer called %d times", spy.calls)
	}
}

func TestExport_SingleStagesAndDetaches(t *testing.T) {
	spy := &spyRasterizer{}
	e := newExporter(t, spy)
	d := doc(templatesNOA)

	res, err := e.Export(testsupport.Context(), export.SingleRequest{Element: &d, Filename: "noa"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if res.Filename != "noa.pdf" {
		t.Fatalf("filename = %q", res.Filename)
	}
	if string(res.Data) != "%PDF-spy" {
		t.Fatalf("data = %q", res.Data)
	}
	if diff := cmp.Diff([]int{1}, spy.staged); diff != "" {
		t.Fatalf("stage size during rasterize (-want +got):\n%s", diff)
	}
	if spy.lastMode != layout.ModeExport {
		t.Fatalf("staged mode = %q, want export", spy.lastMode)
	}
	if e.Stage().Len() != 0 {
		t.Fatalf("container left attached: %v", e.Stage().Attached())
	}
}

func TestExport_FailureDetachesAndWraps(t *testing.T) {
	boom := errors.New("canvas exploded")
	spy := &spyRasterizer{err: boom}
	e := newExporter(t, spy)
	d := doc(templatesNOA)

	_, err := e.Export(testsupport.Context(), export.SingleRequest{Element: &d, Filename: "noa.pdf"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped rasterizer error, got %v", err)
	}
	if e.Stage().Len() != 0 {
		t.Fatalf("container left attached after failure")
	}
}

func TestExportBatch_OrderAndBreaks(t *testing.T) {
	spy := &spyRasterizer{}
	e := newExporter(t, spy)

	_, err := e.ExportBatch(testsupport.Context(), export.BatchRequest{
		Documents: []layout.Document{doc("A"), doc("B"), doc("C")},
		Filename:  "packet",
	})
	if err != nil {
		t.Fatalf("export batch: %v", err)
	}
	if diff := cmp.Diff([][]string{{"A", "B", "C"}}, spy.titles); diff != "" {
		t.Fatalf("staged order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2}, spy.breaks); diff != "" {
		t.Fatalf("page breaks (-want +got):\n%s", diff)
	}
}

func TestExportBatch_SingleDocumentHasNoBreak(t *testing.T) {
	spy := &spyRasterizer{}
	e := newExporter(t, spy)

	if _, err := e.ExportBatch(testsupport.Context(), export.BatchRequest{Documents: []layout.Document{doc("A")}}); err != nil {
		t.Fatalf("export batch: %v", err)
	}
	if spy.breaks[0] != 0 {
		t.Fatalf("breaks = %d, want 0", spy.breaks[0])
	}
}

func TestExportBatch_Empty(t *testing.T) {
	spy := &spyRasterizer{}
	e := newExporter(t, spy)
	if _, err := e.ExportBatch(testsupport.Context(), export.BatchRequest{}); !errors.Is(err, export.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
	if spy.calls != 0 {
		t.Fatalf("rasterizer called for empty batch")
	}
}

const (
	templatesNOA     = "N.O.A."
	templatesMedLog  = "Medication Log"
	templatesConsent = "Consent to Treat"
)

func TestExportBatch_ResolvesCopies(t *testing.T) {
	spy := &spyRasterizer{}
	resolver := copies.NewResolver(copies.MustEmbedded())
	e := newExporter(t, spy, export.WithResolver(resolver))

	docs := []layout.Document{doc(templatesNOA), doc(templatesMedLog), doc(templatesConsent)}
	res, err := e.ExportBatch(testsupport.Context(), export.BatchRequest{
		Documents:     docs,
		Category:      document.CategoryIntake,
		ResolveCopies: true,
	})
	if err != nil {
		t.Fatalf("export batch: %v", err)
	}

	want := []string{
		templatesNOA, templatesNOA,
		templatesMedLog,
		templatesConsent, templatesConsent, templatesConsent,
	}
	if diff := cmp.Diff(want, spy.titles[0]); diff != "" {
		t.Fatalf("expanded order (-want +got):\n%s", diff)
	}
	if res.Documents != len(want) {
		t.Fatalf("documents = %d", res.Documents)
	}
	if spy.breaks[0] != len(want)-1 {
		t.Fatalf("breaks = %d", spy.breaks[0])
	}
}

func TestExportBatch_AllDocumentsPrintsOnce(t *testing.T) {
	spy := &spyRasterizer{}
	e := newExporter(t, spy, export.WithResolver(copies.NewResolver(copies.MustEmbedded())))

	_, err := e.ExportBatch(testsupport.Context(), export.BatchRequest{
		Documents:     []layout.Document{doc(templatesNOA), doc(templatesConsent)},
		Category:      document.CategoryAllDocuments,
		ResolveCopies: true,
	})
	if err != nil {
		t.Fatalf("export batch: %v", err)
	}
	if diff := cmp.Diff([]string{templatesNOA, templatesConsent}, spy.titles[0]); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}
}

func TestExportBatch_DefaultsToEmbeddedPolicy(t *testing.T) {
	spy := &spyRasterizer{}
	e := newExporter(t, spy)

	res, err := e.ExportBatch(testsupport.Context(), export.BatchRequest{
		Documents:     []layout.Document{doc(templatesNOA), doc(templatesConsent)},
		Category:      document.CategoryIntake,
		ResolveCopies: true,
	})
	if err != nil {
		t.Fatalf("export batch: %v", err)
	}
	if res.Documents != 5 {
		t.Fatalf("documents = %d, want 5 (N.O.A. x2, Consent x3)", res.Documents)
	}
	if e.Resolver() == nil {
		t.Fatalf("expected a default resolver")
	}
}

func TestExport_AnnouncesPrintOnSignals(t *testing.T) {
	signals := layout.NewSignals()
	sess := layout.Mount(signals, layout.ModeInteractive)
	defer sess.Close()

	spy := &spyRasterizer{session: sess}
	e := newExporter(t, spy, export.WithSignals(signals))
	if e.Signals() != signals {
		t.Fatalf("exporter should expose its signals")
	}

	doc := layout.Document{Title: "NOA"}
	if _, err := e.Export(context.Background(), export.SingleRequest{Element: &doc}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if diff := cmp.Diff([]layout.Mode{layout.ModePrint}, spy.seen); diff != "" {
		t.Fatalf("mode during export (-want +got):\n%s", diff)
	}
	if got := sess.Mode(); got != layout.ModeInteractive {
		t.Fatalf("mode after export = %s, want interactive", got)
	}
}

func TestExport_SerializesStageAccess(t *testing.T) {
	spy := &spyRasterizer{block: make(chan struct{}), started: make(chan struct{}, 1)}
	e := newExporter(t, spy)
	d := doc(templatesNOA)

	done := make(chan error, 1)
	go func() {
		_, err := e.Export(context.Background(), export.SingleRequest{Element: &d})
		done <- err
	}()
	<-spy.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := e.Export(ctx, export.SingleRequest{Element: &d}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected queued export to time out, got %v", err)
	}

	close(spy.block)
	if err := <-done; err != nil {
		t.Fatalf("first export: %v", err)
	}
	if spy.calls != 1 {
		t.Fatalf("rasterizer calls = %d, want 1", spy.calls)
	}
}

func TestExport_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	spy := &spyRasterizer{}
	e := newExporter(t, spy, export.WithMetrics(export.NewMetrics(reg)))
	d := doc(templatesNOA)

	if _, err := e.Export(testsupport.Context(), export.SingleRequest{Element: &d}); err != nil {
		t.Fatalf("export: %v", err)
	}
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() != "fosterdocs_exports_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			if m.GetCounter().GetValue() == 1 {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected fosterdocs_exports_total to be incremented")
	}
}

func TestFilename(t *testing.T) {
	cases := map[string]string{
		"":             "document.pdf",
		"packet":       "packet.pdf",
		"packet.pdf":   "packet.pdf",
		" Packet.PDF ": "Packet.PDF",
	}
	for in, want := range cases {
		if got := export.Filename(in); got != want {
			t.Fatalf("Filename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResult_WriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	path, err := export.Result{Filename: "noa.pdf", Data: []byte("%PDF-1.3")}.WriteFile(dir)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "%PDF-1.3" {
		t.Fatalf("data = %q", data)
	}
}

func TestExportBatch_WithPDFRenderer(t *testing.T) {
	e, err := export.New(export.NewRendererRasterizer(pdf.New()),
		export.WithResolver(copies.NewResolver(copies.MustEmbedded())))
	if err != nil {
		t.Fatalf("new exporter: %v", err)
	}

	docs := []layout.Document{
		*testsupport.SampleDocument(templatesNOA),
		*testsupport.SampleDocument(templatesConsent),
	}
	res, err := e.ExportBatch(testsupport.Context(), export.BatchRequest{
		Documents:     docs,
		Filename:      "intake",
		Category:      document.CategoryIntake,
		ResolveCopies: true,
	})
	if err != nil {
		t.Fatalf("export batch: %v", err)
	}
	info, err := pdf.Inspect(res.Data)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if info.Pages != 5 {
		t.Fatalf("pages = %d, want 5", info.Pages)
	}
	if info.Title != "intake" {
		t.Fatalf("title = %q", info.Title)
	}
}
