// Package fosterdocs is the convenience entry point of the module. It
// re-exports the record and option types most callers need and offers
// one-call helpers over the orchestrator.
package fosterdocs

import (
	"context"

	"github.com/goliatone/go-fosterdocs/pkg/document"
	"github.com/goliatone/go-fosterdocs/pkg/export"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/orchestrator"
	"github.com/goliatone/go-fosterdocs/pkg/render"
)

// Record is one filled-out document.
type Record = document.Record

// Category names the workflow documents are printed for.
type Category = document.Category

// RenderOptions carries per-request data such as server-side errors.
type RenderOptions = render.RenderOptions

// ExportResult is a finished PDF.
type ExportResult = export.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewRecord starts an empty record for the named template.
func NewRecord(templateName string, category Category) *Record {
	return document.New(templateName, category)
}

// RenderHTML renders rec as an HTML page in the given mode.
func RenderHTML(ctx context.Context, rec *Record, mode layout.Mode, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Render(ctx, orchestrator.Request{Record: rec, Mode: mode})
}

// ExportPDF renders rec through the export pipeline. An empty filename
// falls back to the document title.
func ExportPDF(ctx context.Context, rec *Record, filename string, options ...orchestrator.Option) (ExportResult, error) {
	gen := orchestrator.New(options...)
	return gen.Export(ctx, rec, filename)
}
