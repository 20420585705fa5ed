package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-fosterdocs/pkg/copies"
	"github.com/goliatone/go-fosterdocs/pkg/document"
	"github.com/goliatone/go-fosterdocs/pkg/export"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/model"
	"github.com/goliatone/go-fosterdocs/pkg/render"
	"github.com/goliatone/go-fosterdocs/pkg/renderers/html"
	"github.com/goliatone/go-fosterdocs/pkg/renderers/pdf"
	"github.com/goliatone/go-fosterdocs/pkg/templates"
	"github.com/goliatone/go-fosterdocs/pkg/widgets"
)

const defaultRendererName = html.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithTemplates injects the template registry.
func WithTemplates(registry *templates.Registry) Option {
	return func(o *Orchestrator) {
		o.templates = registry
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithExporter injects the export pipeline. Without one, exports use the
// registered "pdf" renderer.
func WithExporter(exporter *export.Exporter) Option {
	return func(o *Orchestrator) {
		o.exporter = exporter
	}
}

// WithResolver sets the copy policy used by the default exporter.
func WithResolver(resolver *copies.Resolver) Option {
	return func(o *Orchestrator) {
		o.resolver = resolver
	}
}

// WithSignals sets the print signal hub sessions mount on. The default
// exporter announces exports on it.
func WithSignals(signals *layout.Signals) Option {
	return func(o *Orchestrator) {
		o.signals = signals
	}
}

// WithTransformers registers transformers applied, in order, to every view
// document.
func WithTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		o.transformers = append(o.transformers, transformers...)
	}
}

// WithLogger sets the structured logger passed to the editor and exporter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates templates, renderers and the exporter. It applies
// defaults (built-in templates, html and pdf renderers, embedded copy
// policy) while remaining open to dependency injection.
type Orchestrator struct {
	templates       *templates.Registry
	editor          *templates.Editor
	registry        *render.Registry
	defaultRenderer string
	exporter        *export.Exporter
	resolver        *copies.Resolver
	signals         *layout.Signals
	transformers    chain
	logger          *slog.Logger
	initialiseErr   error
	exporterErr     error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one record to render.
type Request struct {
	Record *document.Record
	// Renderer names the renderer. Empty falls back to the default.
	Renderer string
	Mode     layout.Mode
	// Session, when set, supplies the mode at render time and Mode is
	// ignored.
	Session *layout.Session
	// RenderOptions carries per-request data such as server-side errors.
	RenderOptions render.RenderOptions
}

// BatchRequest describes a multi-record export.
type BatchRequest struct {
	Records       []*document.Record
	Filename      string
	Category      document.Category
	ResolveCopies bool
}

// Templates exposes the template registry.
func (o *Orchestrator) Templates() *templates.Registry {
	return o.templates
}

// Renderers exposes the renderer registry.
func (o *Orchestrator) Renderers() *render.Registry {
	return o.registry
}

// Resolver exposes the copy-count resolver.
func (o *Orchestrator) Resolver() *copies.Resolver {
	return o.resolver
}

// Exporter exposes the export pipeline.
func (o *Orchestrator) Exporter() *export.Exporter {
	return o.exporter
}

// Signals returns the print signal hub.
func (o *Orchestrator) Signals() *layout.Signals {
	return o.signals
}

// Mount starts a view session on the orchestrator's signals. Callers must
// Close it.
func (o *Orchestrator) Mount(base layout.Mode) *layout.Session {
	return layout.Mount(o.signals, base)
}

// View resolves the record's template view after running transformers.
// Unknown templates produce the placeholder document.
func (o *Orchestrator) View(ctx context.Context, rec *document.Record, mode layout.Mode) (layout.Document, error) {
	if err := o.ready(ctx); err != nil {
		return layout.Document{}, err
	}
	if err := rec.Validate(); err != nil {
		return layout.Document{}, err
	}
	doc := o.templates.ResolveView(rec.TemplateName, rec, templates.ViewOptions{Mode: mode})
	if err := o.transformers.Transform(ctx, &doc); err != nil {
		return layout.Document{}, fmt.Errorf("orchestrator: transform view: %w", err)
	}
	return doc, nil
}

// Render returns the rendered view of a record.
func (o *Orchestrator) Render(ctx context.Context, req Request) ([]byte, error) {
	mode := req.Mode
	if req.Session != nil {
		mode = req.Session.Mode()
	}
	doc, err := o.View(ctx, req.Record, mode)
	if err != nil {
		return nil, err
	}
	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}
	output, err := renderer.Render(ctx, doc, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Form returns the editable form for a record.
func (o *Orchestrator) Form(ctx context.Context, req Request) ([]byte, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	if err := req.Record.Validate(); err != nil {
		return nil, err
	}
	name := req.Renderer
	if name == "" {
		name = o.defaultRenderer
	}
	renderer, err := o.registry.Form(name)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	form := o.FormModel(req.Record)
	output, err := renderer.RenderForm(ctx, form, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render form: %w", err)
	}
	return output, nil
}

// FormModel builds the decorated form model for a record.
func (o *Orchestrator) FormModel(rec *document.Record) model.FormModel {
	return o.templates.ResolveForm(rec.TemplateName, rec)
}

// Change applies an edit and recalculates dependent fields.
func (o *Orchestrator) Change(ctx context.Context, rec *document.Record, key string, value any) error {
	if err := o.ready(ctx); err != nil {
		return err
	}
	return o.editor.Change(ctx, rec, key, value)
}

// Load brings a freshly opened record's derived fields up to date.
func (o *Orchestrator) Load(ctx context.Context, rec *document.Record) error {
	if err := o.ready(ctx); err != nil {
		return err
	}
	return o.editor.Load(ctx, rec)
}

// Export produces a single-record PDF. A nil record reports
// export.ErrNoElement.
func (o *Orchestrator) Export(ctx context.Context, rec *document.Record, filename string) (export.Result, error) {
	if err := o.exportReady(ctx); err != nil {
		return export.Result{}, err
	}
	if rec == nil {
		return o.exporter.Export(ctx, export.SingleRequest{Filename: filename})
	}
	doc, err := o.View(ctx, rec, layout.ModeExport)
	if err != nil {
		return export.Result{}, err
	}
	if filename == "" {
		filename = doc.Title
	}
	return o.exporter.Export(ctx, export.SingleRequest{Element: &doc, Filename: filename})
}

// ExportBatch produces one PDF from several records in order.
func (o *Orchestrator) ExportBatch(ctx context.Context, req BatchRequest) (export.Result, error) {
	if err := o.exportReady(ctx); err != nil {
		return export.Result{}, err
	}
	docs, err := export.BuildDocuments(ctx, len(req.Records), func(ctx context.Context, i int) (layout.Document, error) {
		doc, err := o.View(ctx, req.Records[i], layout.ModeExport)
		if err != nil {
			return layout.Document{}, fmt.Errorf("orchestrator: record %d: %w", i, err)
		}
		return doc, nil
	})
	if err != nil {
		return export.Result{}, err
	}
	return o.exporter.ExportBatch(ctx, export.BatchRequest{
		Documents:     docs,
		Filename:      req.Filename,
		Category:      req.Category,
		ResolveCopies: req.ResolveCopies,
	})
}

func (o *Orchestrator) exportReady(ctx context.Context) error {
	if err := o.ready(ctx); err != nil {
		return err
	}
	if o.exporter == nil {
		return o.exporterErr
	}
	return nil
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return o.initialiseErr
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	renderer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.templates == nil {
		o.templates = templates.Default(templates.WithDecorators(widgets.NewRegistry()))
	}
	o.editor = templates.NewEditor(o.templates, templates.WithLogger(o.logger))

	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
		o.registry.MustRegister(pdf.New())
	}

	if o.resolver == nil && o.exporter != nil {
		o.resolver = o.exporter.Resolver()
	}
	if o.signals == nil && o.exporter != nil {
		o.signals = o.exporter.Signals()
	}
	if o.signals == nil {
		o.signals = layout.NewSignals()
	}
	if o.resolver == nil {
		table, err := copies.Embedded()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: copy policy: %w", err)
			return
		}
		o.resolver = copies.NewResolver(table)
	}

	if o.exporter == nil {
		o.exporter, o.exporterErr = o.defaultExporter()
	}
}

func (o *Orchestrator) defaultExporter() (*export.Exporter, error) {
	renderer, err := o.registry.Get(pdf.Name)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: exporter: %w", err)
	}
	batch, ok := renderer.(render.BatchRenderer)
	if !ok {
		return nil, fmt.Errorf("orchestrator: renderer %q cannot render batches", pdf.Name)
	}
	return export.New(export.NewRendererRasterizer(batch),
		export.WithResolver(o.resolver),
		export.WithSignals(o.signals),
		export.WithLogger(o.logger),
	)
}
