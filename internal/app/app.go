// Package app assembles an orchestrator from runtime configuration. Both
// binaries share it so the CLI and the server export identical files.
package app

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-fosterdocs/internal/config"
	"github.com/goliatone/go-fosterdocs/pkg/copies"
	"github.com/goliatone/go-fosterdocs/pkg/export"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/orchestrator"
	"github.com/goliatone/go-fosterdocs/pkg/render"
	"github.com/goliatone/go-fosterdocs/pkg/renderers/html"
	"github.com/goliatone/go-fosterdocs/pkg/renderers/pdf"
)

// Option customises Build.
type Option func(*options)

type options struct {
	registerer prometheus.Registerer
	renderers  []render.Renderer
}

// WithRegisterer enables export metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithRenderers registers extra renderers next to html and pdf.
func WithRenderers(renderers ...render.Renderer) Option {
	return func(o *options) {
		o.renderers = append(o.renderers, renderers...)
	}
}

// Build wires templates, renderers, the copy policy and the exporter
// described by cfg.
func Build(cfg config.Config, logger *slog.Logger, opts ...Option) (*orchestrator.Orchestrator, error) {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	table, err := cfg.CopyTable()
	if err != nil {
		return nil, err
	}
	resolver := copies.NewResolver(table)

	htmlRenderer, err := html.New()
	if err != nil {
		return nil, fmt.Errorf("app: html renderer: %w", err)
	}
	pdfRenderer := pdf.New(
		pdf.WithSettings(cfg.PDFSettings()),
		pdf.WithCreator(cfg.Export.Creator),
		pdf.WithAuthor(cfg.Export.Author),
	)

	registry := render.NewRegistry()
	for _, r := range append([]render.Renderer{htmlRenderer, pdfRenderer}, o.renderers...) {
		if err := registry.Register(r); err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
	}

	signals := layout.NewSignals()
	exportOpts := []export.Option{
		export.WithResolver(resolver),
		export.WithSignals(signals),
		export.WithLogger(logger),
	}
	if o.registerer != nil {
		exportOpts = append(exportOpts, export.WithMetrics(export.NewMetrics(o.registerer)))
	}
	exporter, err := export.New(export.NewRendererRasterizer(pdfRenderer), exportOpts...)
	if err != nil {
		return nil, fmt.Errorf("app: exporter: %w", err)
	}

	return orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithResolver(resolver),
		orchestrator.WithExporter(exporter),
		orchestrator.WithSignals(signals),
		orchestrator.WithTransformers(orchestrator.LetterheadTransformer{Letterhead: cfg.Letterhead()}),
		orchestrator.WithLogger(logger),
	), nil
}
