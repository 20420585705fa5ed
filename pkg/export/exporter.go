// Package export turns document node trees into downloadable PDF files. An
// export is staged in an off-screen container, rasterised and detached; only
// one export occupies the stage at a time.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/goliatone/go-fosterdocs/pkg/copies"
	"github.com/goliatone/go-fosterdocs/pkg/document"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
)

var (
	// ErrNoElement is returned by Export when there is nothing to rasterise.
	ErrNoElement = errors.New("no element provided for PDF generation")
	// ErrNoDocuments is returned by ExportBatch for an empty batch.
	ErrNoDocuments = errors.New("export: no documents provided")
)

// Rasterizer paints a staged container into PDF bytes.
type Rasterizer interface {
	Rasterize(ctx context.Context, container *Container) ([]byte, error)
}

// RasterizerFunc adapts a function to Rasterizer.
type RasterizerFunc func(ctx context.Context, container *Container) ([]byte, error)

func (fn RasterizerFunc) Rasterize(ctx context.Context, container *Container) ([]byte, error) {
	return fn(ctx, container)
}

// SingleRequest exports one document.
type SingleRequest struct {
	Element  *layout.Document
	Filename string
}

// BatchRequest exports several documents as one file. With ResolveCopies
// set each document repeats as many times as the copy policy asks for
// Category.
type BatchRequest struct {
	Documents     []layout.Document
	Filename      string
	Category      document.Category
	ResolveCopies bool
}

// Result is a finished export.
type Result struct {
	Filename  string
	Data      []byte
	Documents int
}

// WriteFile saves the result under dir and returns the written path.
func (r Result) WriteFile(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: create output dir: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(r.Filename))
	if err := os.WriteFile(path, r.Data, 0o644); err != nil {
		return "", fmt.Errorf("export: write %s: %w", path, err)
	}
	return path, nil
}

type Option func(*Exporter)

// WithStage shares a staging host between exporters.
func WithStage(stage *Stage) Option {
	return func(e *Exporter) {
		if stage != nil {
			e.stage = stage
		}
	}
}

// WithResolver sets the copy-count resolver used by batches that ask for
// copies.
func WithResolver(resolver *copies.Resolver) Option {
	return func(e *Exporter) {
		if resolver != nil {
			e.resolver = resolver
		}
	}
}

// WithSignals announces every export on signals: print-start before the
// container is rasterised and print-end once it is done. Sessions mounted on
// the same signals render in print mode meanwhile.
func WithSignals(signals *layout.Signals) Option {
	return func(e *Exporter) {
		e.signals = signals
	}
}

// Signals returns the hub exports are announced on, or nil.
func (e *Exporter) Signals() *layout.Signals {
	return e.signals
}

// Resolver returns the copy-count resolver batches expand against.
func (e *Exporter) Resolver() *copies.Resolver {
	return e.resolver
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics records export counters and timings.
func WithMetrics(metrics *Metrics) Option {
	return func(e *Exporter) {
		e.metrics = metrics
	}
}

// Exporter runs exports against a Rasterizer.
type Exporter struct {
	rasterizer Rasterizer
	stage      *Stage
	resolver   *copies.Resolver
	logger     *slog.Logger
	metrics    *Metrics
	signals    *layout.Signals
	slot       *semaphore.Weighted
}

// New constructs an exporter. Without WithResolver, batches that ask for
// copies resolve against the embedded copy policy.
func New(rasterizer Rasterizer, opts ...Option) (*Exporter, error) {
	if rasterizer == nil {
		return nil, errors.New("export: rasterizer is required")
	}
	e := &Exporter{
		rasterizer: rasterizer,
		stage:      NewStage(),
		logger:     slog.Default(),
		slot:       semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.resolver == nil {
		table, err := copies.Embedded()
		if err != nil {
			return nil, fmt.Errorf("export: copy policy: %w", err)
		}
		e.resolver = copies.NewResolver(table)
	}
	e.stage.Observe(e.metrics.attached)
	return e, nil
}

// Stage returns the staging host.
func (e *Exporter) Stage() *Stage {
	return e.stage
}

// Export rasterises a single document.
func (e *Exporter) Export(ctx context.Context, req SingleRequest) (Result, error) {
	if req.Element == nil {
		return Result{}, ErrNoElement
	}
	return e.run(ctx, "single", req.Filename, []layout.Document{*req.Element})
}

// ExportBatch rasterises documents in order with a page break between each
// adjacent pair.
func (e *Exporter) ExportBatch(ctx context.Context, req BatchRequest) (Result, error) {
	if len(req.Documents) == 0 {
		return Result{}, ErrNoDocuments
	}
	docs := req.Documents
	if req.ResolveCopies {
		docs = copies.Expand(e.resolver, docs, documentTitle, req.Category)
	}
	return e.run(ctx, "batch", req.Filename, docs)
}

func (e *Exporter) run(ctx context.Context, kind, filename string, docs []layout.Document) (Result, error) {
	filename = Filename(filename)

	if err := e.slot.Acquire(ctx, 1); err != nil {
		return Result{}, fmt.Errorf("export: waiting for stage: %w", err)
	}
	defer e.slot.Release(1)

	container := newContainer(uuid.NewString(), strings.TrimSuffix(filename, ".pdf"), docs)
	e.stage.Attach(container)
	defer e.stage.Detach(container.ID)
	e.metrics.staged(len(docs))
	if e.signals != nil {
		e.signals.Emit(true)
		defer e.signals.Emit(false)
	}

	started := time.Now()
	data, err := e.rasterizer.Rasterize(ctx, container)
	e.metrics.observe(kind, time.Since(started), err)
	if err != nil {
		e.logger.Error("export failed",
			slog.String("kind", kind),
			slog.String("filename", filename),
			slog.String("container", container.ID),
			slog.Any("error", err),
		)
		return Result{}, fmt.Errorf("export: rasterize %s: %w", filename, err)
	}

	e.logger.Info("export complete",
		slog.String("kind", kind),
		slog.String("filename", filename),
		slog.Int("documents", len(docs)),
		slog.Int("bytes", len(data)),
		slog.Duration("elapsed", time.Since(started)),
	)
	return Result{Filename: filename, Data: data, Documents: len(docs)}, nil
}

// Filename normalises an export filename: blank becomes "document.pdf" and a
// missing .pdf suffix is added.
func Filename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "document"
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name
}

func documentTitle(doc layout.Document) string {
	if doc.Template != "" {
		return doc.Template
	}
	return doc.Title
}
