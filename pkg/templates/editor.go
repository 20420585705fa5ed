package templates

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-fosterdocs/pkg/document"
)

// Editor applies form edits to records and keeps derived fields current.
type Editor struct {
	registry *Registry
	logger   *slog.Logger
}

// EditorOption customises an Editor.
type EditorOption func(*Editor)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EditorOption {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEditor binds an editor to registry.
func NewEditor(registry *Registry, options ...EditorOption) *Editor {
	e := &Editor{
		registry: registry,
		logger:   slog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Change writes value under key and runs the template's recalculation in
// the same call. Keys the template declares as locked for the record's
// standalone flag are rejected with ErrReadOnly. Undeclared keys are stored
// as-is.
func (e *Editor) Change(ctx context.Context, rec *document.Record, key string, value any) error {
	if rec == nil {
		return document.ErrTemplateRequired
	}
	if key == "" {
		return fmt.Errorf("templates: field key must not be empty")
	}
	t, err := e.registry.Get(rec.TemplateName)
	if err != nil {
		return err
	}
	if spec, ok := FieldSpec(t, key); ok && spec.Policy.ReadOnly(rec.IsStandalone) {
		return fmt.Errorf("%w: %s %q", ErrReadOnly, rec.TemplateName, key)
	}

	if rec.Fields == nil {
		rec.Fields = document.Fields{}
	}
	rec.Fields.Set(key, value)

	if recalc, ok := t.(Recalculator); ok {
		recalc.Recalculate(rec.Fields, key)
	}
	e.logger.DebugContext(ctx, "field changed",
		slog.String("template", rec.TemplateName),
		slog.String("record", rec.ID),
		slog.String("key", key),
	)
	return nil
}

// Load runs the template's load-time recomputation, if any.
func (e *Editor) Load(ctx context.Context, rec *document.Record) error {
	if rec == nil {
		return document.ErrTemplateRequired
	}
	t, err := e.registry.Get(rec.TemplateName)
	if err != nil {
		return err
	}
	if rec.Fields == nil {
		rec.Fields = document.Fields{}
	}
	if loader, ok := t.(Loader); ok {
		loader.OnLoad(rec.Fields)
		e.logger.DebugContext(ctx, "record recomputed",
			slog.String("template", rec.TemplateName),
			slog.String("record", rec.ID),
		)
	}
	return nil
}
