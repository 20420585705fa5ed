package tui

import (
	"context"
	"io"
)

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText emits key=value lines.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ChangeFunc applies one answer to the record being filled. Returning an
// error rejects the answer; the renderer reports it and moves on.
type ChangeFunc func(ctx context.Context, key string, value any) error

// SubmitTransformer mutates collected values before serialization.
type SubmitTransformer func(map[string]any) (map[string]any, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithChangeHandler routes every accepted answer through fn, typically the
// orchestrator's Change so derived fields recalculate as the user types.
func WithChangeHandler(fn ChangeFunc) Option {
	return func(r *Renderer) {
		r.change = fn
	}
}

// WithSubmitTransformer allows callers to mutate collected values prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithOutput sets where the survey driver prints informational lines.
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) {
		if w != nil {
			r.out = w
		}
	}
}
