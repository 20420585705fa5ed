package orchestrator

import (
	"context"
	"strings"

	"github.com/goliatone/go-fosterdocs/pkg/layout"
)

// Transformer mutates a view document after the template produced it and
// before it is rendered or staged for export.
type Transformer interface {
	Transform(ctx context.Context, doc *layout.Document) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, doc *layout.Document) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, doc *layout.Document) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, doc)
}

// LetterheadTransformer replaces the agency letterhead on every document.
// Blank fields keep the template's value. Placeholder documents carry no
// letterhead and are left alone.
type LetterheadTransformer struct {
	Letterhead layout.Letterhead
}

// Transform implements Transformer.
func (t LetterheadTransformer) Transform(_ context.Context, doc *layout.Document) error {
	if doc == nil || doc.Placeholder {
		return nil
	}
	if v := strings.TrimSpace(t.Letterhead.Agency); v != "" {
		doc.Letterhead.Agency = v
	}
	if v := strings.TrimSpace(t.Letterhead.Address); v != "" {
		doc.Letterhead.Address = v
	}
	if v := strings.TrimSpace(t.Letterhead.Phone); v != "" {
		doc.Letterhead.Phone = v
	}
	return nil
}

type chain []Transformer

func (c chain) Transform(ctx context.Context, doc *layout.Document) error {
	for _, t := range c {
		if t == nil {
			continue
		}
		if err := t.Transform(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}
