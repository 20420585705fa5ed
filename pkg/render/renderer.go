package render

import (
	"context"

	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/model"
)

// Renderer converts a document node tree into a byte representation (HTML,
// PDF).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, doc layout.Document, options RenderOptions) ([]byte, error)
}

// FormRenderer is implemented by renderers that can also emit the editable
// form for a record.
type FormRenderer interface {
	RenderForm(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}

// BatchRenderer renders several documents as one artifact, separated by
// page breaks.
type BatchRenderer interface {
	RenderBatch(ctx context.Context, docs []layout.Document, options RenderOptions) ([]byte, error)
}
