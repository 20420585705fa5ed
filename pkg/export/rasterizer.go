package export

import (
	"context"
	"errors"

	"github.com/goliatone/go-fosterdocs/pkg/render"
)

// RendererRasterizer paints containers with any batch-capable renderer,
// normally the PDF renderer.
type RendererRasterizer struct {
	Renderer render.BatchRenderer
}

// NewRendererRasterizer wraps renderer.
func NewRendererRasterizer(renderer render.BatchRenderer) *RendererRasterizer {
	return &RendererRasterizer{Renderer: renderer}
}

// Rasterize implements Rasterizer. The container title becomes the file
// title.
func (r *RendererRasterizer) Rasterize(ctx context.Context, container *Container) ([]byte, error) {
	if r == nil || r.Renderer == nil {
		return nil, errors.New("export: renderer is required")
	}
	return r.Renderer.RenderBatch(ctx, container.Documents(), render.RenderOptions{Title: container.Title})
}
