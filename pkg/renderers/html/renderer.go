// Package html renders document node trees, staged export batches and form
// models to HTML through embedded pongo2 templates.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/model"
	"github.com/goliatone/go-fosterdocs/pkg/render"
	rendertemplate "github.com/goliatone/go-fosterdocs/pkg/render/template"
	gotemplate "github.com/goliatone/go-fosterdocs/pkg/render/template/gotemplate"
	"github.com/goliatone/go-fosterdocs/pkg/renderers/html/components"
)

// Name is the registry name of this renderer.
const Name = "html"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	components       *components.Registry
	stylesheet       *string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
// It must provide the "signature", "money" and "longdate" filters.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry swaps the form control registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.components = registry
		}
	}
}

// WithStylesheet replaces the inlined print stylesheet.
func WithStylesheet(css string) Option {
	return func(cfg *config) {
		cfg.stylesheet = &css
	}
}

type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	components *components.Registry
	stylesheet string
}

var (
	_ render.Renderer      = (*Renderer)(nil)
	_ render.FormRenderer  = (*Renderer)(nil)
	_ render.BatchRenderer = (*Renderer)(nil)
)

// New constructs the html renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.components == nil {
		cfg.components = components.NewDefaultRegistry()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithTemplateFunc(map[string]any{
				"signature": pongo2.FilterFunction(signatureFilter),
			}),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	stylesheet := defaultStylesheet()
	if cfg.stylesheet != nil {
		stylesheet = *cfg.stylesheet
	}

	return &Renderer{
		templates:  templates,
		components: cfg.components,
		stylesheet: stylesheet,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render emits one document page.
func (r *Renderer) Render(_ context.Context, doc layout.Document, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if doc.Mode == "" {
		doc.Mode = layout.ModeInteractive
	}

	result, err := r.templates.RenderTemplate("templates/document.tmpl", map[string]any{
		"doc":        doc,
		"title":      firstNonEmpty(options.Title, doc.Title),
		"stylesheet": r.stylesheet,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render document: %w", err)
	}
	return []byte(result), nil
}

// RenderBatch emits the staged export container: every document in order
// with a page break between adjacent documents and none at either end.
func (r *Renderer) RenderBatch(_ context.Context, docs []layout.Document, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	staged := make([]layout.Document, len(docs))
	for i, doc := range docs {
		doc.Mode = layout.ModeExport
		staged[i] = doc
	}

	result, err := r.templates.RenderTemplate("templates/batch.tmpl", map[string]any{
		"docs":       staged,
		"title":      firstNonEmpty(options.Title, "Document Export"),
		"stage":      "export",
		"stylesheet": r.stylesheet,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render batch: %w", err)
	}
	return []byte(result), nil
}

// RenderForm emits the editable form. Field errors from options are shown
// inline; errors naming no field are listed at the top.
func (r *Renderer) RenderForm(_ context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	mapping := render.MapErrorPayload(form, options.Errors)
	fields := &componentRenderer{templates: r.templates, registry: r.components}

	sections := make([]map[string]any, 0, len(form.Sections))
	for _, section := range form.Sections {
		rendered := make([]string, 0, len(section.Fields))
		for _, field := range section.Fields {
			markup, err := fields.render(field, mapping.Fields[field.Name])
			if err != nil {
				return nil, fmt.Errorf("html renderer: %w", err)
			}
			rendered = append(rendered, markup)
		}
		sections = append(sections, map[string]any{
			"title":  section.Title,
			"fields": rendered,
		})
	}

	sectionsData := make([]any, len(sections))
	for i, s := range sections {
		sectionsData[i] = s
	}
	formErrors := make([]any, len(mapping.Form))
	for i, msg := range mapping.Form {
		formErrors[i] = msg
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"form":       form,
		"sections":   sectionsData,
		"formErrors": formErrors,
		"action":     options.Action,
		"stylesheet": r.stylesheet,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render form: %w", err)
	}
	return []byte(result), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
