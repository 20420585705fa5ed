// Package pdf rasterises document node trees into paginated PDF files with
// fpdf. Every document starts on a fresh page and no block is split across a
// page boundary unless it is taller than a page.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/render"
)

// ErrNoDocuments is returned when a batch is empty.
var ErrNoDocuments = errors.New("pdf: no documents to render")

type Option func(*Renderer)

// WithSettings overrides the page and image settings. Zero fields keep their
// defaults.
func WithSettings(settings Settings) Option {
	return func(r *Renderer) {
		r.settings = settings.normalized()
	}
}

// WithCreator replaces CreatorName in the file metadata.
func WithCreator(creator string) Option {
	return func(r *Renderer) {
		if strings.TrimSpace(creator) != "" {
			r.creator = strings.TrimSpace(creator)
		}
	}
}

// WithAuthor sets the Author metadata entry.
func WithAuthor(author string) Option {
	return func(r *Renderer) {
		r.author = strings.TrimSpace(author)
	}
}

// Renderer implements render.Renderer and render.BatchRenderer.
type Renderer struct {
	settings Settings
	creator  string
	author   string
}

var (
	_ render.Renderer      = (*Renderer)(nil)
	_ render.BatchRenderer = (*Renderer)(nil)
)

// New constructs a PDF renderer with the default export settings.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		settings: DefaultSettings(),
		creator:  CreatorName,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/pdf"
}

// Settings reports the effective settings.
func (r *Renderer) Settings() Settings {
	return r.settings
}

// Render produces a single-document PDF.
func (r *Renderer) Render(ctx context.Context, doc layout.Document, options render.RenderOptions) ([]byte, error) {
	return r.RenderBatch(ctx, []layout.Document{doc}, options)
}

// RenderBatch produces one PDF holding every document in order, each
// starting on a new page.
func (r *Renderer) RenderBatch(ctx context.Context, docs []layout.Document, options render.RenderOptions) ([]byte, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}

	w := r.newWriter()
	title := strings.TrimSpace(options.Title)
	if title == "" {
		title = docs[0].Title
	}
	w.pdf.SetTitle(title, true)
	w.pdf.SetSubject(Subject, true)
	w.pdf.SetCreator(r.creator, true)
	if r.author != "" {
		w.pdf.SetAuthor(r.author, true)
	}

	for idx, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		w.document(doc)
		if w.pdf.Err() {
			return nil, fmt.Errorf("pdf: document %d (%s): %w", idx, doc.Title, w.pdf.Error())
		}
	}

	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: write output: %w", err)
	}
	return buf.Bytes(), nil
}

type registeredImage struct {
	name   string
	width  int
	height int
}

type writer struct {
	pdf      *fpdf.Fpdf
	tr       func(string) string
	settings Settings

	left   float64
	top    float64
	width  float64
	bottom float64

	images map[string]*registeredImage
}

func (r *Renderer) newWriter() *writer {
	s := r.settings
	doc := fpdf.New(s.Orientation, "mm", s.PageSize, "")
	doc.SetMargins(s.MarginMM, s.MarginMM, s.MarginMM)
	doc.SetAutoPageBreak(false, s.MarginMM)
	doc.SetLineWidth(0.2)

	pageW, pageH := doc.GetPageSize()
	return &writer{
		pdf:      doc,
		tr:       doc.UnicodeTranslatorFromDescriptor(""),
		settings: s,
		left:     s.MarginMM,
		top:      s.MarginMM,
		width:    pageW - 2*s.MarginMM,
		bottom:   pageH - s.MarginMM,
		images:   make(map[string]*registeredImage),
	}
}

func (w *writer) document(doc layout.Document) {
	w.pdf.AddPage()
	w.pdf.SetXY(w.left, w.top)
	w.header(doc)
	for _, block := range doc.Blocks {
		w.block(w.blockRows(block))
	}
}

func (w *writer) header(doc layout.Document) {
	lh := doc.Letterhead
	if lh.Agency != "" {
		w.pdf.SetFont(fontFamily, "B", 12)
		w.pdf.CellFormat(w.width, 6, w.tr(lh.Agency), "", 1, "C", false, 0, "")
		w.pdf.SetFont(fontFamily, "", 9)
		if lh.Address != "" {
			w.pdf.CellFormat(w.width, lineLabel, w.tr(lh.Address), "", 1, "C", false, 0, "")
		}
		if lh.Phone != "" {
			w.pdf.CellFormat(w.width, lineLabel, w.tr(lh.Phone), "", 1, "C", false, 0, "")
		}
		y := w.pdf.GetY() + 1
		w.pdf.Line(w.left, y, w.left+w.width, y)
		w.pdf.SetXY(w.left, y+2)
	}

	w.pdf.SetFont(fontFamily, "B", 15)
	w.pdf.MultiCell(w.width, 7, w.tr(doc.Title), "", "C", false)
	if doc.Subtitle != "" {
		w.pdf.SetFont(fontFamily, "", 10)
		w.pdf.MultiCell(w.width, lineBody, w.tr(doc.Subtitle), "", "C", false)
	}
	w.pdf.SetXY(w.left, w.pdf.GetY()+blockSpacing)
}

// block draws rows, keeping them on one page when they fit on one.
func (w *writer) block(rows []row) {
	if len(rows) == 0 {
		return
	}
	total := 0.0
	for _, r := range rows {
		total += r.height
	}
	if total <= w.bottom-w.top {
		w.ensure(total)
	}
	for _, r := range rows {
		w.ensure(r.height)
		y := w.pdf.GetY()
		r.draw(w.left, y)
		w.pdf.SetXY(w.left, y+r.height)
	}
	w.pdf.SetXY(w.left, w.pdf.GetY()+blockSpacing)
}

// ensure starts a new page when height does not fit below the cursor.
func (w *writer) ensure(height float64) {
	y := w.pdf.GetY()
	if y+height <= w.bottom || y <= w.top {
		return
	}
	w.pdf.AddPage()
	w.pdf.SetXY(w.left, w.top)
}

// image registers a signature once per writer. Unusable references report
// false so the slot falls back to text.
func (w *writer) image(ref string) (*registeredImage, bool) {
	if img, ok := w.images[ref]; ok {
		return img, img != nil
	}
	prepared, err := prepareSignature(ref, w.settings.ImageScale, w.settings.JPEGQuality)
	if err != nil {
		w.images[ref] = nil
		return nil, false
	}
	name := fmt.Sprintf("signature-%d", len(w.images))
	w.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "JPEG"}, bytes.NewReader(prepared.data))
	img := &registeredImage{name: name, width: prepared.width, height: prepared.height}
	w.images[ref] = img
	return img, true
}
