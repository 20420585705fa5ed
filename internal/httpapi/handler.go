// Package httpapi exposes the document pipeline over HTTP: template listing,
// view and form rendering, field edits and PDF exports.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-fosterdocs/pkg/document"
	"github.com/goliatone/go-fosterdocs/pkg/export"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/orchestrator"
	"github.com/goliatone/go-fosterdocs/pkg/render"
	"github.com/goliatone/go-fosterdocs/pkg/renderers/pdf"
	"github.com/goliatone/go-fosterdocs/pkg/templates"
)

const maxBodyBytes = 16 << 20

// Handler is the thin HTTP layer over an orchestrator.
type Handler struct {
	orch   *orchestrator.Orchestrator
	logger *slog.Logger
}

// New creates a Handler.
func New(orch *orchestrator.Orchestrator, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{orch: orch, logger: logger}
}

// Register mounts the document routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/templates", h.handleListTemplates)
	r.Get("/categories", h.handleListCategories)
	r.Route("/records", func(r chi.Router) {
		r.Post("/view", h.handleView)
		r.Post("/form", h.handleForm)
		r.Post("/change", h.handleChange)
	})
	r.Route("/exports", func(r chi.Router) {
		r.Post("/", h.handleExport)
		r.Post("/batch", h.handleExportBatch)
	})
}

type templateSummary struct {
	Name   string `json:"name"`
	Title  string `json:"title"`
	Fields int    `json:"fields"`
}

func (h *Handler) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	reg := h.orch.Templates()
	out := make([]templateSummary, 0)
	for _, name := range reg.List() {
		t, err := reg.Get(name)
		if err != nil {
			continue
		}
		out = append(out, templateSummary{Name: t.Name(), Title: t.Title(), Fields: len(t.Fields())})
	}
	h.writeJSON(w, r, http.StatusOK, map[string]any{"templates": out})
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories := append(h.orch.Resolver().Categories(), string(document.CategoryAllDocuments))
	h.writeJSON(w, r, http.StatusOK, map[string]any{"categories": categories})
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.decodeRecord(w, r)
	if !ok {
		return
	}
	mode := layout.Mode(r.URL.Query().Get("mode"))
	switch mode {
	case "", layout.ModeInteractive, layout.ModePrint, layout.ModeExport:
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown mode %q", mode))
		return
	}

	renderer := r.URL.Query().Get("renderer")
	out, err := h.orch.Render(r.Context(), orchestrator.Request{Record: rec, Mode: mode, Renderer: renderer})
	if err != nil {
		h.fail(w, r, "render view", err)
		return
	}
	contentType := "text/html; charset=utf-8"
	if renderer == pdf.Name {
		contentType = "application/pdf"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.decodeRecord(w, r)
	if !ok {
		return
	}
	h.writeForm(w, r, rec, http.StatusOK, nil)
}

type changeRequest struct {
	Record *document.Record `json:"record"`
	Key    string           `json:"key"`
	Value  any              `json:"value"`
}

func (h *Handler) handleChange(w http.ResponseWriter, r *http.Request) {
	var req changeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Record == nil {
		writeError(w, http.StatusBadRequest, "record is required")
		return
	}
	req.Record.EnsureID()
	asForm := r.URL.Query().Get("render") == "form"

	err := h.orch.Change(r.Context(), req.Record, req.Key, req.Value)
	switch {
	case errors.Is(err, templates.ErrReadOnly):
		h.logger.WarnContext(r.Context(), "rejected read-only edit",
			"request_id", middleware.GetReqID(r.Context()),
			"template", req.Record.TemplateName,
			"key", req.Key,
		)
		payload := map[string][]string{req.Key: {"This field cannot be edited on this document."}}
		if asForm {
			h.writeForm(w, r, req.Record, http.StatusUnprocessableEntity, payload)
			return
		}
		mapping := render.MapErrorPayload(h.orch.FormModel(req.Record), payload)
		h.writeJSON(w, r, http.StatusUnprocessableEntity, map[string]any{
			"error":  err.Error(),
			"fields": mapping.Fields,
			"form":   mapping.Form,
		})
		return
	case err != nil:
		h.fail(w, r, "apply change", err)
		return
	}

	if asForm {
		h.writeForm(w, r, req.Record, http.StatusOK, nil)
		return
	}
	h.writeJSON(w, r, http.StatusOK, req.Record)
}

type exportRequest struct {
	Record   *document.Record `json:"record"`
	Filename string           `json:"filename"`
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.orch.Export(r.Context(), req.Record, req.Filename)
	if err != nil {
		h.fail(w, r, "export", err)
		return
	}
	writePDF(w, res)
}

type batchRequest struct {
	Records       []*document.Record `json:"records"`
	Filename      string             `json:"filename"`
	Category      document.Category  `json:"category"`
	ResolveCopies bool               `json:"resolveCopies"`
}

func (h *Handler) handleExportBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.orch.ExportBatch(r.Context(), orchestrator.BatchRequest{
		Records:       req.Records,
		Filename:      req.Filename,
		Category:      req.Category,
		ResolveCopies: req.ResolveCopies,
	})
	if err != nil {
		h.fail(w, r, "export batch", err)
		return
	}
	writePDF(w, res)
}

func (h *Handler) writeForm(w http.ResponseWriter, r *http.Request, rec *document.Record, status int, errs map[string][]string) {
	out, err := h.orch.Form(r.Context(), orchestrator.Request{
		Record:        rec,
		RenderOptions: render.RenderOptions{Action: r.URL.Path, Errors: errs},
	})
	if err != nil {
		h.fail(w, r, "render form", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

func (h *Handler) decodeRecord(w http.ResponseWriter, r *http.Request) (*document.Record, bool) {
	var rec document.Record
	if !h.decode(w, r, &rec) {
		return nil, false
	}
	if rec.Fields == nil {
		rec.Fields = document.Fields{}
	}
	rec.EnsureID()
	return &rec, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dest any) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err != nil || mt != "application/json" {
			writeError(w, http.StatusUnsupportedMediaType, "expected application/json")
			return false
		}
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dest); err != nil {
		h.logger.WarnContext(r.Context(), "invalid request body",
			"request_id", middleware.GetReqID(r.Context()),
			"error", err.Error(),
		)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err)
	attrs := []any{
		"request_id", middleware.GetReqID(r.Context()),
		"op", op,
		"error", err.Error(),
	}
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", attrs...)
	} else {
		h.logger.WarnContext(r.Context(), "request rejected", attrs...)
	}
	writeError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, document.ErrTemplateRequired),
		errors.Is(err, export.ErrNoElement),
		errors.Is(err, export.ErrNoDocuments):
		return http.StatusBadRequest
	case errors.Is(err, templates.ErrUnknownTemplate):
		return http.StatusNotFound
	case errors.Is(err, templates.ErrReadOnly):
		return http.StatusUnprocessableEntity
	case strings.Contains(err.Error(), "not found"):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writePDF(w http.ResponseWriter, res export.Result) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.Filename}))
	w.Header().Set("X-Document-Count", fmt.Sprint(res.Documents))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

// writeJSON encodes before writing the status so an unencodable payload
// still yields a well-formed 500.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "encode response",
			"request_id", middleware.GetReqID(r.Context()),
			"path", r.URL.Path,
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, "encode response")
		return
	}
	writeBody(w, status, body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	body, _ := json.Marshal(map[string]string{"error": message})
	writeBody(w, status, body)
}

func writeBody(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}
