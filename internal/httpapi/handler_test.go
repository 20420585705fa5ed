package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/goliatone/go-fosterdocs/pkg/document"
	"github.com/goliatone/go-fosterdocs/pkg/export"
	"github.com/goliatone/go-fosterdocs/pkg/orchestrator"
	"github.com/goliatone/go-fosterdocs/pkg/renderers/pdf"
	"github.com/goliatone/go-fosterdocs/pkg/templates"
)

type HandlerSuite struct {
	suite.Suite
	router http.Handler
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	exporter, err := export.New(
		export.NewRendererRasterizer(pdf.New()),
		export.WithMetrics(export.NewMetrics(reg)),
		export.WithLogger(logger),
	)
	require.NoError(s.T(), err)

	orch := orchestrator.New(
		orchestrator.WithExporter(exporter),
		orchestrator.WithLogger(logger),
	)
	s.router = NewRouter(New(orch, logger), reg)
}

func (s *HandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func record(template string, fields map[string]any) map[string]any {
	return map[string]any{"templateName": template, "fields": fields}
}

func (s *HandlerSuite) TestListTemplates() {
	w := s.do(http.MethodGet, "/templates", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var resp struct {
		Templates []templateSummary `json:"templates"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	names := make([]string, 0, len(resp.Templates))
	for _, t := range resp.Templates {
		names = append(names, t.Name)
	}
	assert.Contains(s.T(), names, templates.NameNOA)
	assert.Contains(s.T(), names, templates.NameSpendingAllowance)
}

func (s *HandlerSuite) TestListCategories() {
	w := s.do(http.MethodGet, "/categories", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), string(document.CategoryIntake))
	assert.Contains(s.T(), w.Body.String(), string(document.CategoryAllDocuments))
}

func (s *HandlerSuite) TestViewHTML() {
	w := s.do(http.MethodPost, "/records/view?mode=print", record(templates.NameCHPD, map[string]any{"name": "Sam Rivera"}))
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Header().Get("Content-Type"), "text/html")
	assert.Contains(s.T(), w.Body.String(), "Sam Rivera")
}

func (s *HandlerSuite) TestViewRejectsUnknownMode() {
	w := s.do(http.MethodPost, "/records/view?mode=fancy", record(templates.NameCHPD, nil))
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *HandlerSuite) TestViewMissingTemplate() {
	w := s.do(http.MethodPost, "/records/view", map[string]any{"fields": map[string]any{}})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *HandlerSuite) TestForm() {
	w := s.do(http.MethodPost, "/records/form", record(templates.NameConsentToTreat, nil))
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), "<form")
}

func (s *HandlerSuite) TestChangeRecalculates() {
	w := s.do(http.MethodPost, "/records/change", map[string]any{
		"record": record(templates.NameSpendingAllowance, map[string]any{"dateOfBirth": "2010-02-15"}),
		"key":    "q1_month1_startDate",
		"value":  "2024-02-10",
	})
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

	var rec document.Record
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(s.T(), "2024-02-29", rec.Fields.Text("q1_month1_endDate"))
	assert.Equal(s.T(), 40.0, rec.Fields.Float("q1_month1_balance"))
	assert.NotEmpty(s.T(), rec.ID)
}

func (s *HandlerSuite) TestChangeNonFiniteSpend() {
	w := s.do(http.MethodPost, "/records/change", map[string]any{
		"record": record(templates.NameSpendingAllowance, map[string]any{
			"dateOfBirth":         "2010-02-15",
			"q1_month1_startDate": "2024-02-10",
		}),
		"key":   "q1_month1_amountSpent",
		"value": "NaN",
	})
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

	var rec document.Record
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(s.T(), 40.0, rec.Fields.Float("q1_month1_balance"))
}

func (s *HandlerSuite) TestChangeReadOnly() {
	w := s.do(http.MethodPost, "/records/change", map[string]any{
		"record": record(templates.NameNOA, nil),
		"key":    "name",
		"value":  "Sam",
	})
	assert.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Fields map[string][]string `json:"fields"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(s.T(), resp.Fields, "name")
}

func (s *HandlerSuite) TestChangeReadOnlyAsForm() {
	w := s.do(http.MethodPost, "/records/change?render=form", map[string]any{
		"record": record(templates.NameNOA, nil),
		"key":    "name",
		"value":  "Sam",
	})
	assert.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
	assert.Contains(s.T(), w.Body.String(), "cannot be edited")
}

func (s *HandlerSuite) TestChangeUnknownTemplate() {
	w := s.do(http.MethodPost, "/records/change", map[string]any{
		"record": record("Adoption Packet", nil),
		"key":    "name",
		"value":  "Sam",
	})
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *HandlerSuite) TestExportSingle() {
	w := s.do(http.MethodPost, "/exports", map[string]any{
		"record":   record(templates.NameNOA, map[string]any{"name": "Sam Rivera"}),
		"filename": "noa",
	})
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	assert.Equal(s.T(), "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(s.T(), w.Header().Get("Content-Disposition"), "noa.pdf")

	info, err := pdf.Inspect(w.Body.Bytes())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, info.Pages)
}

func (s *HandlerSuite) TestExportWithoutRecord() {
	w := s.do(http.MethodPost, "/exports", map[string]any{"filename": "noa"})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Contains(s.T(), w.Body.String(), "no element provided for PDF generation")
}

func (s *HandlerSuite) TestExportBatchWithCopies() {
	w := s.do(http.MethodPost, "/exports/batch", map[string]any{
		"records": []any{
			record(templates.NameNOA, map[string]any{"name": "Sam Rivera"}),
			record(templates.NameConsentToTreat, map[string]any{"name": "Sam Rivera"}),
		},
		"filename":      "intake",
		"category":      document.CategoryIntake,
		"resolveCopies": true,
	})
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	assert.Equal(s.T(), "5", w.Header().Get("X-Document-Count"))
}

func (s *HandlerSuite) TestMetricsExposed() {
	s.do(http.MethodPost, "/exports", map[string]any{"record": record(templates.NameNOA, nil)})
	w := s.do(http.MethodGet, "/metrics", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.True(s.T(), strings.Contains(w.Body.String(), "fosterdocs_exports_total"))
}

func (s *HandlerSuite) TestRejectsNonJSON() {
	req := httptest.NewRequest(http.MethodPost, "/records/view", strings.NewReader("name=Sam"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(s.T(), http.StatusUnsupportedMediaType, w.Code)
}

func TestWriteJSON_EncodeFailure(t *testing.T) {
	var logs bytes.Buffer
	h := &Handler{logger: slog.New(slog.NewTextHandler(&logs, nil))}
	req := httptest.NewRequest(http.MethodGet, "/templates", nil)
	w := httptest.NewRecorder()

	h.writeJSON(w, req, http.StatusOK, map[string]any{"balance": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"encode response"}`, w.Body.String())
	assert.Contains(t, logs.String(), "encode response")
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}
