package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-fosterdocs/internal/config"
	"github.com/goliatone/go-fosterdocs/pkg/document"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/renderers/pdf"
	"github.com/goliatone/go-fosterdocs/pkg/renderers/tui"
	"github.com/goliatone/go-fosterdocs/pkg/templates"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuild_AppliesConfiguredLetterheadAndCreator(t *testing.T) {
	cfg := config.Default()
	cfg.Agency.Name = "Northside Foster Network"
	cfg.Export.Creator = "Northside Records"

	orch, err := Build(cfg, quietLogger())
	require.NoError(t, err)

	rec := document.New(templates.NameCHPD, document.CategoryIntake)
	doc, err := orch.View(context.Background(), rec, layout.ModePrint)
	require.NoError(t, err)
	assert.Equal(t, "Northside Foster Network", doc.Letterhead.Agency)
	assert.Same(t, orch.Signals(), orch.Exporter().Signals())

	res, err := orch.Export(context.Background(), rec, "")
	require.NoError(t, err)
	info, err := pdf.Inspect(res.Data)
	require.NoError(t, err)
	assert.Equal(t, "Northside Records", info.Creator)
}

func TestBuild_RegistersMetricsAndExtraRenderers(t *testing.T) {
	reg := prometheus.NewRegistry()
	orch, err := Build(config.Default(), quietLogger(),
		WithRegisterer(reg),
		WithRenderers(tui.New(tui.WithOutput(&bytes.Buffer{}))),
	)
	require.NoError(t, err)
	assert.True(t, orch.Renderers().Has(tui.Name))

	_, err = orch.Export(context.Background(), document.New(templates.NameNOA, document.CategoryIntake), "noa")
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "fosterdocs_exports_total")
}

func TestBuild_BadCopyPolicy(t *testing.T) {
	cfg := config.Default()
	cfg.Copies.PolicyPath = "/does/not/exist.yaml"
	_, err := Build(cfg, quietLogger())
	assert.Error(t, err)
}
