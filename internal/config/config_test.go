package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fosterdocs/pkg/document"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeFile(t, "fosterdocs.yaml", `
server:
  addr: ":9000"
export:
  outputDir: /tmp/out
  marginMM: 7
agency:
  name: Northside Foster Network
log:
  level: debug
`)
	t.Setenv("FOSTERDOCS_ADDR", ":9100")
	t.Setenv("FOSTERDOCS_JPEG_QUALITY", "80")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Default()
	want.Server.Addr = ":9100"
	want.Export.OutputDir = "/tmp/out"
	want.Export.MarginMM = 7
	want.Export.JPEGQuality = 80
	want.Agency.Name = "Northside Foster Network"
	want.Log.Level = "debug"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.Export.Creator == "" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := writeFile(t, "bad.yaml", "log:\n  level: chatty\n  format: xml\nexport:\n  jpegQuality: 120\n")
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"log.level", "log.format", "jpegQuality"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestFromEnv_IgnoresUnparseableNumbers(t *testing.T) {
	env := map[string]string{"FOSTERDOCS_MARGIN_MM": "wide"}
	cfg := FromEnv(Default(), func(k string) string { return env[k] })
	if cfg.Export.MarginMM != 0 {
		t.Fatalf("margin = %v", cfg.Export.MarginMM)
	}
}

func TestCopyTable_FromPath(t *testing.T) {
	path := writeFile(t, "copies.yaml", `
default: 1
categories:
  Intake Paperwork:
    default: 4
`)
	cfg := Default()
	cfg.Copies.PolicyPath = path
	table, err := cfg.CopyTable()
	if err != nil {
		t.Fatalf("copy table: %v", err)
	}
	if got := table.Categories[string(document.CategoryIntake)].Default; got != 4 {
		t.Fatalf("intake default = %d", got)
	}
}

func TestLogger_JSON(t *testing.T) {
	cfg := Default()
	cfg.Log.Format = "json"
	var buf bytes.Buffer
	cfg.Logger(&buf).Info("ready", "addr", ":8080")
	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Fatalf("expected JSON log line, got %q", buf.String())
	}
}
