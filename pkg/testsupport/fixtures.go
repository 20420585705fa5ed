package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fosterdocs/pkg/document"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
)

// MustLoadRecord reads a JSON record fixture.
func MustLoadRecord(t *testing.T, path string) *document.Record {
	t.Helper()

	rec, err := LoadRecord(path)
	if err != nil {
		t.Fatalf("load record: %v", err)
	}
	return rec
}

// LoadRecord reads a JSON record fixture, returning an error for callers
// managing setup outside of *testing.T.
func LoadRecord(path string) (*document.Record, error) {
	if path == "" {
		return nil, errors.New("testsupport: record path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read record: %w", err)
	}
	var out document.Record
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal record: %w", err)
	}
	if out.Fields == nil {
		out.Fields = document.Fields{}
	}
	return &out, nil
}

// Record builds an in-memory record with the given fields.
func Record(template string, fields map[string]any) *document.Record {
	rec := document.New(template, document.CategoryIntake)
	for key, value := range fields {
		rec.Fields.Set(key, value)
	}
	return rec
}

// SampleDocument is a small node tree covering every block kind.
func SampleDocument(title string) *layout.Document {
	return &layout.Document{
		Template: title,
		Title:    title,
		Letterhead: layout.Letterhead{
			Agency:  "Sample Agency",
			Address: "1 Main Street",
			Phone:   "555-0100",
		},
		Mode: layout.ModeExport,
		Blocks: []layout.Block{
			layout.Heading(title, 1),
			layout.Fields(layout.Line("Child's Name", "Sam Rivera"), layout.WideLine("Notes", "")),
			layout.Checklist("Items", layout.Check("Clothing", true), layout.Check("Medication", false)),
			layout.Table([]string{"A", "B"}, [][]string{{"1", "2"}}),
			layout.Paragraph("Body text."),
			layout.Signatures(layout.SignatureSlot{Area: "caseworkerSignature", Label: "Caseworker"}),
		},
	}
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	WriteMaybeGolden(t, path, payload)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CancelableContext returns a context the caller cancels to simulate an
// abandoned request.
func CancelableContext() (context.Context, context.CancelFunc) {
	return context.WithCancel(context.Background())
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
