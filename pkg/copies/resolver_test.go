package copies

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fosterdocs/pkg/document"
)

func TestResolver_AllDocumentsAlwaysOne(t *testing.T) {
	r := NewResolver(MustEmbedded())
	for _, title := range []string{"N.O.A.", "Consent to Treat", "Unknown", ""} {
		if got := r.Copies(title, document.CategoryAllDocuments); got != 1 {
			t.Fatalf("Copies(%q, All Documents) = %d, want 1", title, got)
		}
	}
}

func TestResolver_FallbackChain(t *testing.T) {
	table, err := LoadYAML([]byte(`
default: 1
categories:
  Intake Paperwork:
    default: 4
    documents:
      N.O.A.: 2
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	r := NewResolver(table)

	if got := r.Copies("N.O.A.", document.CategoryIntake); got != 2 {
		t.Fatalf("explicit entry = %d, want 2", got)
	}
	if got := r.Copies("CHPD", document.CategoryIntake); got != 4 {
		t.Fatalf("category default = %d, want 4", got)
	}
	if got := r.Copies("N.O.A.", "Respite Care"); got != 1 {
		t.Fatalf("unknown category = %d, want global default 1", got)
	}
}

func TestResolver_EmbeddedTable(t *testing.T) {
	r := NewResolver(MustEmbedded())
	if got := r.Copies("Consent to Treat", document.CategoryIntake); got != 3 {
		t.Fatalf("Consent to Treat intake copies = %d, want 3", got)
	}
	want := []string{"In House Move", "Intake Paperwork", "Shelter Bed Documents"}
	if diff := cmp.Diff(want, r.Categories()); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}
}

func TestResolver_ZeroValueIsTotal(t *testing.T) {
	var r *Resolver
	if got := r.Copies("N.O.A.", document.CategoryIntake); got != 1 {
		t.Fatalf("nil resolver = %d, want 1", got)
	}
	if got := NewResolver(Table{}).Copies("N.O.A.", document.CategoryIntake); got != 1 {
		t.Fatalf("empty table = %d, want 1", got)
	}
}

func TestExpand_RepeatsInOrder(t *testing.T) {
	table, err := LoadYAML([]byte(`
categories:
  In House Move:
    documents:
      A: 2
      C: 3
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := Expand(NewResolver(table), []string{"A", "B", "C"}, func(s string) string { return s }, document.CategoryInHouseMove)
	want := []string{"A", "A", "B", "C", "C", "C"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("expand mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAML_RejectsInvalidCounts(t *testing.T) {
	cases := map[string]string{
		"negative global": "default: -1\n",
		"zero document":   "categories:\n  Intake Paperwork:\n    documents:\n      N.O.A.: 0\n",
		"reserved":        "categories:\n  All Documents:\n    default: 2\n",
		"empty":           "   ",
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadYAML([]byte(payload)); err == nil || !strings.HasPrefix(err.Error(), "copies:") {
				t.Fatalf("expected copies error, got %v", err)
			}
		})
	}
}
