package export_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/goliatone/go-fosterdocs/pkg/export"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/testsupport"
)

func TestBuildDocuments_KeepsOrder(t *testing.T) {
	docs, err := export.BuildDocuments(testsupport.Context(), 8, func(_ context.Context, i int) (layout.Document, error) {
		return layout.Document{Title: fmt.Sprintf("doc-%d", i)}, nil
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for i, d := range docs {
		if want := fmt.Sprintf("doc-%d", i); d.Title != want {
			t.Fatalf("docs[%d] = %q, want %q", i, d.Title, want)
		}
	}
}

func TestBuildDocuments_PropagatesError(t *testing.T) {
	boom := errors.New("bad record")
	_, err := export.BuildDocuments(testsupport.Context(), 4, func(_ context.Context, i int) (layout.Document, error) {
		if i == 2 {
			return layout.Document{}, boom
		}
		return layout.Document{}, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected build error, got %v", err)
	}
}

func TestStage_Observe(t *testing.T) {
	stage := export.NewStage()
	var seen []int
	stage.Observe(func(n int) { seen = append(seen, n) })

	spy := export.RasterizerFunc(func(context.Context, *export.Container) ([]byte, error) {
		return []byte("ok"), nil
	})
	e, err := export.New(spy, export.WithStage(stage))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	d := layout.Document{Title: "A"}
	if _, err := e.Export(testsupport.Context(), export.SingleRequest{Element: &d}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 0 {
		t.Fatalf("observed %v, want [1 0]", seen)
	}
}
