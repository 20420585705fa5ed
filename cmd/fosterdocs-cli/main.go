package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-fosterdocs/internal/app"
	"github.com/goliatone/go-fosterdocs/internal/config"
	"github.com/goliatone/go-fosterdocs/pkg/document"
	"github.com/goliatone/go-fosterdocs/pkg/export"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/orchestrator"
	"github.com/goliatone/go-fosterdocs/pkg/render"
	"github.com/goliatone/go-fosterdocs/pkg/renderers/pdf"
	"github.com/goliatone/go-fosterdocs/pkg/renderers/tui"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	recordPath := flag.String("record", "", "record JSON file")
	templateName := flag.String("template", "", "template for a new record")
	category := flag.String("category", "", "workflow category")
	standalone := flag.Bool("standalone", false, "treat a new record as standalone")
	renderer := flag.String("renderer", "html", "renderer to use (html, pdf, tui)")
	mode := flag.String("mode", string(layout.ModePrint), "view mode (interactive, print, export)")
	output := flag.String("output", "", "output file (stdout if empty)")
	fill := flag.Bool("fill", false, "prompt for editable fields before rendering")
	save := flag.String("save", "", "write the filled record JSON here")
	exportPDF := flag.Bool("export", false, "export a PDF into the configured output directory")
	filename := flag.String("filename", "", "export filename")
	batch := flag.String("batch", "", "comma separated record files exported as one PDF")
	resolveCopies := flag.Bool("copies", false, "repeat batch documents per the copy policy")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := cfg.Logger(os.Stderr)

	terminal := tui.New(tui.WithOutput(os.Stderr))
	orch, err := app.Build(cfg, logger, app.WithRenderers(terminal))
	if err != nil {
		log.Fatalf("Failed to initialise: %v", err)
	}
	driver := terminal.Driver()

	if *batch != "" {
		recs, err := loadRecords(strings.Split(*batch, ","))
		if err != nil {
			log.Fatalf("Failed to load batch: %v", err)
		}
		cat := document.Category(*category)
		if cat == "" && *resolveCopies {
			cat, err = chooseCategory(ctx, driver, orch)
			if err != nil {
				log.Fatalf("Failed to choose category: %v", err)
			}
		}
		res, err := orch.ExportBatch(ctx, orchestrator.BatchRequest{
			Records:       recs,
			Filename:      firstNonEmpty(*filename, string(cat), "documents"),
			Category:      cat,
			ResolveCopies: *resolveCopies,
		})
		if err != nil {
			log.Fatalf("Failed to export batch: %v", err)
		}
		writeExport(res, *output, cfg.Export.OutputDir)
		return
	}

	rec, err := openRecord(ctx, driver, orch, *recordPath, *templateName, *category, *standalone)
	if err != nil {
		log.Fatalf("Failed to open record: %v", err)
	}
	if err := orch.Load(ctx, rec); err != nil {
		log.Fatalf("Failed to load record: %v", err)
	}

	if *fill {
		filler := tui.New(
			tui.WithPromptDriver(driver),
			tui.WithChangeHandler(func(ctx context.Context, key string, value any) error {
				return orch.Change(ctx, rec, key, value)
			}),
		)
		if _, err := filler.RenderForm(ctx, orch.FormModel(rec), render.RenderOptions{}); err != nil {
			if errors.Is(err, tui.ErrAborted) {
				log.Fatalf("Aborted")
			}
			log.Fatalf("Failed to fill record: %v", err)
		}
	}
	if *save != "" {
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode record: %v", err)
		}
		if err := os.WriteFile(*save, data, 0o644); err != nil {
			log.Fatalf("Failed to save record: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Record saved to %s\n", *save)
	}

	if *exportPDF {
		res, err := orch.Export(ctx, rec, *filename)
		if err != nil {
			log.Fatalf("Failed to export: %v", err)
		}
		writeExport(res, *output, cfg.Export.OutputDir)
		return
	}

	sess := orch.Mount(layout.Mode(*mode))
	defer sess.Close()
	out, err := orch.Render(ctx, orchestrator.Request{
		Record:   rec,
		Renderer: *renderer,
		Session:  sess,
	})
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Document written to %s\n", *output)
		return
	}
	os.Stdout.Write(out)
}

func openRecord(ctx context.Context, driver tui.PromptDriver, orch *orchestrator.Orchestrator, path, templateName, category string, standalone bool) (*document.Record, error) {
	if path != "" {
		recs, err := loadRecords([]string{path})
		if err != nil {
			return nil, err
		}
		return recs[0], nil
	}

	if templateName == "" {
		names := orch.Templates().List()
		idx, err := driver.Select(ctx, tui.SelectConfig{Message: "Template", Options: names})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(names) {
			return nil, fmt.Errorf("no template selected")
		}
		templateName = names[idx]
	}
	cat := document.Category(category)
	if cat == "" {
		var err error
		if cat, err = chooseCategory(ctx, driver, orch); err != nil {
			return nil, err
		}
	}
	rec := document.New(templateName, cat)
	rec.IsStandalone = standalone
	return rec, nil
}

func chooseCategory(ctx context.Context, driver tui.PromptDriver, orch *orchestrator.Orchestrator) (document.Category, error) {
	options := append(orch.Resolver().Categories(), string(document.CategoryAllDocuments))
	idx, err := driver.Select(ctx, tui.SelectConfig{Message: "Category", Options: options, DefaultIndex: len(options) - 1})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return document.CategoryAllDocuments, nil
	}
	return document.Category(options[idx]), nil
}

func loadRecords(paths []string) ([]*document.Record, error) {
	var recs []*document.Record
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var rec document.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if rec.Fields == nil {
			rec.Fields = document.Fields{}
		}
		rec.EnsureID()
		recs = append(recs, &rec)
	}
	if len(recs) == 0 {
		return nil, export.ErrNoDocuments
	}
	return recs, nil
}

func writeExport(res export.Result, output, dir string) {
	var (
		path string
		err  error
	)
	if output != "" {
		path = output
		if err = os.MkdirAll(filepath.Dir(output), 0o755); err == nil {
			err = os.WriteFile(output, res.Data, 0o644)
		}
	} else {
		path, err = res.WriteFile(dir)
	}
	if err != nil {
		log.Fatalf("Failed to write export: %v", err)
	}

	info, err := pdf.Inspect(res.Data)
	if err != nil {
		log.Fatalf("Failed to inspect export: %v", err)
	}
	fmt.Printf("Exported %d document(s), %d page(s) to %s\n", res.Documents, info.Pages, path)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
