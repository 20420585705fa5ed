// Package tui fills a record from the terminal. RenderForm walks a form
// model's editable fields with survey prompts and Render prints a plain text
// preview of a document view.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-fosterdocs/pkg/datecalc"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/model"
	"github.com/goliatone/go-fosterdocs/pkg/render"
)

// Name is the registry key of the terminal renderer.
const Name = "tui"

// Renderer implements render.Renderer and render.FormRenderer for terminal
// sessions.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	change            ChangeFunc
	submitTransformer SubmitTransformer
	out               io.Writer
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		out:          os.Stdout,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(r.out)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization used by RenderForm. Render always
// produces plain text.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatPrettyText {
		return "text/plain"
	}
	return "application/json"
}

// Driver exposes the prompt driver so callers can ask their own questions in
// the same session.
func (r *Renderer) Driver() PromptDriver {
	return r.driver
}

// Render writes a plain text preview of doc.
func (r *Renderer) Render(ctx context.Context, doc layout.Document, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var b strings.Builder
	writeDocument(&b, doc)
	return []byte(b.String()), nil
}

// RenderForm prompts for each editable field of form and returns the answers
// that changed. Read-only and derived fields are shown, never asked.
func (r *Renderer) RenderForm(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, ErrNoDriver
	}

	prefill := make(map[string]any)
	for _, field := range form.Fields() {
		prefill[field.Name] = field.Value
	}
	state := NewState(prefill, opts.Errors)

	if err := r.driver.Info(ctx, form.Title); err != nil {
		return nil, err
	}
	for _, section := range form.Sections {
		if section.Title != "" {
			if err := r.driver.Info(ctx, "== "+section.Title+" =="); err != nil {
				return nil, err
			}
		}
		for i := 0; i < len(section.Fields); {
			if run := checkboxRun(section.Fields[i:]); len(run) > 1 {
				if err := r.fillChecklist(ctx, run, state); err != nil {
					return nil, err
				}
				i += len(run)
				continue
			}
			if err := r.fillField(ctx, section.Fields[i], state); err != nil {
				return nil, err
			}
			i++
		}
	}

	values := state.Changed()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values)
}

func (r *Renderer) fillField(ctx context.Context, field model.Field, state *State) error {
	if field.ReadOnly {
		if text := valueText(state.Value(field.Name)); text != "" {
			return r.driver.Info(ctx, fmt.Sprintf("%s: %s", displayLabel(field), text))
		}
		return nil
	}

	value, err := r.ask(ctx, field, state)
	if err != nil {
		return err
	}
	return r.apply(ctx, field, value, state)
}

// fillChecklist asks a run of adjacent checkboxes as one multi-select.
func (r *Renderer) fillChecklist(ctx context.Context, run []model.Field, state *State) error {
	cfg := SelectConfig{Message: "Check all that apply", PageSize: len(run)}
	var help []string
	for i, field := range run {
		cfg.Options = append(cfg.Options, displayLabel(field))
		if checked, _ := state.Value(field.Name).(bool); checked {
			cfg.Defaults = append(cfg.Defaults, i)
		}
		help = append(help, state.Errors(field.Name)...)
	}
	cfg.Help = strings.Join(help, "; ")

	picked, err := r.driver.MultiSelect(ctx, cfg)
	if err != nil {
		return err
	}
	chosen := make(map[int]bool, len(picked))
	for _, idx := range picked {
		chosen[idx] = true
	}
	for i, field := range run {
		if err := r.apply(ctx, field, chosen[i], state); err != nil {
			return err
		}
	}
	return nil
}

// checkboxRun returns the editable checkboxes at the head of fields.
func checkboxRun(fields []model.Field) []model.Field {
	n := 0
	for n < len(fields) && fields[n].Type == model.FieldTypeCheckbox && !fields[n].ReadOnly {
		n++
	}
	return fields[:n]
}

func (r *Renderer) apply(ctx context.Context, field model.Field, value any, state *State) error {
	if same(state.Value(field.Name), value) {
		return nil
	}
	if r.change != nil {
		if err := r.change(ctx, field.Name, value); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			state.AddError(field.Name, err.Error())
			return r.driver.Info(ctx, fmt.Sprintf("%s was not applied: %v", displayLabel(field), err))
		}
	}
	state.Set(field.Name, value)
	return nil
}

func (r *Renderer) ask(ctx context.Context, field model.Field, state *State) (any, error) {
	label := displayLabel(field)
	help := strings.Join(state.Errors(field.Name), "; ")
	current := state.Value(field.Name)

	switch field.Type {
	case model.FieldTypeCheckbox:
		checked, _ := current.(bool)
		return r.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: checked, Help: help})
	case model.FieldTypeSelect:
		if len(field.Options) == 0 {
			break
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      field.Options,
			DefaultIndex: indexOf(field.Options, valueText(current)),
			Help:         help,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(field.Options) {
			return current, nil
		}
		return field.Options[idx], nil
	case model.FieldTypeTextarea:
		return r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: valueText(current), Help: help})
	}

	answer, err := r.driver.Input(ctx, InputConfig{
		Message:   label,
		Default:   valueText(current),
		Help:      firstNonEmpty(help, field.Placeholder),
		Validator: validatorFor(field.Type),
	})
	if err != nil {
		return nil, err
	}
	return strings.TrimSpace(answer), nil
}

func validatorFor(kind model.FieldType) func(string) error {
	switch kind {
	case model.FieldTypeDate:
		return validateDate
	case model.FieldTypeNumber, model.FieldTypeCurrency:
		return validateNumber
	default:
		return nil
	}
}

func validateDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, ok := datecalc.Parse(s); !ok {
		return fmt.Errorf("%q is not a date (use YYYY-MM-DD)", s)
	}
	return nil
}

func validateNumber(s string) error {
	s = strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	return nil
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	if r.outputFormat == OutputFormatPrettyText {
		return []byte(prettyPrint(values)), nil
	}
	return json.Marshal(values)
}

func writeDocument(b *strings.Builder, doc layout.Document) {
	lh := doc.Letterhead
	for _, line := range []string{lh.Agency, lh.Address, lh.Phone} {
		if line != "" {
			fmt.Fprintln(b, line)
		}
	}
	fmt.Fprintf(b, "\n%s\n", strings.ToUpper(doc.Title))
	if doc.Subtitle != "" {
		fmt.Fprintln(b, doc.Subtitle)
	}
	for _, block := range doc.Blocks {
		b.WriteString("\n")
		writeBlock(b, block)
	}
}

func writeBlock(b *strings.Builder, block layout.Block) {
	switch block.Kind {
	case layout.BlockHeading:
		fmt.Fprintf(b, "%s\n%s\n", block.Text, strings.Repeat("-", len(block.Text)))
	case layout.BlockParagraph:
		fmt.Fprintln(b, block.Text)
	case layout.BlockFields:
		for _, line := range block.Fields {
			fmt.Fprintf(b, "%s: %s\n", line.Label, line.Value)
		}
	case layout.BlockTable:
		fmt.Fprintln(b, strings.Join(block.Columns, " | "))
		for _, row := range block.Rows {
			fmt.Fprintln(b, strings.Join(row, " | "))
		}
	case layout.BlockChecklist:
		if block.Text != "" {
			fmt.Fprintln(b, block.Text)
		}
		for _, check := range block.Checks {
			mark := " "
			if check.Checked {
				mark = "x"
			}
			fmt.Fprintf(b, "[%s] %s\n", mark, check.Label)
		}
	case layout.BlockSignatures:
		for _, slot := range block.Signatures {
			status := "unsigned"
			if slot.Signed {
				status = "signed"
			}
			fmt.Fprintf(b, "%s: %s", slot.Label, status)
			if slot.Date != "" {
				fmt.Fprintf(b, " (%s)", slot.Date)
			}
			b.WriteString("\n")
		}
	}
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func valueText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "yes"
		}
		return "no"
	default:
		return fmt.Sprint(t)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
