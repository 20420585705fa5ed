package templates

import (
	"github.com/goliatone/go-fosterdocs/pkg/datecalc"
	"github.com/goliatone/go-fosterdocs/pkg/document"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Organisational defaults printed when the record leaves them blank. They
// match the legal source documents and must not be reworded.
const (
	DefaultAgencyName    = "Harbor Light Family Services"
	DefaultAgencyAddress = "1420 Mission Street, Suite 300, San Francisco, CA 94103"
	DefaultAgencyPhone   = "(415) 555-0142"
)

// Keys shared by most templates.
const (
	keyName          = "name"
	keyDateOfBirth   = "dateOfBirth"
	keyAgencyName    = "agencyName"
	keyAgencyAddress = "agencyAddress"
	keyAgencyPhone   = "agencyPhone"
)

// base carries the parts every template shares. T is the typed view of the
// record's field bag.
type base[T any] struct {
	name  string
	title string
	specs []model.FieldSpec
}

func (b base[T]) Name() string  { return b.name }
func (b base[T]) Title() string { return b.title }

func (b base[T]) Fields() []model.FieldSpec {
	return append([]model.FieldSpec(nil), b.specs...)
}

// Bind decodes fields into the template's typed record.
func (b base[T]) Bind(fields document.Fields) error {
	_, err := b.decode(fields)
	return err
}

func (b base[T]) decode(fields document.Fields) (T, error) {
	var v T
	err := document.Decode(fields, &v)
	return v, err
}

// bound decodes and ignores errors; the tolerant scalar types never fail on
// a flat bag, and Validate reports anything else at the boundary.
func (b base[T]) bound(rec *document.Record) T {
	v, _ := b.decode(rec.Fields)
	return v
}

func (b base[T]) document(rec *document.Record, opts ViewOptions, blocks ...layout.Block) layout.Document {
	return layout.Document{
		Template:   b.name,
		Title:      b.title,
		Letterhead: letterhead(rec.Fields),
		Blocks:     blocks,
		Mode:       opts.Mode,
	}
}

func letterhead(fields document.Fields) layout.Letterhead {
	return layout.Letterhead{
		Agency:  fields.TextOr(keyAgencyName, DefaultAgencyName),
		Address: fields.TextOr(keyAgencyAddress, DefaultAgencyAddress),
		Phone:   fields.TextOr(keyAgencyPhone, DefaultAgencyPhone),
	}
}

// agencySpecs are the editable letterhead overrides.
func agencySpecs() []model.FieldSpec {
	return []model.FieldSpec{
		{Key: keyAgencyName, Label: "Agency", Section: "Agency", Default: DefaultAgencyName},
		{Key: keyAgencyAddress, Label: "Office Address", Section: "Agency", Default: DefaultAgencyAddress},
		{Key: keyAgencyPhone, Label: "Phone", Section: "Agency", Type: model.FieldTypePhone, Default: DefaultAgencyPhone},
	}
}

// childSpecs are the intake-sourced identity fields.
func childSpecs() []model.FieldSpec {
	return []model.FieldSpec{
		{Key: keyName, Label: "Child's Name", Section: "Child", Policy: model.PolicyUpstream},
		{Key: keyDateOfBirth, Label: "Date of Birth", Section: "Child", Type: model.FieldTypeDate, Policy: model.PolicyUpstream},
	}
}

func specs(groups ...[]model.FieldSpec) []model.FieldSpec {
	var out []model.FieldSpec
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

var moneyPrinter = message.NewPrinter(language.AmericanEnglish)

// money formats a stored amount as "$1,250.00". Blank stays blank.
func money(t document.Text) string {
	s := t.String()
	if s == "" {
		return ""
	}
	return moneyPrinter.Sprintf("$%.2f", document.Fields{"v": s}.Float("v"))
}

func moneyValue(v float64) string {
	return moneyPrinter.Sprintf("$%.2f", v)
}

func longDate(t document.Text) string {
	return datecalc.FormatLong(t.String())
}

func signatureRow(rec *document.Record, opts ViewOptions, slots ...[2]string) layout.Block {
	out := make([]layout.SignatureSlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, layout.Slot(s[0], s[1], rec.Signatures, rec.IsStandalone, opts.Mode))
	}
	return layout.Signatures(out...)
}
