// Package templates holds the paperwork templates and the registry that maps
// a template name to its view and form. Template names are the public
// contract with the document store and must not change.
package templates

import (
	"errors"

	"github.com/goliatone/go-fosterdocs/pkg/document"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/model"
)

var (
	// ErrUnknownTemplate is returned when a record names a template the
	// registry does not hold.
	ErrUnknownTemplate = errors.New("templates: unknown template")
	// ErrReadOnly is returned when an edit targets a field its policy locks.
	ErrReadOnly = errors.New("templates: field is read-only")
)

// Template names.
const (
	NameNOA                  = "N.O.A."
	NameIDEmergencyInfo      = "ID-Emergency Info"
	NameAgencyToFosterParent = "Agency to Foster Parent"
	NameCHPD                 = "CHPD"
	NameCAForm               = "CA Form"
	NameSpendingAllowance    = "Spending Allowance"
	NameMedicationLog        = "Medication Log"
	NameConsentToTreat       = "Consent to Treat"
)

// ViewOptions carries the render inputs that are not part of the record.
type ViewOptions struct {
	Mode layout.Mode
}

// Template is one paperwork document type.
type Template interface {
	Name() string
	Title() string
	Fields() []model.FieldSpec
	View(rec *document.Record, opts ViewOptions) layout.Document
}

// Recalculator is implemented by templates with derived fields. It runs
// synchronously after every accepted edit.
type Recalculator interface {
	Recalculate(fields document.Fields, changedKey string)
}

// Loader is implemented by templates that recompute derived fields when a
// record is first opened.
type Loader interface {
	OnLoad(fields document.Fields)
}

// FieldSpec returns the declaration of key, if the template declares it.
func FieldSpec(t Template, key string) (model.FieldSpec, bool) {
	if t == nil {
		return model.FieldSpec{}, false
	}
	for _, spec := range t.Fields() {
		if spec.Key == key {
			return spec, true
		}
	}
	return model.FieldSpec{}, false
}
