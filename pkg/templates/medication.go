package templates

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-fosterdocs/pkg/datecalc"
	"github.com/goliatone/go-fosterdocs/pkg/document"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/model"
)

const medicationRows = 6

type medicationFields struct {
	Name        document.Text `json:"name"`
	DateOfBirth document.Text `json:"dateOfBirth"`
	Month       document.Text `json:"logMonth"`
	Allergies   document.Text `json:"allergies"`
	Pharmacy    document.Text `json:"pharmacy"`
}

type medicationLog struct {
	base[medicationFields]
}

func medicationKey(n int, suffix string) string {
	return fmt.Sprintf("med%d%s", n, suffix)
}

// NewMedicationLog builds the monthly medication administration log.
func NewMedicationLog() Template {
	s := specs(childSpecs(), []model.FieldSpec{
		{Key: "logMonth", Label: "Month", Section: "Log"},
		{Key: "allergies", Label: "Allergies", Section: "Log", Policy: model.PolicyUpstream},
		{Key: "pharmacy", Label: "Pharmacy", Section: "Log"},
	})
	for n := 1; n <= medicationRows; n++ {
		row := "Medication " + strconv.Itoa(n)
		s = append(s,
			model.FieldSpec{Key: medicationKey(n, "Name"), Label: row, Section: "Medications"},
			model.FieldSpec{Key: medicationKey(n, "Dosage"), Label: row + " Dosage", Section: "Medications"},
			model.FieldSpec{Key: medicationKey(n, "Frequency"), Label: row + " Frequency", Section: "Medications"},
			model.FieldSpec{Key: medicationKey(n, "Prescriber"), Label: row + " Prescriber", Section: "Medications"},
			model.FieldSpec{Key: medicationKey(n, "StartDate"), Label: row + " Start", Section: "Medications", Type: model.FieldTypeDate},
		)
	}
	return medicationLog{base[medicationFields]{
		name:  NameMedicationLog,
		title: "Medication Log",
		specs: append(s, agencySpecs()...),
	}}
}

func (t medicationLog) View(rec *document.Record, opts ViewOptions) layout.Document {
	f := t.bound(rec)
	rows := make([][]string, 0, medicationRows)
	for n := 1; n <= medicationRows; n++ {
		rows = append(rows, []string{
			rec.Fields.Text(medicationKey(n, "Name")),
			rec.Fields.Text(medicationKey(n, "Dosage")),
			rec.Fields.Text(medicationKey(n, "Frequency")),
			rec.Fields.Text(medicationKey(n, "Prescriber")),
			datecalc.FormatLong(rec.Fields.Text(medicationKey(n, "StartDate"))),
		})
	}
	return t.document(rec, opts,
		layout.Heading("Medication Log", 1),
		layout.Fields(
			layout.Line("Child's Name", f.Name.String()),
			layout.Line("Date of Birth", longDate(f.DateOfBirth)),
			layout.Line("Month", f.Month.String()),
			layout.Line("Pharmacy", f.Pharmacy.String()),
			layout.WideLine("Allergies", f.Allergies.Or("None known")),
		),
		layout.Table([]string{"Medication", "Dosage", "Frequency", "Prescriber", "Start"}, rows),
		signatureRow(rec, opts, [2]string{"resourceMotherSignature", "Resource Parent"}),
	)
}
