package templates

import (
	"github.com/goliatone/go-fosterdocs/pkg/document"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/model"
)

type agencyFosterFields struct {
	Name              document.Text `json:"name"`
	DateOfBirth       document.Text `json:"dateOfBirth"`
	TransactionDate   document.Text `json:"transactionDate"`
	FosterParentName  document.Text `json:"fosterParentName"`
	Clothing          document.Flag `json:"clothingProvided"`
	Medication        document.Flag `json:"medicationProvided"`
	MedicalCard       document.Flag `json:"medicalCardProvided"`
	SchoolRecords     document.Flag `json:"schoolRecordsProvided"`
	PersonalItems     document.Flag `json:"personalItemsProvided"`
	ClothingAllowance document.Text `json:"clothingAllowance"`
	Notes             document.Text `json:"notes"`
}

type agencyToFosterParent struct {
	base[agencyFosterFields]
}

// NewAgencyToFosterParent builds the hand-over receipt from agency to
// resource parent.
func NewAgencyToFosterParent() Template {
	return agencyToFosterParent{base[agencyFosterFields]{
		name:  NameAgencyToFosterParent,
		title: "Agency to Foster Parent Transfer",
		specs: specs(childSpecs(), []model.FieldSpec{
			{Key: "fosterParentName", Label: "Resource Parent", Section: "Transfer", Policy: model.PolicyUpstream},
			{Key: "transactionDate", Label: "Date", Section: "Transfer", Type: model.FieldTypeDate},
			{Key: "clothingProvided", Label: "Clothing", Section: "Items Provided", Type: model.FieldTypeCheckbox},
			{Key: "medicationProvided", Label: "Medication", Section: "Items Provided", Type: model.FieldTypeCheckbox},
			{Key: "medicalCardProvided", Label: "Medical Card", Section: "Items Provided", Type: model.FieldTypeCheckbox},
			{Key: "schoolRecordsProvided", Label: "School Records", Section: "Items Provided", Type: model.FieldTypeCheckbox},
			{Key: "personalItemsProvided", Label: "Personal Items", Section: "Items Provided", Type: model.FieldTypeCheckbox},
			{Key: "clothingAllowance", Label: "Clothing Allowance Issued", Section: "Items Provided", Type: model.FieldTypeCurrency},
			{Key: "notes", Label: "Notes", Section: "Items Provided", Type: model.FieldTypeTextarea},
		}, agencySpecs()),
	}}
}

func (t agencyToFosterParent) View(rec *document.Record, opts ViewOptions) layout.Document {
	f := t.bound(rec)
	lh := letterhead(rec.Fields)
	return t.document(rec, opts,
		layout.Heading("Agency to Foster Parent", 1),
		layout.Fields(
			layout.Line("Child's Name", f.Name.String()),
			layout.Line("Date of Birth", longDate(f.DateOfBirth)),
			layout.Line("Resource Parent", f.FosterParentName.String()),
			layout.Line("Date", longDate(f.TransactionDate)),
		),
		layout.Paragraph(lh.Agency+" has provided the following items to the resource parent named above at the time of placement."),
		layout.Checklist("Items Provided",
			layout.Check("Clothing", bool(f.Clothing)),
			layout.Check("Medication", bool(f.Medication)),
			layout.Check("Medical Card", bool(f.MedicalCard)),
			layout.Check("School Records", bool(f.SchoolRecords)),
			layout.Check("Personal Items", bool(f.PersonalItems)),
		),
		layout.Fields(
			layout.Line("Clothing Allowance Issued", money(f.ClothingAllowance)),
			layout.WideLine("Notes", f.Notes.String()),
		),
		signatureRow(rec, opts,
			[2]string{"agencyRepSignature", "Agency Representative"},
			[2]string{"resourceMotherSignature", "Resource Parent"},
		),
	)
}
