package templates

import (
	"github.com/goliatone/go-fosterdocs/pkg/document"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/model"
)

type consentFields struct {
	Name               document.Text `json:"name"`
	DateOfBirth        document.Text `json:"dateOfBirth"`
	ConsentDate        document.Text `json:"consentDate"`
	ParentGuardianName document.Text `json:"parentGuardianName"`
	PhysicianName      document.Text `json:"physicianName"`
	RoutineMedical     document.Flag `json:"consentRoutineMedical"`
	Dental             document.Flag `json:"consentDental"`
	Emergency          document.Flag `json:"consentEmergency"`
	Immunizations      document.Flag `json:"consentImmunizations"`
	MentalHealth       document.Flag `json:"consentMentalHealth"`
	Restrictions       document.Text `json:"restrictions"`
}

type consentToTreat struct {
	base[consentFields]
}

// NewConsentToTreat builds the medical consent authorisation.
func NewConsentToTreat() Template {
	return consentToTreat{base[consentFields]{
		name:  NameConsentToTreat,
		title: "Consent to Treat",
		specs: specs(childSpecs(), []model.FieldSpec{
			{Key: "parentGuardianName", Label: "Parent / Guardian", Section: "Consent", Policy: model.PolicyUpstream},
			{Key: "consentDate", Label: "Date", Section: "Consent", Type: model.FieldTypeDate},
			{Key: "physicianName", Label: "Physician", Section: "Consent"},
			{Key: "consentRoutineMedical", Label: "Routine Medical Care", Section: "Authorized Care", Type: model.FieldTypeCheckbox},
			{Key: "consentDental", Label: "Dental Care", Section: "Authorized Care", Type: model.FieldTypeCheckbox},
			{Key: "consentEmergency", Label: "Emergency Treatment", Section: "Authorized Care", Type: model.FieldTypeCheckbox},
			{Key: "consentImmunizations", Label: "Immunizations", Section: "Authorized Care", Type: model.FieldTypeCheckbox},
			{Key: "consentMentalHealth", Label: "Mental Health Services", Section: "Authorized Care", Type: model.FieldTypeCheckbox},
			{Key: "restrictions", Label: "Restrictions", Section: "Authorized Care", Type: model.FieldTypeTextarea},
		}, agencySpecs()),
	}}
}

func (t consentToTreat) View(rec *document.Record, opts ViewOptions) layout.Document {
	f := t.bound(rec)
	lh := letterhead(rec.Fields)
	return t.document(rec, opts,
		layout.Heading("Consent to Treat", 1),
		layout.Fields(
			layout.Line("Child's Name", f.Name.String()),
			layout.Line("Date of Birth", longDate(f.DateOfBirth)),
			layout.Line("Parent / Guardian", f.ParentGuardianName.String()),
			layout.Line("Date", longDate(f.ConsentDate)),
		),
		layout.Paragraph("I authorize "+lh.Agency+" and the resource parent caring for the child named above to obtain the care checked below on the child's behalf."),
		layout.Checklist("Authorized Care",
			layout.Check("Routine medical care", bool(f.RoutineMedical)),
			layout.Check("Dental care", bool(f.Dental)),
			layout.Check("Emergency treatment", bool(f.Emergency)),
			layout.Check("Immunizations", bool(f.Immunizations)),
			layout.Check("Mental health services", bool(f.MentalHealth)),
		),
		layout.Fields(
			layout.Line("Physician", f.PhysicianName.String()),
			layout.WideLine("Restrictions", f.Restrictions.Or("None")),
		),
		signatureRow(rec, opts,
			[2]string{"parentGuardianSignature", "Parent / Guardian"},
			[2]string{"caseworkerSignature", "Caseworker"},
		),
	)
}
