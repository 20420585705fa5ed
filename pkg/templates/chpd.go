package templates

import (
	"github.com/goliatone/go-fosterdocs/pkg/document"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/model"
)

type chpdFields struct {
	Name                 document.Text `json:"name"`
	DateOfBirth          document.Text `json:"dateOfBirth"`
	ExamDate             document.Text `json:"examDate"`
	ProviderName         document.Text `json:"providerName"`
	ProviderPhone        document.Text `json:"providerPhone"`
	DentalExamDate       document.Text `json:"dentalExamDate"`
	ImmunizationsCurrent document.Flag `json:"immunizationsCurrent"`
	VisionScreening      document.Flag `json:"visionScreening"`
	HearingScreening     document.Flag `json:"hearingScreening"`
	FollowUpNeeded       document.Flag `json:"followUpNeeded"`
	Notes                document.Text `json:"notes"`
}

type chpd struct {
	base[chpdFields]
}

// NewCHPD builds the child health and disability prevention exam record.
func NewCHPD() Template {
	return chpd{base[chpdFields]{
		name:  NameCHPD,
		title: "Child Health and Disability Prevention",
		specs: specs(childSpecs(), []model.FieldSpec{
			{Key: "examDate", Label: "Exam Date", Section: "Exam", Type: model.FieldTypeDate},
			{Key: "providerName", Label: "Provider", Section: "Exam"},
			{Key: "providerPhone", Label: "Provider Phone", Section: "Exam", Type: model.FieldTypePhone},
			{Key: "dentalExamDate", Label: "Dental Exam Date", Section: "Exam", Type: model.FieldTypeDate},
			{Key: "immunizationsCurrent", Label: "Immunizations Current", Section: "Screenings", Type: model.FieldTypeCheckbox},
			{Key: "visionScreening", Label: "Vision Screening", Section: "Screenings", Type: model.FieldTypeCheckbox},
			{Key: "hearingScreening", Label: "Hearing Screening", Section: "Screenings", Type: model.FieldTypeCheckbox},
			{Key: "followUpNeeded", Label: "Follow-up Needed", Section: "Screenings", Type: model.FieldTypeCheckbox},
			{Key: "notes", Label: "Notes", Section: "Screenings", Type: model.FieldTypeTextarea},
		}, agencySpecs()),
	}}
}

func (t chpd) View(rec *document.Record, opts ViewOptions) layout.Document {
	f := t.bound(rec)
	return t.document(rec, opts,
		layout.Heading("Child Health and Disability Prevention (CHDP)", 1),
		layout.Fields(
			layout.Line("Child's Name", f.Name.String()),
			layout.Line("Date of Birth", longDate(f.DateOfBirth)),
			layout.Line("Exam Date", longDate(f.ExamDate)),
			layout.Line("Dental Exam Date", longDate(f.DentalExamDate)),
			layout.Line("Provider", f.ProviderName.String()),
			layout.Line("Provider Phone", f.ProviderPhone.String()),
		),
		layout.Checklist("Screenings",
			layout.Check("Immunizations current", bool(f.ImmunizationsCurrent)),
			layout.Check("Vision screening completed", bool(f.VisionScreening)),
			layout.Check("Hearing screening completed", bool(f.HearingScreening)),
			layout.Check("Follow-up needed", bool(f.FollowUpNeeded)),
		),
		layout.Fields(layout.WideLine("Notes", f.Notes.String())),
		signatureRow(rec, opts, [2]string{"caseworkerSignature", "Caseworker"}),
	)
}
