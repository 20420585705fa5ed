package templates

import (
	"github.com/goliatone/go-fosterdocs/pkg/document"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/model"
)

type noaFields struct {
	Name                document.Text `json:"name"`
	DateOfBirth         document.Text `json:"dateOfBirth"`
	PlacementDate       document.Text `json:"placementDate"`
	EffectiveDate       document.Text `json:"effectiveDate"`
	LevelOfCare         document.Text `json:"levelOfCare"`
	MonthlyRate         document.Text `json:"monthlyRate"`
	FosterParentName    document.Text `json:"fosterParentName"`
	FosterParentAddress document.Text `json:"fosterParentAddress"`
	CaseworkerName      document.Text `json:"caseworkerName"`
	ActionPlacement     document.Flag `json:"actionPlacement"`
	ActionRateChange    document.Flag `json:"actionRateChange"`
	ActionReplacement   document.Flag `json:"actionReplacement"`
	ActionDischarge     document.Flag `json:"actionDischarge"`
	ReasonForAction     document.Text `json:"reasonForAction"`
}

type noa struct {
	base[noaFields]
}

// NewNOA builds the notice of action template.
func NewNOA() Template {
	return noa{base[noaFields]{
		name:  NameNOA,
		title: "Notice of Action",
		specs: specs(childSpecs(), []model.FieldSpec{
			{Key: "placementDate", Label: "Placement Date", Section: "Child", Type: model.FieldTypeDate, Policy: model.PolicyUpstream},
			{Key: "levelOfCare", Label: "Level of Care", Section: "Child", Policy: model.PolicyOverride, Options: []string{"Basic", "Intensive", "Specialized", "ISFC"}},
			{Key: "fosterParentName", Label: "Resource Parent", Section: "Placement", Policy: model.PolicyUpstream},
			{Key: "fosterParentAddress", Label: "Resource Parent Address", Section: "Placement", Policy: model.PolicyUpstream},
			{Key: "caseworkerName", Label: "Caseworker", Section: "Placement"},
			{Key: "effectiveDate", Label: "Effective Date", Section: "Action", Type: model.FieldTypeDate},
			{Key: "monthlyRate", Label: "Monthly Rate", Section: "Action", Type: model.FieldTypeCurrency},
			{Key: "actionPlacement", Label: "Placement", Section: "Action", Type: model.FieldTypeCheckbox},
			{Key: "actionRateChange", Label: "Rate Change", Section: "Action", Type: model.FieldTypeCheckbox},
			{Key: "actionReplacement", Label: "Replacement", Section: "Action", Type: model.FieldTypeCheckbox},
			{Key: "actionDischarge", Label: "Discharge", Section: "Action", Type: model.FieldTypeCheckbox},
			{Key: "reasonForAction", Label: "Reason for Action", Section: "Action", Type: model.FieldTypeTextarea},
		}, agencySpecs()),
	}}
}

func (t noa) View(rec *document.Record, opts ViewOptions) layout.Document {
	f := t.bound(rec)
	doc := t.document(rec, opts,
		layout.Heading("Notice of Action", 1),
		layout.Fields(
			layout.Line("Child's Name", f.Name.String()),
			layout.Line("Date of Birth", longDate(f.DateOfBirth)),
			layout.Line("Placement Date", longDate(f.PlacementDate)),
			layout.Line("Level of Care", f.LevelOfCare.String()),
			layout.Line("Resource Parent", f.FosterParentName.String()),
			layout.Line("Caseworker", f.CaseworkerName.String()),
			layout.WideLine("Address", f.FosterParentAddress.String()),
		),
		layout.Checklist("Type of Action",
			layout.Check("Placement", bool(f.ActionPlacement)),
			layout.Check("Rate Change", bool(f.ActionRateChange)),
			layout.Check("Replacement", bool(f.ActionReplacement)),
			layout.Check("Discharge", bool(f.ActionDischarge)),
		),
		layout.Fields(
			layout.Line("Effective Date", longDate(f.EffectiveDate)),
			layout.Line("Monthly Rate", money(f.MonthlyRate)),
			layout.WideLine("Reason for Action", f.ReasonForAction.String()),
		),
		layout.Paragraph("You have the right to request a review of this action within ten days of the effective date by contacting the agency office listed above."),
		signatureRow(rec, opts,
			[2]string{"caseworkerSignature", "Caseworker"},
			[2]string{"resourceMotherSignature", "Resource Parent"},
		),
	)
	return doc
}
