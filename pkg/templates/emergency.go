package templates

import (
	"github.com/goliatone/go-fosterdocs/pkg/document"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/model"
)

type emergencyFields struct {
	Name                  document.Text `json:"name"`
	PreferredName         document.Text `json:"preferredName"`
	DateOfBirth           document.Text `json:"dateOfBirth"`
	Gender                document.Text `json:"gender"`
	HairColor             document.Text `json:"hairColor"`
	EyeColor              document.Text `json:"eyeColor"`
	Height                document.Text `json:"height"`
	Weight                document.Text `json:"weight"`
	IdentifyingMarks      document.Text `json:"identifyingMarks"`
	Allergies             document.Text `json:"allergies"`
	Medications           document.Text `json:"medications"`
	MedicalInsurance      document.Text `json:"medicalInsurance"`
	PhysicianName         document.Text `json:"physicianName"`
	PhysicianPhone        document.Text `json:"physicianPhone"`
	EmergencyContactName  document.Text `json:"emergencyContactName"`
	EmergencyContactPhone document.Text `json:"emergencyContactPhone"`
	EmergencyRelationship document.Text `json:"emergencyContactRelationship"`
}

type emergencyInfo struct {
	base[emergencyFields]
}

// NewIDEmergencyInfo builds the identification and emergency information
// sheet.
func NewIDEmergencyInfo() Template {
	return emergencyInfo{base[emergencyFields]{
		name:  NameIDEmergencyInfo,
		title: "Identification and Emergency Information",
		specs: specs(childSpecs(), []model.FieldSpec{
			{Key: "preferredName", Label: "Preferred Name", Section: "Child", Policy: model.PolicyOverride},
			{Key: "gender", Label: "Gender", Section: "Child", Policy: model.PolicyUpstream},
			{Key: "hairColor", Label: "Hair", Section: "Description"},
			{Key: "eyeColor", Label: "Eyes", Section: "Description"},
			{Key: "height", Label: "Height", Section: "Description"},
			{Key: "weight", Label: "Weight", Section: "Description"},
			{Key: "identifyingMarks", Label: "Identifying Marks", Section: "Description", Type: model.FieldTypeTextarea},
			{Key: "allergies", Label: "Allergies", Section: "Medical", Type: model.FieldTypeTextarea},
			{Key: "medications", Label: "Current Medications", Section: "Medical", Type: model.FieldTypeTextarea},
			{Key: "medicalInsurance", Label: "Medi-Cal / Insurance No.", Section: "Medical"},
			{Key: "physicianName", Label: "Physician", Section: "Medical"},
			{Key: "physicianPhone", Label: "Physician Phone", Section: "Medical", Type: model.FieldTypePhone},
			{Key: "emergencyContactName", Label: "Emergency Contact", Section: "Emergency"},
			{Key: "emergencyContactPhone", Label: "Contact Phone", Section: "Emergency", Type: model.FieldTypePhone},
			{Key: "emergencyContactRelationship", Label: "Relationship", Section: "Emergency"},
		}, agencySpecs()),
	}}
}

func (t emergencyInfo) View(rec *document.Record, opts ViewOptions) layout.Document {
	f := t.bound(rec)
	return t.document(rec, opts,
		layout.Heading("Identification and Emergency Information", 1),
		layout.Fields(
			layout.Line("Child's Name", f.Name.String()),
			layout.Line("Preferred Name", f.PreferredName.String()),
			layout.Line("Date of Birth", longDate(f.DateOfBirth)),
			layout.Line("Gender", f.Gender.String()),
		),
		layout.Heading("Physical Description", 2),
		layout.Fields(
			layout.Line("Hair", f.HairColor.String()),
			layout.Line("Eyes", f.EyeColor.String()),
			layout.Line("Height", f.Height.String()),
			layout.Line("Weight", f.Weight.String()),
			layout.WideLine("Identifying Marks", f.IdentifyingMarks.String()),
		),
		layout.Heading("Medical", 2),
		layout.Fields(
			layout.WideLine("Allergies", f.Allergies.Or("None known")),
			layout.WideLine("Current Medications", f.Medications.String()),
			layout.Line("Medi-Cal / Insurance No.", f.MedicalInsurance.String()),
			layout.Line("Physician", f.PhysicianName.String()),
			layout.Line("Physician Phone", f.PhysicianPhone.String()),
		),
		layout.Heading("In Case of Emergency", 2),
		layout.Fields(
			layout.Line("Contact", f.EmergencyContactName.String()),
			layout.Line("Phone", f.EmergencyContactPhone.String()),
			layout.Line("Relationship", f.EmergencyRelationship.String()),
		),
		signatureRow(rec, opts, [2]string{"caseworkerSignature", "Caseworker"}),
	)
}
