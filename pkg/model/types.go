package model

import internalmodel "github.com/goliatone/go-fosterdocs/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeText     = internalmodel.FieldTypeText
	FieldTypeTextarea = internalmodel.FieldTypeTextarea
	FieldTypeDate     = internalmodel.FieldTypeDate
	FieldTypeNumber   = internalmodel.FieldTypeNumber
	FieldTypeCurrency = internalmodel.FieldTypeCurrency
	FieldTypeCheckbox = internalmodel.FieldTypeCheckbox
	FieldTypeSelect   = internalmodel.FieldTypeSelect
	FieldTypePhone    = internalmodel.FieldTypePhone
)

// Policy re-exports the field edit policy.
type Policy = internalmodel.Policy

const (
	PolicyEditable = internalmodel.PolicyEditable
	PolicyUpstream = internalmodel.PolicyUpstream
	PolicyDerived  = internalmodel.PolicyDerived
	PolicyOverride = internalmodel.PolicyOverride
)

type FieldSpec = internalmodel.FieldSpec
type Field = internalmodel.Field
type Section = internalmodel.Section
type FormModel = internalmodel.FormModel
