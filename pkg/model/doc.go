// Package model defines the typed form model consumed by form renderers.
// Builders reside in internal/model but return the types defined here. A
// template declares its inputs as FieldSpec values; the builder combines them
// with a record's field bag, applying each field's Policy to decide whether
// the input is read-only for the record's standalone flag. Missing values
// surface as empty strings (or false for checkboxes), never as nil.
package model
