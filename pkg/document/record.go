// Package document holds the record shape shared by every paperwork template:
// a flat field bag, the signatures placed on the document and the workflow
// category used for copy counts.
package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Category names the workflow a document is printed for. The values are an
// external contract with the copy policy table.
type Category string

const (
	CategoryIntake       Category = "Intake Paperwork"
	CategoryShelterBed   Category = "Shelter Bed Documents"
	CategoryInHouseMove  Category = "In House Move"
	CategoryAllDocuments Category = "All Documents"
)

var (
	// ErrTemplateRequired is returned when a record does not name a template.
	ErrTemplateRequired = errors.New("document: template name is required")
	// ErrInvalidSignature is returned for empty areas or unusable image refs.
	ErrInvalidSignature = errors.New("document: invalid signature")
)

// Record is one filled-out instance of a template.
type Record struct {
	ID           string     `json:"id,omitempty"`
	TemplateName string     `json:"templateName"`
	Fields       Fields     `json:"fields"`
	Signatures   Signatures `json:"signatures"`
	Category     Category   `json:"category,omitempty"`
	IsStandalone bool       `json:"isStandalone,omitempty"`
}

// New starts an empty record for the named template.
func New(templateName string, category Category) *Record {
	return &Record{
		ID:           uuid.NewString(),
		TemplateName: strings.TrimSpace(templateName),
		Fields:       Fields{},
		Category:     category,
	}
}

// Validate checks the record carries the minimum needed to render.
func (r *Record) Validate() error {
	if r == nil {
		return ErrTemplateRequired
	}
	if strings.TrimSpace(r.TemplateName) == "" {
		return ErrTemplateRequired
	}
	return nil
}

// EnsureID assigns a fresh identifier to records loaded without one.
func (r *Record) EnsureID() {
	if r != nil && strings.TrimSpace(r.ID) == "" {
		r.ID = uuid.NewString()
	}
}

// PlaceSignature stores a captured signature image for area. The reference
// must be a data URI or an http(s) URL.
func (r *Record) PlaceSignature(area, ref string) error {
	area = strings.TrimSpace(area)
	if area == "" {
		return fmt.Errorf("%w: area is required", ErrInvalidSignature)
	}
	if !IsImageRef(ref) {
		return fmt.Errorf("%w: unsupported image reference for %q", ErrInvalidSignature, area)
	}
	r.Signatures.Place(area, strings.TrimSpace(ref))
	return nil
}

// RemoveSignature clears area. Removing an unsigned area is a no-op.
func (r *Record) RemoveSignature(area string) {
	r.Signatures.Remove(strings.TrimSpace(area))
}

// Clone returns a deep copy so batch exports can repeat a record without
// sharing mutable state.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := *r
	out.Fields = r.Fields.Clone()
	out.Signatures = r.Signatures.Clone()
	return &out
}

// IsImageRef reports whether ref looks like a usable signature image.
func IsImageRef(ref string) bool {
	ref = strings.TrimSpace(ref)
	lower := strings.ToLower(ref)
	switch {
	case strings.HasPrefix(lower, "data:image/"):
		return strings.Contains(ref, ",")
	case strings.HasPrefix(lower, "https://"), strings.HasPrefix(lower, "http://"):
		return len(ref) > len("https://")
	default:
		return false
	}
}
