package model

import (
	"github.com/goliatone/go-fosterdocs/internal/model"
	"github.com/goliatone/go-fosterdocs/pkg/document"
)

// Builder converts template field specs and a record's field bag into form
// models.
type Builder interface {
	Build(template, title string, specs []FieldSpec, fields document.Fields, standalone bool) FormModel
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler func(string) string
}

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}

	internalOpts := model.Options{}
	if cfg.labeler != nil {
		internalOpts.Labeler = cfg.labeler
	}

	return model.New(internalOpts)
}

// DefaultLabeler exposes the builder's label derivation.
func DefaultLabeler(name string) string {
	return model.DefaultLabeler(name)
}
