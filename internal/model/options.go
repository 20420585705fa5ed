package model

// Options configures a Builder. pkg/model assembles them from its functional
// options.
type Options struct {
	// Labeler names fields whose spec carries no Label. Nil means
	// DefaultLabeler.
	Labeler func(key string) string
}

func (o Options) labeler() func(string) string {
	if o.Labeler != nil {
		return o.Labeler
	}
	return DefaultLabeler
}
