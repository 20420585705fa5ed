package render

// RenderOptions describe per-request data that renderers can use without
// mutating the node tree.
type RenderOptions struct {
	// Title overrides the document title used for artifact metadata.
	Title string
	// Action is the form submission target. Empty renders a form without a
	// submit control.
	Action string
	// Errors surfaces server-side feedback keyed by field name, e.g. a
	// rejected edit to a read-only field.
	Errors map[string][]string
}
