package components

// Canonical component names used by the html renderer and default registry.
const (
	NameInput    = "input"
	NameTextarea = "textarea"
	NameSelect   = "select"
	NameCheckbox = "checkbox"
	NameDate     = "date"
	NameCurrency = "currency"
	NameComputed = "computed"
)
