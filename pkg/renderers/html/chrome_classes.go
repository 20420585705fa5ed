package html

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassField      ChromeClass = "fd-field"
	ClassFieldError ChromeClass = "fd-field-error"
	ClassLabel      ChromeClass = "fd-label"
	ClassSignature  ChromeClass = "fd-signature-img"
)
