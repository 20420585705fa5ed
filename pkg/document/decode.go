package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Decode maps the field bag onto a per-template typed struct using its json
// tags. Unknown keys are ignored and missing keys leave zero values.
func Decode(fields Fields, dest any) error {
	payload, err := json.Marshal(map[string]any(fields))
	if err != nil {
		return fmt.Errorf("document: encode fields: %w", err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("document: decode fields: %w", err)
	}
	return nil
}

// Text is a string field that tolerates numbers, booleans and null.
type Text string

// String returns the trimmed text.
func (t Text) String() string { return strings.TrimSpace(string(t)) }

// Or returns fallback when the text is blank.
func (t Text) Or(fallback string) string {
	if s := t.String(); s != "" {
		return s
	}
	return fallback
}

// UnmarshalJSON accepts any JSON scalar.
func (t *Text) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*t = Text(textOf(Normalize(raw)))
	return nil
}

// Flag is a checkbox value that tolerates "true", "yes", 1 and friends.
type Flag bool

// UnmarshalJSON accepts any JSON scalar.
func (f *Flag) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*f = Flag(boolOf(Normalize(raw)))
	return nil
}

// Amount is a dollar value that tolerates "$1,250.00" style strings.
type Amount float64

// UnmarshalJSON accepts numbers and formatted strings.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*a = Amount(floatOf(Normalize(raw)))
	return nil
}

// String formats the amount with two decimals.
func (a Amount) String() string {
	return strconv.FormatFloat(float64(a), 'f', 2, 64)
}
