package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Fields is the flat key/value bag a template reads from. Values are
// normalised to string, float64, bool or nil.
type Fields map[string]any

// Text returns the value of key as display text. Missing and null values
// yield the empty string.
func (f Fields) Text(key string) string {
	if f == nil {
		return ""
	}
	return textOf(f[key])
}

// TextOr returns Text(key) or fallback when the value is blank.
func (f Fields) TextOr(key, fallback string) string {
	if v := strings.TrimSpace(f.Text(key)); v != "" {
		return v
	}
	return fallback
}

// Float parses the value of key as a number. Unparseable values are zero.
func (f Fields) Float(key string) float64 {
	if f == nil {
		return 0
	}
	return floatOf(f[key])
}

// Bool reports whether key holds a truthy value.
func (f Fields) Bool(key string) bool {
	if f == nil {
		return false
	}
	return boolOf(f[key])
}

// Has reports whether key carries a non-blank value.
func (f Fields) Has(key string) bool {
	return strings.TrimSpace(f.Text(key)) != ""
}

// Set stores a normalised value.
func (f Fields) Set(key string, value any) {
	if f == nil {
		return
	}
	f[key] = Normalize(value)
}

// Delete removes key.
func (f Fields) Delete(key string) {
	delete(f, key)
}

// Keys returns the field names in sorted order.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone copies the bag.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// UnmarshalJSON normalises incoming values so callers never see json.Number
// or nested containers.
func (f *Fields) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = Fields{}
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("document: decode fields: %w", err)
	}
	out := make(Fields, len(raw))
	for k, v := range raw {
		out[k] = Normalize(v)
	}
	*f = out
	return nil
}

// Normalize converts arbitrary scalar input into the canonical value set.
func Normalize(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return v
	case bool:
		return v
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return v
	case float32:
		return Normalize(float64(v))
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		if n, err := v.Float64(); err == nil {
			return Normalize(n)
		}
		return v.String()
	case fmt.Stringer:
		return v.String()
	default:
		payload, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(payload)
	}
}

func textOf(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return textOf(Normalize(v))
	}
}

func floatOf(value any) float64 {
	switch v := value.(type) {
	case float64:
		return finite(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		clean := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(v))
		n, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return 0
		}
		return finite(n)
	case nil:
		return 0
	default:
		return floatOf(Normalize(v))
	}
}

// finite maps NaN and ±Inf to 0 so derived values stay JSON encodable.
func finite(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

func boolOf(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "on", "1", "x", "checked":
			return true
		}
		return false
	default:
		return false
	}
}
