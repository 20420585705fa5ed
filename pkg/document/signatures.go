package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Signatures is the canonical area → image reference container. Insertion
// order is preserved so documents list signatures the way they were placed.
type Signatures struct {
	order  []string
	images map[string]string
}

// Get returns the image reference for area.
func (s Signatures) Get(area string) (string, bool) {
	if s.images == nil {
		return "", false
	}
	ref, ok := s.images[area]
	return ref, ok
}

// Place stores ref for area, replacing any previous image.
func (s *Signatures) Place(area, ref string) {
	if area == "" {
		return
	}
	if ref == "" {
		s.Remove(area)
		return
	}
	if s.images == nil {
		s.images = make(map[string]string)
	}
	if _, exists := s.images[area]; !exists {
		s.order = append(s.order, area)
	}
	s.images[area] = ref
}

// Remove drops area.
func (s *Signatures) Remove(area string) {
	if _, ok := s.images[area]; !ok {
		return
	}
	delete(s.images, area)
	for i, name := range s.order {
		if name == area {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
}

// Areas lists the signed areas in placement order.
func (s Signatures) Areas() []string {
	return append([]string(nil), s.order...)
}

// Len reports how many areas are signed.
func (s Signatures) Len() int {
	return len(s.order)
}

// Clone copies the container.
func (s Signatures) Clone() Signatures {
	var out Signatures
	for _, area := range s.order {
		out.Place(area, s.images[area])
	}
	return out
}

// MarshalJSON writes the signatures as an object in placement order.
func (s Signatures) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, area := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(area)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(s.images[area])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts the storage shapes older clients produced: a plain
// object, an entries array ([["area","ref"], ...]) or a list of
// {"key": ..., "value": ...} pairs. Null references are dropped.
func (s *Signatures) UnmarshalJSON(data []byte) error {
	*s = Signatures{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	switch trimmed[0] {
	case '{':
		return s.decodeObject(trimmed)
	case '[':
		return s.decodeEntries(trimmed)
	default:
		return errors.New("document: signatures must be an object or an entries list")
	}
}

func (s *Signatures) decodeObject(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("document: decode signatures: %w", err)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("document: decode signatures: %w", err)
		}
		area, _ := tok.(string)
		var ref *string
		if err := dec.Decode(&ref); err != nil {
			return fmt.Errorf("document: decode signature %q: %w", area, err)
		}
		if ref != nil {
			s.Place(strings.TrimSpace(area), strings.TrimSpace(*ref))
		}
	}
	return nil
}

func (s *Signatures) decodeEntries(data []byte) error {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("document: decode signature entries: %w", err)
	}
	for idx, entry := range entries {
		area, ref, err := decodeEntry(entry)
		if err != nil {
			return fmt.Errorf("document: signature entry %d: %w", idx, err)
		}
		if ref != "" {
			s.Place(area, ref)
		}
	}
	return nil
}

func decodeEntry(raw json.RawMessage) (string, string, error) {
	var pair []*string
	if err := json.Unmarshal(raw, &pair); err == nil {
		if len(pair) != 2 || pair[0] == nil {
			return "", "", errors.New("entry pair must hold an area and a reference")
		}
		if pair[1] == nil {
			return strings.TrimSpace(*pair[0]), "", nil
		}
		return strings.TrimSpace(*pair[0]), strings.TrimSpace(*pair[1]), nil
	}

	var kv struct {
		Key   string  `json:"key"`
		Value *string `json:"value"`
	}
	if err := json.Unmarshal(raw, &kv); err != nil {
		return "", "", err
	}
	if strings.TrimSpace(kv.Key) == "" {
		return "", "", errors.New("entry key is required")
	}
	if kv.Value == nil {
		return strings.TrimSpace(kv.Key), "", nil
	}
	return strings.TrimSpace(kv.Key), strings.TrimSpace(*kv.Value), nil
}
