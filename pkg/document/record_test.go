package document

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFields_TextNeverRendersNullLiterals(t *testing.T) {
	fields := Fields{
		"name":    "Ada",
		"missing": nil,
		"count":   float64(3),
		"rate":    1.5,
		"flag":    true,
	}

	cases := map[string]string{
		"name":    "Ada",
		"missing": "",
		"absent":  "",
		"count":   "3",
		"rate":    "1.5",
		"flag":    "true",
	}
	for key, want := range cases {
		if got := fields.Text(key); got != want {
			t.Fatalf("Text(%q) = %q, want %q", key, got, want)
		}
	}

	var empty Fields
	if got := empty.Text("name"); got != "" {
		t.Fatalf("nil bag should render empty string, got %q", got)
	}
}

func TestFields_UnmarshalNormalisesNumbers(t *testing.T) {
	var fields Fields
	if err := json.Unmarshal([]byte(`{"a":1,"b":"2.50","c":null,"d":{"x":1}}`), &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got, ok := fields["a"].(float64); !ok || got != 1 {
		t.Fatalf("expected float64 1, got %#v", fields["a"])
	}
	if got := fields.Float("b"); got != 2.5 {
		t.Fatalf("Float(b) = %v", got)
	}
	if fields["c"] != nil {
		t.Fatalf("expected nil for c, got %#v", fields["c"])
	}
	if got := fields.Text("d"); got != `{"x":1}` {
		t.Fatalf("nested values flatten to JSON text, got %q", got)
	}
}

func TestFields_BoolAndFloat(t *testing.T) {
	fields := Fields{"yes": "Yes", "one": float64(1), "no": "false", "money": "$1,250.75"}
	if !fields.Bool("yes") || !fields.Bool("one") || fields.Bool("no") || fields.Bool("absent") {
		t.Fatalf("unexpected bool coercion: %#v", fields)
	}
	if got := fields.Float("money"); got != 1250.75 {
		t.Fatalf("Float(money) = %v", got)
	}
}

func TestFields_FloatIgnoresNonFiniteInput(t *testing.T) {
	fields := Fields{"nan": "NaN", "inf": "Inf", "neg": "-Infinity", "word": "abc", "raw": math.Inf(1)}
	for _, key := range []string{"nan", "inf", "neg", "word", "raw"} {
		if got := fields.Float(key); got != 0 {
			t.Fatalf("Float(%s) = %v, want 0", key, got)
		}
	}
	if got := Normalize(math.NaN()); got != nil {
		t.Fatalf("Normalize(NaN) = %#v, want nil", got)
	}
}

func TestSignatures_AcceptsEveryStorageShape(t *testing.T) {
	inputs := map[string]string{
		"object":  `{"childSignature":"data:image/png;base64,AAA","caseworkerSignature":null,"parentSignature":"https://example.org/p.png"}`,
		"entries": `[["childSignature","data:image/png;base64,AAA"],["caseworkerSignature",null],["parentSignature","https://example.org/p.png"]]`,
		"pairs":   `[{"key":"childSignature","value":"data:image/png;base64,AAA"},{"key":"caseworkerSignature","value":null},{"key":"parentSignature","value":"https://example.org/p.png"}]`,
	}

	want := []string{"childSignature", "parentSignature"}
	for name, payload := range inputs {
		t.Run(name, func(t *testing.T) {
			var sigs Signatures
			if err := json.Unmarshal([]byte(payload), &sigs); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if diff := cmp.Diff(want, sigs.Areas()); diff != "" {
				t.Fatalf("areas mismatch (-want +got):\n%s", diff)
			}
			if _, ok := sigs.Get("caseworkerSignature"); ok {
				t.Fatalf("null signature should be absent")
			}
		})
	}
}

func TestSignatures_MarshalKeepsPlacementOrder(t *testing.T) {
	var sigs Signatures
	sigs.Place("zeta", "data:image/png;base64,Z")
	sigs.Place("alpha", "data:image/png;base64,A")

	payload, err := json.Marshal(sigs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"zeta":"data:image/png;base64,Z","alpha":"data:image/png;base64,A"}`
	if string(payload) != want {
		t.Fatalf("marshal = %s, want %s", payload, want)
	}
}

func TestRecord_SignatureRoundTrip(t *testing.T) {
	rec := New("N.O.A.", CategoryIntake)
	if rec.ID == "" {
		t.Fatalf("expected id to be assigned")
	}

	if err := rec.PlaceSignature("childSignature", "data:image/png;base64,AAAA"); err != nil {
		t.Fatalf("place signature: %v", err)
	}
	if _, ok := rec.Signatures.Get("childSignature"); !ok {
		t.Fatalf("expected signature to be stored")
	}

	rec.RemoveSignature("childSignature")
	if _, ok := rec.Signatures.Get("childSignature"); ok {
		t.Fatalf("expected signature to be removed")
	}
	if rec.Signatures.Len() != 0 {
		t.Fatalf("expected no signed areas, got %v", rec.Signatures.Areas())
	}
}

func TestRecord_PlaceSignatureRejectsBadInput(t *testing.T) {
	rec := New("N.O.A.", CategoryIntake)
	if err := rec.PlaceSignature("", "data:image/png;base64,AAAA"); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for empty area, got %v", err)
	}
	if err := rec.PlaceSignature("childSignature", "javascript:alert(1)"); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for script ref, got %v", err)
	}
}

func TestRecord_UnmarshalAndClone(t *testing.T) {
	payload := `{"templateName":"CHPD","fields":{"name":"Sam"},"signatures":[["childSignature","data:image/png;base64,AA"]],"category":"In House Move","isStandalone":true}`
	var rec Record
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := rec.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	clone := rec.Clone()
	clone.Fields.Set("name", "Other")
	clone.RemoveSignature("childSignature")

	if rec.Fields.Text("name") != "Sam" {
		t.Fatalf("clone mutated original fields")
	}
	if _, ok := rec.Signatures.Get("childSignature"); !ok {
		t.Fatalf("clone mutated original signatures")
	}
}

func TestDecode_TolerantScalars(t *testing.T) {
	var typed struct {
		Name   Text   `json:"name"`
		Zip    Text   `json:"zip"`
		Agreed Flag   `json:"agreed"`
		Spent  Amount `json:"spent"`
	}
	fields := Fields{"name": " Ada ", "zip": float64(90210), "agreed": "yes", "spent": "$12.50", "extra": "ignored"}
	if err := Decode(fields, &typed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if typed.Name.String() != "Ada" || typed.Zip.String() != "90210" || !bool(typed.Agreed) || typed.Spent != 12.5 {
		t.Fatalf("unexpected decode result: %+v", typed)
	}
	if typed.Spent.String() != "12.50" {
		t.Fatalf("Amount.String() = %q", typed.Spent.String())
	}
}
