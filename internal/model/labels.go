package model

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-fosterdocs/pkg/allowance"
)

// acronyms keep their capitals wherever they appear in a key.
var acronyms = map[string]string{
	"chpd": "CHPD",
	"dob":  "DOB",
	"id":   "ID",
	"noa":  "NOA",
	"ssn":  "SSN",
	"zip":  "ZIP",
}

// DefaultLabeler derives a sentence-case label from a field key, so
// "caseworkerPhone" reads "Caseworker phone". Allowance ledger keys carry
// their period up front: "q1_month2_startDate" reads "Q1 Month 2: Start date".
func DefaultLabeler(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if p, suffix, ok := allowance.ParseKey(key); ok {
		return fmt.Sprintf("Q%d Month %d: %s", p.Quarter, p.Month, sentence(words(suffix)))
	}
	return sentence(words(key))
}

// words splits key on separators and camelCase humps. Digit runs stay whole.
func words(key string) []string {
	var (
		out []string
		cur []rune
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	runes := []rune(key)
	for i, r := range runes {
		if r == '_' || r == '-' || r == '.' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if i > 0 && hump(runes[i-1], r) {
			flush()
		}
		cur = append(cur, r)
	}
	flush()
	return out
}

func hump(prev, r rune) bool {
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(r):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(r):
		return true
	case unicode.IsDigit(prev) && unicode.IsLetter(r):
		return true
	}
	return false
}

func sentence(ws []string) string {
	if len(ws) == 0 {
		return ""
	}
	title := cases.Title(language.English)
	for i, w := range ws {
		lower := strings.ToLower(w)
		switch acr, ok := acronyms[lower]; {
		case ok:
			ws[i] = acr
		case i == 0:
			ws[i] = title.String(lower)
		default:
			ws[i] = lower
		}
	}
	return strings.Join(ws, " ")
}
