// Package allowance implements the quarterly allowance worksheets: each
// quarter has three monthly periods whose end date, age, day count, amount
// due and running balance are derived from the period start date, the
// child's date of birth and the amount spent.
package allowance

import (
	"fmt"
	"strconv"
	"strings"
)

// Ledger key suffixes. Full keys look like "q2_month1_balance".
const (
	SuffixStartDate   = "startDate"
	SuffixEndDate     = "endDate"
	SuffixAge         = "age"
	SuffixDays        = "days"
	SuffixAmountDue   = "amountDue"
	SuffixAmountSpent = "amountSpent"
	SuffixBalance     = "balance"
)

// KeyDateOfBirth is the record-level field ages are computed from.
const KeyDateOfBirth = "dateOfBirth"

const (
	Quarters         = 4
	MonthsPerQuarter = 3
)

// Period identifies one month of the worksheet.
type Period struct {
	Quarter int
	Month   int
}

// Periods lists every period in worksheet order.
func Periods() []Period {
	out := make([]Period, 0, Quarters*MonthsPerQuarter)
	for q := 1; q <= Quarters; q++ {
		for m := 1; m <= MonthsPerQuarter; m++ {
			out = append(out, Period{Quarter: q, Month: m})
		}
	}
	return out
}

// Key builds the field name for suffix within this period.
func (p Period) Key(suffix string) string {
	return fmt.Sprintf("q%d_month%d_%s", p.Quarter, p.Month, suffix)
}

// IsFirst reports whether p opens the worksheet.
func (p Period) IsFirst() bool {
	return p.Quarter == 1 && p.Month == 1
}

// Previous returns the period whose balance carries into p: the prior month
// in the same quarter, or month three of the prior quarter.
func (p Period) Previous() (Period, bool) {
	switch {
	case p.IsFirst():
		return Period{}, false
	case p.Month > 1:
		return Period{Quarter: p.Quarter, Month: p.Month - 1}, true
	default:
		return Period{Quarter: p.Quarter - 1, Month: MonthsPerQuarter}, true
	}
}

// Valid reports whether p lies within the worksheet.
func (p Period) Valid() bool {
	return p.Quarter >= 1 && p.Quarter <= Quarters && p.Month >= 1 && p.Month <= MonthsPerQuarter
}

// String renders the period label used on the printed worksheet.
func (p Period) String() string {
	return fmt.Sprintf("Q%d Month %d", p.Quarter, p.Month)
}

// ParseKey splits a ledger key into its period and suffix.
func ParseKey(key string) (Period, string, bool) {
	parts := strings.SplitN(key, "_", 3)
	if len(parts) != 3 || !strings.HasPrefix(parts[0], "q") || !strings.HasPrefix(parts[1], "month") {
		return Period{}, "", false
	}
	q, err := strconv.Atoi(strings.TrimPrefix(parts[0], "q"))
	if err != nil {
		return Period{}, "", false
	}
	m, err := strconv.Atoi(strings.TrimPrefix(parts[1], "month"))
	if err != nil {
		return Period{}, "", false
	}
	p := Period{Quarter: q, Month: m}
	if !p.Valid() || parts[2] == "" {
		return Period{}, "", false
	}
	return p, parts[2], true
}

// DerivedSuffixes are computed, never typed in.
var DerivedSuffixes = []string{SuffixAge, SuffixDays, SuffixAmountDue, SuffixBalance}

// IsDerivedKey reports whether key names a computed ledger value.
func IsDerivedKey(key string) bool {
	_, suffix, ok := ParseKey(key)
	if !ok {
		return false
	}
	for _, s := range DerivedSuffixes {
		if s == suffix {
			return true
		}
	}
	return false
}
