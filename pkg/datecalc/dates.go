// Package datecalc collects the calendar arithmetic the paperwork templates
// share: long-form date display, month ends, ages and period day counts.
package datecalc

import (
	"math"
	"strings"
	"time"
)

// LongLayout renders dates the way the legal templates print them.
const LongLayout = "January 2, 2006"

// ISOLayout is the storage format for date fields.
const ISOLayout = "2006-01-02"

var parseLayouts = []string{
	ISOLayout,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"01/02/2006",
	"1/2/2006",
	LongLayout,
	"Jan 2, 2006",
}

// Parse reads a stored date value. Only the calendar date is kept; the
// result is always at midnight UTC so comparisons ignore time zones.
func Parse(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return Date(t.Year(), t.Month(), t.Day()), true
		}
	}
	// timestamps in other offsets/precisions still carry an ISO date prefix
	if len(value) > len(ISOLayout) && value[4] == '-' && value[10] == 'T' {
		if t, err := time.Parse(ISOLayout, value[:len(ISOLayout)]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date builds a midnight UTC date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// FormatLong renders value as "January 5, 2024". Absent or invalid input
// renders as the empty string.
func FormatLong(value string) string {
	t, ok := Parse(value)
	if !ok {
		return ""
	}
	return t.Format(LongLayout)
}

// FormatISO renders t in storage form, or "" for the zero time.
func FormatISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(ISOLayout)
}

// EndOfMonth returns the last calendar day of t's month.
func EndOfMonth(t time.Time) time.Time {
	first := Date(t.Year(), t.Month(), 1)
	return first.AddDate(0, 1, -1)
}

// IsLastDayOfMonth reports whether t falls on its month's final day.
func IsLastDayOfMonth(t time.Time) bool {
	return t.Day() == EndOfMonth(t).Day()
}

// AgeAsOf returns whole years between dob and asOf. The count drops by one
// when asOf's month/day precedes the birth month/day. Negative ages clamp to
// zero.
func AgeAsOf(dob, asOf time.Time) int {
	if dob.IsZero() || asOf.IsZero() {
		return 0
	}
	age := asOf.Year() - dob.Year()
	if asOf.Month() < dob.Month() || (asOf.Month() == dob.Month() && asOf.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// PeriodDays counts the days between start and end, adding one when end is
// the last day of its month. The adjustment mirrors the paper allowance
// worksheet: a period running to month end counts both boundary days.
func PeriodDays(start, end time.Time) int {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return 0
	}
	days := int(end.Sub(start).Hours() / 24)
	if IsLastDayOfMonth(end) {
		days++
	}
	return days
}

// RoundCents rounds v to two decimals, half away from zero.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
