package allowance

import (
	"github.com/goliatone/go-fosterdocs/pkg/datecalc"
	"github.com/goliatone/go-fosterdocs/pkg/document"
)

// OnStartDateChange handles an edit to a period's start date: the end date
// snaps to the last day of that month and every derived value is rebuilt.
func OnStartDateChange(fields document.Fields, p Period, schedule Schedule) {
	if start, ok := datecalc.Parse(fields.Text(p.Key(SuffixStartDate))); ok {
		fields.Set(p.Key(SuffixEndDate), datecalc.FormatISO(datecalc.EndOfMonth(start)))
	} else {
		fields.Delete(p.Key(SuffixEndDate))
	}
	Recalculate(fields, schedule)
}

// Recalculate rebuilds age, days, amount due and balance for every period.
// Missing end dates are repaired from the start date. Periods without a
// start date have their derived values cleared.
func Recalculate(fields document.Fields, schedule Schedule) {
	dob, hasDOB := datecalc.Parse(fields.Text(KeyDateOfBirth))

	for _, p := range Periods() {
		start, ok := datecalc.Parse(fields.Text(p.Key(SuffixStartDate)))
		if !ok {
			for _, suffix := range DerivedSuffixes {
				fields.Delete(p.Key(suffix))
			}
			continue
		}

		end, ok := datecalc.Parse(fields.Text(p.Key(SuffixEndDate)))
		if !ok {
			end = datecalc.EndOfMonth(start)
			fields.Set(p.Key(SuffixEndDate), datecalc.FormatISO(end))
		}

		age := -1
		if hasDOB {
			age = datecalc.AgeAsOf(dob, end)
			fields.Set(p.Key(SuffixAge), age)
		} else {
			fields.Delete(p.Key(SuffixAge))
		}

		days := datecalc.PeriodDays(start, end)
		fields.Set(p.Key(SuffixDays), days)

		due := datecalc.RoundCents(schedule.AmountDue(p, age, days))
		fields.Set(p.Key(SuffixAmountDue), due)

		previous := 0.0
		if prev, ok := p.Previous(); ok {
			previous = fields.Float(prev.Key(SuffixBalance))
		}
		spent := fields.Float(p.Key(SuffixAmountSpent))
		fields.Set(p.Key(SuffixBalance), datecalc.RoundCents(due-spent+previous))
	}
}

// Totals sums one quarter.
type Totals struct {
	Due     float64
	Spent   float64
	Balance float64
}

// QuarterTotals sums due and spent for quarter q and reports its closing
// balance (the last period in the quarter that has one).
func QuarterTotals(fields document.Fields, q int) Totals {
	var t Totals
	for m := 1; m <= MonthsPerQuarter; m++ {
		p := Period{Quarter: q, Month: m}
		t.Due += fields.Float(p.Key(SuffixAmountDue))
		t.Spent += fields.Float(p.Key(SuffixAmountSpent))
		if fields.Has(p.Key(SuffixBalance)) {
			t.Balance = fields.Float(p.Key(SuffixBalance))
		}
	}
	t.Due = datecalc.RoundCents(t.Due)
	t.Spent = datecalc.RoundCents(t.Spent)
	return t
}
