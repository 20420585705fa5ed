package templates

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-fosterdocs/pkg/allowance"
	"github.com/goliatone/go-fosterdocs/pkg/datecalc"
	"github.com/goliatone/go-fosterdocs/pkg/document"
	"github.com/goliatone/go-fosterdocs/pkg/layout"
	"github.com/goliatone/go-fosterdocs/pkg/model"
)

// spendingReceiptRows is the length of the Spending Allowance receipt log.
const spendingReceiptRows = 10

type allowanceFields struct {
	Name             document.Text `json:"name"`
	DateOfBirth      document.Text `json:"dateOfBirth"`
	CaseNumber       document.Text `json:"caseNumber"`
	FosterParentName document.Text `json:"fosterParentName"`
	FiscalYear       document.Text `json:"fiscalYear"`
	OpeningBalance   document.Text `json:"openingBalance"`
}

// worksheet is the quarterly allowance template shared by the clothing and
// spending forms. They differ only in pricing and the receipt log.
type worksheet struct {
	base[allowanceFields]
	heading  string
	schedule allowance.Schedule
	receipts int
}

// NewCAForm builds the clothing allowance worksheet, priced by age band.
func NewCAForm() Template {
	return newWorksheet(NameCAForm, "Clothing Allowance", allowance.ClothingSchedule, 0)
}

// NewSpendingAllowance builds the spending allowance worksheet with its
// receipt log.
func NewSpendingAllowance() Template {
	return newWorksheet(NameSpendingAllowance, "Spending Allowance", allowance.SpendingSchedule, spendingReceiptRows)
}

func newWorksheet(name, heading string, schedule allowance.Schedule, receipts int) worksheet {
	return worksheet{
		base: base[allowanceFields]{
			name:  name,
			title: heading + " Worksheet",
			specs: worksheetSpecs(receipts),
		},
		heading:  heading,
		schedule: schedule,
		receipts: receipts,
	}
}

func worksheetSpecs(receipts int) []model.FieldSpec {
	out := specs(childSpecs(), []model.FieldSpec{
		{Key: "caseNumber", Label: "Case Number", Section: "Child", Policy: model.PolicyUpstream},
		{Key: "fosterParentName", Label: "Resource Parent", Section: "Child", Policy: model.PolicyUpstream},
		{Key: "fiscalYear", Label: "Fiscal Year", Section: "Child"},
	})
	for _, p := range allowance.Periods() {
		section := fmt.Sprintf("Quarter %d", p.Quarter)
		label := func(s string) string { return fmt.Sprintf("Month %d %s", p.Month, s) }
		out = append(out,
			model.FieldSpec{Key: p.Key(allowance.SuffixStartDate), Label: label("Start"), Section: section, Type: model.FieldTypeDate},
			model.FieldSpec{Key: p.Key(allowance.SuffixEndDate), Label: label("End"), Section: section, Type: model.FieldTypeDate},
			model.FieldSpec{Key: p.Key(allowance.SuffixAge), Label: label("Age"), Section: section, Type: model.FieldTypeNumber, Policy: model.PolicyDerived},
			model.FieldSpec{Key: p.Key(allowance.SuffixDays), Label: label("Days"), Section: section, Type: model.FieldTypeNumber, Policy: model.PolicyDerived},
			model.FieldSpec{Key: p.Key(allowance.SuffixAmountDue), Label: label("Amount Due"), Section: section, Type: model.FieldTypeCurrency, Policy: model.PolicyDerived},
			model.FieldSpec{Key: p.Key(allowance.SuffixAmountSpent), Label: label("Amount Spent"), Section: section, Type: model.FieldTypeCurrency},
			model.FieldSpec{Key: p.Key(allowance.SuffixBalance), Label: label("Balance"), Section: section, Type: model.FieldTypeCurrency, Policy: model.PolicyDerived},
		)
	}
	if receipts > 0 {
		out = append(out, model.FieldSpec{Key: allowance.KeyOpeningBalance, Label: "Opening Balance", Section: "Receipts", Type: model.FieldTypeCurrency})
		for n := 1; n <= receipts; n++ {
			row := strconv.Itoa(n)
			out = append(out,
				model.FieldSpec{Key: allowance.ReceiptKey(n, "Date"), Label: "Receipt " + row + " Date", Section: "Receipts", Type: model.FieldTypeDate},
				model.FieldSpec{Key: allowance.ReceiptKey(n, "Description"), Label: "Receipt " + row + " Description", Section: "Receipts"},
				model.FieldSpec{Key: allowance.ReceiptKey(n, "Amount"), Label: "Receipt " + row + " Amount", Section: "Receipts", Type: model.FieldTypeCurrency},
				model.FieldSpec{Key: allowance.ReceiptKey(n, "Balance"), Label: "Receipt " + row + " Balance", Section: "Receipts", Type: model.FieldTypeCurrency, Policy: model.PolicyDerived},
			)
		}
	}
	return append(out, agencySpecs()...)
}

// Recalculate reacts to one edit. A start date edit snaps that period's end
// date; any other edit rebuilds derived values as they stand.
func (t worksheet) Recalculate(fields document.Fields, changedKey string) {
	if p, suffix, ok := allowance.ParseKey(changedKey); ok && suffix == allowance.SuffixStartDate {
		allowance.OnStartDateChange(fields, p, t.schedule)
	} else {
		allowance.Recalculate(fields, t.schedule)
	}
	if t.receipts > 0 {
		allowance.RecalculateReceipts(fields, t.receipts)
	}
}

// OnLoad repairs stale derived values of a stored record.
func (t worksheet) OnLoad(fields document.Fields) {
	allowance.Recalculate(fields, t.schedule)
	if t.receipts > 0 {
		allowance.RecalculateReceipts(fields, t.receipts)
	}
}

func (t worksheet) View(rec *document.Record, opts ViewOptions) layout.Document {
	f := t.bound(rec)
	fields := rec.Fields

	blocks := []layout.Block{
		layout.Heading(t.heading, 1),
		layout.Fields(
			layout.Line("Child's Name", f.Name.String()),
			layout.Line("Date of Birth", longDate(f.DateOfBirth)),
			layout.Line("Case Number", f.CaseNumber.String()),
			layout.Line("Resource Parent", f.FosterParentName.String()),
			layout.Line("Fiscal Year", f.FiscalYear.String()),
		),
	}

	columns := []string{"Month", "Start", "End", "Age", "Days", "Amount Due", "Amount Spent", "Balance"}
	for q := 1; q <= allowance.Quarters; q++ {
		rows := make([][]string, 0, allowance.MonthsPerQuarter+1)
		for m := 1; m <= allowance.MonthsPerQuarter; m++ {
			p := allowance.Period{Quarter: q, Month: m}
			rows = append(rows, []string{
				strconv.Itoa(m),
				datecalc.FormatLong(fields.Text(p.Key(allowance.SuffixStartDate))),
				datecalc.FormatLong(fields.Text(p.Key(allowance.SuffixEndDate))),
				fields.Text(p.Key(allowance.SuffixAge)),
				fields.Text(p.Key(allowance.SuffixDays)),
				money(document.Text(fields.Text(p.Key(allowance.SuffixAmountDue)))),
				money(document.Text(fields.Text(p.Key(allowance.SuffixAmountSpent)))),
				money(document.Text(fields.Text(p.Key(allowance.SuffixBalance)))),
			})
		}
		totals := allowance.QuarterTotals(fields, q)
		rows = append(rows, []string{"Total", "", "", "", "", moneyValue(totals.Due), moneyValue(totals.Spent), moneyValue(totals.Balance)})
		blocks = append(blocks, layout.Heading(fmt.Sprintf("Quarter %d", q), 2), layout.Table(columns, rows))
	}

	if t.receipts > 0 {
		rows := make([][]string, 0, t.receipts)
		for n := 1; n <= t.receipts; n++ {
			if !fields.Has(allowance.ReceiptKey(n, "Date")) && !fields.Has(allowance.ReceiptKey(n, "Amount")) {
				continue
			}
			rows = append(rows, []string{
				datecalc.FormatLong(fields.Text(allowance.ReceiptKey(n, "Date"))),
				fields.Text(allowance.ReceiptKey(n, "Description")),
				money(document.Text(fields.Text(allowance.ReceiptKey(n, "Amount")))),
				money(document.Text(fields.Text(allowance.ReceiptKey(n, "Balance")))),
			})
		}
		blocks = append(blocks,
			layout.Heading("Receipts", 2),
			layout.Fields(layout.Line("Opening Balance", money(f.OpeningBalance))),
			layout.Table([]string{"Date", "Description", "Amount", "Balance"}, rows),
		)
	}

	blocks = append(blocks, signatureRow(rec, opts,
		[2]string{"resourceMotherSignature", "Resource Parent"},
		[2]string{"caseworkerSignature", "Caseworker"},
	))
	return t.document(rec, opts, blocks...)
}
