package allowance

import (
	"fmt"

	"github.com/goliatone/go-fosterdocs/pkg/datecalc"
	"github.com/goliatone/go-fosterdocs/pkg/document"
)

// KeyOpeningBalance seeds the receipt log running balance.
const KeyOpeningBalance = "openingBalance"

// ReceiptKey builds keys such as "receipt3Amount".
func ReceiptKey(n int, suffix string) string {
	return fmt.Sprintf("receipt%d%s", n, suffix)
}

// RecalculateReceipts rebuilds the running balance of a receipt log with
// rows entries. Rows without an amount carry no balance.
func RecalculateReceipts(fields document.Fields, rows int) {
	balance := fields.Float(KeyOpeningBalance)
	for n := 1; n <= rows; n++ {
		if !fields.Has(ReceiptKey(n, "Amount")) {
			fields.Delete(ReceiptKey(n, "Balance"))
			continue
		}
		balance = datecalc.RoundCents(balance - fields.Float(ReceiptKey(n, "Amount")))
		fields.Set(ReceiptKey(n, "Balance"), balance)
	}
}
