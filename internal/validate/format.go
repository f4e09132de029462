package validate

import (
	"fmt"
	"time"
)

// FormatCurrency renders an amount as a dollar string with two
// fractional digits, e.g. "$1234.56". Negative amounts keep the sign
// in front of the dollar symbol.
func FormatCurrency(amount float64) string {
	if amount < 0 {
		return fmt.Sprintf("-$%.2f", -amount)
	}
	return fmt.Sprintf("$%.2f", amount)
}

// FormatDate renders a timestamp the way the transaction list displays
// it, e.g. "Jan 2, 2006".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
