package ledger

import "github.com/shopspring/decimal"

// TotalPaid sums the amounts of the given payments plus any hypothetical
// extra amounts. The extras let a caller preview the effect of an
// in-flight add or edit before committing it.
func TotalPaid(payments []*Payment, extra ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, payment := range payments {
		total = total.Add(payment.Amount)
	}
	for _, amount := range extra {
		total = total.Add(amount)
	}
	return total
}

// IsFullyPaid reports whether the paid total meets or exceeds the price.
// The comparison is inclusive and exact: overpayment counts as fully
// paid, and no rounding tolerance is applied.
func IsFullyPaid(totalPaid, totalPrice decimal.Decimal) bool {
	return totalPaid.GreaterThanOrEqual(totalPrice)
}
