// Package export renders balance views for download. Every writer here is
// a pure consumer of the aggregation engine's output tree; totals are
// copied from it, never recomputed.
package export

import (
	"github.com/shopspring/decimal"

	"github.com/balanza-erp/balanza/internal/ledger"
)

// DisplayFunc derives the gross/depreciable display column for an account.
// The bool reports whether the column applies at all.
type DisplayFunc func(ledger.Account) (decimal.Decimal, bool)

// ReportHeader carries the title fields printed on exported reports.
type ReportHeader struct {
	Company string
	Year    string
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func displayText(display DisplayFunc, acc ledger.Account) string {
	value, ok := display(acc)
	if !ok {
		return ""
	}
	return formatAmount(value)
}

func netText(acc ledger.Account) string {
	net := acc.AmountOrZero()
	if net.IsZero() {
		return ""
	}
	return formatAmount(net)
}

// visible reports whether a detailed layout prints the account row: rows
// carry either a net amount or a depreciable display value.
func visible(display DisplayFunc, acc ledger.Account) bool {
	if !acc.AmountOrZero().IsZero() {
		return true
	}
	_, ok := display(acc)
	return ok
}
