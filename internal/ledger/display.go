package ledger

import "github.com/shopspring/decimal"

// DepreciableDisplay derives the informational gross/depreciable column for
// an account. The column applies only to members of the depreciation
// subtree (parent id match) and the configured exception codes; for those,
// the gross amount wins when positive, then the depreciation amount, else
// the column stays blank. The returned value is display-only and never
// enters a rollup total.
func DepreciableDisplay(cfg ClassifierConfig, acc Account) (decimal.Decimal, bool) {
	if !depreciableEligible(cfg, acc) {
		return decimal.Zero, false
	}
	if acc.AmountWithoutDepreciation.Valid && acc.AmountWithoutDepreciation.Decimal.IsPositive() {
		return acc.AmountWithoutDepreciation.Decimal, true
	}
	if acc.Depreciation.Valid && acc.Depreciation.Decimal.IsPositive() {
		return acc.Depreciation.Decimal, true
	}
	return decimal.Zero, false
}

func depreciableEligible(cfg ClassifierConfig, acc Account) bool {
	if acc.ParentID != nil && *acc.ParentID == cfg.DepreciationParentID {
		return true
	}
	for _, code := range cfg.GrossExceptionCodes {
		if acc.Code == code {
			return true
		}
	}
	return false
}
