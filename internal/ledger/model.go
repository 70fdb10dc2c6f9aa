package ledger

import "github.com/shopspring/decimal"

// Account types as stored in the catalog. The values are the localized
// labels the seed data and the original reports use.
const (
	TypeAsset     = "Activo"
	TypeLiability = "Pasivo"
	TypeEquity    = "Patrimonio Neto"
)

// Account models one chart-of-accounts line ("cuenta").
//
// Amount is the net figure and the only value that ever enters a rollup
// total. AmountWithoutDepreciation and Depreciation hold the gross and
// accumulated-depreciation components for accounts in the depreciation
// subtree; they feed the display column only.
type Account struct {
	ID                        int64               `json:"id"`
	Code                      string              `json:"codigo"`
	Name                      string              `json:"nombre"`
	ParentID                  *int64              `json:"parent_id"`
	Type                      string              `json:"tipo"`
	Group                     string              `json:"grupo,omitempty"`
	Subgroup                  string              `json:"subgrupo,omitempty"`
	Amount                    decimal.NullDecimal `json:"monto"`
	AmountWithoutDepreciation decimal.NullDecimal `json:"montoSinDepreciacion"`
	Depreciation              decimal.NullDecimal `json:"depreciacion"`
}

// AmountOrZero returns the net amount with nulls coerced to zero.
func (a Account) AmountOrZero() decimal.Decimal {
	if !a.Amount.Valid {
		return decimal.Zero
	}
	return a.Amount.Decimal
}

// CatalogEntry is the slim account projection for the plain catalog listing.
type CatalogEntry struct {
	Code string `json:"codigo"`
	Name string `json:"nombre"`
	Type string `json:"tipo"`
}

// Catalog groups catalog entries by account type.
type Catalog struct {
	Assets      []CatalogEntry `json:"Activo"`
	Liabilities []CatalogEntry `json:"Pasivo"`
	Equity      []CatalogEntry `json:"PatrimonioNeto"`
}
