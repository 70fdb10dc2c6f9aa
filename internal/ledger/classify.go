package ledger

import "strconv"

// Field names a writable monetary column on an account.
type Field string

const (
	// FieldGrossAmount receives ordinary amount assignments.
	FieldGrossAmount Field = "monto_sin_depreciacion"
	// FieldDepreciation receives assignments for accumulated-depreciation accounts.
	FieldDepreciation Field = "depreciacion"
)

// ClassifierConfig carries the domain-specific code sets that drive field
// routing and the depreciation display column. The defaults mirror the
// seeded chart of accounts; tests swap in smaller sets.
type ClassifierConfig struct {
	// DepreciationCodes are the accumulated-depreciation account codes
	// whose amount assignments land in the depreciation column.
	DepreciationCodes []int
	// DepreciationParentID marks the subtree whose members get the
	// gross/depreciable display column.
	DepreciationParentID int64
	// GrossExceptionCodes are accounts outside the DepreciationParentID
	// subtree that still participate in the display column.
	GrossExceptionCodes []string
}

// DefaultClassifierConfig returns the code sets for the seeded catalog:
// the eight depreciable asset classes, the depreciation parent account,
// and the gross fixed-assets pair that sits outside the subtree.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		DepreciationCodes:    []int{11311, 12221, 12231, 12241, 12251, 12261, 12271, 12281},
		DepreciationParentID: 122,
		GrossExceptionCodes:  []string{"1131", "11311"},
	}
}

// Classifier decides which monetary field an amount assignment writes to.
type Classifier struct {
	depreciation map[int]struct{}
}

// NewClassifier builds a Classifier from the configured code set.
func NewClassifier(cfg ClassifierConfig) *Classifier {
	set := make(map[int]struct{}, len(cfg.DepreciationCodes))
	for _, code := range cfg.DepreciationCodes {
		set[code] = struct{}{}
	}
	return &Classifier{depreciation: set}
}

// Classify returns the field an assignment for the given account code
// should be written to. Codes outside the depreciation allow-list,
// including non-numeric ones, route to the gross column.
func (c *Classifier) Classify(code string) Field {
	n, err := strconv.Atoi(code)
	if err != nil {
		return FieldGrossAmount
	}
	if _, ok := c.depreciation[n]; ok {
		return FieldDepreciation
	}
	return FieldGrossAmount
}
