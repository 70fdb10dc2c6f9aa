package ledger

import "github.com/shopspring/decimal"

// GroupedTotals is the three-level rollup tree produced by Aggregate.
// Types, groups, and subgroups keep the order they were first seen in the
// input; when the account source is sorted by code that coincides with
// code order.
type GroupedTotals struct {
	Types []*TypeTotals `json:"tipos"`
}

// TypeTotals aggregates every account of one type. Accounts holds the full
// flat list for the type regardless of group membership, and Total is the
// sum over that list — independent of the group rollups.
type TypeTotals struct {
	Name     string          `json:"tipo"`
	Total    decimal.Decimal `json:"total"`
	Accounts []Account       `json:"cuentas"`
	Groups   []*GroupTotals  `json:"grupos"`
}

// GroupTotals aggregates one group under a type. Accounts holds only the
// direct, subgroup-less accounts; Total covers those plus every subgroup
// total.
type GroupTotals struct {
	Name      string            `json:"grupo"`
	Total     decimal.Decimal   `json:"total"`
	Accounts  []Account         `json:"cuentas"`
	Subgroups []*SubgroupTotals `json:"subgrupos"`
}

// SubgroupTotals aggregates the accounts placed directly in one subgroup.
type SubgroupTotals struct {
	Name     string          `json:"subgrupo"`
	Total    decimal.Decimal `json:"total"`
	Accounts []Account       `json:"cuentas"`
}

// Type returns the totals node for the given type name, or nil.
func (g GroupedTotals) Type(name string) *TypeTotals {
	for _, t := range g.Types {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// TypeTotal returns the total for the given type, zero when absent.
func (g GroupedTotals) TypeTotal(name string) decimal.Decimal {
	if t := g.Type(name); t != nil {
		return t.Total
	}
	return decimal.Zero
}

// IsBalanced reports whether the accounting identity holds: the Activo
// total equals the Pasivo total plus the Patrimonio Neto total. The
// comparison is exact; amounts are decimals, so no rounding tolerance is
// needed.
func (g GroupedTotals) IsBalanced() bool {
	return g.TypeTotal(TypeAsset).Equal(g.TypeTotal(TypeLiability).Add(g.TypeTotal(TypeEquity)))
}

// Group returns the group node with the given name, or nil.
func (t *TypeTotals) Group(name string) *GroupTotals {
	for _, gr := range t.Groups {
		if gr.Name == name {
			return gr
		}
	}
	return nil
}

// Subgroup returns the subgroup node with the given name, or nil.
func (gr *GroupTotals) Subgroup(name string) *SubgroupTotals {
	for _, sg := range gr.Subgroups {
		if sg.Name == name {
			return sg
		}
	}
	return nil
}

// Aggregate rolls a flat account list up into subgroup, group, and type
// totals. It never fails: untyped accounts are skipped and null amounts
// count as zero.
//
// Placement rules:
//   - every typed account joins its type's flat list;
//   - an account with a group but no subgroup joins the group's direct list;
//   - an account with both joins the subgroup's list instead;
//   - an account with a subgroup but no group is treated as ungrouped
//     (counted in the type total only).
//
// Group totals are the direct accounts plus all subgroup totals. Type totals
// are computed over the flat list, not by summing group totals; the two
// agree only when the grouping partitions the type exhaustively.
func Aggregate(accounts []Account) GroupedTotals {
	var out GroupedTotals
	typeIdx := make(map[string]*TypeTotals)
	groupIdx := make(map[string]map[string]*GroupTotals)
	subIdx := make(map[*GroupTotals]map[string]*SubgroupTotals)

	for _, acc := range accounts {
		if acc.Type == "" {
			continue
		}
		amount := acc.AmountOrZero()

		t := typeIdx[acc.Type]
		if t == nil {
			t = &TypeTotals{Name: acc.Type}
			typeIdx[acc.Type] = t
			groupIdx[acc.Type] = make(map[string]*GroupTotals)
			out.Types = append(out.Types, t)
		}
		t.Accounts = append(t.Accounts, acc)
		t.Total = t.Total.Add(amount)

		if acc.Group == "" {
			continue
		}
		gr := groupIdx[acc.Type][acc.Group]
		if gr == nil {
			gr = &GroupTotals{Name: acc.Group}
			groupIdx[acc.Type][acc.Group] = gr
			subIdx[gr] = make(map[string]*SubgroupTotals)
			t.Groups = append(t.Groups, gr)
		}

		if acc.Subgroup == "" {
			gr.Accounts = append(gr.Accounts, acc)
			gr.Total = gr.Total.Add(amount)
			continue
		}
		sg := subIdx[gr][acc.Subgroup]
		if sg == nil {
			sg = &SubgroupTotals{Name: acc.Subgroup}
			subIdx[gr][acc.Subgroup] = sg
			gr.Subgroups = append(gr.Subgroups, sg)
		}
		sg.Accounts = append(sg.Accounts, acc)
		sg.Total = sg.Total.Add(amount)
		gr.Total = gr.Total.Add(amount)
	}

	return out
}
