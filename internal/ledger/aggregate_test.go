package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
)

func amt(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

func account(code, kind, group, subgroup string, amount decimal.NullDecimal) Account {
	return Account{Code: code, Name: "Cuenta " + code, Type: kind, Group: group, Subgroup: subgroup, Amount: amount}
}

func TestAggregateThreeLevelRollup(t *testing.T) {
	accounts := []Account{
		account("1111", TypeAsset, "Activo Corriente", "Efectivo", amt(100)),
		account("1112", TypeAsset, "Activo Corriente", "Efectivo", amt(50)),
		account("1121", TypeAsset, "Activo Corriente", "", amt(20)),
		account("211", TypeLiability, "Pasivo Corriente", "", amt(120)),
		account("311", TypeEquity, "", "", amt(50)),
	}

	totals := Aggregate(accounts)

	asset := totals.Type(TypeAsset)
	if asset == nil {
		t.Fatalf("expected Activo node")
	}
	if got := asset.Total; !got.Equal(decimal.NewFromInt(170)) {
		t.Fatalf("expected Activo total 170, got %s", got)
	}
	if len(asset.Accounts) != 3 {
		t.Fatalf("expected 3 accounts in Activo flat list, got %d", len(asset.Accounts))
	}

	group := asset.Group("Activo Corriente")
	if group == nil {
		t.Fatalf("expected Activo Corriente group")
	}
	if got := group.Total; !got.Equal(decimal.NewFromInt(170)) {
		t.Fatalf("expected group total 170, got %s", got)
	}
	if len(group.Accounts) != 1 {
		t.Fatalf("expected 1 direct account in group, got %d", len(group.Accounts))
	}

	sub := group.Subgroup("Efectivo")
	if sub == nil {
		t.Fatalf("expected Efectivo subgroup")
	}
	if got := sub.Total; !got.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected subgroup total 150, got %s", got)
	}
	if len(sub.Accounts) != 2 {
		t.Fatalf("expected 2 accounts in subgroup, got %d", len(sub.Accounts))
	}
}

func TestAggregateSubgroupedAccountLeavesGroupDirectList(t *testing.T) {
	accounts := []Account{
		account("1111", TypeAsset, "Activo Corriente", "Efectivo", amt(100)),
	}
	totals := Aggregate(accounts)
	group := totals.Type(TypeAsset).Group("Activo Corriente")
	if len(group.Accounts) != 0 {
		t.Fatalf("subgrouped account must not sit in the group direct list, got %d", len(group.Accounts))
	}
	if !group.Total.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected group total 100, got %s", group.Total)
	}
}

func TestAggregateNullAmountsCountAsZero(t *testing.T) {
	accounts := []Account{
		account("111", TypeAsset, "Activo Corriente", "", decimal.NullDecimal{}),
		account("112", TypeAsset, "Activo Corriente", "", amt(40)),
	}
	totals := Aggregate(accounts)
	if got := totals.TypeTotal(TypeAsset); !got.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("expected total 40 with null coerced to zero, got %s", got)
	}
	if n := len(totals.Type(TypeAsset).Accounts); n != 2 {
		t.Fatalf("null-amount account must still be listed, got %d accounts", n)
	}
}

func TestAggregateSkipsUntypedAccounts(t *testing.T) {
	accounts := []Account{
		account("999", "", "Huérfanos", "", amt(10)),
		account("111", TypeAsset, "", "", amt(5)),
	}
	totals := Aggregate(accounts)
	if len(totals.Types) != 1 {
		t.Fatalf("expected one type node, got %d", len(totals.Types))
	}
	if got := totals.TypeTotal(TypeAsset); !got.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected total 5, got %s", got)
	}
}

func TestAggregateSubgroupWithoutGroupCountsInTypeOnly(t *testing.T) {
	accounts := []Account{
		account("113", TypeAsset, "", "Suelto", amt(30)),
	}
	totals := Aggregate(accounts)
	asset := totals.Type(TypeAsset)
	if len(asset.Groups) != 0 {
		t.Fatalf("expected no group nodes, got %d", len(asset.Groups))
	}
	if !asset.Total.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected type total 30, got %s", asset.Total)
	}
}

func TestAggregateTypeTotalIndependentOfGroups(t *testing.T) {
	// Ungrouped account contributes to the type total even though no
	// group rollup sees it.
	accounts := []Account{
		account("111", TypeAsset, "Activo Corriente", "", amt(70)),
		account("114", TypeAsset, "", "", amt(30)),
	}
	totals := Aggregate(accounts)
	asset := totals.Type(TypeAsset)
	if !asset.Total.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected type total 100, got %s", asset.Total)
	}
	if !asset.Group("Activo Corriente").Total.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("expected group total 70, got %s", asset.Group("Activo Corriente").Total)
	}
}

func TestAggregateKeepsFirstSeenOrder(t *testing.T) {
	accounts := []Account{
		account("211", TypeLiability, "Pasivo Corriente", "", amt(1)),
		account("111", TypeAsset, "Activo Corriente", "", amt(1)),
		account("212", TypeLiability, "Pasivo No Corriente", "", amt(1)),
	}
	totals := Aggregate(accounts)
	if totals.Types[0].Name != TypeLiability || totals.Types[1].Name != TypeAsset {
		t.Fatalf("types must keep first-seen order, got %s then %s", totals.Types[0].Name, totals.Types[1].Name)
	}
	groups := totals.Type(TypeLiability).Groups
	if groups[0].Name != "Pasivo Corriente" || groups[1].Name != "Pasivo No Corriente" {
		t.Fatalf("groups must keep first-seen order, got %s then %s", groups[0].Name, groups[1].Name)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	accounts := []Account{
		account("111", TypeAsset, "Activo Corriente", "Efectivo", amt(25)),
		account("211", TypeLiability, "Pasivo Corriente", "", amt(25)),
	}
	first := Aggregate(accounts)
	second := Aggregate(accounts)
	if !first.TypeTotal(TypeAsset).Equal(second.TypeTotal(TypeAsset)) {
		t.Fatalf("repeated aggregation changed the Activo total")
	}
	if !first.TypeTotal(TypeLiability).Equal(second.TypeTotal(TypeLiability)) {
		t.Fatalf("repeated aggregation changed the Pasivo total")
	}
}

func TestIsBalanced(t *testing.T) {
	balanced := Aggregate([]Account{
		account("111", TypeAsset, "", "", amt(1000)),
		account("211", TypeLiability, "", "", amt(600)),
		account("311", TypeEquity, "", "", amt(400)),
	})
	if !balanced.IsBalanced() {
		t.Fatalf("expected 1000 = 600 + 400 to balance")
	}

	unbalanced := Aggregate([]Account{
		account("111", TypeAsset, "", "", amt(1000)),
		account("211", TypeLiability, "", "", amt(600)),
		account("311", TypeEquity, "", "", amt(399)),
	})
	if unbalanced.IsBalanced() {
		t.Fatalf("expected 1000 != 600 + 399 to not balance")
	}
}

func TestIsBalancedMissingTypesTreatedAsZero(t *testing.T) {
	totals := Aggregate(nil)
	if !totals.IsBalanced() {
		t.Fatalf("empty catalog balances at zero")
	}
	assetsOnly := Aggregate([]Account{account("111", TypeAsset, "", "", amt(1))})
	if assetsOnly.IsBalanced() {
		t.Fatalf("assets with no counterpart must not balance")
	}
}
