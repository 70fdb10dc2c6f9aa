package export

import (
	"encoding/csv"
	"io"

	"github.com/balanza-erp/balanza/internal/ledger"
)

// WriteBalanceCSV serialises the grouped balance to CSV. Account rows keep
// the tree order; each subgroup, group, and type emits its engine total.
func WriteBalanceCSV(w io.Writer, display DisplayFunc, totals ledger.GroupedTotals) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Tipo", "Grupo", "Subgrupo", "Código", "Nombre", "Depreciables", "Monto"}); err != nil {
		return err
	}

	writeAccount := func(t, g, sg string, acc ledger.Account) error {
		return writer.Write([]string{t, g, sg, acc.Code, acc.Name, displayText(display, acc), netText(acc)})
	}

	for _, t := range totals.Types {
		for _, gr := range t.Groups {
			for _, sg := range gr.Subgroups {
				for _, acc := range sg.Accounts {
					if err := writeAccount(t.Name, gr.Name, sg.Name, acc); err != nil {
						return err
					}
				}
				if err := writer.Write([]string{t.Name, gr.Name, sg.Name, "", "Total " + sg.Name, "", formatAmount(sg.Total)}); err != nil {
					return err
				}
			}
			for _, acc := range gr.Accounts {
				if err := writeAccount(t.Name, gr.Name, "", acc); err != nil {
					return err
				}
			}
			if err := writer.Write([]string{t.Name, gr.Name, "", "", "Total " + gr.Name, "", formatAmount(gr.Total)}); err != nil {
				return err
			}
		}
		if err := writer.Write([]string{t.Name, "", "", "", "Total " + t.Name, "", formatAmount(t.Total)}); err != nil {
			return err
		}
	}

	liabilityPlusEquity := totals.TypeTotal(ledger.TypeLiability).Add(totals.TypeTotal(ledger.TypeEquity))
	if err := writer.Write([]string{"", "", "", "", "Total Pasivo + Patrimonio Neto", "", formatAmount(liabilityPlusEquity)}); err != nil {
		return err
	}
	cuadrado := "NO"
	if totals.IsBalanced() {
		cuadrado = "SI"
	}
	if err := writer.Write([]string{"", "", "", "", "Balance cuadrado", "", cuadrado}); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}
