package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/balanza-erp/balanza/internal/ledger"
)

// BuildBalanceXLSX renders the balance as a workbook: a detail sheet with
// the full tree and a summary sheet with the type totals and the balance
// verdict.
func BuildBalanceXLSX(display DisplayFunc, totals ledger.GroupedTotals) ([]byte, error) {
	f := excelize.NewFile()
	detailSheet := "balance"
	summarySheet := "resumen"
	f.SetSheetName("Sheet1", detailSheet)
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("export: new sheet: %w", err)
	}

	headers := []string{"Tipo", "Grupo", "Subgrupo", "Código", "Nombre", "Monto Sin Depreciación", "Monto"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(detailSheet, cell, h)
	}

	row := 2
	setRow := func(values ...any) {
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			_ = f.SetCellValue(detailSheet, cell, v)
		}
		row++
	}
	accountRow := func(t, g, sg string, acc ledger.Account) {
		setRow(t, g, sg, acc.Code, acc.Name, displayText(display, acc), netText(acc))
	}

	for _, t := range totals.Types {
		for _, gr := range t.Groups {
			for _, sg := range gr.Subgroups {
				for _, acc := range sg.Accounts {
					accountRow(t.Name, gr.Name, sg.Name, acc)
				}
				setRow(t.Name, gr.Name, sg.Name, "", "Total "+sg.Name, "", formatAmount(sg.Total))
			}
			for _, acc := range gr.Accounts {
				accountRow(t.Name, gr.Name, "", acc)
			}
			setRow(t.Name, gr.Name, "", "", "Total "+gr.Name, "", formatAmount(gr.Total))
		}
		setRow(t.Name, "", "", "", "Total "+t.Name, "", formatAmount(t.Total))
	}

	liabilityPlusEquity := totals.TypeTotal(ledger.TypeLiability).Add(totals.TypeTotal(ledger.TypeEquity))
	_ = f.SetCellValue(summarySheet, "A1", "Resumen del balance")
	_ = f.SetCellValue(summarySheet, "A3", "Total Activo")
	_ = f.SetCellValue(summarySheet, "B3", formatAmount(totals.TypeTotal(ledger.TypeAsset)))
	_ = f.SetCellValue(summarySheet, "A4", "Total Pasivo")
	_ = f.SetCellValue(summarySheet, "B4", formatAmount(totals.TypeTotal(ledger.TypeLiability)))
	_ = f.SetCellValue(summarySheet, "A5", "Total Patrimonio Neto")
	_ = f.SetCellValue(summarySheet, "B5", formatAmount(totals.TypeTotal(ledger.TypeEquity)))
	_ = f.SetCellValue(summarySheet, "A6", "Total Pasivo + Patrimonio Neto")
	_ = f.SetCellValue(summarySheet, "B6", formatAmount(liabilityPlusEquity))
	_ = f.SetCellValue(summarySheet, "A7", "Cuadrado")
	if totals.IsBalanced() {
		_ = f.SetCellValue(summarySheet, "B7", "SI")
	} else {
		_ = f.SetCellValue(summarySheet, "B7", "NO")
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export: write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
