package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/balanza-erp/balanza/internal/ledger"
)

// BuildBalancePDF renders the detailed landscape balance report: one table
// row per visible account with the depreciable and net columns, and total
// lines per subgroup, group, and type taken from the engine tree.
func BuildBalancePDF(display DisplayFunc, totals ledger.GroupedTotals, header ReportHeader) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", 14)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	pdf.CellFormat(pageWidth-20, 8, header.Company, "", 1, "C", false, 0, "")
	pdf.CellFormat(pageWidth-20, 8, "Estado de situación financiera", "", 1, "C", false, 0, "")
	pdf.CellFormat(pageWidth-20, 8, fmt.Sprintf("al 31 de diciembre de %s", header.Year), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, t := range totals.Types {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 7, t.Name, "", 1, "L", false, 0, "")

		for _, gr := range t.Groups {
			pdf.SetFont("Arial", "B", 11)
			pdf.CellFormat(0, 6, "  "+gr.Name, "", 1, "L", false, 0, "")

			for _, sg := range gr.Subgroups {
				pdf.SetFont("Arial", "B", 10)
				pdf.CellFormat(0, 6, "    "+sg.Name, "", 1, "L", false, 0, "")
				writeAccountTable(pdf, display, sg.Accounts)
				writeTotalRow(pdf, "Total "+sg.Name, sg.Total)
			}
			if len(gr.Accounts) > 0 {
				writeAccountTable(pdf, display, gr.Accounts)
			}
			writeTotalRow(pdf, "Total "+gr.Name, gr.Total)
		}
		writeTotalRow(pdf, "Total "+t.Name, t.Total)
		pdf.Ln(3)
	}

	writeBalanceFooter(pdf, totals)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("export: render balance pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildBalanceSummaryPDF renders the compact portrait layout: totals only,
// down to subgroup level, with the balance verdict at the bottom.
func BuildBalanceSummaryPDF(totals ledger.GroupedTotals, header ReportHeader) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 14)
	pdf.AddPage()

	pdf.CellFormat(0, 8, header.Company, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, "Estado de situación financiera (resumen)", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("al 31 de diciembre de %s", header.Year), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, t := range totals.Types {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(130, 7, t.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, formatAmount(t.Total), "1", 1, "R", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, gr := range t.Groups {
			pdf.CellFormat(130, 6, "  "+gr.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(50, 6, formatAmount(gr.Total), "1", 1, "R", false, 0, "")
			for _, sg := range gr.Subgroups {
				pdf.CellFormat(130, 6, "      "+sg.Name, "1", 0, "L", false, 0, "")
				pdf.CellFormat(50, 6, formatAmount(sg.Total), "1", 1, "R", false, 0, "")
			}
		}
		pdf.Ln(2)
	}

	writeBalanceFooter(pdf, totals)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("export: render summary pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeAccountTable(pdf *gofpdf.Fpdf, display DisplayFunc, accounts []ledger.Account) {
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(28, 5, "Código", "1", 0, "C", false, 0, "")
	pdf.CellFormat(120, 5, "Nombre", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 5, "Depreciables", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 5, "Neto", "1", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	for _, acc := range accounts {
		if !visible(display, acc) {
			continue
		}
		pdf.CellFormat(28, 5, acc.Code, "1", 0, "L", false, 0, "")
		pdf.CellFormat(120, 5, acc.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 5, displayText(display, acc), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 5, netText(acc), "1", 1, "R", false, 0, "")
	}
}

func writeTotalRow(pdf *gofpdf.Fpdf, label string, total decimal.Decimal) {
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(188, 5, label, "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 5, formatAmount(total), "1", 1, "R", false, 0, "")
}

func writeBalanceFooter(pdf *gofpdf.Fpdf, totals ledger.GroupedTotals) {
	liabilityPlusEquity := totals.TypeTotal(ledger.TypeLiability).Add(totals.TypeTotal(ledger.TypeEquity))
	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total Pasivo + Patrimonio Neto: %s", formatAmount(liabilityPlusEquity)), "", 1, "L", false, 0, "")
	verdict := "El Balance General NO cuadra"
	if totals.IsBalanced() {
		verdict = "El Balance General cuadra"
	}
	pdf.CellFormat(0, 6, verdict, "", 1, "L", false, 0, "")
}
