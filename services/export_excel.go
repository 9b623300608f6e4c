package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel creates the budget workbook: a "Resumen" sheet with the
// per-system subtotals and financial block, and a "Detalle" sheet with
// the full line-item table. It returns the file contents as bytes.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const (
		summarySheet = "Resumen"
		detailSheet  = "Detalle"
	)

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, summarySheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	if _, err := f.NewSheet(detailSheet); err != nil {
		return nil, fmt.Errorf("create detail sheet: %w", err)
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: "#2E7D32"},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 10},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 10},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#2E7D32"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	cellStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create cell style: %w", err)
	}

	totalLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create total label style: %w", err)
	}

	totalValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create total value style: %w", err)
	}

	// ── Resumen sheet ───────────────────────────────────────────────────

	f.SetColWidth(summarySheet, "A", "A", 6)
	f.SetColWidth(summarySheet, "B", "B", 55)
	f.SetColWidth(summarySheet, "C", "C", 18)

	f.MergeCell(summarySheet, "A1", "C1")
	f.SetCellValue(summarySheet, "A1", sanitizeExcelCell(data.Company.Name))
	f.SetCellStyle(summarySheet, "A1", "C1", titleStyle)

	f.MergeCell(summarySheet, "A2", "C2")
	f.SetCellValue(summarySheet, "A2", sanitizeExcelCell(data.Info.ProjectName))
	f.SetCellStyle(summarySheet, "A2", "C2", subtitleStyle)

	f.MergeCell(summarySheet, "A3", "C3")
	f.SetCellValue(summarySheet, "A3", fmt.Sprintf("Documento: %s    Cliente: %s    Fecha: %s",
		sanitizeExcelCell(data.Info.Number), sanitizeExcelCell(data.Info.ClientName), data.Info.CreatedDate))
	f.SetCellStyle(summarySheet, "A3", "C3", subtitleStyle)

	summaryHeaders := []string{"N°", "Sistema / Partida", "Monto ($)"}
	for i, h := range summaryHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 5)
		f.SetCellValue(summarySheet, cell, h)
	}
	f.SetCellStyle(summarySheet, "A5", "C5", headerStyle)

	rowNum := 6
	for i, sub := range data.Totals.Systems {
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", rowNum), i+1)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", rowNum), sanitizeExcelCell(sub.System))
		f.SetCellValue(summarySheet, fmt.Sprintf("C%d", rowNum), sub.Subtotal)
		f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("C%d", rowNum), cellStyle)
		rowNum++
	}

	rowNum++
	financial := []struct {
		label string
		value float64
	}{
		{"TOTAL NETO (SIN IGV):", data.Totals.Net},
		{fmt.Sprintf("IGV (%.0f%%):", taxPercent(data.Totals)), data.Totals.Tax},
		{"VALOR VENTA TOTAL:", data.Totals.Gross},
		{fmt.Sprintf("COSTO POR HECTÁREA (%s Ha):", FormatQty(data.Info.AreaHa)), data.Totals.CostPerHa},
	}
	for _, line := range financial {
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", rowNum), line.label)
		f.SetCellStyle(summarySheet, fmt.Sprintf("B%d", rowNum), fmt.Sprintf("B%d", rowNum), totalLabelStyle)
		f.SetCellValue(summarySheet, fmt.Sprintf("C%d", rowNum), line.value)
		f.SetCellStyle(summarySheet, fmt.Sprintf("C%d", rowNum), fmt.Sprintf("C%d", rowNum), totalValueStyle)
		rowNum++
	}

	// ── Detalle sheet ───────────────────────────────────────────────────

	detailCols := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	widths := []float64{6, 28, 14, 50, 8, 12, 14, 14}
	for i, c := range detailCols {
		f.SetColWidth(detailSheet, c, c, widths[i])
	}

	detailHeaders := []string{"N°", "Sistema", "Cód.", "Descripción", "Und.", "Cantidad", "P.Unit ($)", "Total ($)"}
	for i, h := range detailHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(detailSheet, cell, h)
	}
	f.SetCellStyle(detailSheet, "A1", "H1", headerStyle)

	rowNum = 2
	for _, section := range data.Sections {
		for _, it := range section.Rows {
			rowStr := fmt.Sprintf("%d", rowNum)
			f.SetCellValue(detailSheet, "A"+rowStr, it.Item)
			f.SetCellValue(detailSheet, "B"+rowStr, sanitizeExcelCell(it.System))
			f.SetCellValue(detailSheet, "C"+rowStr, sanitizeExcelCell(it.Code))
			f.SetCellValue(detailSheet, "D"+rowStr, sanitizeExcelCell(it.Description))
			f.SetCellValue(detailSheet, "E"+rowStr, sanitizeExcelCell(it.UOM))
			f.SetCellValue(detailSheet, "F"+rowStr, it.Qty)
			f.SetCellValue(detailSheet, "G"+rowStr, it.UnitPrice)
			f.SetCellValue(detailSheet, "H"+rowStr, it.Total)
			f.SetCellStyle(detailSheet, "A"+rowStr, "H"+rowStr, cellStyle)
			rowNum++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous
// leading characters with a single quote. Excel interprets cells starting
// with =, +, -, @, \t or \r as formulas.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders for all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
