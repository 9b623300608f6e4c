package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DataError reports a structural problem in an uploaded file: a required
// column is missing from the named table. Cell-level junk never produces
// a DataError; it degrades to the documented defaults instead.
type DataError struct {
	Table  string
	Column string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("data error: column %q not found in %s", e.Column, e.Table)
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the
// first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return rows[0], rows[1:], nil
}

// parseTable dispatches on the file extension.
func parseTable(file io.Reader, fileName string) ([]string, [][]string, error) {
	lower := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return parseCSV(file)
	case strings.HasSuffix(lower, ".xlsx"):
		return parseExcel(file)
	default:
		return nil, nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
}

// columnIndex locates a column by trimmed header name. "Código" is
// accepted as a synonym for "Codigo"; no other renames are attempted.
func columnIndex(headers []string, name string) int {
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == name {
			return i
		}
		if name == "Codigo" && h == "Código" {
			return i
		}
	}
	return -1
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// cellFloat coerces a numeric cell; blank or junk becomes 0.
func cellFloat(row []string, idx int) float64 {
	raw := strings.ReplaceAll(cellAt(row, idx), ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParsePriceList reads an uploaded price list ("base de precios") and
// returns its catalog rows. The file needs Codigo and Precio columns.
func ParsePriceList(file io.Reader, fileName string) ([]CatalogRow, error) {
	headers, dataRows, err := parseTable(file, fileName)
	if err != nil {
		return nil, err
	}

	codeIdx := columnIndex(headers, "Codigo")
	if codeIdx < 0 {
		return nil, &DataError{Table: "price list", Column: "Codigo"}
	}
	priceIdx := columnIndex(headers, "Precio")
	if priceIdx < 0 {
		return nil, &DataError{Table: "price list", Column: "Precio"}
	}

	rows := make([]CatalogRow, 0, len(dataRows))
	for _, row := range dataRows {
		rows = append(rows, CatalogRow{
			Code:  cellAt(row, codeIdx),
			Price: cellFloat(row, priceIdx),
		})
	}
	return rows, nil
}

// ParseTakeoff reads an uploaded quantity takeoff ("metrados") and returns
// its project rows. The file needs Partida, Codigo, Descripcion, Unidades
// and Cantidad columns.
func ParseTakeoff(file io.Reader, fileName string) ([]ProjectRow, error) {
	headers, dataRows, err := parseTable(file, fileName)
	if err != nil {
		return nil, err
	}

	required := []string{"Partida", "Codigo", "Descripcion", "Unidades", "Cantidad"}
	idx := make(map[string]int, len(required))
	for _, name := range required {
		i := columnIndex(headers, name)
		if i < 0 {
			return nil, &DataError{Table: "takeoff", Column: name}
		}
		idx[name] = i
	}

	rows := make([]ProjectRow, 0, len(dataRows))
	for _, row := range dataRows {
		rows = append(rows, ProjectRow{
			System:      cellAt(row, idx["Partida"]),
			Code:        cellAt(row, idx["Codigo"]),
			Description: cellAt(row, idx["Descripcion"]),
			UOM:         cellAt(row, idx["Unidades"]),
			Qty:         cellFloat(row, idx["Cantidad"]),
		})
	}
	return rows, nil
}
