package services

import "sort"

// CompanyInfo identifies the vendor issuing the quotation, shown in the
// report header.
type CompanyInfo struct {
	Name    string
	Address string
	Website string
}

// QuoteInfo carries the client, project and salesperson fields of one
// quotation.
type QuoteInfo struct {
	Number       string
	ClientName   string
	ClientRUC    string
	DeliverySite string
	ProjectName  string
	AreaHa       float64
	SalesName    string
	SalesPhone   string
	SalesEmail   string
	CreatedDate  string
}

// SystemSection is one report section: all line items of one system plus
// its subtotal. Rows are ordered by total descending for the report; the
// canonical table keeps its own order.
type SystemSection struct {
	System   string
	Rows     []LineItem
	Subtotal float64
}

// ExportData holds everything the PDF and Excel generators need.
type ExportData struct {
	Company  CompanyInfo
	Info     QuoteInfo
	Sections []SystemSection
	Totals   QuoteTotals
}

// BuildExportData assembles report sections from a table snapshot and its
// totals. Sections follow the subtotal order (first-seen system order);
// the snapshot itself is not mutated.
func BuildExportData(company CompanyInfo, info QuoteInfo, items []LineItem, totals QuoteTotals) ExportData {
	sections := make([]SystemSection, 0, len(totals.Systems))
	for _, sub := range totals.Systems {
		var rows []LineItem
		for _, it := range items {
			if it.System == sub.System {
				rows = append(rows, it)
			}
		}
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Total > rows[j].Total
		})
		sections = append(sections, SystemSection{
			System:   sub.System,
			Rows:     rows,
			Subtotal: sub.Subtotal,
		})
	}

	return ExportData{
		Company:  company,
		Info:     info,
		Sections: sections,
		Totals:   totals,
	}
}
