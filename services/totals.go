package services

// DefaultTaxRate is the Peruvian IGV applied to the net total.
const DefaultTaxRate = 0.18

// SystemSubtotal is the summed total of one system ("partida"). Subtotals
// keep first-seen order so each system maps to one stable report section.
type SystemSubtotal struct {
	System   string  `json:"system"`
	Subtotal float64 `json:"subtotal"`
}

// QuoteTotals holds the financial summary of a quotation.
type QuoteTotals struct {
	Systems   []SystemSubtotal `json:"systems"`
	Net       float64          `json:"net"`
	Tax       float64          `json:"tax"`
	Gross     float64          `json:"gross"`
	CostPerHa float64          `json:"cost_per_ha"`
}

// CalcQuoteTotals computes per-system subtotals, the net total, the tax at
// the given rate, the gross total and the cost per hectare. It is pure:
// identical inputs always produce identical totals. A non-positive area
// yields CostPerHa 0 instead of a division by zero.
func CalcQuoteTotals(items []LineItem, taxRate, areaHa float64) QuoteTotals {
	var totals QuoteTotals
	index := make(map[string]int, 8)

	for _, it := range items {
		i, ok := index[it.System]
		if !ok {
			i = len(totals.Systems)
			index[it.System] = i
			totals.Systems = append(totals.Systems, SystemSubtotal{System: it.System})
		}
		totals.Systems[i].Subtotal += it.Total
		totals.Net += it.Total
	}

	totals.Tax = totals.Net * taxRate
	totals.Gross = totals.Net + totals.Tax
	if areaHa > 0 {
		totals.CostPerHa = totals.Gross / areaHa
	}
	return totals
}
