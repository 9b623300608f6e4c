package services

import "sort"

// CatalogRow is one price list entry.
type CatalogRow struct {
	Code  string
	Price float64
}

// ProjectRow is one quantity takeoff ("metrados") entry.
type ProjectRow struct {
	System      string
	Code        string
	Description string
	UOM         string
	Qty         float64
}

// BuildInitialTable merges the takeoff against the price list and returns
// the initial quotation rows.
//
// Takeoff rows are grouped by (system, code, description, uom) with their
// quantities summed, so repeated bill-of-material entries for the same
// material collapse into one line. Prices are looked up by normalized
// code; a code missing from the price list yields price 0 rather than a
// dropped row, so unpriced items stay visible to the operator. The result
// is sorted by (system, description) ascending, ties keeping takeoff
// order, and numbered 1..N.
func BuildInitialTable(catalog []CatalogRow, project []ProjectRow) []LineItem {
	prices := make(map[string]float64, len(catalog))
	for _, c := range catalog {
		code := NormalizeCode(c.Code)
		if _, seen := prices[code]; !seen {
			prices[code] = c.Price
		}
	}

	type groupKey struct {
		system, code, description, uom string
	}
	grouped := make(map[groupKey]*LineItem, len(project))
	var order []groupKey

	for _, p := range project {
		key := groupKey{
			system:      p.System,
			code:        NormalizeCode(p.Code),
			description: p.Description,
			uom:         p.UOM,
		}
		if it, ok := grouped[key]; ok {
			it.Qty += p.Qty
			continue
		}
		grouped[key] = &LineItem{
			System:      p.System,
			Code:        key.code,
			Description: p.Description,
			UOM:         p.UOM,
			Qty:         p.Qty,
		}
		order = append(order, key)
	}

	items := make([]LineItem, 0, len(order))
	for _, key := range order {
		it := grouped[key]
		it.UnitPrice = prices[it.Code]
		it.Total = it.Qty * it.UnitPrice
		items = append(items, *it)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].System != items[j].System {
			return items[i].System < items[j].System
		}
		return items[i].Description < items[j].Description
	})
	for i := range items {
		items[i].Item = i + 1
	}
	return items
}
