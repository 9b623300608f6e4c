// Package services holds the quotation engine: code normalization, the
// price-list/takeoff merge, the editable line-item table and its totals,
// plus file import and report export.
package services

import "strings"

// NoCode is the sentinel for items without a catalog code ("sin código").
const NoCode = "S.C"

// noCodeAliases are raw values that all mean "no code". They show up when
// upstream spreadsheets leave the cell blank, write zero, or coerce a
// missing value to text ("nan", "None", "NaT").
var noCodeAliases = map[string]bool{
	"S.C.": true,
	"S.C":  true,
	"SC":   true,
	"0":    true,
	"NAN":  true,
	"NONE": true,
	"":     true,
	"NAT":  true,
}

// NormalizeCode canonicalizes a raw item code so takeoff rows and price
// list rows can be matched. It trims and uppercases, maps the known
// "no code" aliases to NoCode, and strips a trailing ".0" left behind by
// numeric-to-text coercion (e.g. "12.0" -> "12"). It never fails.
func NormalizeCode(raw string) string {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if noCodeAliases[code] {
		return NoCode
	}
	if strings.HasSuffix(code, ".0") {
		return strings.TrimSuffix(code, ".0")
	}
	return code
}
