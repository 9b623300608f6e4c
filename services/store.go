package services

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Default values applied to blank line-item fields during reconciliation.
const (
	DefaultSystem = "NUEVO SISTEMA"
	DefaultUOM    = "Und."
)

// ErrNoData is returned when an operation needs a quotation table but none
// has been built (no merge ran and no snapshot was restored).
var ErrNoData = errors.New("no quotation data loaded")

// LineItem is one priced row of the quotation. Handle is the row's stable
// identity: assigned once, never reused, independent of display order.
// Item is the 1-based display number and is reassigned on every renumber.
// Total is always Qty * UnitPrice; it is never set directly.
type LineItem struct {
	Handle      string  `json:"handle"`
	Item        int     `json:"item"`
	System      string  `json:"system"`
	Code        string  `json:"code"`
	Description string  `json:"description"`
	UOM         string  `json:"uom"`
	Qty         float64 `json:"qty"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// EditedRow is one row as it comes back from the editing view. Numeric
// fields arrive as raw cell text because the operator may have left them
// blank or typed junk; coercion happens inside ApplyEdit. A row with an
// empty Handle is new. Delete marks the row for the checkbox-delete flow.
type EditedRow struct {
	Handle      string `json:"handle"`
	Item        string `json:"item"`
	System      string `json:"system"`
	Code        string `json:"code"`
	Description string `json:"description"`
	UOM         string `json:"uom"`
	Qty         string `json:"qty"`
	UnitPrice   string `json:"unit_price"`
	Delete      bool   `json:"delete"`
}

// Store is the authoritative quotation table for one session. It is not
// safe for concurrent use; the caller serializes access (one operator,
// one action at a time).
type Store struct {
	items    []*LineItem
	byHandle map[string]*LineItem
}

// NewStore builds a store from freshly merged items, assigning a handle to
// every row and normalizing the table (defaults, totals, numbering).
func NewStore(items []LineItem) *Store {
	s := emptyStore(len(items))
	for i := range items {
		it := items[i]
		it.Handle = uuid.NewString()
		s.insert(&it)
	}
	s.normalize()
	return s
}

// RestoreStore rebuilds a store from persisted snapshot rows, keeping the
// stored handles so identity survives a save/load round trip. Rows that
// somehow lost their handle get a fresh one.
func RestoreStore(items []LineItem) *Store {
	s := emptyStore(len(items))
	for i := range items {
		it := items[i]
		if it.Handle == "" || s.byHandle[it.Handle] != nil {
			it.Handle = uuid.NewString()
		}
		s.insert(&it)
	}
	s.normalize()
	return s
}

func emptyStore(capacity int) *Store {
	return &Store{
		items:    make([]*LineItem, 0, capacity),
		byHandle: make(map[string]*LineItem, capacity),
	}
}

func (s *Store) insert(it *LineItem) {
	s.items = append(s.items, it)
	s.byHandle[it.Handle] = it
}

// Len reports the current number of line items.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Snapshot returns copies of the current items in display order. Mutating
// the returned slice never affects the store.
func (s *Store) Snapshot() []LineItem {
	if s == nil {
		return nil
	}
	out := make([]LineItem, len(s.items))
	for i, it := range s.items {
		out[i] = *it
	}
	return out
}

// ViewHandles returns the handle set of the given rows, for callers that
// need to remember what a view contained before editing.
func ViewHandles(items []LineItem) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it.Handle] = true
	}
	return set
}

// ApplyEdit reconciles the edited view back into the store. The edited
// rows may be a filtered, re-sorted subset of the table plus brand-new
// rows; viewHandles is the handle set the operator was actually shown.
// Only handles that were visible and are now missing count as deletions —
// rows hidden by a filter are untouched. Malformed cell content degrades
// to defaults and never fails.
func (s *Store) ApplyEdit(edited []EditedRow, viewHandles map[string]bool) error {
	if s == nil || s.byHandle == nil {
		return ErrNoData
	}

	submitted := make(map[string]bool, len(edited))
	for _, row := range edited {
		if row.Handle != "" {
			submitted[row.Handle] = true
		}
	}

	// 1. Deletion: visible before, absent now.
	for handle := range viewHandles {
		if !submitted[handle] {
			s.remove(handle)
		}
	}

	// 2 & 3. Update existing rows in place, insert the rest.
	for _, row := range edited {
		if existing, ok := s.byHandle[row.Handle]; ok {
			applyRow(existing, row)
			continue
		}
		it := &LineItem{Handle: uuid.NewString()}
		applyRow(it, row)
		s.insert(it)
	}

	// 4-6. Defaults, recompute, renumber across the whole table.
	s.normalize()
	return nil
}

// DeleteFlagged removes the rows whose Delete flag is set and reconciles
// the remainder through ApplyEdit. It is the checkbox-delete variant of
// the same operation, not a separate code path.
func (s *Store) DeleteFlagged(edited []EditedRow, viewHandles map[string]bool) error {
	kept := make([]EditedRow, 0, len(edited))
	for _, row := range edited {
		if !row.Delete {
			kept = append(kept, row)
		}
	}
	return s.ApplyEdit(kept, viewHandles)
}

func (s *Store) remove(handle string) {
	if _, ok := s.byHandle[handle]; !ok {
		return
	}
	delete(s.byHandle, handle)
	for i, it := range s.items {
		if it.Handle == handle {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// applyRow copies the mutable fields of an edited row onto a line item,
// coercing the numeric cells. Handle and Total are not touched here.
func applyRow(it *LineItem, row EditedRow) {
	it.Item = parseItemNumber(row.Item)
	it.System = strings.TrimSpace(row.System)
	it.Code = strings.TrimSpace(row.Code)
	it.Description = strings.TrimSpace(row.Description)
	it.UOM = strings.TrimSpace(row.UOM)
	it.Qty = parseAmount(row.Qty)
	it.UnitPrice = parseAmount(row.UnitPrice)
}

// normalize heals blanks, recomputes totals and renumbers. It runs over
// the whole table so rows left half-filled by in-progress editing end up
// in a consistent state too.
func (s *Store) normalize() {
	for _, it := range s.items {
		if strings.TrimSpace(it.System) == "" {
			it.System = DefaultSystem
		}
		it.Code = NormalizeCode(it.Code)
		if strings.TrimSpace(it.UOM) == "" {
			it.UOM = DefaultUOM
		}
		it.Description = strings.TrimSpace(it.Description)
		if it.Qty < 0 {
			it.Qty = 0
		}
		if it.UnitPrice < 0 {
			it.UnitPrice = 0
		}
		it.Total = it.Qty * it.UnitPrice
	}
	s.renumber()
}

// renumber sorts by the existing display number (unnumbered rows keep
// their relative order at the end) and reassigns 1..N contiguously.
func (s *Store) renumber() {
	sort.SliceStable(s.items, func(i, j int) bool {
		return itemSortKey(s.items[i]) < itemSortKey(s.items[j])
	})
	for i, it := range s.items {
		it.Item = i + 1
	}
}

func itemSortKey(it *LineItem) int {
	if it.Item <= 0 {
		return int(^uint(0) >> 1) // unnumbered rows sort last
	}
	return it.Item
}

// parseItemNumber reads a display number cell; anything unusable means
// "no number" and sorts last on renumber.
func parseItemNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseAmount reads a quantity or price cell. Blank, non-numeric or
// negative input defaults to 0; that is policy, not an error.
func parseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
