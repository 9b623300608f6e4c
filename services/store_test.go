package services

import (
	"errors"
	"fmt"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore([]LineItem{
		{System: "Drip", Code: "A1", Description: "Dripper", UOM: "pc", Qty: 5, UnitPrice: 10},
		{System: "Drip", Code: "A2", Description: "Tube", UOM: "m", Qty: 100, UnitPrice: 0.5},
		{System: "Pump", Code: "B1", Description: "Pump", UOM: "pc", Qty: 1, UnitPrice: 900},
	})
}

// editedFromSnapshot turns snapshot rows back into edit rows, the way the
// editing view would submit them untouched.
func editedFromSnapshot(items []LineItem) []EditedRow {
	rows := make([]EditedRow, len(items))
	for i, it := range items {
		rows[i] = EditedRow{
			Handle:      it.Handle,
			Item:        fmt.Sprintf("%d", it.Item),
			System:      it.System,
			Code:        it.Code,
			Description: it.Description,
			UOM:         it.UOM,
			Qty:         fmt.Sprintf("%g", it.Qty),
			UnitPrice:   fmt.Sprintf("%g", it.UnitPrice),
		}
	}
	return rows
}

func findByDescription(t *testing.T, items []LineItem, desc string) LineItem {
	t.Helper()
	for _, it := range items {
		if it.Description == desc {
			return it
		}
	}
	t.Fatalf("no item with description %q", desc)
	return LineItem{}
}

func TestNewStore_AssignsHandlesAndTotals(t *testing.T) {
	s := newTestStore(t)
	snap := s.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 items, got %d", len(snap))
	}

	seen := map[string]bool{}
	for i, it := range snap {
		if it.Handle == "" {
			t.Errorf("row %d has no handle", i)
		}
		if seen[it.Handle] {
			t.Errorf("duplicate handle %q", it.Handle)
		}
		seen[it.Handle] = true
		if it.Item != i+1 {
			t.Errorf("row %d: Item = %d, want %d", i, it.Item, i+1)
		}
		if it.Total != it.Qty*it.UnitPrice {
			t.Errorf("row %d: Total = %v, want %v", i, it.Total, it.Qty*it.UnitPrice)
		}
	}
}

func TestApplyEdit_NilStore(t *testing.T) {
	var s *Store
	if err := s.ApplyEdit(nil, nil); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestApplyEdit_PriceEditPreservesIdentity(t *testing.T) {
	s := newTestStore(t)
	before := s.Snapshot()

	edited := editedFromSnapshot(before)
	for i := range edited {
		if edited[i].Description == "Tube" {
			edited[i].UnitPrice = "0.75"
		}
	}

	if err := s.ApplyEdit(edited, ViewHandles(before)); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}

	after := s.Snapshot()
	if len(after) != len(before) {
		t.Fatalf("row count changed: %d -> %d", len(before), len(after))
	}

	tube := findByDescription(t, after, "Tube")
	if tube.UnitPrice != 0.75 || tube.Total != 75 {
		t.Errorf("tube not recomputed: %+v", tube)
	}

	for _, b := range before {
		if b.Description == "Tube" {
			continue
		}
		a := findByDescription(t, after, b.Description)
		if a != b {
			t.Errorf("untouched row changed:\nbefore %+v\nafter  %+v", b, a)
		}
	}
}

func TestApplyEdit_FilterSafeDeletion(t *testing.T) {
	s := newTestStore(t)
	snap := s.Snapshot()
	a := findByDescription(t, snap, "Dripper")
	c := findByDescription(t, snap, "Pump")

	// The operator saw a filtered view {A, C} but submitted only {A}
	// because the view filter hid C; C was never shown as deletable...
	viewOnlyA := map[string]bool{a.Handle: true}
	if err := s.ApplyEdit(editedFromSnapshot([]LineItem{a}), viewOnlyA); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("row outside the view was deleted; len = %d", s.Len())
	}

	// ...whereas a view {A, C} submitted as {A} means C was removed.
	snap = s.Snapshot()
	a = findByDescription(t, snap, "Dripper")
	c = findByDescription(t, snap, "Pump")
	viewAC := map[string]bool{a.Handle: true, c.Handle: true}
	if err := s.ApplyEdit(editedFromSnapshot([]LineItem{a}), viewAC); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected deletion of the visible removed row; len = %d", s.Len())
	}
	for _, it := range s.Snapshot() {
		if it.Handle == c.Handle {
			t.Errorf("deleted row still present: %+v", it)
		}
	}
}

func TestApplyEdit_InsertNewRow(t *testing.T) {
	s := newTestStore(t)
	before := s.Snapshot()

	edited := append(editedFromSnapshot(before), EditedRow{
		Description: "Fertilizer tank",
		Qty:         "2",
		UnitPrice:   "150",
	})

	if err := s.ApplyEdit(edited, ViewHandles(before)); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}

	after := s.Snapshot()
	if len(after) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(after))
	}

	added := findByDescription(t, after, "Fertilizer tank")
	if added.Handle == "" {
		t.Error("inserted row has no handle")
	}
	for _, b := range before {
		if b.Handle == added.Handle {
			t.Error("inserted row reused an existing handle")
		}
	}
	if added.System != DefaultSystem || added.Code != NoCode || added.UOM != DefaultUOM {
		t.Errorf("defaults not applied to new row: %+v", added)
	}
	if added.Total != 300 {
		t.Errorf("Total = %v, want 300", added.Total)
	}
	// Unnumbered new rows go to the end on renumber.
	if added.Item != 4 {
		t.Errorf("Item = %d, want 4", added.Item)
	}
}

func TestApplyEdit_HandleNeverReused(t *testing.T) {
	s := newTestStore(t)
	snap := s.Snapshot()
	victim := findByDescription(t, snap, "Pump")

	// Delete the pump row.
	var kept []LineItem
	for _, it := range snap {
		if it.Handle != victim.Handle {
			kept = append(kept, it)
		}
	}
	if err := s.ApplyEdit(editedFromSnapshot(kept), ViewHandles(snap)); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}

	// Re-add an identical-looking row; it must get a new handle.
	snap = s.Snapshot()
	edited := append(editedFromSnapshot(snap), EditedRow{
		System: "Pump", Code: "B1", Description: "Pump", UOM: "pc",
		Qty: "1", UnitPrice: "900",
	})
	if err := s.ApplyEdit(edited, ViewHandles(snap)); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}

	readded := findByDescription(t, s.Snapshot(), "Pump")
	if readded.Handle == victim.Handle {
		t.Error("handle of a deleted row was reused")
	}
}

func TestApplyEdit_CoercionAndDefaults(t *testing.T) {
	s := newTestStore(t)
	before := s.Snapshot()

	edited := editedFromSnapshot(before)
	for i := range edited {
		if edited[i].Description == "Dripper" {
			edited[i].Qty = "abc"
			edited[i].UnitPrice = ""
			edited[i].System = "   "
			edited[i].Code = "12.0"
			edited[i].UOM = ""
		}
		if edited[i].Description == "Tube" {
			edited[i].Qty = "-4"
		}
	}

	if err := s.ApplyEdit(edited, ViewHandles(before)); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}

	after := s.Snapshot()
	dripper := findByDescription(t, after, "Dripper")
	if dripper.Qty != 0 || dripper.UnitPrice != 0 || dripper.Total != 0 {
		t.Errorf("junk numerics not coerced to zero: %+v", dripper)
	}
	if dripper.System != DefaultSystem || dripper.Code != "12" || dripper.UOM != DefaultUOM {
		t.Errorf("blank fields not healed: %+v", dripper)
	}
	tube := findByDescription(t, after, "Tube")
	if tube.Qty != 0 {
		t.Errorf("negative qty not clamped: %+v", tube)
	}
}

func TestApplyEdit_RenumberingContiguity(t *testing.T) {
	s := newTestStore(t)
	before := s.Snapshot()

	// Drop the middle row, scramble numbers, add an unnumbered row.
	edited := editedFromSnapshot([]LineItem{before[2], before[0]})
	edited[0].Item = "7"
	edited[1].Item = ""
	edited = append(edited, EditedRow{Description: "New row", Qty: "1", UnitPrice: "1"})

	if err := s.ApplyEdit(edited, ViewHandles(before)); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}

	after := s.Snapshot()
	if len(after) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(after))
	}
	for i, it := range after {
		if it.Item != i+1 {
			t.Errorf("row %d: Item = %d, want %d", i, it.Item, i+1)
		}
	}
	// Numbered row first, unnumbered rows after it in submission order.
	if after[0].Handle != before[2].Handle {
		t.Errorf("numbered row should lead after renumber, got %+v", after[0])
	}
}

func TestApplyEdit_TotalConsistencyAlways(t *testing.T) {
	s := newTestStore(t)
	before := s.Snapshot()

	edited := editedFromSnapshot(before)
	edited[0].Qty = "3.5"
	edited[1].UnitPrice = "2.25"
	edited = append(edited, EditedRow{Description: "Extra", Qty: "0.5", UnitPrice: "19.9"})

	if err := s.ApplyEdit(edited, ViewHandles(before)); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}
	for _, it := range s.Snapshot() {
		if it.Total != it.Qty*it.UnitPrice {
			t.Errorf("stale total on %q: %v != %v*%v", it.Description, it.Total, it.Qty, it.UnitPrice)
		}
	}
}

func TestDeleteFlagged(t *testing.T) {
	s := newTestStore(t)
	before := s.Snapshot()

	edited := editedFromSnapshot(before)
	for i := range edited {
		if edited[i].Description == "Tube" {
			edited[i].Delete = true
		}
	}

	if err := s.DeleteFlagged(edited, ViewHandles(before)); err != nil {
		t.Fatalf("DeleteFlagged: %v", err)
	}

	after := s.Snapshot()
	if len(after) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(after))
	}
	for _, it := range after {
		if it.Description == "Tube" {
			t.Error("flagged row survived")
		}
	}
	for i, it := range after {
		if it.Item != i+1 {
			t.Errorf("renumber after flagged delete: Item = %d, want %d", it.Item, i+1)
		}
	}
}

func TestRestoreStore_RoundTripPreservesEverything(t *testing.T) {
	s := newTestStore(t)
	saved := s.Snapshot()

	restored := RestoreStore(saved)
	again := restored.Snapshot()

	if len(again) != len(saved) {
		t.Fatalf("row count changed on restore: %d -> %d", len(saved), len(again))
	}
	for i := range saved {
		if again[i] != saved[i] {
			t.Errorf("row %d changed on restore:\nsaved    %+v\nrestored %+v", i, saved[i], again[i])
		}
	}
}

func TestRestoreStore_BlankHandleGetsFreshOne(t *testing.T) {
	restored := RestoreStore([]LineItem{
		{Item: 1, System: "Drip", Description: "Dripper", Qty: 1, UnitPrice: 2},
	})
	snap := restored.Snapshot()
	if snap[0].Handle == "" {
		t.Error("restored row left without a handle")
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := newTestStore(t)
	snap := s.Snapshot()
	snap[0].Description = "MUTATED"
	if s.Snapshot()[0].Description == "MUTATED" {
		t.Error("snapshot shares memory with the store")
	}
}
