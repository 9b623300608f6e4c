package collections_test

import (
	"testing"

	"agrocost/collections"
	"agrocost/testhelpers"
)

func TestSeed_CreatesData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	quotationsCol, _ := app.FindCollectionByNameOrId("quotations")
	quotations, err := app.FindAllRecords(quotationsCol)
	if err != nil {
		t.Fatalf("query quotations error: %v", err)
	}
	if len(quotations) != 1 {
		t.Fatalf("expected 1 quotation, got %d", len(quotations))
	}
	if quotations[0].GetString("quote_number") != "COT-2026-001" {
		t.Errorf("quote_number = %q, want COT-2026-001", quotations[0].GetString("quote_number"))
	}

	itemsCol, _ := app.FindCollectionByNameOrId("quotation_items")
	items, _ := app.FindAllRecords(itemsCol)
	if len(items) != 7 {
		t.Errorf("expected 7 quotation items, got %d", len(items))
	}
	for _, item := range items {
		if item.GetString("quotation") != quotations[0].Id {
			t.Errorf("item %q not linked to the seeded quotation", item.GetString("description"))
		}
		if item.GetString("handle") == "" {
			t.Errorf("item %q has no handle", item.GetString("description"))
		}
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	quotationsCol, _ := app.FindCollectionByNameOrId("quotations")
	quotations, _ := app.FindAllRecords(quotationsCol)
	if len(quotations) != 1 {
		t.Errorf("expected 1 quotation after idempotent seed, got %d", len(quotations))
	}
}

func TestSeed_ItemTotalsConsistent(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	itemsCol, _ := app.FindCollectionByNameOrId("quotation_items")
	items, _ := app.FindAllRecords(itemsCol)
	for _, item := range items {
		want := item.GetFloat("qty") * item.GetFloat("unit_price")
		if got := item.GetFloat("total"); got != want {
			t.Errorf("item %q total = %v, want %v", item.GetString("description"), got, want)
		}
	}
}

func TestSeed_SkipsWhenDataExists(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	testhelpers.CreateTestQuotation(t, app, "COT-EXISTING")

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	quotationsCol, _ := app.FindCollectionByNameOrId("quotations")
	quotations, _ := app.FindAllRecords(quotationsCol)
	if len(quotations) != 1 {
		t.Errorf("expected 1 quotation (pre-existing only), got %d", len(quotations))
	}
	if quotations[0].GetString("quote_number") != "COT-EXISTING" {
		t.Errorf("expected pre-existing quotation, got %q", quotations[0].GetString("quote_number"))
	}
}
