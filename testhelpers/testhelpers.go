// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"agrocost/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestQuotation creates a quotation record with the given number and returns it.
func CreateTestQuotation(t *testing.T, app *pocketbase.PocketBase, quoteNumber string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotations")
	if err != nil {
		t.Fatalf("failed to find quotations collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("quote_number", quoteNumber)
	record.Set("client_name", "AGRICOLA TEST S.A.C.")
	record.Set("client_ruc", "20123456789")
	record.Set("project_name", "RIEGO POR GOTEO - TEST")
	record.Set("area_ha", 10.0)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quotation: %v", err)
	}

	return record
}

// CreateTestQuotationItem creates a quotation_items record linked to a quotation.
func CreateTestQuotationItem(t *testing.T, app *pocketbase.PocketBase, quotationID string, itemNo int, system, code, description string, qty, unitPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotation_items")
	if err != nil {
		t.Fatalf("failed to find quotation_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("quotation", quotationID)
	record.Set("handle", uuid.NewString())
	record.Set("item_no", itemNo)
	record.Set("system", system)
	record.Set("code", code)
	record.Set("description", description)
	record.Set("uom", "Und.")
	record.Set("qty", qty)
	record.Set("unit_price", unitPrice)
	record.Set("total", qty*unitPrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quotation item: %v", err)
	}

	return record
}
