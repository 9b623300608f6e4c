package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"agrocost/services"
)

// HandleQuoteSave persists the in-memory table to the quotation_items
// collection, replacing whatever snapshot was stored before.
// Route: POST /quotes/{id}/save
func HandleQuoteSave(app *pocketbase.PocketBase, sessions *SessionManager) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("quotations", quoteID); err != nil {
			return errorJSON(e, http.StatusNotFound, "Quotation not found")
		}

		store, ok := sessions.Get(quoteID)
		if !ok {
			return noDataError(e, services.ErrNoData)
		}
		items := store.Snapshot()

		if err := replaceSnapshot(app, quoteID, items); err != nil {
			log.Printf("quote_save: %s: %v", quoteID, err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{"saved": len(items)})
	}
}

func replaceSnapshot(app *pocketbase.PocketBase, quoteID string, items []services.LineItem) error {
	col, err := app.FindCollectionByNameOrId("quotation_items")
	if err != nil {
		return fmt.Errorf("collection not found: %w", err)
	}

	existing, err := app.FindRecordsByFilter(col, "quotation = {:id}", "", 0, 0, map[string]any{"id": quoteID})
	if err != nil {
		existing = nil
	}
	for _, r := range existing {
		if err := app.Delete(r); err != nil {
			return fmt.Errorf("delete old item %s: %w", r.Id, err)
		}
	}

	for _, item := range items {
		r := core.NewRecord(col)
		r.Set("quotation", quoteID)
		r.Set("handle", item.Handle)
		r.Set("item_no", item.Item)
		r.Set("system", item.System)
		r.Set("code", item.Code)
		r.Set("description", item.Description)
		r.Set("uom", item.UOM)
		r.Set("qty", item.Qty)
		r.Set("unit_price", item.UnitPrice)
		r.Set("total", item.Total)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("save item %d: %w", item.Item, err)
		}
	}
	return nil
}

// HandleQuoteRestore rebuilds the in-memory table from the persisted
// snapshot, preserving row handles.
// Route: POST /quotes/{id}/restore
func HandleQuoteRestore(app *pocketbase.PocketBase, sessions *SessionManager) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("quotations", quoteID); err != nil {
			return errorJSON(e, http.StatusNotFound, "Quotation not found")
		}

		col, err := app.FindCollectionByNameOrId("quotation_items")
		if err != nil {
			log.Printf("quote_restore: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindRecordsByFilter(col, "quotation = {:id}", "item_no", 0, 0, map[string]any{"id": quoteID})
		if err != nil || len(records) == 0 {
			return errorJSON(e, http.StatusNotFound, "No saved snapshot for this quotation")
		}

		items := make([]services.LineItem, 0, len(records))
		for _, r := range records {
			items = append(items, services.LineItem{
				Handle:      r.GetString("handle"),
				Item:        r.GetInt("item_no"),
				System:      r.GetString("system"),
				Code:        r.GetString("code"),
				Description: r.GetString("description"),
				UOM:         r.GetString("uom"),
				Qty:         r.GetFloat("qty"),
				UnitPrice:   r.GetFloat("unit_price"),
				Total:       r.GetFloat("total"),
			})
		}

		store := services.RestoreStore(items)
		sessions.Put(quoteID, store)

		return e.JSON(http.StatusOK, map[string]any{"items": store.Snapshot()})
	}
}
