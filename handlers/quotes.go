package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"agrocost/services"
)

type quoteMeta struct {
	ID           string  `json:"id"`
	QuoteNumber  string  `json:"quote_number"`
	ClientName   string  `json:"client_name"`
	ClientRUC    string  `json:"client_ruc"`
	DeliverySite string  `json:"delivery_site"`
	ProjectName  string  `json:"project_name"`
	AreaHa       float64 `json:"area_ha"`
	SalesName    string  `json:"sales_name"`
	SalesPhone   string  `json:"sales_phone"`
	SalesEmail   string  `json:"sales_email"`
	Created      string  `json:"created"`
	Updated      string  `json:"updated"`
}

func quoteMetaFromRecord(r *core.Record) quoteMeta {
	return quoteMeta{
		ID:           r.Id,
		QuoteNumber:  r.GetString("quote_number"),
		ClientName:   r.GetString("client_name"),
		ClientRUC:    r.GetString("client_ruc"),
		DeliverySite: r.GetString("delivery_site"),
		ProjectName:  r.GetString("project_name"),
		AreaHa:       r.GetFloat("area_ha"),
		SalesName:    r.GetString("sales_name"),
		SalesPhone:   r.GetString("sales_phone"),
		SalesEmail:   r.GetString("sales_email"),
		Created:      r.GetDateTime("created").Time().Format("2006-01-02 15:04:05"),
		Updated:      r.GetDateTime("updated").Time().Format("2006-01-02 15:04:05"),
	}
}

// editableQuoteFields are the quotation columns the meta endpoints accept.
var editableQuoteFields = map[string]bool{
	"quote_number":  true,
	"client_name":   true,
	"client_ruc":    true,
	"delivery_site": true,
	"project_name":  true,
	"area_ha":       true,
	"sales_name":    true,
	"sales_phone":   true,
	"sales_email":   true,
}

// HandleQuoteList returns all quotations.
// Route: GET /quotes
func HandleQuoteList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("quotations")
		if err != nil {
			log.Printf("quote_list: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindRecordsByFilter(col, "id != ''", "-created", 0, 0, nil)
		if err != nil {
			records = nil
		}

		quotes := make([]quoteMeta, 0, len(records))
		for _, r := range records {
			quotes = append(quotes, quoteMetaFromRecord(r))
		}
		return e.JSON(http.StatusOK, map[string]any{"quotes": quotes})
	}
}

// HandleQuoteCreate creates a quotation from a JSON payload.
// Route: POST /quotes
func HandleQuoteCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload map[string]any
		if err := json.NewDecoder(e.Request.Body).Decode(&payload); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Invalid JSON body")
		}

		number, _ := payload["quote_number"].(string)
		if number == "" {
			return errorJSON(e, http.StatusBadRequest, "quote_number is required")
		}

		col, err := app.FindCollectionByNameOrId("quotations")
		if err != nil {
			log.Printf("quote_create: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		for k, v := range payload {
			if editableQuoteFields[k] {
				record.Set(k, v)
			}
		}
		if err := app.Save(record); err != nil {
			log.Printf("quote_create: save: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusCreated, quoteMetaFromRecord(record))
	}
}

// HandleQuoteView returns a quotation's metadata together with its
// in-memory line items when a table is loaded.
// Route: GET /quotes/{id}
func HandleQuoteView(app *pocketbase.PocketBase, sessions *SessionManager) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		record, err := app.FindRecordById("quotations", quoteID)
		if err != nil {
			return errorJSON(e, http.StatusNotFound, "Quotation not found")
		}

		resp := map[string]any{
			"quote":  quoteMetaFromRecord(record),
			"loaded": false,
			"items":  []services.LineItem{},
		}
		if store, ok := sessions.Get(quoteID); ok {
			resp["loaded"] = true
			resp["items"] = store.Snapshot()
		}
		return e.JSON(http.StatusOK, resp)
	}
}

// HandleQuoteMetaUpdate overwrites the editable quotation columns present
// in the JSON payload.
// Route: POST /quotes/{id}/meta
func HandleQuoteMetaUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		record, err := app.FindRecordById("quotations", quoteID)
		if err != nil {
			return errorJSON(e, http.StatusNotFound, "Quotation not found")
		}

		var payload map[string]any
		if err := json.NewDecoder(e.Request.Body).Decode(&payload); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Invalid JSON body")
		}
		for k, v := range payload {
			if editableQuoteFields[k] {
				record.Set(k, v)
			}
		}
		if err := app.Save(record); err != nil {
			log.Printf("quote_meta: save %s: %v", quoteID, err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, quoteMetaFromRecord(record))
	}
}

// HandleQuoteDelete removes a quotation, its persisted items (cascade)
// and its in-memory table.
// Route: DELETE /quotes/{id}
func HandleQuoteDelete(app *pocketbase.PocketBase, sessions *SessionManager) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		record, err := app.FindRecordById("quotations", quoteID)
		if err != nil {
			return errorJSON(e, http.StatusNotFound, "Quotation not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("quote_delete: %s: %v", quoteID, err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		sessions.Delete(quoteID)

		return e.NoContent(http.StatusNoContent)
	}
}
