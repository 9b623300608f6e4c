package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"agrocost/services"
)

// HandleQuoteUpload receives the price list and takeoff files, merges
// them into the initial line-item table and loads it for the quotation.
// Route: POST /quotes/{id}/upload (multipart: price_list, takeoff)
func HandleQuoteUpload(app *pocketbase.PocketBase, sessions *SessionManager) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("quotations", quoteID); err != nil {
			return errorJSON(e, http.StatusNotFound, "Quotation not found")
		}

		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return errorJSON(e, http.StatusBadRequest, "File too large or invalid form data")
		}

		priceFile, priceHeader, err := e.Request.FormFile("price_list")
		if err != nil {
			return errorJSON(e, http.StatusBadRequest, "Please upload a price_list file")
		}
		defer priceFile.Close()

		takeoffFile, takeoffHeader, err := e.Request.FormFile("takeoff")
		if err != nil {
			return errorJSON(e, http.StatusBadRequest, "Please upload a takeoff file")
		}
		defer takeoffFile.Close()

		catalog, err := services.ParsePriceList(priceFile, priceHeader.Filename)
		if err != nil {
			log.Printf("upload: price list %q: %v", priceHeader.Filename, err)
			return dataErrorJSON(e, err)
		}

		project, err := services.ParseTakeoff(takeoffFile, takeoffHeader.Filename)
		if err != nil {
			log.Printf("upload: takeoff %q: %v", takeoffHeader.Filename, err)
			return dataErrorJSON(e, err)
		}

		store := services.NewStore(services.BuildInitialTable(catalog, project))
		sessions.Put(quoteID, store)

		return e.JSON(http.StatusOK, map[string]any{"items": store.Snapshot()})
	}
}

// dataErrorJSON surfaces import problems to the operator; a *DataError
// carries the offending table and column.
func dataErrorJSON(e *core.RequestEvent, err error) error {
	var dataErr *services.DataError
	if errors.As(err, &dataErr) {
		return errorJSON(e, http.StatusBadRequest, dataErr.Error())
	}
	return errorJSON(e, http.StatusBadRequest, "Could not read the uploaded file")
}
