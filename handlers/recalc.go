package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"agrocost/config"
	"agrocost/services"
)

// recalcRequest is the edited view the operator submits: the rows as they
// stand in the grid plus the handles the view was showing.
type recalcRequest struct {
	Rows        []services.EditedRow `json:"rows"`
	ViewHandles []string             `json:"view_handles"`
}

func handleSet(handles []string) map[string]bool {
	set := make(map[string]bool, len(handles))
	for _, h := range handles {
		set[h] = true
	}
	return set
}

// tableResponse returns the canonical table and its totals for a quotation.
func tableResponse(app *pocketbase.PocketBase, sessions *SessionManager, cfg *config.Config, quoteID string) (map[string]any, error) {
	store, ok := sessions.Get(quoteID)
	if !ok {
		return nil, services.ErrNoData
	}

	areaHa := 0.0
	if record, err := app.FindRecordById("quotations", quoteID); err == nil {
		areaHa = record.GetFloat("area_ha")
	}

	items := store.Snapshot()
	totals := services.CalcQuoteTotals(items, cfg.TaxRate, areaHa)
	return map[string]any{"items": items, "totals": totals}, nil
}

// HandleQuoteRecalc applies the edited view to the quotation's table and
// returns the recomputed rows and totals.
// Route: POST /quotes/{id}/recalc
func HandleQuoteRecalc(app *pocketbase.PocketBase, sessions *SessionManager, cfg *config.Config) func(*core.RequestEvent) error {
	return recalcHandler(app, sessions, cfg, (*services.Store).ApplyEdit)
}

// HandleQuoteRecalcFlagged is the checkbox-delete variant: rows flagged
// for deletion are dropped before the regular reconcile runs.
// Route: POST /quotes/{id}/recalc/flagged
func HandleQuoteRecalcFlagged(app *pocketbase.PocketBase, sessions *SessionManager, cfg *config.Config) func(*core.RequestEvent) error {
	return recalcHandler(app, sessions, cfg, (*services.Store).DeleteFlagged)
}

func recalcHandler(app *pocketbase.PocketBase, sessions *SessionManager, cfg *config.Config, apply func(*services.Store, []services.EditedRow, map[string]bool) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")

		var req recalcRequest
		if err := json.NewDecoder(e.Request.Body).Decode(&req); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Invalid JSON body")
		}

		err := sessions.Edit(quoteID, func(s *services.Store) error {
			return apply(s, req.Rows, handleSet(req.ViewHandles))
		})
		if err != nil {
			return noDataError(e, err)
		}

		resp, err := tableResponse(app, sessions, cfg, quoteID)
		if err != nil {
			return noDataError(e, err)
		}
		return e.JSON(http.StatusOK, resp)
	}
}

// HandleQuoteTotals returns the current totals without modifying the table.
// Route: GET /quotes/{id}/totals
func HandleQuoteTotals(app *pocketbase.PocketBase, sessions *SessionManager, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		resp, err := tableResponse(app, sessions, cfg, quoteID)
		if err != nil {
			return noDataError(e, err)
		}
		return e.JSON(http.StatusOK, resp)
	}
}
