package handlers

import (
	"net/http"
	"net/http/httptest"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"agrocost/config"
	"agrocost/services"
)

func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// loadTestStore puts a small two-system table into the session manager
// and returns its snapshot.
func loadTestStore(sessions *SessionManager, quoteID string) []services.LineItem {
	store := services.NewStore([]services.LineItem{
		{Item: 1, System: "GOTEO", Code: "A1", Description: "Dripper", UOM: "Und.", Qty: 5, UnitPrice: 10},
		{Item: 2, System: "GOTEO", Code: "A2", Description: "Tube", UOM: "m", Qty: 200, UnitPrice: 0.5},
		{Item: 3, System: "FILTRADO", Code: "B1", Description: "Filter", UOM: "Und.", Qty: 2, UnitPrice: 4.5},
	})
	sessions.Put(quoteID, store)
	return store.Snapshot()
}

func testConfig() *config.Config {
	return config.Default()
}
