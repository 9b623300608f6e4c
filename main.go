package main

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"agrocost/collections"
	"agrocost/config"
	"agrocost/handlers"
)

func main() {
	app := pocketbase.New()

	cfg, err := config.Load("config.yml")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	sessions := handlers.NewSessionManager()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Quotation CRUD ───────────────────────────────────────
		se.Router.GET("/quotes", handlers.HandleQuoteList(app))
		se.Router.POST("/quotes", handlers.HandleQuoteCreate(app))
		se.Router.POST("/quotes/{id}/meta", handlers.HandleQuoteMetaUpdate(app))
		se.Router.DELETE("/quotes/{id}", handlers.HandleQuoteDelete(app, sessions))

		// ── Table lifecycle ──────────────────────────────────────
		se.Router.POST("/quotes/{id}/upload", handlers.HandleQuoteUpload(app, sessions))
		se.Router.POST("/quotes/{id}/recalc", handlers.HandleQuoteRecalc(app, sessions, cfg))
		se.Router.POST("/quotes/{id}/recalc/flagged", handlers.HandleQuoteRecalcFlagged(app, sessions, cfg))
		se.Router.GET("/quotes/{id}/totals", handlers.HandleQuoteTotals(app, sessions, cfg))

		// ── Snapshot persistence ─────────────────────────────────
		se.Router.POST("/quotes/{id}/save", handlers.HandleQuoteSave(app, sessions))
		se.Router.POST("/quotes/{id}/restore", handlers.HandleQuoteRestore(app, sessions))

		// ── Report export ────────────────────────────────────────
		se.Router.GET("/quotes/{id}/export/pdf", handlers.HandleQuoteExportPDF(app, sessions, cfg))
		se.Router.GET("/quotes/{id}/export/excel", handlers.HandleQuoteExportExcel(app, sessions, cfg))

		// Quote view (after specific /quotes/{id}/* routes)
		se.Router.GET("/quotes/{id}", handlers.HandleQuoteView(app, sessions))

		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/quotes")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
