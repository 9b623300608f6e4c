package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"agrocost/config"
	"agrocost/services"
)

// buildQuoteExportData assembles the report payload from the quotation
// record, the loaded table and the configured company identity.
func buildQuoteExportData(app *pocketbase.PocketBase, sessions *SessionManager, cfg *config.Config, quoteID string) (services.ExportData, error) {
	record, err := app.FindRecordById("quotations", quoteID)
	if err != nil {
		return services.ExportData{}, fmt.Errorf("quotation not found: %w", err)
	}

	store, ok := sessions.Get(quoteID)
	if !ok {
		return services.ExportData{}, services.ErrNoData
	}

	createdDate := ""
	if dt := record.GetDateTime("created"); !dt.IsZero() {
		createdDate = dt.Time().Format("02 Jan 2006")
	}

	company := services.CompanyInfo{
		Name:    cfg.Company.Name,
		Address: cfg.Company.Address,
		Website: cfg.Company.Website,
	}
	info := services.QuoteInfo{
		Number:       record.GetString("quote_number"),
		ClientName:   record.GetString("client_name"),
		ClientRUC:    record.GetString("client_ruc"),
		DeliverySite: record.GetString("delivery_site"),
		ProjectName:  record.GetString("project_name"),
		AreaHa:       record.GetFloat("area_ha"),
		SalesName:    record.GetString("sales_name"),
		SalesPhone:   record.GetString("sales_phone"),
		SalesEmail:   record.GetString("sales_email"),
		CreatedDate:  createdDate,
	}

	items := store.Snapshot()
	totals := services.CalcQuoteTotals(items, cfg.TaxRate, info.AreaHa)
	return services.BuildExportData(company, info, items, totals), nil
}

// exportError distinguishes a missing quotation from a quotation whose
// table was never loaded.
func exportError(e *core.RequestEvent, err error) error {
	if errors.Is(err, services.ErrNoData) {
		return noDataError(e, err)
	}
	return errorJSON(e, http.StatusNotFound, "Quotation not found")
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleQuoteExportPDF generates and downloads the PDF budget report.
// Route: GET /quotes/{id}/export/pdf
func HandleQuoteExportPDF(app *pocketbase.PocketBase, sessions *SessionManager, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		if quoteID == "" {
			return errorJSON(e, http.StatusBadRequest, "Missing quotation ID")
		}

		data, err := buildQuoteExportData(app, sessions, cfg, quoteID)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return exportError(e, err)
		}

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Cotizacion_%s_%d.pdf", sanitizeFilename(data.Info.Number), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleQuoteExportExcel generates and downloads the Excel budget report.
// Route: GET /quotes/{id}/export/excel
func HandleQuoteExportExcel(app *pocketbase.PocketBase, sessions *SessionManager, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		if quoteID == "" {
			return errorJSON(e, http.StatusBadRequest, "Missing quotation ID")
		}

		data, err := buildQuoteExportData(app, sessions, cfg, quoteID)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return exportError(e, err)
		}

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Cotizacion_%s_%d.xlsx", sanitizeFilename(data.Info.Number), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}
