package collections

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type itemDef struct {
	itemNo      int
	system      string
	code        string
	description string
	uom         string
	qty         float64
	unitPrice   float64
}

// Seed populates the collections with a demo drip-irrigation quotation.
// It is safe to call on every startup because it returns early if any
// quotation records already exist.
func Seed(app *pocketbase.PocketBase) error {
	quotationsCol, err := app.FindCollectionByNameOrId("quotations")
	if err != nil {
		return fmt.Errorf("seed: could not find quotations collection: %w", err)
	}
	existing, err := app.FindAllRecords(quotationsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query quotations: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: quotations collection is empty – inserting seed data …")

	itemsCol, err := app.FindCollectionByNameOrId("quotation_items")
	if err != nil {
		return fmt.Errorf("seed: could not find quotation_items collection: %w", err)
	}

	q := core.NewRecord(quotationsCol)
	q.Set("quote_number", "COT-2026-001")
	q.Set("client_name", "AGROINDUSTRIAL CAMPOSOL S.A.")
	q.Set("client_ruc", "20340584237")
	q.Set("delivery_site", "Fundo Mar Verde, Chao, La Libertad")
	q.Set("project_name", "RIEGO POR GOTEO - ARANDANO 25 HA")
	q.Set("area_ha", 25.0)
	q.Set("sales_name", "Ing. C. Villanueva")
	q.Set("sales_phone", "+51 944 123 456")
	q.Set("sales_email", "cvillanueva@rivulis.com")
	if err := app.Save(q); err != nil {
		return fmt.Errorf("seed: save quotation: %w", err)
	}

	items := []itemDef{
		{1, "CABEZAL DE FILTRADO", "F-2040", "Filtro de anillas 2\" 120 mesh", "Und.", 4, 385.50},
		{2, "CABEZAL DE FILTRADO", "V-0310", "Valvula de aire 1\" doble efecto", "Und.", 6, 48.90},
		{3, "RED DE DISTRIBUCION", "T-6304", "Tuberia PVC 63mm C-5", "m", 1850, 3.85},
		{4, "RED DE DISTRIBUCION", "T-9004", "Tuberia PVC 90mm C-5", "m", 640, 7.20},
		{5, "SISTEMA DE GOTEO", "M-1612", "Manguera de goteo 16mm 1.6 L/h @ 0.30m", "m", 125000, 0.28},
		{6, "SISTEMA DE GOTEO", "C-1600", "Conector inicial 16mm con empaque", "Und.", 2500, 0.35},
		{7, "AUTOMATIZACION", "P-0801", "Programador de riego 8 estaciones", "Und.", 1, 1250.00},
	}
	for _, d := range items {
		r := core.NewRecord(itemsCol)
		r.Set("quotation", q.Id)
		r.Set("handle", uuid.NewString())
		r.Set("item_no", d.itemNo)
		r.Set("system", d.system)
		r.Set("code", d.code)
		r.Set("description", d.description)
		r.Set("uom", d.uom)
		r.Set("qty", d.qty)
		r.Set("unit_price", d.unitPrice)
		r.Set("total", d.qty*d.unitPrice)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save quotation item %q: %w", d.description, err)
		}
	}

	log.Printf("seed: inserted demo quotation %s with %d items", q.GetString("quote_number"), len(items))
	return nil
}
