package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	pdfGreen = props.Color{Red: 46, Green: 125, Blue: 50}
	pdfGray  = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfRed   = props.Color{Red: 211, Green: 47, Blue: 47}
)

// GeneratePDF renders the budget report: header, client block, system
// summary, one detail section per system, and the financial totals. It
// returns the raw PDF bytes.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &pdfGray,
		}).
		Build()

	m := maroto.New(cfg)

	addCompanyHeader(m, data)
	addClientBlock(m, data)

	addSectionTitle(m, "Resumen: "+data.Info.ProjectName)
	addSummaryTable(m, data)

	for _, section := range data.Sections {
		if len(section.Rows) == 0 {
			continue
		}
		addSectionTitle(m, section.System)
		addDetailTable(m, section)
	}

	addSectionTitle(m, "Resumen Financiero")
	addFinancialTotals(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// addCompanyHeader draws the vendor identity on the left and the document
// number on the right.
func addCompanyHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(6).Add(
			col.New(8).Add(
				text.New(cleanText(data.Company.Name), props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: &pdfGreen,
				}),
			),
			col.New(4).Add(
				text.New("DOCUMENTO N°", props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &pdfGray,
				}),
			),
		),
		row.New(5).Add(
			col.New(8).Add(
				text.New(cleanText(data.Company.Address), props.Text{
					Size:  8,
					Align: align.Left,
					Color: &pdfGray,
				}),
			),
			col.New(4).Add(
				text.New(cleanText(data.Info.Number), props.Text{
					Size:  12,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
		row.New(5).Add(
			col.New(12).Add(
				text.New(cleanText(data.Company.Website), props.Text{
					Size:  8,
					Align: align.Left,
					Color: &pdfGray,
				}),
			),
		),
		row.New(4),
	)
}

// addClientBlock draws the client and salesperson columns side by side.
func addClientBlock(m core.Maroto, data ExportData) {
	label := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: &pdfGray}
	value := props.Text{Size: 9, Align: align.Left}
	valueBold := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}

	m.AddRows(
		row.New(4).Add(
			col.New(6).Add(text.New("DATOS DEL CLIENTE", label)),
			col.New(6).Add(text.New("ATENDIDO POR", label)),
		),
		row.New(5).Add(
			col.New(6).Add(text.New(cleanText(data.Info.ClientName), valueBold)),
			col.New(6).Add(text.New(cleanText(data.Info.SalesName), valueBold)),
		),
		row.New(5).Add(
			col.New(6).Add(text.New(cleanText("RUC: "+data.Info.ClientRUC), value)),
			col.New(6).Add(text.New(cleanText("Celular: "+data.Info.SalesPhone), value)),
		),
		row.New(5).Add(
			col.New(6).Add(text.New(cleanText("Lugar: "+data.Info.DeliverySite), value)),
			col.New(6).Add(text.New(cleanText("Correo: "+data.Info.SalesEmail), value)),
		),
		row.New(4),
	)
}

// addSectionTitle draws a green banner row, one per report section.
func addSectionTitle(m core.Maroto, title string) {
	m.AddRows(row.New(3))
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(
				text.New("  "+cleanText(title), props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: &props.Color{Red: 255, Green: 255, Blue: 255},
					Top:   1,
				}),
			).WithStyle(&props.Cell{BackgroundColor: &pdfGreen}),
		),
	)
	m.AddRows(row.New(2))
}

// addSummaryTable draws the per-system subtotal table.
func addSummaryTable(m core.Maroto, data ExportData) {
	headerText := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center}
	headerCell := props.Cell{BackgroundColor: &props.Color{Red: 235, Green: 235, Blue: 235}}
	headerLeft := headerText
	headerLeft.Align = align.Left
	headerRight := headerText
	headerRight.Align = align.Right

	m.AddRows(
		row.New(7).Add(
			col.New(1).Add(text.New("N°", headerText)).WithStyle(&headerCell),
			col.New(8).Add(text.New("Sistema / Partida", headerLeft)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Monto ($)", headerRight)).WithStyle(&headerCell),
		),
	)

	cellText := props.Text{Size: 8, Align: align.Center}
	cellLeft := cellText
	cellLeft.Align = align.Left
	cellRight := cellText
	cellRight.Align = align.Right
	zebra := props.Cell{BackgroundColor: &props.Color{Red: 248, Green: 250, Blue: 248}}

	for i, sub := range data.Totals.Systems {
		numCol := col.New(1).Add(text.New(fmt.Sprintf("%d", i+1), cellText))
		sysCol := col.New(8).Add(text.New(cleanText(sub.System), cellLeft))
		amtCol := col.New(3).Add(text.New(FormatUSD(sub.Subtotal), cellRight))
		if i%2 == 1 {
			numCol = numCol.WithStyle(&zebra)
			sysCol = sysCol.WithStyle(&zebra)
			amtCol = amtCol.WithStyle(&zebra)
		}
		m.AddRows(row.New(6).Add(numCol, sysCol, amtCol))
	}
}

// addDetailTable draws the line items of one system plus its subtotal.
func addDetailTable(m core.Maroto, section SystemSection) {
	headerText := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center}
	headerCell := props.Cell{BackgroundColor: &props.Color{Red: 235, Green: 235, Blue: 235}}
	headerLeft := headerText
	headerLeft.Align = align.Left
	headerRight := headerText
	headerRight.Align = align.Right

	m.AddRows(
		row.New(7).Add(
			col.New(1).Add(text.New("N°", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Cód.", headerText)).WithStyle(&headerCell),
			col.New(5).Add(text.New("Descripción", headerLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Cant.", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("P.Unit ($)", headerRight)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Total ($)", headerRight)).WithStyle(&headerCell),
		),
	)

	cellText := props.Text{Size: 7, Align: align.Center}
	cellLeft := cellText
	cellLeft.Align = align.Left
	cellRight := cellText
	cellRight.Align = align.Right
	zebra := props.Cell{BackgroundColor: &props.Color{Red: 248, Green: 250, Blue: 248}}

	for i, it := range section.Rows {
		desc := it.Description
		if len(desc) > 60 {
			desc = desc[:60] + ".."
		}
		cols := []core.Col{
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.Item), cellText)),
			col.New(1).Add(text.New(cleanText(it.Code), cellText)),
			col.New(5).Add(text.New(cleanText(desc), cellLeft)),
			col.New(1).Add(text.New(FormatQty(it.Qty), cellText)),
			col.New(2).Add(text.New(FormatUSD(it.UnitPrice), cellRight)),
			col.New(2).Add(text.New(FormatUSD(it.Total), cellRight)),
		}
		if i%2 == 1 {
			for j := range cols {
				cols[j] = cols[j].WithStyle(&zebra)
			}
		}
		m.AddRows(row.New(6).Add(cols...))
	}

	m.AddRows(
		row.New(6).Add(
			col.New(9).Add(text.New("SUBTOTAL SISTEMA:", props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Align: align.Right,
				Color: &pdfGreen,
			})),
			col.New(3).Add(text.New(FormatUSD(section.Subtotal), props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Align: align.Right,
				Color: &pdfGreen,
			})),
		),
	)
}

// addFinancialTotals draws the net/tax/gross/cost-per-hectare block.
func addFinancialTotals(m core.Maroto, data ExportData) {
	label := props.Text{Size: 10, Align: align.Right}
	value := props.Text{Size: 10, Align: align.Right}

	m.AddRows(row.New(3))
	m.AddRows(
		row.New(6).Add(
			col.New(9).Add(text.New("TOTAL NETO (SIN IGV):", label)),
			col.New(3).Add(text.New(FormatUSD(data.Totals.Net), value)),
		),
		row.New(6).Add(
			col.New(9).Add(text.New(fmt.Sprintf("IGV (%.0f%%):", taxPercent(data.Totals)), label)),
			col.New(3).Add(text.New(FormatUSD(data.Totals.Tax), value)),
		),
		row.New(8).Add(
			col.New(9).Add(text.New("VALOR VENTA TOTAL:", props.Text{
				Size:  12,
				Style: fontstyle.Bold,
				Align: align.Right,
				Color: &pdfGreen,
			})),
			col.New(3).Add(text.New(FormatUSD(data.Totals.Gross), props.Text{
				Size:  12,
				Style: fontstyle.Bold,
				Align: align.Right,
				Color: &pdfGreen,
			})),
		),
		row.New(6).Add(
			col.New(9).Add(text.New(cleanText(fmt.Sprintf("COSTO POR HECTÁREA (%s Ha):", FormatQty(data.Info.AreaHa))), props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Right,
				Color: &pdfRed,
			})),
			col.New(3).Add(text.New(FormatUSD(data.Totals.CostPerHa), props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Right,
				Color: &pdfRed,
			})),
		),
	)
}

// taxPercent recovers the applied rate from the totals for display.
func taxPercent(t QuoteTotals) float64 {
	if t.Net != 0 {
		return t.Tax / t.Net * 100
	}
	return DefaultTaxRate * 100
}

// cleanText replaces runes outside latin-1 with '?'. The PDF core fonts
// cannot render them and would otherwise produce garbage glyphs.
func cleanText(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			r = '?'
		}
		out = append(out, r)
	}
	return string(out)
}
