// Package pdf implementa el render del reporte de reposición con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Stock | Mín | Sugerido | Estado │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de SKUs bajo mínimo                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/alfamart-stock-api/internal/application/report"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// Ensure MarotoReportGenerator implements report.PDFGenerator.
var _ report.PDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateLowStockPDF genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateLowStockPDF(
	_ context.Context,
	items []report.LowStockItem,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Reposición de Stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, item := range items {
		m.AddRows(itemRow(item))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(items)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y fecha de generación (der).
func headerRow(generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Reporte de Reposición de Stock", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Top: 4, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary}
	return row.New(8).Add(
		col.New(2).Add(text.New("Código", header)),
		col.New(4).Add(text.New("Producto", header)),
		col.New(1).Add(text.New("Stock", header)),
		col.New(1).Add(text.New("Mín", header)),
		col.New(2).Add(text.New("Sugerido", header)),
		col.New(2).Add(text.New("Estado", header)),
	)
}

func itemRow(item report.LowStockItem) core.Row {
	cell := props.Text{Size: 8, Top: 1}
	statusProps := props.Text{Size: 8, Top: 1}
	if item.Status == "OUT_OF_STOCK" {
		statusProps.Color = colorAlert
		statusProps.Style = fontstyle.Bold
	}
	return row.New(6).Add(
		col.New(2).Add(text.New(item.Code, cell)),
		col.New(4).Add(text.New(item.Name, cell)),
		col.New(1).Add(text.New(fmt.Sprintf("%d", item.StockQuantity), cell)),
		col.New(1).Add(text.New(fmt.Sprintf("%d", item.MinimumStock), cell)),
		col.New(2).Add(text.New(fmt.Sprintf("%d", item.SuggestedQty), cell)),
		col.New(2).Add(text.New(item.Status, statusProps)),
	)
}

func footerRow(total int) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Total de SKUs bajo mínimo: %d", total), props.Text{
				Size: 9, Top: 2, Color: colorGray,
			}),
		),
	)
}
