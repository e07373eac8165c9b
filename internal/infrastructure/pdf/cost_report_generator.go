// Package pdf implementa el reporte imprimible del libro de costos de una
// orden de trabajo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + NIT  │  Código de orden + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORDEN: Título / Estado / Prioridad / Responsable            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Origen | Total         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Líneas / Promedio por línea / TOTAL                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Subtotales por usuario creador                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
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

	"github.com/jhoicas/Mantenix-api/internal/domain/costs"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// CostReportGenerator genera el PDF del libro de costos usando Maroto v2.
type CostReportGenerator struct{}

// NewCostReportGenerator construye el generador.
func NewCostReportGenerator() *CostReportGenerator { return &CostReportGenerator{} }

// GenerateCostReport genera el PDF y devuelve sus bytes.
func (g *CostReportGenerator) GenerateCostReport(
	_ context.Context,
	company *entity.Company,
	workOrder *entity.WorkOrder,
	items []*entity.CostItem,
	summary *costs.Summary,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de costos "+workOrder.Code, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, workOrder))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(orderRow(workOrder))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(summary))

	if len(summary.ByCreator) > 1 {
		m.AddRows(line.NewRow(3))
		for _, r := range creatorRows(summary) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + NIT (izq) y código de orden + fecha (der).
func headerRow(company *entity.Company, wo *entity.WorkOrder) core.Row {
	fecha := time.Now().Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+company.NIT, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE COSTOS DE MANTENIMIENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(wo.Code, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// orderRow: datos de la orden de trabajo.
func orderRow(wo *entity.WorkOrder) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("ORDEN DE TRABAJO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(wo.Title, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Estado: %s   |   Prioridad: %s   |   Responsable: %s",
				wo.Status, wo.Priority, nonEmpty(wo.AssignedTo, "sin asignar"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas de costo.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Origen", 1, align.Center),
		h("Total", 3, align.Right),
	)
}

// tableItemRows: una fila por línea de costo. Las líneas vinculadas a
// inventario se marcan en la columna Origen.
func tableItemRows(items []*entity.CostItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		origen := "manual"
		if it.IsInventoryLinked() {
			origen = "bodega"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				it.Quantity.StringFixed(0),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatCents(it.UnitPriceCents),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				origen,
				props.Text{Size: 7, Align: align.Center, Top: 1, Color: colorGray},
			)),
			col.New(3).Add(text.New(
				"$"+formatCents(it.TotalCents),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(s *costs.Summary) core.Row {
	label := func(txt string) core.Component {
		return text.New(txt, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(txt string) core.Component {
		return text.New(txt, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(txt string) core.Component {
		return text.New(txt, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(txt string) core.Component {
		return text.New(txt, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Líneas:"),
			label("Promedio por línea:"),
			grandLabel("TOTAL:"),
		),
		col.New(3).Add(
			value(strconv.Itoa(s.TotalItems)),
			value("$"+formatCents(s.AverageItemCostCents)),
			grandValue("$"+formatCents(s.TotalCostCents)),
		),
		col.New(3),
	)
}

// creatorRows: subtotales por usuario creador.
func creatorRows(s *costs.Summary) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("SUBTOTALES POR USUARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for createdBy, r := range s.ByCreator {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(createdBy, props.Text{Size: 8, Top: 1, Left: 2})),
			col.New(3).Add(text.New(
				fmt.Sprintf("%d líneas", r.ItemCount),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatCents(r.TotalCents),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatCents convierte centavos a pesos con puntos de miles y dos decimales.
// Ej: 2500000 → "25.000,00"
func formatCents(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := strconv.FormatInt(cents/100, 10)
	frac := fmt.Sprintf("%02d", cents%100)

	n := len(whole)
	buf := make([]byte, 0, n+n/3+3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, whole[i])
	}
	out := string(buf) + "," + frac
	if neg {
		return "-" + out
	}
	return out
}
