// Package pdf implementa la representación imprimible del resumen operativo
// de inventario (ajustes + movimientos) usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación + ventana de días      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  AJUSTES: totales por estado, por tipo, impacto en costo     │
//	│  MOVIMIENTOS: totales in/out, valor, buckets temporales      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: razones principales (razón | conteo | cant | %)      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.SummaryPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

var _ report.SummaryPDFGenerator = (*MarotoReportGenerator)(nil)

// GenerateSummaryPDF genera el PDF del resumen y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateSummaryPDF(_ context.Context, data report.SummaryReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitleRow("LEDGER DE AJUSTES"))
	m.AddRows(adjustmentRows(data.Adjustments)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitleRow(fmt.Sprintf("LEDGER DE MOVIMIENTOS (últimos %d días)", data.Days)))
	m.AddRows(movementRows(data.Movements)...)

	if len(data.TopReasons) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(sectionTitleRow("RAZONES PRINCIPALES DE AJUSTE"))
		m.AddRows(reasonHeaderRow())
		for _, r := range reasonRows(data.TopReasons) {
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

// headerRow: título (izq) y fecha de generación (der).
func headerRow(data report.SummaryReportData) core.Row {
	fecha := data.GeneratedAt.Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(7).Add(
			text.New("RESUMEN DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Ajustes y movimientos de stock", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

// statRow: par etiqueta/valor a dos columnas.
func statRow(label1, value1, label2, value2 string) core.Row {
	labelText := func(s string) core.Component {
		return text.New(s, props.Text{Size: 8, Color: colorGray, Top: 1})
	}
	valueText := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1, Right: 4})
	}
	return row.New(6).Add(
		col.New(4).Add(labelText(label1)),
		col.New(2).Add(valueText(value1)),
		col.New(4).Add(labelText(label2)),
		col.New(2).Add(valueText(value2)),
	)
}

func adjustmentRows(s dto.AdjustmentSummaryDTO) []core.Row {
	return []core.Row{
		statRow(
			"Total de ajustes", strconv.Itoa(s.TotalAdjustments),
			"Impacto en costo", "$"+s.TotalCostImpact.StringFixed(2),
		),
		statRow(
			"Pendientes", strconv.Itoa(s.PendingAdjustments),
			"Aprobados", strconv.Itoa(s.ApprovedAdjustments),
		),
		statRow(
			"Rechazados", strconv.Itoa(s.RejectedAdjustments),
			"Incrementos / Decrementos",
			fmt.Sprintf("%d / %d", s.TotalIncreases, s.TotalDecreases),
		),
		statRow(
			"Hoy", strconv.Itoa(s.AdjustmentsToday),
			"Esta semana / mes",
			fmt.Sprintf("%d / %d", s.AdjustmentsThisWeek, s.AdjustmentsThisMonth),
		),
	}
}

func movementRows(s dto.MovementSummaryDTO) []core.Row {
	return []core.Row{
		statRow(
			"Total de movimientos", strconv.Itoa(s.TotalMovements),
			"Valor total", "$"+s.TotalValue.StringFixed(2),
		),
		statRow(
			"Entradas (unidades)", strconv.FormatInt(s.TotalStockIn, 10),
			"Salidas (unidades)", strconv.FormatInt(s.TotalStockOut, 10),
		),
		statRow(
			"Hoy", strconv.Itoa(s.MovementsToday),
			"Esta semana / mes",
			fmt.Sprintf("%d / %d", s.MovementsThisWeek, s.MovementsThisMonth),
		),
	}
}

// reasonHeaderRow: cabecera de la tabla de razones.
func reasonHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Razón", 6, align.Left),
		h("Ajustes", 2, align.Right),
		h("Cantidad", 2, align.Right),
		h("%", 2, align.Right),
	)
}

// reasonRows: una fila por razón, en el orden recibido.
func reasonRows(reasons []dto.ReasonStatsDTO) []core.Row {
	result := make([]core.Row, 0, len(reasons))
	for _, r := range reasons {
		result = append(result, row.New(5).Add(
			col.New(6).Add(text.New(r.Reason, props.Text{Size: 8, Top: 0.5})),
			col.New(2).Add(text.New(strconv.Itoa(r.Count), props.Text{
				Size: 8, Align: align.Right, Top: 0.5,
			})),
			col.New(2).Add(text.New(strconv.FormatInt(r.TotalQuantity, 10), props.Text{
				Size: 8, Align: align.Right, Top: 0.5,
			})),
			col.New(2).Add(text.New(fmt.Sprintf("%.1f%%", r.Percentage), props.Text{
				Size: 8, Align: align.Right, Top: 0.5,
			})),
		))
	}
	return result
}
