// Package pdf implementa la generación del reporte PDF del dashboard de
// solicitudes.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Mes en curso                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: totales por estado + % completado + este mes      │
//	│  PRIORIDADES: alta / media / baja                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Últimas solicitudes (cliente, landing, estado, ...) │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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

	"github.com/jhoicas/solicitudes-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateStatsPDF genera el reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStatsPDF(stats *dto.DashboardStatsDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Solicitudes", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(stats))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(stats))
	m.AddRows(prioridadesRow(stats))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(stats.UltimasSolicitudes) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título del reporte (izq) y mes en curso (der).
func headerRow(stats *dto.DashboardStatsDTO) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New("REPORTE DE SOLICITUDES", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Landing pages en producción", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(stats.MesLabel, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 3,
			}),
		),
	)
}

// summaryRow: contadores por estado + total + % completado.
func summaryRow(stats *dto.DashboardStatsDTO) core.Row {
	counter := func(label string, v int) core.Col {
		return col.New(2).Add(
			text.New(fmt.Sprintf("%d", v), props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center,
				Color: colorPrimary, Top: 1,
			}),
			text.New(label, props.Text{
				Size: 7, Align: align.Center, Top: 10, Color: colorGray,
			}),
		)
	}
	return row.New(18).Add(
		counter("Total", stats.TotalSolicitudes),
		counter("Pendientes", stats.SolicitudesPendientes),
		counter("En diseño", stats.SolicitudesEnDiseno),
		counter("En programación", stats.SolicitudesEnProgramacion),
		counter("Completadas", stats.SolicitudesCompletadas),
		col.New(2).Add(
			text.New(fmt.Sprintf("%.1f%%", stats.PromedioCompletado), props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Completado", props.Text{
				Size: 7, Align: align.Center, Top: 10, Color: colorGray,
			}),
		),
	)
}

// prioridadesRow: desglose por prioridad + solicitudes del mes.
func prioridadesRow(stats *dto.DashboardStatsDTO) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf(
				"Por prioridad:  alta %d  |  media %d  |  baja %d        Creadas este mes: %d",
				stats.SolicitudesPorPrioridad["alta"],
				stats.SolicitudesPorPrioridad["media"],
				stats.SolicitudesPorPrioridad["baja"],
				stats.SolicitudesEsteMes,
			), props.Text{Size: 9, Top: 2, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de últimas solicitudes.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cliente", 3, align.Left),
		h("Landing", 3, align.Left),
		h("Estado", 2, align.Center),
		h("Prioridad", 1, align.Center),
		h("Fecha", 2, align.Center),
		h("Creada por", 1, align.Left),
	)
}

// tableDetailRows: una fila por solicitud reciente.
func tableDetailRows(ultimas []dto.UltimaSolicitudDTO) []core.Row {
	result := make([]core.Row, 0, len(ultimas))
	for _, s := range ultimas {
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(
				s.NombreCliente,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				s.NombreLanding,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				s.Estado,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				s.Prioridad,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				s.FechaCreacion.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				s.UserName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}
