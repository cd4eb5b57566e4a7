package ports

import "github.com/jhoicas/solicitudes-api/internal/application/dto"

// ReportPDFGenerator genera la representación PDF del resumen del dashboard.
type ReportPDFGenerator interface {
	GenerateStatsPDF(stats *dto.DashboardStatsDTO) ([]byte, error)
}
