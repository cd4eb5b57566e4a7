package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/solicitudes-api/internal/application/analytics"
	"github.com/jhoicas/solicitudes-api/internal/application/dto"
	"github.com/jhoicas/solicitudes-api/internal/application/ports"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc  *analytics.DashboardUseCase
	pdf ports.ReportPDFGenerator
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase, pdf ports.ReportPDFGenerator) *DashboardHandler {
	return &DashboardHandler{uc: uc, pdf: pdf}
}

// GetStats devuelve el resumen operativo: totales por estado y prioridad,
// solicitudes del mes en curso, últimas 5 y porcentaje completado.
// GET /api/dashboard
//
// No requiere parámetros; el mes se calcula en el servidor.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(stats)
}

// GetReportPDF genera el mismo resumen como PDF descargable.
// GET /api/dashboard/reporte.pdf
func (h *DashboardHandler) GetReportPDF(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	doc, err := h.pdf.GenerateStatsPDF(stats)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "error generando el reporte",
		})
	}
	filename := fmt.Sprintf("reporte-solicitudes-%s.pdf", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(doc)
}
