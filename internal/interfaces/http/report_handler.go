package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockledger-api/internal/application/report"
)

// ReportHandler descargas de reportes (PDF y XLSX).
type ReportHandler struct {
	reports *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reports *report.UseCase) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// SummaryPDF godoc
// @Summary      Resumen de inventario en PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        days  query  int  false  "Ventana de movimientos en días (default 30)"
// @Success      200   {file}    binary
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/reports/summary/pdf [get]
func (h *ReportHandler) SummaryPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.reports.SummaryPDF(c.Context(), c.QueryInt("days", 30))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory-summary.pdf"`)
	return c.Send(pdfBytes)
}

// MovementsExport godoc
// @Summary      Ledger de movimientos en XLSX
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        days  query  int  false  "Ventana en días (default 30)"
// @Success      200   {file}    binary
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/reports/movements/export [get]
func (h *ReportHandler) MovementsExport(c *fiber.Ctx) error {
	xlsxBytes, err := h.reports.MovementsXLSX(c.Context(), c.QueryInt("days", 30))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock-movements.xlsx"`)
	return c.Send(xlsxBytes)
}
