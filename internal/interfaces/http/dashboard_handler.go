package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockledger-api/internal/application/report"
)

// DashboardHandler métricas de cabecera y alertas del dashboard.
type DashboardHandler struct {
	reports *report.UseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(reports *report.UseCase) *DashboardHandler {
	return &DashboardHandler{reports: reports}
}

// Stats godoc
// @Summary      Métricas del dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.reports.DashboardStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// LowStock godoc
// @Summary      Ítems bajo el mínimo
// @Tags         dashboard
// @Produce      json
// @Param        limit  query  int  false  "Máximo de ítems (default 50)"
// @Success      200    {array}   dto.LowStockItemDTO
// @Failure      500    {object}  dto.ErrorResponse
// @Router       /api/dashboard/low-stock [get]
func (h *DashboardHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.reports.LowStock(c.Context(), c.QueryInt("limit", 50))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}
