package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockledger-api/internal/application/adjustment"
	"github.com/jhoicas/stockledger-api/internal/application/movement"
	"github.com/jhoicas/stockledger-api/internal/application/report"
	"github.com/jhoicas/stockledger-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AdjustmentUC *adjustment.UseCase
	MovementUC   *movement.UseCase
	InventoryUC  *usecase.InventoryUseCase
	ReportUC     *report.UseCase
}

// Router registra las rutas de la API. Las rutas estáticas van antes que las de
// parámetro para que /approve, /summary, etc. no se capturen como :id.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Ajustes
	adjustments := api.Group("/adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC, deps.ReportUC)
	adjustments.Post("/", adjustmentHandler.Create)
	adjustments.Get("/", adjustmentHandler.List)
	adjustments.Post("/approve", adjustmentHandler.Approve)
	adjustments.Get("/summary", adjustmentHandler.Summary)
	adjustments.Get("/by-reason", adjustmentHandler.ByReason)
	adjustments.Get("/by-product", adjustmentHandler.ByProduct)
	adjustments.Get("/:id", adjustmentHandler.GetByID)
	adjustments.Put("/:id", adjustmentHandler.Update)

	// Movimientos
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC, deps.ReportUC)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)
	movements.Post("/bulk", movementHandler.RecordBulk)
	movements.Get("/summary", movementHandler.Summary)
	movements.Get("/by-product", movementHandler.ByProduct)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Delete("/:id", movementHandler.Delete)

	// Inventario
	inventory := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.ReportUC)
	inventory.Get("/", inventoryHandler.List)
	inventory.Get("/summary", inventoryHandler.Summary)
	inventory.Get("/:id", inventoryHandler.GetByID)
	inventory.Put("/:id", inventoryHandler.Update)

	// Dashboard
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.ReportUC)
	dashboard.Get("/stats", dashboardHandler.Stats)
	dashboard.Get("/low-stock", dashboardHandler.LowStock)

	// Reportes descargables
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/summary/pdf", reportHandler.SummaryPDF)
	reports.Get("/movements/export", reportHandler.MovementsExport)
}
