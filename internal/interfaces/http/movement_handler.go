package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/movement"
	"github.com/jhoicas/stockledger-api/internal/application/report"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// MovementHandler maneja las peticiones HTTP del ledger de movimientos.
type MovementHandler struct {
	uc      *movement.UseCase
	reports *report.UseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *movement.UseCase, reports *report.UseCase) *MovementHandler {
	return &MovementHandler{uc: uc, reports: reports}
}

// Create godoc
// @Summary      Registrar movimiento de stock
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "product_id, movement_type, quantity, reason; transfer exige location_from_id"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	mov, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementResponse(mov))
}

// RecordBulk godoc
// @Summary      Registrar movimientos por lotes
// @Description  Cada movimiento se inserta de forma independiente; los specs
//
//	inválidos se omiten y se devuelven solo los creados.
//
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkMovementsRequest  true  "Lista de specs de movimiento"
// @Success      201   {array}   dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movements/bulk [post]
func (h *MovementHandler) RecordBulk(c *fiber.Ctx) error {
	var in dto.BulkMovementsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	created, err := h.uc.RecordBulk(c.Context(), in.Movements)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementResponses(created))
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Produce      json
// @Param        product_id     query  string  false  "Filtrar por producto"
// @Param        movement_type  query  string  false  "in | out | transfer | adjustment | return | damaged | lost"
// @Param        location_id    query  string  false  "Coincide con origen o destino"
// @Param        days           query  int     false  "Últimos N días"
// @Param        limit          query  int     false  "Máximo de registros (default 100)"
// @Success      200  {array}   dto.MovementResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		ProductID:    c.Query("product_id"),
		MovementType: c.Query("movement_type"),
		LocationID:   c.Query("location_id"),
		Days:         c.QueryInt("days"),
		Limit:        c.QueryInt("limit"),
	}
	list, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewMovementResponses(list))
}

// Summary godoc
// @Summary      Resumen del ledger de movimientos
// @Tags         movements
// @Produce      json
// @Param        days  query  int  false  "Ventana en días (default 30)"
// @Success      200   {object}  dto.MovementSummaryDTO
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/movements/summary [get]
func (h *MovementHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.reports.MovementsSummary(c.Context(), c.QueryInt("days", 30))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// ByProduct godoc
// @Summary      Estadísticas de movimientos por producto
// @Tags         movements
// @Produce      json
// @Param        days  query  int  false  "Ventana en días (default 30)"
// @Success      200   {array}   dto.ProductMovementStatsDTO
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/movements/by-product [get]
func (h *MovementHandler) ByProduct(c *fiber.Ctx) error {
	stats, err := h.uc.StatsByProduct(c.Context(), c.QueryInt("days", 30))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// GetByID godoc
// @Summary      Obtener movimiento por id
// @Tags         movements
// @Produce      json
// @Param        id   path      string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	mov, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewMovementResponse(mov))
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Description  Hard delete; no reconcilia el snapshot de inventario.
// @Description  Idempotente: un id inexistente también responde 200.
// @Tags         movements
// @Produce      json
// @Param        id   path      string  true  "ID del movimiento"
// @Success      200  {object}  map[string]bool
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
