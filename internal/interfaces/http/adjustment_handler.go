package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockledger-api/internal/application/adjustment"
	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/report"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// AdjustmentHandler maneja las peticiones HTTP del ledger de ajustes.
type AdjustmentHandler struct {
	uc      *adjustment.UseCase
	reports *report.UseCase
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(uc *adjustment.UseCase, reports *report.UseCase) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc, reports: reports}
}

// Create godoc
// @Summary      Registrar ajuste de inventario
// @Tags         adjustments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdjustmentRequest  true  "product_id, adjustment_type, reason, quantity_before, quantity_after"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/adjustments [post]
func (h *AdjustmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	adj, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewAdjustmentResponse(adj))
}

// List godoc
// @Summary      Listar ajustes
// @Tags         adjustments
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        type        query  string  false  "increase | decrease | recount"
// @Param        reason      query  string  false  "Filtrar por razón"
// @Param        status      query  string  false  "pending | approved | rejected"
// @Param        location    query  string  false  "Filtrar por ubicación"
// @Param        created_by  query  string  false  "Filtrar por autor"
// @Param        days        query  int     false  "Últimos N días"
// @Param        limit       query  int     false  "Máximo de registros (default 100)"
// @Success      200  {array}   dto.AdjustmentResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/adjustments [get]
func (h *AdjustmentHandler) List(c *fiber.Ctx) error {
	filter := repository.AdjustmentFilter{
		ProductID: c.Query("product_id"),
		Type:      c.Query("type"),
		Reason:    c.Query("reason"),
		Status:    c.Query("status"),
		Location:  c.Query("location"),
		CreatedBy: c.Query("created_by"),
		Days:      c.QueryInt("days"),
		Limit:     c.QueryInt("limit"),
	}
	list, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewAdjustmentResponses(list))
}

// GetByID godoc
// @Summary      Obtener ajuste por id
// @Tags         adjustments
// @Produce      json
// @Param        id   path      string  true  "ID del ajuste"
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/adjustments/{id} [get]
func (h *AdjustmentHandler) GetByID(c *fiber.Ctx) error {
	adj, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewAdjustmentResponse(adj))
}

// Update godoc
// @Summary      Modificar ajuste
// @Description  Los ajustes en estado terminal son inmutables salvo las notas.
// @Tags         adjustments
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del ajuste"
// @Param        body  body  dto.UpdateAdjustmentRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/adjustments/{id} [put]
func (h *AdjustmentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	adj, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewAdjustmentResponse(adj))
}

// Approve godoc
// @Summary      Aprobar o rechazar ajustes por lotes
// @Description  Aplica la misma decisión a cada id de forma independiente; los
//
//	fallos parciales se omiten y se devuelven solo los actualizados.
//
// @Tags         adjustments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApproveAdjustmentsRequest  true  "adjustmentIds, approved, approvalNotes, approvedBy"
// @Success      200   {array}   dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/adjustments/approve [post]
func (h *AdjustmentHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApproveAdjustmentsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	result, err := h.uc.Approve(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewAdjustmentResponses(result.Updated))
}

// Summary godoc
// @Summary      Resumen del ledger de ajustes
// @Tags         adjustments
// @Produce      json
// @Success      200  {object}  dto.AdjustmentSummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/adjustments/summary [get]
func (h *AdjustmentHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.reports.AdjustmentsSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// ByReason godoc
// @Summary      Desglose de ajustes por razón
// @Tags         adjustments
// @Produce      json
// @Success      200  {array}   dto.ReasonStatsDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/adjustments/by-reason [get]
func (h *AdjustmentHandler) ByReason(c *fiber.Ctx) error {
	stats, err := h.reports.AdjustmentsByReason(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// ByProduct godoc
// @Summary      Agregación de ajustes por producto
// @Tags         adjustments
// @Produce      json
// @Param        days  query  int  false  "Ventana en días (default 30)"
// @Success      200   {array}   dto.AdjustmentProductStatsDTO
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/adjustments/by-product [get]
func (h *AdjustmentHandler) ByProduct(c *fiber.Ctx) error {
	stats, err := h.reports.AdjustmentsByProduct(c.Context(), c.QueryInt("days", 30))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
