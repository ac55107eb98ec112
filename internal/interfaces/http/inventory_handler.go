package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/report"
	"github.com/jhoicas/stockledger-api/internal/application/usecase"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP del snapshot de inventario.
type InventoryHandler struct {
	uc      *usecase.InventoryUseCase
	reports *report.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *usecase.InventoryUseCase, reports *report.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, reports: reports}
}

// List godoc
// @Summary      Listar inventario paginado
// @Tags         inventory
// @Produce      json
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        status       query  string  false  "active | inactive (default active)"
// @Param        limit        query  int     false  "Tamaño de página (default 50)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.InventoryListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	filter := repository.InventoryFilter{
		LocationID: c.Query("location_id"),
		ProductID:  c.Query("product_id"),
		Status:     c.Query("status"),
		Limit:      c.QueryInt("limit", 50),
		Offset:     c.QueryInt("offset"),
	}
	items, total, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}

	data := make([]dto.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		data = append(data, dto.NewInventoryItemResponse(item))
	}
	return c.JSON(dto.InventoryListResponse{
		Data:   data,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// Summary godoc
// @Summary      Resumen del snapshot de inventario
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  dto.InventorySummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/summary [get]
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.reports.InventorySummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// GetByID godoc
// @Summary      Obtener ítem de inventario por id
// @Tags         inventory
// @Produce      json
// @Param        id   path      string  true  "ID del ítem"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewInventoryItemResponse(item))
}

// Update godoc
// @Summary      Actualizar ítem de inventario
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del ítem"
// @Param        body  body  dto.UpdateInventoryRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewInventoryItemResponse(item))
}
