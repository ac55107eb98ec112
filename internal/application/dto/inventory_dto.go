package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// InventoryItemResponse ítem del snapshot de inventario tal como lo expone la API.
type InventoryItemResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	QuantityOnHand int64           `json:"quantity_on_hand"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	MinStockLevel  int64           `json:"min_stock_level"`
	MaxStockLevel  int64           `json:"max_stock_level"`
	LocationID     string          `json:"location_id"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Products       *ProductRefDTO  `json:"products,omitempty"`
}

// NewInventoryItemResponse convierte la entidad al DTO de salida.
func NewInventoryItemResponse(i *entity.InventoryItem) InventoryItemResponse {
	resp := InventoryItemResponse{
		ID:             i.ID,
		ProductID:      i.ProductID,
		QuantityOnHand: i.QuantityOnHand,
		UnitCost:       i.UnitCost,
		MinStockLevel:  i.MinStockLevel,
		MaxStockLevel:  i.MaxStockLevel,
		LocationID:     i.LocationID,
		Status:         i.Status,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
	if i.ProductName != "" || i.ProductSKU != "" {
		resp.Products = &ProductRefDTO{Name: i.ProductName, SKU: i.ProductSKU, Barcode: i.ProductBarcode}
	}
	return resp
}

// InventoryListResponse página del listado de inventario.
type InventoryListResponse struct {
	Data   []InventoryItemResponse `json:"data"`
	Total  int64                   `json:"total"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
}

// UpdateInventoryRequest body para PUT /api/inventory/:id. Campos ausentes no cambian.
type UpdateInventoryRequest struct {
	QuantityOnHand *int64           `json:"quantity_on_hand,omitempty"`
	UnitCost       *decimal.Decimal `json:"unit_cost,omitempty"`
	MinStockLevel  *int64           `json:"min_stock_level,omitempty"`
	MaxStockLevel  *int64           `json:"max_stock_level,omitempty"`
	Status         *string          `json:"status,omitempty"`
}

// InventorySummaryDTO resumen del snapshot sobre los ítems activos.
// low stock = cantidad ≤ min_stock_level; out of stock = cantidad ≤ 0.
type InventorySummaryDTO struct {
	TotalItems      int             `json:"total_items"`
	TotalValue      decimal.Decimal `json:"total_value"`
	LowStockCount   int             `json:"low_stock_count"`
	OutOfStockCount int             `json:"out_of_stock_count"`
	TotalLocations  int             `json:"total_locations"`
}
