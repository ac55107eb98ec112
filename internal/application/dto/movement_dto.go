package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// CreateMovementRequest spec de un movimiento, usado en POST /api/movements y
// como elemento de POST /api/movements/bulk. auto_process=true crea el
// movimiento ya en estado completed; si no, queda pending.
type CreateMovementRequest struct {
	ProductID        string           `json:"product_id"`
	MovementType     string           `json:"movement_type"`
	Quantity         int64            `json:"quantity"`
	Reason           string           `json:"reason"`
	LocationFromID   string           `json:"location_from_id,omitempty"`
	LocationFromName string           `json:"location_from_name,omitempty"`
	LocationToID     string           `json:"location_to_id,omitempty"`
	LocationToName   string           `json:"location_to_name,omitempty"`
	UnitCost         *decimal.Decimal `json:"unit_cost,omitempty"`
	ReferenceType    string           `json:"reference_type,omitempty"`
	ReferenceID      string           `json:"reference_id,omitempty"`
	ReferenceNumber  string           `json:"reference_number,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	CreatedBy        string           `json:"created_by,omitempty"`
	AutoProcess      bool             `json:"auto_process,omitempty"`
}

// BulkMovementsRequest body para POST /api/movements/bulk.
type BulkMovementsRequest struct {
	Movements []CreateMovementRequest `json:"movements"`
}

// MovementResponse registro del ledger de movimientos tal como lo expone la API.
type MovementResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	MovementType     string          `json:"movement_type"`
	Quantity         int64           `json:"quantity"`
	Reason           string          `json:"reason"`
	LocationFromID   string          `json:"location_from_id,omitempty"`
	LocationFromName string          `json:"location_from_name,omitempty"`
	LocationToID     string          `json:"location_to_id"`
	LocationToName   string          `json:"location_to_name"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	ReferenceType    string          `json:"reference_type,omitempty"`
	ReferenceID      string          `json:"reference_id,omitempty"`
	ReferenceNumber  string          `json:"reference_number,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	CreatedBy        string          `json:"created_by"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	Products         *ProductRefDTO  `json:"products,omitempty"`
}

// NewMovementResponse convierte la entidad al DTO de salida.
func NewMovementResponse(m *entity.StockMovement) MovementResponse {
	resp := MovementResponse{
		ID:               m.ID,
		ProductID:        m.ProductID,
		MovementType:     m.MovementType,
		Quantity:         m.Quantity,
		Reason:           m.Reason,
		LocationFromID:   m.LocationFromID,
		LocationFromName: m.LocationFromName,
		LocationToID:     m.LocationToID,
		LocationToName:   m.LocationToName,
		UnitCost:         m.UnitCost,
		ReferenceType:    m.ReferenceType,
		ReferenceID:      m.ReferenceID,
		ReferenceNumber:  m.ReferenceNumber,
		Notes:            m.Notes,
		CreatedBy:        m.CreatedBy,
		Status:           m.Status,
		CreatedAt:        m.CreatedAt,
	}
	if m.ProductName != "" || m.ProductSKU != "" {
		resp.Products = &ProductRefDTO{Name: m.ProductName, SKU: m.ProductSKU, Barcode: m.ProductBarcode}
	}
	return resp
}

// NewMovementResponses convierte una lista de entidades, preservando el orden.
func NewMovementResponses(list []*entity.StockMovement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, NewMovementResponse(m))
	}
	return out
}

// MovementSummaryDTO resumen agregado del ledger de movimientos en una ventana
// de N días. TotalValue = Σ cantidad × costo unitario de todos los movimientos.
type MovementSummaryDTO struct {
	TotalMovements     int             `json:"totalMovements"`
	TotalStockIn       int64           `json:"totalStockIn"`
	TotalStockOut      int64           `json:"totalStockOut"`
	TotalValue         decimal.Decimal `json:"totalValue"`
	MovementsToday     int             `json:"movementsToday"`
	MovementsThisWeek  int             `json:"movementsThisWeek"`
	MovementsThisMonth int             `json:"movementsThisMonth"`
}

// ProductMovementStatsDTO re-derivación por producto del ledger de movimientos:
// netMovement = totalIn - totalOut; movementCount cuenta movimientos de todo tipo.
type ProductMovementStatsDTO struct {
	ProductID     string    `json:"productId"`
	ProductName   string    `json:"productName"`
	ProductSKU    string    `json:"productSku"`
	TotalIn       int64     `json:"totalIn"`
	TotalOut      int64     `json:"totalOut"`
	NetMovement   int64     `json:"netMovement"`
	LastMovement  time.Time `json:"lastMovement"`
	MovementCount int       `json:"movementCount"`
}
