package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un ítem de inventario.
const (
	InventoryStatusActive   = "active"
	InventoryStatusInactive = "inactive"
)

// InventoryItem es el snapshot de cantidad disponible por producto y ubicación,
// distinto de los ledgers (movimientos/ajustes) que lo producen. Varios ítems
// pueden referenciar el mismo producto (uno por ubicación).
type InventoryItem struct {
	ID             string
	ProductID      string
	QuantityOnHand int64
	UnitCost       decimal.Decimal
	MinStockLevel  int64
	MaxStockLevel  int64
	LocationID     string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Campos del producto referenciado (join de lectura).
	ProductName    string
	ProductSKU     string
	ProductBarcode string
}

// IsLowStock indica si la cantidad disponible está en o bajo el mínimo.
func (i *InventoryItem) IsLowStock() bool {
	return i.MinStockLevel > 0 && i.QuantityOnHand <= i.MinStockLevel
}

// IsOutOfStock indica si no hay existencias.
func (i *InventoryItem) IsOutOfStock() bool {
	return i.QuantityOnHand <= 0
}

// RepairStockLevels repara min > max intercambiándolos (best-effort, no se
// rechaza la escritura; el invariante min ≤ max no se garantiza transaccionalmente).
func (i *InventoryItem) RepairStockLevels() {
	if i.MaxStockLevel > 0 && i.MinStockLevel > i.MaxStockLevel {
		i.MinStockLevel, i.MaxStockLevel = i.MaxStockLevel, i.MinStockLevel
	}
}
