package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del flujo de aprobación de ajustes.
// Transiciones permitidas: pending→approved, pending→rejected.
// Los estados terminales son inmutables salvo el append de notas de aprobación.
const (
	AdjustmentStatusPending  = "pending"
	AdjustmentStatusApproved = "approved"
	AdjustmentStatusRejected = "rejected"
)

// Tipos de ajuste de inventario.
const (
	AdjustmentTypeIncrease = "increase"
	AdjustmentTypeDecrease = "decrease"
	AdjustmentTypeRecount  = "recount"
)

// Ubicación canónica usada cuando el ajuste no indica bodega.
const DefaultLocation = "Main Warehouse"

// StockAdjustment representa una corrección manual de la cantidad registrada
// de un producto en una ubicación. Nunca se elimina en el flujo normal: el
// historial de correcciones es parte de la pista de auditoría.
type StockAdjustment struct {
	ID             string
	ProductID      string
	AdjustmentType string
	Reason         string
	QuantityBefore int64
	QuantityAfter  int64
	// QuantityChange siempre es QuantityAfter - QuantityBefore (se calcula al crear).
	QuantityChange int64
	Location       string
	Reference      string
	Notes          string
	CreatedBy      string
	Status         string
	ApprovedBy     string
	ApprovedAt     *time.Time
	CostImpact     decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Campos del producto referenciado (join de lectura; no se persisten aquí).
	ProductName    string
	ProductSKU     string
	ProductBarcode string
}

// IsTerminal indica si el ajuste ya fue aprobado o rechazado.
func (a *StockAdjustment) IsTerminal() bool {
	return a.Status == AdjustmentStatusApproved || a.Status == AdjustmentStatusRejected
}
