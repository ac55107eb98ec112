package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario. La dirección la codifica el tipo:
// la cantidad es siempre no negativa, también para transfer (convención única,
// validada al crear).
const (
	MovementTypeIn       = "in"
	MovementTypeOut      = "out"
	MovementTypeTransfer = "transfer"
	MovementTypeAdjust   = "adjustment"
	MovementTypeReturn   = "return"
	MovementTypeDamaged  = "damaged"
	MovementTypeLost     = "lost"
)

// Estados de un movimiento: completed si se auto-procesó al crear, pending si no.
const (
	MovementStatusPending   = "pending"
	MovementStatusCompleted = "completed"
)

// Identificador y nombre canónicos de la bodega principal, usados cuando el
// movimiento no indica ubicación destino.
const (
	MainWarehouseID   = "main_warehouse"
	MainWarehouseName = "Main Warehouse"
)

// StockMovement representa una transferencia direccional de cantidad (entrada,
// salida o traslado entre ubicaciones) en el ledger de movimientos. El ledger es
// append-oriented: borrar un movimiento NO revierte su efecto sobre el snapshot
// de inventario (esa reconciliación es responsabilidad externa).
type StockMovement struct {
	ID           string
	ProductID    string
	MovementType string
	Quantity     int64
	Reason       string

	LocationFromID   string
	LocationFromName string
	LocationToID     string
	LocationToName   string

	UnitCost decimal.Decimal

	// Enlace opcional a la entidad que originó el movimiento (orden, ajuste...).
	ReferenceType   string
	ReferenceID     string
	ReferenceNumber string

	Notes     string
	CreatedBy string
	Status    string
	CreatedAt time.Time

	// Campos del producto referenciado (join de lectura).
	ProductName    string
	ProductSKU     string
	ProductBarcode string
}

// ValidMovementType verifica que el tipo esté en el catálogo.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeTransfer,
		MovementTypeAdjust, MovementTypeReturn, MovementTypeDamaged, MovementTypeLost:
		return true
	}
	return false
}
