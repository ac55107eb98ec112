package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product es la entidad raíz del inventario. Ajustes, movimientos e ítems de
// inventario la referencian por FK sin acoplamiento transaccional: deben tolerar
// que el producto sea actualizado concurrentemente en otro request.
type Product struct {
	ID           string
	Name         string
	SKU          string
	Barcode      string
	Category     string
	SellingPrice decimal.Decimal
	CostPrice    decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProductRef es la proyección mínima del producto que se adjunta a registros
// de los ledgers en las lecturas (nombre, SKU y código de barras).
type ProductRef struct {
	ID      string
	Name    string
	SKU     string
	Barcode string
}
