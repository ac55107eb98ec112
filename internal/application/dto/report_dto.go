package dto

import "github.com/shopspring/decimal"

// StatCardDTO métrica del dashboard con variación contra el período anterior.
type StatCardDTO struct {
	Value      decimal.Decimal `json:"value"`
	Change     int             `json:"change"`
	ChangeType string          `json:"changeType"` // increase | decrease
}

// DashboardStatsDTO métricas principales del dashboard.
type DashboardStatsDTO struct {
	TotalProducts  StatCardDTO `json:"totalProducts"`
	InventoryValue StatCardDTO `json:"revenue"`
	LowStockItems  StatCardDTO `json:"lowStockItems"`
}

// LowStockItemDTO ítem bajo el mínimo para la alerta del dashboard.
type LowStockItemDTO struct {
	ID             string         `json:"id"`
	ProductID      string         `json:"product_id"`
	QuantityOnHand int64          `json:"quantity_on_hand"`
	MinStockLevel  int64          `json:"min_stock_level"`
	Products       *ProductRefDTO `json:"products,omitempty"`
}
