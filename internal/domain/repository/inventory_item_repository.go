package repository

import (
	"context"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// InventoryFilter filtros para listar el snapshot de inventario.
type InventoryFilter struct {
	LocationID string
	ProductID  string
	Status     string
	Limit      int
	Offset     int
}

// InventoryItemRepository define el puerto de persistencia del snapshot de
// inventario por producto y ubicación.
type InventoryItemRepository interface {
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// List devuelve la página y el total de ítems que cumplen el filtro.
	List(ctx context.Context, filter InventoryFilter) ([]*entity.InventoryItem, int64, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	// ListActive devuelve todos los ítems activos (para agregaciones de resumen).
	ListActive(ctx context.Context) ([]*entity.InventoryItem, error)
	// ListLowStock devuelve ítems con min_stock_level > 0 y cantidad en o bajo el
	// mínimo, ordenados por cantidad ascendente (los más críticos primero).
	ListLowStock(ctx context.Context, limit int) ([]*entity.InventoryItem, error)
}
