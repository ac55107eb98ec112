package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// InventoryUseCase consultas y mantenimiento del snapshot de inventario por
// producto y ubicación. El snapshot NO se reconcilia aquí con los ledgers:
// borrar un movimiento no revierte su efecto (responsabilidad externa).
type InventoryUseCase struct {
	inventoryRepo repository.InventoryItemRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(inventoryRepo repository.InventoryItemRepository) *InventoryUseCase {
	return &InventoryUseCase{inventoryRepo: inventoryRepo}
}

// List devuelve una página del snapshot con el join del producto.
// Status por defecto "active"; limit por defecto 50.
func (uc *InventoryUseCase) List(ctx context.Context, filter repository.InventoryFilter) ([]*entity.InventoryItem, int64, error) {
	if filter.Status == "" {
		filter.Status = entity.InventoryStatusActive
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.inventoryRepo.List(ctx, filter)
}

// GetByID obtiene un ítem del snapshot.
func (uc *InventoryUseCase) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	item, err := uc.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: ítem de inventario %s", domain.ErrNotFound, id)
	}
	return item, nil
}

// Update aplica los campos presentes y repara min > max intercambiándolos
// (best-effort, igual que el invariante del modelo: no se rechaza la escritura).
func (uc *InventoryUseCase) Update(ctx context.Context, id string, in dto.UpdateInventoryRequest) (*entity.InventoryItem, error) {
	item, err := uc.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: ítem de inventario %s", domain.ErrNotFound, id)
	}

	if in.QuantityOnHand != nil {
		item.QuantityOnHand = *in.QuantityOnHand
	}
	if in.UnitCost != nil {
		item.UnitCost = *in.UnitCost
	}
	if in.MinStockLevel != nil {
		item.MinStockLevel = *in.MinStockLevel
	}
	if in.MaxStockLevel != nil {
		item.MaxStockLevel = *in.MaxStockLevel
	}
	if in.Status != nil {
		if *in.Status != entity.InventoryStatusActive && *in.Status != entity.InventoryStatusInactive {
			return nil, fmt.Errorf("%w: status %q desconocido", domain.ErrInvalidInput, *in.Status)
		}
		item.Status = *in.Status
	}
	item.RepairStockLevels()
	item.UpdatedAt = time.Now()

	if err := uc.inventoryRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("actualizar ítem de inventario: %w", err)
	}
	return item, nil
}
