package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// MovementFilter filtros para listar movimientos. LocationID coincide con
// cualquiera de los dos extremos (origen o destino). Days > 0 es la forma del
// transporte de pedir los últimos N días: el usecase lo resuelve contra su
// reloj a CreatedAfter, que es lo que ejecuta el store.
type MovementFilter struct {
	ProductID    string
	MovementType string
	LocationID   string
	Days         int
	CreatedAfter time.Time
	Limit        int
}

// StockMovementRepository define el puerto de persistencia del ledger de movimientos.
// El ledger es append-oriented: Delete es un hard delete que NO reconcilia el
// snapshot de inventario. GetByID devuelve (nil, nil) si no existe; ListSince
// devuelve (nil, nil) si la tabla aún no existe.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
	ListSince(ctx context.Context, from time.Time) ([]*entity.StockMovement, error)
}
