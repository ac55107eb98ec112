package repository

import (
	"context"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para productos.
// GetByID y GetRef devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetRef(ctx context.Context, id string) (*entity.ProductRef, error)
	Count(ctx context.Context) (int64, error)
}
