package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// AdjustmentFilter filtros para listar ajustes. Los campos vacíos no filtran.
// Days > 0 es la forma del transporte de pedir los últimos N días: el usecase
// lo resuelve contra su reloj a CreatedAfter, que es lo que ejecuta el store.
type AdjustmentFilter struct {
	ProductID    string
	Type         string
	Reason       string
	Status       string
	Location     string
	CreatedBy    string
	Days         int
	CreatedAfter time.Time
	Limit        int
}

// ApprovalDecision datos de una decisión de aprobación aplicada a un ajuste.
type ApprovalDecision struct {
	Approved      bool
	ApprovedBy    string
	ApprovalNotes string
	DecidedAt     time.Time
}

// StockAdjustmentRepository define el puerto de persistencia del ledger de ajustes (DIP).
// Los métodos de lectura devuelven (nil, nil) cuando el registro no existe; ListAll
// devuelve (nil, nil) si la tabla aún no existe (el reporting lo trata como ledger vacío).
type StockAdjustmentRepository interface {
	Create(ctx context.Context, adjustment *entity.StockAdjustment) error
	GetByID(ctx context.Context, id string) (*entity.StockAdjustment, error)
	List(ctx context.Context, filter AdjustmentFilter) ([]*entity.StockAdjustment, error)
	ListAll(ctx context.Context) ([]*entity.StockAdjustment, error)
	Update(ctx context.Context, adjustment *entity.StockAdjustment) error
	// ApplyDecision ejecuta la transición pending→approved|rejected como un único
	// UPDATE condicionado a status='pending', con el append de notas del lado del
	// servidor (sin read-modify-write). Devuelve (nil, nil) si el ajuste no existe
	// o ya está en estado terminal.
	ApplyDecision(ctx context.Context, id string, decision ApprovalDecision) (*entity.StockAdjustment, error)
}
