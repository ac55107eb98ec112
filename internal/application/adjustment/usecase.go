package adjustment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
	"github.com/jhoicas/stockledger-api/pkg/logger"
)

// UseCase motor del flujo de ajustes de inventario: registra correcciones de
// cantidad con su delta auditable (before/after) y tramita la aprobación por lotes.
type UseCase struct {
	adjustmentRepo repository.StockAdjustmentRepository
	productRepo    repository.ProductRepository
	log            *logger.Logger
	nowFn          func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	adjustmentRepo repository.StockAdjustmentRepository,
	productRepo repository.ProductRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		adjustmentRepo: adjustmentRepo,
		productRepo:    productRepo,
		log:            log,
		nowFn:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(nowFn func() time.Time) *UseCase {
	uc.nowFn = nowFn
	return uc
}

// Create valida y persiste un ajuste. quantity_change se calcula siempre como
// quantity_after - quantity_before; el registro sale enriquecido con nombre,
// SKU y código de barras del producto.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateAdjustmentRequest) (*entity.StockAdjustment, error) {
	if in.ProductID == "" {
		return nil, fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
	}
	if in.AdjustmentType == "" {
		return nil, fmt.Errorf("%w: adjustment_type es obligatorio", domain.ErrInvalidInput)
	}
	if in.Reason == "" {
		return nil, fmt.Errorf("%w: reason es obligatorio", domain.ErrInvalidInput)
	}
	if in.QuantityBefore == nil || in.QuantityAfter == nil {
		return nil, fmt.Errorf("%w: quantity_before y quantity_after son obligatorios", domain.ErrInvalidInput)
	}

	// El producto debe existir; la referencia no es transaccional pero sí validada al crear.
	ref, err := uc.productRepo.GetRef(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("verificar producto: %w", err)
	}
	if ref == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
	}

	now := uc.nowFn()
	adj := &entity.StockAdjustment{
		ID:             uuid.New().String(),
		ProductID:      in.ProductID,
		AdjustmentType: in.AdjustmentType,
		Reason:         in.Reason,
		QuantityBefore: *in.QuantityBefore,
		QuantityAfter:  *in.QuantityAfter,
		QuantityChange: *in.QuantityAfter - *in.QuantityBefore,
		Location:       in.Location,
		Reference:      in.Reference,
		Notes:          in.Notes,
		CreatedBy:      in.CreatedBy,
		Status:         in.Status,
		CostImpact:     decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if adj.Location == "" {
		adj.Location = entity.DefaultLocation
	}
	if adj.CreatedBy == "" {
		adj.CreatedBy = "system"
	}
	if adj.Status == "" {
		adj.Status = entity.AdjustmentStatusPending
	}
	if in.CostImpact != nil {
		adj.CostImpact = *in.CostImpact
	}

	if err := uc.adjustmentRepo.Create(ctx, adj); err != nil {
		return nil, fmt.Errorf("crear ajuste: %w", err)
	}

	adj.ProductName = ref.Name
	adj.ProductSKU = ref.SKU
	adj.ProductBarcode = ref.Barcode
	return adj, nil
}

// GetByID obtiene un ajuste con el join del producto.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.StockAdjustment, error) {
	adj, err := uc.adjustmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, fmt.Errorf("%w: ajuste %s", domain.ErrNotFound, id)
	}
	return adj, nil
}

// List devuelve los ajustes que cumplen el filtro, más recientes primero.
// Si el ledger aún no existe devuelve lista vacía, no error. La ventana Days
// se resuelve aquí contra el reloj inyectado, no con now() del store.
func (uc *UseCase) List(ctx context.Context, filter repository.AdjustmentFilter) ([]*entity.StockAdjustment, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Days > 0 && filter.CreatedAfter.IsZero() {
		filter.CreatedAfter = uc.nowFn().AddDate(0, 0, -filter.Days)
	}
	return uc.adjustmentRepo.List(ctx, filter)
}

// Update modifica un ajuste existente. Los ajustes en estado terminal son
// inmutables salvo las notas; si vienen ambas cantidades se recalcula el delta.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateAdjustmentRequest) (*entity.StockAdjustment, error) {
	adj, err := uc.adjustmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, fmt.Errorf("%w: ajuste %s", domain.ErrNotFound, id)
	}

	if adj.IsTerminal() {
		// Estado terminal: solo se permite modificar notas.
		if in.AdjustmentType != nil || in.Reason != nil || in.QuantityBefore != nil ||
			in.QuantityAfter != nil || in.Location != nil || in.Reference != nil || in.CostImpact != nil {
			return nil, fmt.Errorf("%w: ajuste %s en estado %s", domain.ErrConflict, id, adj.Status)
		}
	}

	if in.AdjustmentType != nil {
		adj.AdjustmentType = *in.AdjustmentType
	}
	if in.Reason != nil {
		adj.Reason = *in.Reason
	}
	if in.QuantityBefore != nil {
		adj.QuantityBefore = *in.QuantityBefore
	}
	if in.QuantityAfter != nil {
		adj.QuantityAfter = *in.QuantityAfter
	}
	if in.QuantityBefore != nil && in.QuantityAfter != nil {
		adj.QuantityChange = adj.QuantityAfter - adj.QuantityBefore
	}
	if in.Location != nil {
		adj.Location = *in.Location
	}
	if in.Reference != nil {
		adj.Reference = *in.Reference
	}
	if in.Notes != nil {
		adj.Notes = *in.Notes
	}
	if in.CostImpact != nil {
		adj.CostImpact = *in.CostImpact
	}
	adj.UpdatedAt = uc.nowFn()

	if err := uc.adjustmentRepo.Update(ctx, adj); err != nil {
		return nil, fmt.Errorf("actualizar ajuste: %w", err)
	}
	return adj, nil
}
