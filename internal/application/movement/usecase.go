package movement

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
	"github.com/jhoicas/stockledger-api/pkg/logger"
)

// UseCase ledger de movimientos de stock: registra transferencias direccionales
// de cantidad (individual o por lotes) y re-deriva estadísticas por producto.
type UseCase struct {
	movementRepo repository.StockMovementRepository
	productRepo  repository.ProductRepository
	log          *logger.Logger
	nowFn        func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		movementRepo: movementRepo,
		productRepo:  productRepo,
		log:          log,
		nowFn:        time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(nowFn func() time.Time) *UseCase {
	uc.nowFn = nowFn
	return uc
}

// Create valida y persiste un movimiento. La cantidad es no negativa para todo
// tipo (la dirección la da el tipo); transfer exige ubicación de origen. La
// ubicación destino por defecto es la bodega principal canónica.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateMovementRequest) (*entity.StockMovement, error) {
	mov, err := uc.buildMovement(in)
	if err != nil {
		return nil, err
	}

	ref, err := uc.productRepo.GetRef(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("verificar producto: %w", err)
	}
	if ref == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
	}

	if err := uc.movementRepo.Create(ctx, mov); err != nil {
		return nil, fmt.Errorf("crear movimiento: %w", err)
	}

	mov.ProductName = ref.Name
	mov.ProductSKU = ref.SKU
	mov.ProductBarcode = ref.Barcode
	return mov, nil
}

// RecordBulk inserta cada movimiento del lote de forma independiente: un spec
// inválido o un error del store se registra en el log y se salta sin abortar a
// los demás (best-effort batch). Devuelve los creados, posiblemente menos que
// la entrada. Solo la lista vacía es un error.
func (uc *UseCase) RecordBulk(ctx context.Context, specs []dto.CreateMovementRequest) ([]*entity.StockMovement, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: movements no puede estar vacío", domain.ErrInvalidInput)
	}

	created := make([]*entity.StockMovement, 0, len(specs))
	for i, spec := range specs {
		mov, err := uc.Create(ctx, spec)
		if err != nil {
			uc.log.Warn().Err(err).Int("index", i).Str("product_id", spec.ProductID).
				Msg("movimiento del lote omitido")
			continue
		}
		created = append(created, mov)
	}
	return created, nil
}

// GetByID obtiene un movimiento con el join del producto.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	mov, err := uc.movementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, id)
	}
	return mov, nil
}

// Delete elimina un movimiento (hard delete). No reconcilia el snapshot de
// inventario: esa consistencia la posee un job externo, no este ledger.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.movementRepo.Delete(ctx, id)
}

// List devuelve los movimientos que cumplen el filtro, más recientes primero.
// La ventana Days se resuelve aquí contra el reloj inyectado, no con now()
// del store.
func (uc *UseCase) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Days > 0 && filter.CreatedAfter.IsZero() {
		filter.CreatedAfter = uc.nowFn().AddDate(0, 0, -filter.Days)
	}
	return uc.movementRepo.List(ctx, filter)
}

// StatsByProduct re-deriva del ledger, por producto, los totales de entrada y
// salida, el neto (totalIn - totalOut), el conteo de movimientos de todo tipo y
// la fecha del último movimiento, en una ventana de days días. El resultado va
// ordenado por movementCount descendente (orden estable: los empates conservan
// el orden de primera aparición). No hay vista materializada ni caché: se
// recalcula en cada llamada.
func (uc *UseCase) StatsByProduct(ctx context.Context, days int) ([]dto.ProductMovementStatsDTO, error) {
	if days <= 0 {
		days = 30
	}
	from := uc.nowFn().AddDate(0, 0, -days)

	movements, err := uc.movementRepo.ListSince(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}

	byProduct := make(map[string]*dto.ProductMovementStatsDTO)
	order := make([]string, 0)

	for _, m := range movements {
		stats, ok := byProduct[m.ProductID]
		if !ok {
			name := m.ProductName
			if name == "" {
				name = "Unknown Product"
			}
			sku := m.ProductSKU
			if sku == "" {
				sku = "N/A"
			}
			stats = &dto.ProductMovementStatsDTO{
				ProductID:    m.ProductID,
				ProductName:  name,
				ProductSKU:   sku,
				LastMovement: m.CreatedAt,
			}
			byProduct[m.ProductID] = stats
			order = append(order, m.ProductID)
		}

		switch m.MovementType {
		case entity.MovementTypeIn:
			stats.TotalIn += m.Quantity
		case entity.MovementTypeOut:
			stats.TotalOut += m.Quantity
		}
		stats.NetMovement = stats.TotalIn - stats.TotalOut
		stats.MovementCount++
		if m.CreatedAt.After(stats.LastMovement) {
			stats.LastMovement = m.CreatedAt
		}
	}

	result := make([]dto.ProductMovementStatsDTO, 0, len(order))
	for _, id := range order {
		result = append(result, *byProduct[id])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].MovementCount > result[j].MovementCount
	})
	return result, nil
}

// buildMovement valida el spec y construye la entidad con los defaults aplicados.
func (uc *UseCase) buildMovement(in dto.CreateMovementRequest) (*entity.StockMovement, error) {
	if in.ProductID == "" {
		return nil, fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
	}
	if !entity.ValidMovementType(in.MovementType) {
		return nil, fmt.Errorf("%w: movement_type %q desconocido", domain.ErrInvalidInput, in.MovementType)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if in.Reason == "" {
		return nil, fmt.Errorf("%w: reason es obligatorio", domain.ErrInvalidInput)
	}
	if in.MovementType == entity.MovementTypeTransfer && in.LocationFromID == "" {
		return nil, fmt.Errorf("%w: transfer requiere location_from_id", domain.ErrInvalidInput)
	}

	mov := &entity.StockMovement{
		ID:               uuid.New().String(),
		ProductID:        in.ProductID,
		MovementType:     in.MovementType,
		Quantity:         in.Quantity,
		Reason:           in.Reason,
		LocationFromID:   in.LocationFromID,
		LocationFromName: in.LocationFromName,
		LocationToID:     in.LocationToID,
		LocationToName:   in.LocationToName,
		UnitCost:         decimal.Zero,
		ReferenceType:    in.ReferenceType,
		ReferenceID:      in.ReferenceID,
		ReferenceNumber:  in.ReferenceNumber,
		Notes:            in.Notes,
		CreatedBy:        in.CreatedBy,
		Status:           entity.MovementStatusPending,
		CreatedAt:        uc.nowFn(),
	}
	if mov.LocationToID == "" {
		mov.LocationToID = entity.MainWarehouseID
	}
	if mov.LocationToName == "" {
		mov.LocationToName = entity.MainWarehouseName
	}
	if in.UnitCost != nil {
		mov.UnitCost = *in.UnitCost
	}
	if mov.CreatedBy == "" {
		mov.CreatedBy = "system"
	}
	if in.AutoProcess {
		mov.Status = entity.MovementStatusCompleted
	}
	return mov, nil
}
