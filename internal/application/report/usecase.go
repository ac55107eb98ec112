package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// UseCase capa de reporting: deriva resúmenes y desgloses de los ledgers de
// ajustes y movimientos y del snapshot de inventario. Todo es re-derivación
// bajo demanda: sin agregados persistidos ni caché. El reloj es inyectable para
// que los buckets temporales (hoy/semana/mes) sean deterministas en tests; en
// producción se usa time.Now.
type UseCase struct {
	adjustmentRepo repository.StockAdjustmentRepository
	movementRepo   repository.StockMovementRepository
	inventoryRepo  repository.InventoryItemRepository
	productRepo    repository.ProductRepository
	pdfGenerator   SummaryPDFGenerator
	xlsxExporter   MovementWorkbookExporter
	nowFn          func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	adjustmentRepo repository.StockAdjustmentRepository,
	movementRepo repository.StockMovementRepository,
	inventoryRepo repository.InventoryItemRepository,
	productRepo repository.ProductRepository,
	pdfGenerator SummaryPDFGenerator,
	xlsxExporter MovementWorkbookExporter,
) *UseCase {
	return &UseCase{
		adjustmentRepo: adjustmentRepo,
		movementRepo:   movementRepo,
		inventoryRepo:  inventoryRepo,
		productRepo:    productRepo,
		pdfGenerator:   pdfGenerator,
		xlsxExporter:   xlsxExporter,
		nowFn:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(nowFn func() time.Time) *UseCase {
	uc.nowFn = nowFn
	return uc
}

// ── Buckets temporales ────────────────────────────────────────────────────────
// hoy = medianoche local (incluye el instante de inicio); la semana empieza en
// domingo (día 0 del locale); el mes, el día 1 a medianoche.

func dayStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func weekStart(now time.Time) time.Time {
	return dayStart(now).AddDate(0, 0, -int(now.Weekday()))
}

func monthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

func inBucket(t, start time.Time) bool {
	return !t.Before(start)
}

// AdjustmentsSummary resume el ledger de ajustes completo: conteos por estado,
// aumentos/disminuciones, impacto de costo acumulado y buckets hoy/semana/mes.
// Si la tabla aún no existe devuelve el resumen en ceros, no un error.
func (uc *UseCase) AdjustmentsSummary(ctx context.Context) (*dto.AdjustmentSummaryDTO, error) {
	adjustments, err := uc.adjustmentRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar ajustes: %w", err)
	}

	now := uc.nowFn()
	today, week, month := dayStart(now), weekStart(now), monthStart(now)

	summary := &dto.AdjustmentSummaryDTO{TotalCostImpact: decimal.Zero}
	summary.TotalAdjustments = len(adjustments)
	for _, a := range adjustments {
		switch a.Status {
		case entity.AdjustmentStatusPending:
			summary.PendingAdjustments++
		case entity.AdjustmentStatusApproved:
			summary.ApprovedAdjustments++
		case entity.AdjustmentStatusRejected:
			summary.RejectedAdjustments++
		}
		if a.QuantityChange > 0 {
			summary.TotalIncreases++
		} else if a.QuantityChange < 0 {
			summary.TotalDecreases++
		}
		summary.TotalCostImpact = summary.TotalCostImpact.Add(a.CostImpact)
		if inBucket(a.CreatedAt, today) {
			summary.AdjustmentsToday++
		}
		if inBucket(a.CreatedAt, week) {
			summary.AdjustmentsThisWeek++
		}
		if inBucket(a.CreatedAt, month) {
			summary.AdjustmentsThisMonth++
		}
	}
	return summary, nil
}

// MovementsSummary resume el ledger de movimientos de los últimos days días:
// totales de entrada/salida, valor total (Σ cantidad × costo) y buckets temporales.
func (uc *UseCase) MovementsSummary(ctx context.Context, days int) (*dto.MovementSummaryDTO, error) {
	if days <= 0 {
		days = 30
	}
	now := uc.nowFn()
	movements, err := uc.movementRepo.ListSince(ctx, now.AddDate(0, 0, -days))
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}

	today, week, month := dayStart(now), weekStart(now), monthStart(now)

	summary := &dto.MovementSummaryDTO{TotalValue: decimal.Zero}
	summary.TotalMovements = len(movements)
	for _, m := range movements {
		switch m.MovementType {
		case entity.MovementTypeIn:
			summary.TotalStockIn += m.Quantity
		case entity.MovementTypeOut:
			summary.TotalStockOut += m.Quantity
		}
		value := decimal.NewFromInt(m.Quantity).Mul(m.UnitCost)
		summary.TotalValue = summary.TotalValue.Add(value)
		if inBucket(m.CreatedAt, today) {
			summary.MovementsToday++
		}
		if inBucket(m.CreatedAt, week) {
			summary.MovementsThisWeek++
		}
		if inBucket(m.CreatedAt, month) {
			summary.MovementsThisMonth++
		}
	}
	return summary, nil
}

// AdjustmentsByReason agrupa todo el ledger de ajustes por razón: conteo, suma
// de |quantity_change| y porcentaje sobre el total global (0 si el ledger está
// vacío). Ordenado por conteo descendente; los empates conservan el orden de
// primera aparición (sort estable).
func (uc *UseCase) AdjustmentsByReason(ctx context.Context) ([]dto.ReasonStatsDTO, error) {
	adjustments, err := uc.adjustmentRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar ajustes: %w", err)
	}

	byReason := make(map[string]*dto.ReasonStatsDTO)
	order := make([]string, 0)
	for _, a := range adjustments {
		stats, ok := byReason[a.Reason]
		if !ok {
			stats = &dto.ReasonStatsDTO{Reason: a.Reason}
			byReason[a.Reason] = stats
			order = append(order, a.Reason)
		}
		stats.Count++
		if a.QuantityChange >= 0 {
			stats.TotalQuantity += a.QuantityChange
		} else {
			stats.TotalQuantity += -a.QuantityChange
		}
	}

	total := len(adjustments)
	result := make([]dto.ReasonStatsDTO, 0, len(order))
	for _, reason := range order {
		stats := byReason[reason]
		if total > 0 {
			stats.Percentage = float64(stats.Count) / float64(total) * 100
		}
		result = append(result, *stats)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result, nil
}

// AdjustmentsByProduct agrega el ledger de ajustes por producto en una ventana
// de days días: aumentos, disminuciones (en valor absoluto), neto, último
// ajuste y tamaño medio |neto|/conteo. Ordenado por total descendente.
func (uc *UseCase) AdjustmentsByProduct(ctx context.Context, days int) ([]dto.AdjustmentProductStatsDTO, error) {
	if days <= 0 {
		days = 30
	}
	adjustments, err := uc.adjustmentRepo.List(ctx, repository.AdjustmentFilter{
		CreatedAfter: uc.nowFn().AddDate(0, 0, -days),
	})
	if err != nil {
		return nil, fmt.Errorf("listar ajustes: %w", err)
	}

	byProduct := make(map[string]*dto.AdjustmentProductStatsDTO)
	order := make([]string, 0)
	for _, a := range adjustments {
		stats, ok := byProduct[a.ProductID]
		if !ok {
			name := a.ProductName
			if name == "" {
				name = "Unknown Product"
			}
			sku := a.ProductSKU
			if sku == "" {
				sku = "N/A"
			}
			stats = &dto.AdjustmentProductStatsDTO{
				ProductID:      a.ProductID,
				ProductName:    name,
				ProductSKU:     sku,
				LastAdjustment: a.CreatedAt,
			}
			byProduct[a.ProductID] = stats
			order = append(order, a.ProductID)
		}
		stats.TotalAdjustments++
		if a.QuantityChange > 0 {
			stats.TotalIncrease += a.QuantityChange
		} else {
			stats.TotalDecrease += -a.QuantityChange
		}
		stats.NetAdjustment += a.QuantityChange
		if a.CreatedAt.After(stats.LastAdjustment) {
			stats.LastAdjustment = a.CreatedAt
		}
	}

	result := make([]dto.AdjustmentProductStatsDTO, 0, len(order))
	for _, id := range order {
		stats := byProduct[id]
		if stats.TotalAdjustments > 0 {
			net := stats.NetAdjustment
			if net < 0 {
				net = -net
			}
			stats.AvgAdjustmentSize = float64(net) / float64(stats.TotalAdjustments)
		}
		result = append(result, *stats)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalAdjustments > result[j].TotalAdjustments
	})
	return result, nil
}

// InventorySummary resume el snapshot sobre los ítems activos: conteo, valor
// total (2 decimales), low/out of stock y ubicaciones distintas.
func (uc *UseCase) InventorySummary(ctx context.Context) (*dto.InventorySummaryDTO, error) {
	items, err := uc.inventoryRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar inventario: %w", err)
	}

	summary := &dto.InventorySummaryDTO{TotalValue: decimal.Zero}
	summary.TotalItems = len(items)
	locations := make(map[string]struct{})
	for _, item := range items {
		value := decimal.NewFromInt(item.QuantityOnHand).Mul(item.UnitCost)
		summary.TotalValue = summary.TotalValue.Add(value)
		if item.QuantityOnHand <= item.MinStockLevel {
			summary.LowStockCount++
		}
		if item.IsOutOfStock() {
			summary.OutOfStockCount++
		}
		locations[item.LocationID] = struct{}{}
	}
	summary.TotalValue = summary.TotalValue.Round(2)
	summary.TotalLocations = len(locations)
	return summary, nil
}

// DashboardStats métricas de cabecera del dashboard: productos, valor del
// inventario y ítems bajo mínimo. Los porcentajes de variación son nominales
// hasta que exista histórico (no hay snapshots de períodos anteriores).
func (uc *UseCase) DashboardStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	productCount, err := uc.productRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("contar productos: %w", err)
	}

	items, err := uc.inventoryRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar inventario: %w", err)
	}

	value := decimal.Zero
	lowStock := 0
	for _, item := range items {
		value = value.Add(decimal.NewFromInt(item.QuantityOnHand).Mul(item.UnitCost))
		if item.IsLowStock() {
			lowStock++
		}
	}

	return &dto.DashboardStatsDTO{
		TotalProducts:  dto.StatCardDTO{Value: decimal.NewFromInt(productCount), ChangeType: "increase"},
		InventoryValue: dto.StatCardDTO{Value: value.Round(2), ChangeType: "increase"},
		LowStockItems:  dto.StatCardDTO{Value: decimal.NewFromInt(int64(lowStock)), ChangeType: "decrease"},
	}, nil
}

// LowStock ítems con mínimo configurado y cantidad en o bajo el mínimo,
// ordenados del más crítico al menos (cantidad ascendente).
func (uc *UseCase) LowStock(ctx context.Context, limit int) ([]dto.LowStockItemDTO, error) {
	if limit <= 0 {
		limit = 50
	}
	items, err := uc.inventoryRepo.ListLowStock(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listar bajo stock: %w", err)
	}

	result := make([]dto.LowStockItemDTO, 0, len(items))
	for _, item := range items {
		row := dto.LowStockItemDTO{
			ID:             item.ID,
			ProductID:      item.ProductID,
			QuantityOnHand: item.QuantityOnHand,
			MinStockLevel:  item.MinStockLevel,
		}
		if item.ProductName != "" || item.ProductSKU != "" {
			row.Products = &dto.ProductRefDTO{Name: item.ProductName, SKU: item.ProductSKU}
		}
		result = append(result, row)
	}
	return result, nil
}

// SummaryPDF consolida ambos resúmenes y el top de razones y delega la
// representación al generador PDF.
func (uc *UseCase) SummaryPDF(ctx context.Context, days int) ([]byte, error) {
	if days <= 0 {
		days = 30
	}
	adjSummary, err := uc.AdjustmentsSummary(ctx)
	if err != nil {
		return nil, err
	}
	movSummary, err := uc.MovementsSummary(ctx, days)
	if err != nil {
		return nil, err
	}
	reasons, err := uc.AdjustmentsByReason(ctx)
	if err != nil {
		return nil, err
	}
	if len(reasons) > 5 {
		reasons = reasons[:5]
	}

	return uc.pdfGenerator.GenerateSummaryPDF(ctx, SummaryReportData{
		GeneratedAt: uc.nowFn(),
		Days:        days,
		Adjustments: *adjSummary,
		Movements:   *movSummary,
		TopReasons:  reasons,
	})
}

// MovementsXLSX exporta el ledger de movimientos de los últimos days días como
// libro XLSX.
func (uc *UseCase) MovementsXLSX(ctx context.Context, days int) ([]byte, error) {
	if days <= 0 {
		days = 30
	}
	movements, err := uc.movementRepo.ListSince(ctx, uc.nowFn().AddDate(0, 0, -days))
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	return uc.xlsxExporter.ExportMovements(movements)
}
