package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger-api/internal/application/report"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeAdjustmentRepo struct {
	adjustments []*entity.StockAdjustment
}

func (f *fakeAdjustmentRepo) Create(_ context.Context, _ *entity.StockAdjustment) error { return nil }

func (f *fakeAdjustmentRepo) GetByID(_ context.Context, _ string) (*entity.StockAdjustment, error) {
	return nil, nil
}

func (f *fakeAdjustmentRepo) List(_ context.Context, filter repository.AdjustmentFilter) ([]*entity.StockAdjustment, error) {
	if filter.CreatedAfter.IsZero() {
		return f.adjustments, nil
	}
	var out []*entity.StockAdjustment
	for _, a := range f.adjustments {
		if !a.CreatedAt.Before(filter.CreatedAfter) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAdjustmentRepo) ListAll(_ context.Context) ([]*entity.StockAdjustment, error) {
	return f.adjustments, nil
}

func (f *fakeAdjustmentRepo) Update(_ context.Context, _ *entity.StockAdjustment) error { return nil }

func (f *fakeAdjustmentRepo) ApplyDecision(_ context.Context, _ string, _ repository.ApprovalDecision) (*entity.StockAdjustment, error) {
	return nil, nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (f *fakeMovementRepo) Create(_ context.Context, _ *entity.StockMovement) error { return nil }

func (f *fakeMovementRepo) GetByID(_ context.Context, _ string) (*entity.StockMovement, error) {
	return nil, nil
}

func (f *fakeMovementRepo) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeMovementRepo) List(_ context.Context, _ repository.MovementFilter) ([]*entity.StockMovement, error) {
	return f.movements, nil
}

func (f *fakeMovementRepo) ListSince(_ context.Context, from time.Time) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.movements {
		if !m.CreatedAt.Before(from) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeInventoryRepo struct {
	items []*entity.InventoryItem
}

func (f *fakeInventoryRepo) GetByID(_ context.Context, _ string) (*entity.InventoryItem, error) {
	return nil, nil
}

func (f *fakeInventoryRepo) List(_ context.Context, _ repository.InventoryFilter) ([]*entity.InventoryItem, int64, error) {
	return f.items, int64(len(f.items)), nil
}

func (f *fakeInventoryRepo) Update(_ context.Context, _ *entity.InventoryItem) error { return nil }

func (f *fakeInventoryRepo) ListActive(_ context.Context) ([]*entity.InventoryItem, error) {
	return f.items, nil
}

func (f *fakeInventoryRepo) ListLowStock(_ context.Context, limit int) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range f.items {
		if it.IsLowStock() {
			out = append(out, it)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeProductRepo struct{ count int64 }

func (f *fakeProductRepo) Create(_ context.Context, _ *entity.Product) error { return nil }

func (f *fakeProductRepo) GetByID(_ context.Context, _ string) (*entity.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) GetRef(_ context.Context, _ string) (*entity.ProductRef, error) {
	return nil, nil
}

func (f *fakeProductRepo) Count(_ context.Context) (int64, error) { return f.count, nil }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// Viernes 2026-03-13 12:00 local: la semana (inicia domingo) arranca el 8 de
// marzo; el mes, el 1 de marzo.
var testNow = time.Date(2026, 3, 13, 12, 0, 0, 0, time.Local)

func buildUseCase(adj *fakeAdjustmentRepo, mov *fakeMovementRepo, inv *fakeInventoryRepo, prod *fakeProductRepo) *report.UseCase {
	if adj == nil {
		adj = &fakeAdjustmentRepo{}
	}
	if mov == nil {
		mov = &fakeMovementRepo{}
	}
	if inv == nil {
		inv = &fakeInventoryRepo{}
	}
	if prod == nil {
		prod = &fakeProductRepo{}
	}
	uc := report.NewUseCase(adj, mov, inv, prod, nil, nil)
	uc.WithClock(func() time.Time { return testNow })
	return uc
}

func adjWith(reason string, change int64, status string, createdAt time.Time) *entity.StockAdjustment {
	return &entity.StockAdjustment{
		Reason:         reason,
		QuantityChange: change,
		Status:         status,
		CostImpact:     decimal.Zero,
		CreatedAt:      createdAt,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustmentsSummary — buckets temporales con reloj congelado
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustmentsSummary_BucketsTemporales(t *testing.T) {
	dayEdge := time.Date(2026, 3, 13, 0, 0, 0, 0, time.Local)  // medianoche de hoy
	weekEdge := time.Date(2026, 3, 8, 0, 0, 0, 0, time.Local)  // domingo
	monthEdge := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local) // día 1

	repo := &fakeAdjustmentRepo{adjustments: []*entity.StockAdjustment{
		adjWith("a", 1, entity.AdjustmentStatusPending, dayEdge),                       // hoy, semana y mes
		adjWith("b", 1, entity.AdjustmentStatusPending, weekEdge),                      // semana y mes
		adjWith("c", 1, entity.AdjustmentStatusPending, monthEdge),                     // solo mes
		adjWith("d", 1, entity.AdjustmentStatusPending, monthEdge.Add(-time.Second)),   // febrero
		adjWith("e", 1, entity.AdjustmentStatusPending, dayEdge.Add(-time.Nanosecond)), // ayer
	}}
	uc := buildUseCase(repo, nil, nil, nil)

	summary, err := uc.AdjustmentsSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, summary.TotalAdjustments)
	assert.Equal(t, 1, summary.AdjustmentsToday, "el instante de medianoche es inclusivo")
	assert.Equal(t, 3, summary.AdjustmentsThisWeek, "la semana inicia el domingo")
	assert.Equal(t, 4, summary.AdjustmentsThisMonth)
}

func TestAdjustmentsSummary_ConteosPorEstadoYTipo(t *testing.T) {
	repo := &fakeAdjustmentRepo{adjustments: []*entity.StockAdjustment{
		adjWith("a", 10, entity.AdjustmentStatusPending, testNow),
		adjWith("b", -3, entity.AdjustmentStatusApproved, testNow),
		adjWith("c", 0, entity.AdjustmentStatusRejected, testNow),
	}}
	uc := buildUseCase(repo, nil, nil, nil)

	summary, err := uc.AdjustmentsSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.PendingAdjustments)
	assert.Equal(t, 1, summary.ApprovedAdjustments)
	assert.Equal(t, 1, summary.RejectedAdjustments)
	assert.Equal(t, 1, summary.TotalIncreases)
	assert.Equal(t, 1, summary.TotalDecreases)
}

func TestAdjustmentsSummary_LedgerVacioEnCeros(t *testing.T) {
	// El store devuelve nil cuando la tabla aún no existe: resumen en ceros.
	uc := buildUseCase(&fakeAdjustmentRepo{adjustments: nil}, nil, nil, nil)

	summary, err := uc.AdjustmentsSummary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.TotalAdjustments)
	assert.True(t, summary.TotalCostImpact.IsZero())
}

// La re-derivación es idempotente: dos llamadas con el mismo ledger y el mismo
// reloj producen el mismo resumen.
func TestAdjustmentsSummary_Idempotente(t *testing.T) {
	repo := &fakeAdjustmentRepo{adjustments: []*entity.StockAdjustment{
		adjWith("a", 4, entity.AdjustmentStatusApproved, testNow),
	}}
	uc := buildUseCase(repo, nil, nil, nil)

	s1, err1 := uc.AdjustmentsSummary(context.Background())
	s2, err2 := uc.AdjustmentsSummary(context.Background())
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, s1, s2)
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustmentsByReason
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustmentsByReason_PorcentajesYOrden(t *testing.T) {
	repo := &fakeAdjustmentRepo{adjustments: []*entity.StockAdjustment{
		adjWith("merma", 5, entity.AdjustmentStatusPending, testNow),
		adjWith("merma", -2, entity.AdjustmentStatusPending, testNow),
		adjWith("conteo", 1, entity.AdjustmentStatusPending, testNow),
	}}
	uc := buildUseCase(repo, nil, nil, nil)

	stats, err := uc.AdjustmentsByReason(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, "merma", stats[0].Reason, "mayor conteo primero")
	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, int64(7), stats[0].TotalQuantity, "suma de |quantity_change|")
	assert.InDelta(t, 66.67, stats[0].Percentage, 0.01)
	assert.InDelta(t, 33.33, stats[1].Percentage, 0.01)
}

func TestAdjustmentsByReason_EmpatesConservanOrden(t *testing.T) {
	repo := &fakeAdjustmentRepo{adjustments: []*entity.StockAdjustment{
		adjWith("zeta", 1, entity.AdjustmentStatusPending, testNow),
		adjWith("alfa", 1, entity.AdjustmentStatusPending, testNow),
	}}
	uc := buildUseCase(repo, nil, nil, nil)

	stats, err := uc.AdjustmentsByReason(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "zeta", stats[0].Reason, "orden estable: primera aparición gana el empate")
	assert.Equal(t, "alfa", stats[1].Reason)
}

func TestAdjustmentsByReason_LedgerVacio(t *testing.T) {
	uc := buildUseCase(&fakeAdjustmentRepo{}, nil, nil, nil)
	stats, err := uc.AdjustmentsByReason(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stats)
}

// ──────────────────────────────────────────────────────────────────────────────
// MovementsSummary
// ──────────────────────────────────────────────────────────────────────────────

func TestMovementsSummary_TotalesYValor(t *testing.T) {
	repo := &fakeMovementRepo{movements: []*entity.StockMovement{
		{MovementType: entity.MovementTypeIn, Quantity: 10, UnitCost: decimal.NewFromFloat(2.50), CreatedAt: testNow},
		{MovementType: entity.MovementTypeOut, Quantity: 4, UnitCost: decimal.NewFromFloat(2.50), CreatedAt: testNow},
		{MovementType: entity.MovementTypeDamaged, Quantity: 1, UnitCost: decimal.NewFromInt(3), CreatedAt: testNow},
	}}
	uc := buildUseCase(nil, repo, nil, nil)

	summary, err := uc.MovementsSummary(context.Background(), 30)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalMovements)
	assert.Equal(t, int64(10), summary.TotalStockIn)
	assert.Equal(t, int64(4), summary.TotalStockOut)
	// 10×2.50 + 4×2.50 + 1×3 = 38: el valor suma todos los tipos.
	assert.True(t, summary.TotalValue.Equal(decimal.NewFromInt(38)),
		"valor total = Σ cantidad × costo, no solo in/out; got %s", summary.TotalValue)
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustmentsByProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustmentsByProduct_TamanoMedio(t *testing.T) {
	repo := &fakeAdjustmentRepo{adjustments: []*entity.StockAdjustment{
		{ProductID: "p1", ProductName: "Taladro", ProductSKU: "TAL-1", QuantityChange: 10, CostImpact: decimal.Zero, CreatedAt: testNow},
		{ProductID: "p1", ProductName: "Taladro", ProductSKU: "TAL-1", QuantityChange: -4, CostImpact: decimal.Zero, CreatedAt: testNow},
	}}
	uc := buildUseCase(repo, nil, nil, nil)

	stats, err := uc.AdjustmentsByProduct(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, stats, 1)

	assert.Equal(t, int64(10), stats[0].TotalIncrease)
	assert.Equal(t, int64(4), stats[0].TotalDecrease, "decremento en valor absoluto")
	assert.Equal(t, int64(6), stats[0].NetAdjustment)
	assert.InDelta(t, 3.0, stats[0].AvgAdjustmentSize, 0.001, "|neto| / conteo = 6/2")
}

// La ventana de días se calcula con el reloj inyectado, no con el del store.
func TestAdjustmentsByProduct_VentanaConRelojInyectado(t *testing.T) {
	repo := &fakeAdjustmentRepo{adjustments: []*entity.StockAdjustment{
		{ProductID: "p1", ProductName: "Taladro", ProductSKU: "TAL-1", QuantityChange: 5, CostImpact: decimal.Zero, CreatedAt: testNow.AddDate(0, 0, -2)},
		{ProductID: "p2", ProductName: "Sierra", ProductSKU: "SIE-1", QuantityChange: 8, CostImpact: decimal.Zero, CreatedAt: testNow.AddDate(0, 0, -45)},
	}}
	uc := buildUseCase(repo, nil, nil, nil)

	stats, err := uc.AdjustmentsByProduct(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, stats, 1, "el ajuste de hace 45 días queda fuera de la ventana de 30")
	assert.Equal(t, "p1", stats[0].ProductID)
}

func TestAdjustmentsByProduct_ProductoSinJoin(t *testing.T) {
	repo := &fakeAdjustmentRepo{adjustments: []*entity.StockAdjustment{
		{ProductID: "p9", QuantityChange: 1, CostImpact: decimal.Zero, CreatedAt: testNow},
	}}
	uc := buildUseCase(repo, nil, nil, nil)

	stats, err := uc.AdjustmentsByProduct(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "Unknown Product", stats[0].ProductName)
	assert.Equal(t, "N/A", stats[0].ProductSKU)
}

// ──────────────────────────────────────────────────────────────────────────────
// InventorySummary / DashboardStats / LowStock
// ──────────────────────────────────────────────────────────────────────────────

func TestInventorySummary_Agregados(t *testing.T) {
	inv := &fakeInventoryRepo{items: []*entity.InventoryItem{
		{QuantityOnHand: 10, UnitCost: decimal.NewFromFloat(1.115), MinStockLevel: 2, LocationID: "a"},
		{QuantityOnHand: 0, UnitCost: decimal.NewFromInt(5), MinStockLevel: 1, LocationID: "b"},
		{QuantityOnHand: 3, UnitCost: decimal.Zero, MinStockLevel: 5, LocationID: "a"},
	}}
	uc := buildUseCase(nil, nil, inv, nil)

	summary, err := uc.InventorySummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalItems)
	// 10×1.115 = 11.15, redondeado a 2 decimales.
	assert.True(t, summary.TotalValue.Equal(decimal.NewFromFloat(11.15)),
		"got %s", summary.TotalValue)
	assert.Equal(t, 2, summary.LowStockCount, "cantidad ≤ mínimo")
	assert.Equal(t, 1, summary.OutOfStockCount)
	assert.Equal(t, 2, summary.TotalLocations, "ubicaciones distintas")
}

func TestDashboardStats_Valores(t *testing.T) {
	inv := &fakeInventoryRepo{items: []*entity.InventoryItem{
		{QuantityOnHand: 4, UnitCost: decimal.NewFromInt(10), MinStockLevel: 5},
		{QuantityOnHand: 20, UnitCost: decimal.NewFromInt(1), MinStockLevel: 2},
	}}
	uc := buildUseCase(nil, nil, inv, &fakeProductRepo{count: 7})

	stats, err := uc.DashboardStats(context.Background())
	require.NoError(t, err)

	assert.True(t, stats.TotalProducts.Value.Equal(decimal.NewFromInt(7)))
	assert.True(t, stats.InventoryValue.Value.Equal(decimal.NewFromInt(60)))
	assert.True(t, stats.LowStockItems.Value.Equal(decimal.NewFromInt(1)),
		"solo el primer ítem está bajo mínimo")
}

func TestLowStock_ProyeccionConProducto(t *testing.T) {
	inv := &fakeInventoryRepo{items: []*entity.InventoryItem{
		{ID: "i1", ProductID: "p1", QuantityOnHand: 1, MinStockLevel: 5, ProductName: "Clavo", ProductSKU: "CLA-1"},
	}}
	uc := buildUseCase(nil, nil, inv, nil)

	items, err := uc.LowStock(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "i1", items[0].ID)
	require.NotNil(t, items[0].Products)
	assert.Equal(t, "Clavo", items[0].Products.Name)
}
