package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger-api/internal/application/adjustment"
	"github.com/jhoicas/stockledger-api/internal/application/movement"
	"github.com/jhoicas/stockledger-api/internal/application/report"
	"github.com/jhoicas/stockledger-api/internal/application/usecase"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
	apphttp "github.com/jhoicas/stockledger-api/internal/interfaces/http"
	"github.com/jhoicas/stockledger-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (puertos de repositorio)
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	adjustments map[string]*entity.StockAdjustment
	adjOrder    []string
	movements   map[string]*entity.StockMovement
	movOrder    []string
	items       map[string]*entity.InventoryItem
	products    map[string]*entity.ProductRef
}

func newMemStore() *memStore {
	return &memStore{
		adjustments: make(map[string]*entity.StockAdjustment),
		movements:   make(map[string]*entity.StockMovement),
		items:       make(map[string]*entity.InventoryItem),
		products:    make(map[string]*entity.ProductRef),
	}
}

type memAdjustmentRepo struct{ s *memStore }

func (r *memAdjustmentRepo) Create(_ context.Context, a *entity.StockAdjustment) error {
	cp := *a
	r.s.adjustments[a.ID] = &cp
	r.s.adjOrder = append(r.s.adjOrder, a.ID)
	return nil
}

func (r *memAdjustmentRepo) GetByID(_ context.Context, id string) (*entity.StockAdjustment, error) {
	a, ok := r.s.adjustments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *memAdjustmentRepo) List(_ context.Context, _ repository.AdjustmentFilter) ([]*entity.StockAdjustment, error) {
	return r.all(), nil
}

func (r *memAdjustmentRepo) ListAll(_ context.Context) ([]*entity.StockAdjustment, error) {
	return r.all(), nil
}

func (r *memAdjustmentRepo) all() []*entity.StockAdjustment {
	out := make([]*entity.StockAdjustment, 0, len(r.s.adjOrder))
	for _, id := range r.s.adjOrder {
		cp := *r.s.adjustments[id]
		out = append(out, &cp)
	}
	return out
}

func (r *memAdjustmentRepo) Update(_ context.Context, a *entity.StockAdjustment) error {
	if _, ok := r.s.adjustments[a.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *a
	r.s.adjustments[a.ID] = &cp
	return nil
}

func (r *memAdjustmentRepo) ApplyDecision(_ context.Context, id string, d repository.ApprovalDecision) (*entity.StockAdjustment, error) {
	a, ok := r.s.adjustments[id]
	if !ok || a.Status != entity.AdjustmentStatusPending {
		return nil, nil
	}
	if d.Approved {
		a.Status = entity.AdjustmentStatusApproved
	} else {
		a.Status = entity.AdjustmentStatusRejected
	}
	a.ApprovedBy = d.ApprovedBy
	at := d.DecidedAt
	a.ApprovedAt = &at
	cp := *a
	return &cp, nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	cp := *m
	r.s.movements[m.ID] = &cp
	r.s.movOrder = append(r.s.movOrder, m.ID)
	return nil
}

func (r *memMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	m, ok := r.s.movements[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memMovementRepo) Delete(_ context.Context, id string) error {
	delete(r.s.movements, id)
	return nil
}

func (r *memMovementRepo) List(_ context.Context, _ repository.MovementFilter) ([]*entity.StockMovement, error) {
	out := make([]*entity.StockMovement, 0, len(r.s.movOrder))
	for _, id := range r.s.movOrder {
		if m, ok := r.s.movements[id]; ok {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListSince(_ context.Context, from time.Time) ([]*entity.StockMovement, error) {
	all, _ := r.List(context.Background(), repository.MovementFilter{})
	var out []*entity.StockMovement
	for _, m := range all {
		if !m.CreatedAt.Before(from) {
			out = append(out, m)
		}
	}
	return out, nil
}

type memInventoryRepo struct{ s *memStore }

func (r *memInventoryRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *memInventoryRepo) List(_ context.Context, _ repository.InventoryFilter) ([]*entity.InventoryItem, int64, error) {
	var out []*entity.InventoryItem
	for _, it := range r.s.items {
		cp := *it
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (r *memInventoryRepo) Update(_ context.Context, it *entity.InventoryItem) error {
	if _, ok := r.s.items[it.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *it
	r.s.items[it.ID] = &cp
	return nil
}

func (r *memInventoryRepo) ListActive(_ context.Context) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range r.s.items {
		if it.Status == entity.InventoryStatusActive {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memInventoryRepo) ListLowStock(_ context.Context, _ int) ([]*entity.InventoryItem, error) {
	return nil, nil
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(_ context.Context, _ *entity.Product) error { return nil }

func (r *memProductRepo) GetByID(_ context.Context, _ string) (*entity.Product, error) {
	return nil, nil
}

func (r *memProductRepo) GetRef(_ context.Context, id string) (*entity.ProductRef, error) {
	return r.s.products[id], nil
}

func (r *memProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.s.products)), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testProductID = "00000000-0000-0000-0000-0000000000aa"

// buildTestApp monta el router completo sobre fakes en memoria.
func buildTestApp() (*fiber.App, *memStore) {
	store := newMemStore()
	store.products[testProductID] = &entity.ProductRef{
		ID: testProductID, Name: "Martillo", SKU: "MAR-01", Barcode: "750000002",
	}

	adjRepo := &memAdjustmentRepo{s: store}
	movRepo := &memMovementRepo{s: store}
	invRepo := &memInventoryRepo{s: store}
	prodRepo := &memProductRepo{s: store}

	log := logger.Nop()
	adjustmentUC := adjustment.NewUseCase(adjRepo, prodRepo, log)
	movementUC := movement.NewUseCase(movRepo, prodRepo, log)
	inventoryUC := usecase.NewInventoryUseCase(invRepo)
	reportUC := report.NewUseCase(adjRepo, movRepo, invRepo, prodRepo, nil, nil)

	app := fiber.New()
	app.Use(recover.New())
	apphttp.Router(app, apphttp.RouterDeps{
		AdjustmentUC: adjustmentUC,
		MovementUC:   movementUC,
		InventoryUC:  inventoryUC,
		ReportUC:     reportUC,
	})
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createAdjustment(t *testing.T, app *fiber.App) map[string]any {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/adjustments", map[string]any{
		"product_id":      testProductID,
		"adjustment_type": "recount",
		"reason":          "conteo físico",
		"quantity_before": 10,
		"quantity_after":  7,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeMap(t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes
// ──────────────────────────────────────────────────────────────────────────────

func TestPostAdjustments_Creado(t *testing.T) {
	app, _ := buildTestApp()
	body := createAdjustment(t, app)

	assert.Equal(t, float64(-3), body["quantity_change"], "delta calculado en servidor")
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, "Main Warehouse", body["location"])
	assert.Equal(t, "system", body["created_by"])

	products, ok := body["products"].(map[string]any)
	require.True(t, ok, "el registro debe incluir el producto anidado")
	assert.Equal(t, "Martillo", products["name"])
	assert.Equal(t, "MAR-01", products["sku"])
}

func TestPostAdjustments_Validacion400(t *testing.T) {
	app, _ := buildTestApp()
	resp := doJSON(t, app, http.MethodPost, "/api/adjustments", map[string]any{
		"product_id": testProductID,
		"reason":     "sin tipo ni cantidades",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestPostAdjustments_ProductoInexistente404(t *testing.T) {
	app, _ := buildTestApp()
	resp := doJSON(t, app, http.MethodPost, "/api/adjustments", map[string]any{
		"product_id":      "fantasma",
		"adjustment_type": "increase",
		"reason":          "r",
		"quantity_before": 0,
		"quantity_after":  1,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeMap(t, resp)["code"])
}

func TestGetAdjustmentByID_NoEncontrado(t *testing.T) {
	app, _ := buildTestApp()
	resp := doJSON(t, app, http.MethodGet, "/api/adjustments/no-existe", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPutAdjustment_TerminalConflicto409(t *testing.T) {
	app, _ := buildTestApp()
	created := createAdjustment(t, app)
	id := created["id"].(string)

	resp := doJSON(t, app, http.MethodPost, "/api/adjustments/approve", map[string]any{
		"adjustmentIds": []string{id},
		"approved":      true,
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, "/api/adjustments/"+id, map[string]any{
		"quantity_after": 99,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decodeMap(t, resp)["code"])
}

func TestApprove_LoteParcialDevuelveSoloActualizados(t *testing.T) {
	app, _ := buildTestApp()
	a1 := createAdjustment(t, app)["id"].(string)
	a2 := createAdjustment(t, app)["id"].(string)

	// a1 aprobado de antemano: en el segundo lote debe omitirse.
	resp := doJSON(t, app, http.MethodPost, "/api/adjustments/approve", map[string]any{
		"adjustmentIds": []string{a1},
		"approved":      true,
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/adjustments/approve", map[string]any{
		"adjustmentIds": []string{a1, a2, "fantasma"},
		"approved":      true,
		"approvedBy":    "supervisor",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode,
		"el fallo parcial no es un error del lote")

	updated := decodeList(t, resp)
	require.Len(t, updated, 1)
	assert.Equal(t, a2, updated[0]["id"])
	assert.Equal(t, "approved", updated[0]["status"])
	assert.Equal(t, "supervisor", updated[0]["approved_by"])
}

func TestApprove_ListaVacia400(t *testing.T) {
	app, _ := buildTestApp()
	resp := doJSON(t, app, http.MethodPost, "/api/adjustments/approve", map[string]any{
		"adjustmentIds": []string{},
		"approved":      true,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestApprove_CeroExitos400(t *testing.T) {
	app, _ := buildTestApp()
	resp := doJSON(t, app, http.MethodPost, "/api/adjustments/approve", map[string]any{
		"adjustmentIds": []string{"x", "y"},
		"approved":      true,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "BATCH_FAILED", decodeMap(t, resp)["code"])
}

func TestGetAdjustmentsSummary_ClavesCamelCase(t *testing.T) {
	app, _ := buildTestApp()
	createAdjustment(t, app)

	resp := doJSON(t, app, http.MethodGet, "/api/adjustments/summary", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeMap(t, resp)
	assert.Contains(t, body, "totalAdjustments")
	assert.Contains(t, body, "pendingAdjustments")
	assert.Contains(t, body, "adjustmentsThisWeek")
	assert.Equal(t, float64(1), body["totalAdjustments"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestPostMovements_Creado(t *testing.T) {
	app, _ := buildTestApp()
	resp := doJSON(t, app, http.MethodPost, "/api/movements", map[string]any{
		"product_id":    testProductID,
		"movement_type": "in",
		"quantity":      5,
		"reason":        "recepción",
		"auto_process":  true,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeMap(t, resp)
	assert.Equal(t, "completed", body["status"], "auto_process completa el movimiento")
	assert.Equal(t, "main_warehouse", body["location_to_id"])
}

func TestPostMovementsBulk_OmiteMalformados(t *testing.T) {
	app, store := buildTestApp()
	resp := doJSON(t, app, http.MethodPost, "/api/movements/bulk", map[string]any{
		"movements": []map[string]any{
			{"product_id": testProductID, "movement_type": "in", "quantity": 5, "reason": "r"},
			{"product_id": testProductID, "movement_type": "out"}, // sin quantity
			{"product_id": testProductID, "movement_type": "out", "quantity": 2, "reason": "r"},
		},
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeList(t, resp)
	assert.Len(t, created, 2, "el lote devuelve solo los creados")
	assert.Len(t, store.movements, 2)
}

func TestPostMovementsBulk_Vacio400(t *testing.T) {
	app, _ := buildTestApp()
	resp := doJSON(t, app, http.MethodPost, "/api/movements/bulk", map[string]any{
		"movements": []map[string]any{},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteMovement_Success(t *testing.T) {
	app, _ := buildTestApp()
	resp := doJSON(t, app, http.MethodPost, "/api/movements", map[string]any{
		"product_id":    testProductID,
		"movement_type": "in",
		"quantity":      1,
		"reason":        "r",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decodeMap(t, resp)["id"].(string)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, "/api/movements/"+id, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeMap(t, resp)["success"])

	resp2 := doJSON(t, app, http.MethodGet, "/api/movements/"+id, nil)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

// El delete es idempotente: borrar un id que no existe también responde 200.
func TestDeleteMovement_AusenteEsIdempotente(t *testing.T) {
	app, _ := buildTestApp()

	resp := doJSON(t, app, http.MethodDelete, "/api/movements/no-existe", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeMap(t, resp)["success"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestGetInventory_FormaDePagina(t *testing.T) {
	app, store := buildTestApp()
	store.items["i1"] = &entity.InventoryItem{
		ID: "i1", ProductID: testProductID, QuantityOnHand: 9,
		UnitCost: decimal.NewFromInt(2), LocationID: entity.MainWarehouseID,
		Status: entity.InventoryStatusActive,
	}

	resp := doJSON(t, app, http.MethodGet, "/api/inventory?limit=25", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeMap(t, resp)
	assert.Contains(t, body, "data")
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, float64(25), body["limit"])
	assert.Equal(t, float64(0), body["offset"])
}

func TestPutInventory_StatusInvalido400(t *testing.T) {
	app, store := buildTestApp()
	store.items["i1"] = &entity.InventoryItem{
		ID: "i1", ProductID: testProductID, Status: entity.InventoryStatusActive,
	}

	resp := doJSON(t, app, http.MethodPut, "/api/inventory/i1", map[string]any{
		"status": "archived",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestGetDashboardStats_OK(t *testing.T) {
	app, store := buildTestApp()
	store.items["i1"] = &entity.InventoryItem{
		ID: "i1", ProductID: testProductID, QuantityOnHand: 4,
		UnitCost: decimal.NewFromInt(10), MinStockLevel: 5,
		Status: entity.InventoryStatusActive,
	}

	resp := doJSON(t, app, http.MethodGet, "/api/dashboard/stats", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeMap(t, resp)
	assert.Contains(t, body, "totalProducts")
	assert.Contains(t, body, "revenue")
	assert.Contains(t, body, "lowStockItems")
}
