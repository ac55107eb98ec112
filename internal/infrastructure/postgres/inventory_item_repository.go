package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const inventoryColumns = `
	i.id, i.product_id, i.quantity_on_hand, i.unit_cost,
	i.min_stock_level, i.max_stock_level, i.location_id, i.status,
	i.created_at, i.updated_at, p.name, p.sku, p.barcode`

// InventoryItemRepo implementación del snapshot de inventario sobre PostgreSQL.
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

// GetByID obtiene un ítem con el join del producto. (nil, nil) si no existe.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.id = $1`
	item, err := scanInventoryItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return item, nil
}

// List devuelve la página que cumple el filtro y el total sin paginar.
func (r *InventoryItemRepo) List(ctx context.Context, f repository.InventoryFilter) ([]*entity.InventoryItem, int64, error) {
	where := " WHERE i.status = $1"
	args := []any{f.Status}
	pos := 2
	if f.LocationID != "" {
		where += fmt.Sprintf(" AND i.location_id = $%d", pos)
		args = append(args, f.LocationID)
		pos++
	}
	if f.ProductID != "" {
		where += fmt.Sprintf(" AND i.product_id = $%d", pos)
		args = append(args, f.ProductID)
		pos++
	}

	var total int64
	countQuery := `SELECT count(*) FROM inventory_items i` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inventory items: %w", err)
	}

	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_items i
		JOIN products p ON p.id = i.product_id` + where +
		fmt.Sprintf(" ORDER BY i.created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	list, err := collectInventoryItems(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Update escribe los campos mutables de un ítem existente.
func (r *InventoryItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET
			quantity_on_hand = $2, unit_cost = $3, min_stock_level = $4,
			max_stock_level = $5, status = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		item.ID, item.QuantityOnHand, item.UnitCost,
		item.MinStockLevel, item.MaxStockLevel, item.Status, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListActive devuelve todos los ítems activos (agregaciones de resumen).
func (r *InventoryItemRepo) ListActive(ctx context.Context) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.status = 'active'`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list active inventory items: %w", err)
	}
	defer rows.Close()
	return collectInventoryItems(rows)
}

// ListLowStock ítems con mínimo configurado y cantidad en o bajo el mínimo,
// ordenados por cantidad ascendente.
func (r *InventoryItemRepo) ListLowStock(ctx context.Context, limit int) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.min_stock_level > 0 AND i.quantity_on_hand <= i.min_stock_level
		ORDER BY i.quantity_on_hand ASC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return collectInventoryItems(rows)
}

func scanInventoryItem(row pgx.Row) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	var barcode *string
	err := row.Scan(
		&item.ID, &item.ProductID, &item.QuantityOnHand, &item.UnitCost,
		&item.MinStockLevel, &item.MaxStockLevel, &item.LocationID, &item.Status,
		&item.CreatedAt, &item.UpdatedAt, &item.ProductName, &item.ProductSKU, &barcode,
	)
	if err != nil {
		return nil, err
	}
	item.ProductBarcode = deref(barcode)
	return &item, nil
}

func collectInventoryItems(rows pgx.Rows) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}
