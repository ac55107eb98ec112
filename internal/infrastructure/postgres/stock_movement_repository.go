package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// Columnas del movimiento con el join del producto, en el orden de los scans.
const movementColumns = `
	sm.id, sm.product_id, sm.movement_type, sm.quantity, sm.reason,
	sm.location_from_id, sm.location_from_name, sm.location_to_id, sm.location_to_name,
	sm.unit_cost, sm.reference_type, sm.reference_id, sm.reference_number,
	sm.notes, sm.created_by, sm.status, sm.created_at,
	p.name, p.sku, p.barcode`

// StockMovementRepo implementación del ledger de movimientos sobre PostgreSQL
// (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, movement_type, quantity, reason,
			location_from_id, location_from_name, location_to_id, location_to_name,
			unit_cost, reference_type, reference_id, reference_number, notes,
			created_by, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.MovementType, m.Quantity, m.Reason,
		nullable(m.LocationFromID), nullable(m.LocationFromName),
		m.LocationToID, m.LocationToName,
		m.UnitCost, nullable(m.ReferenceType), nullable(m.ReferenceID),
		nullable(m.ReferenceNumber), nullable(m.Notes),
		m.CreatedBy, m.Status, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento con el join del producto. (nil, nil) si no existe.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements sm
		JOIN products p ON p.id = sm.product_id
		WHERE sm.id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// Delete elimina un movimiento (hard delete, sin tocar el snapshot de
// inventario). Es idempotente: borrar un id inexistente no es un error.
func (r *StockMovementRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return nil
}

// List devuelve movimientos filtrados, más recientes primero. LocationID
// coincide con origen o destino. Si la tabla no existe devuelve (nil, nil).
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements sm
		JOIN products p ON p.id = sm.product_id
		WHERE 1=1`
	args := []any{}
	pos := 1

	add := func(cond string, val any) {
		query += fmt.Sprintf(" AND "+cond, pos)
		args = append(args, val)
		pos++
	}
	if f.ProductID != "" {
		add("sm.product_id = $%d", f.ProductID)
	}
	if f.MovementType != "" {
		add("sm.movement_type = $%d", f.MovementType)
	}
	if f.LocationID != "" {
		query += fmt.Sprintf(" AND (sm.location_to_id = $%d OR sm.location_from_id = $%d)", pos, pos)
		args = append(args, f.LocationID)
		pos++
	}
	if !f.CreatedAfter.IsZero() {
		add("sm.created_at >= $%d", f.CreatedAfter)
	}
	query += " ORDER BY sm.created_at DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", pos)
		args = append(args, f.Limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListSince devuelve movimientos con created_at >= from, más recientes primero
// (reporting). (nil, nil) si la tabla no existe.
func (r *StockMovementRepo) ListSince(ctx context.Context, from time.Time) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements sm
		JOIN products p ON p.id = sm.product_id
		WHERE sm.created_at >= $1
		ORDER BY sm.created_at DESC`
	rows, err := r.q.Query(ctx, query, from)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list movements since: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// scanMovement escanea una fila con movementColumns.
func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var fromID, fromName, refType, refID, refNumber, notes, barcode *string
	err := row.Scan(
		&m.ID, &m.ProductID, &m.MovementType, &m.Quantity, &m.Reason,
		&fromID, &fromName, &m.LocationToID, &m.LocationToName,
		&m.UnitCost, &refType, &refID, &refNumber, &notes,
		&m.CreatedBy, &m.Status, &m.CreatedAt,
		&m.ProductName, &m.ProductSKU, &barcode,
	)
	if err != nil {
		return nil, err
	}
	m.LocationFromID = deref(fromID)
	m.LocationFromName = deref(fromName)
	m.ReferenceType = deref(refType)
	m.ReferenceID = deref(refID)
	m.ReferenceNumber = deref(refNumber)
	m.Notes = deref(notes)
	m.ProductBarcode = deref(barcode)
	return &m, nil
}

func collectMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
