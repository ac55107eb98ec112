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

var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

// Columnas del ajuste con el join del producto, en el orden que esperan los scans.
const adjustmentColumns = `
	sa.id, sa.product_id, sa.adjustment_type, sa.reason,
	sa.quantity_before, sa.quantity_after, sa.quantity_change,
	sa.location, sa.reference, sa.notes, sa.created_by, sa.status,
	sa.approved_by, sa.approved_at, sa.cost_impact, sa.created_at, sa.updated_at,
	p.name, p.sku, p.barcode`

// StockAdjustmentRepo implementación del ledger de ajustes sobre PostgreSQL
// (usable con pool o tx).
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

// Create persiste un ajuste.
func (r *StockAdjustmentRepo) Create(ctx context.Context, a *entity.StockAdjustment) error {
	query := `
		INSERT INTO stock_adjustments (id, product_id, adjustment_type, reason,
			quantity_before, quantity_after, quantity_change, location, reference,
			notes, created_by, status, cost_impact, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.ProductID, a.AdjustmentType, a.Reason,
		a.QuantityBefore, a.QuantityAfter, a.QuantityChange,
		a.Location, nullable(a.Reference), nullable(a.Notes),
		a.CreatedBy, a.Status, a.CostImpact, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

// GetByID obtiene un ajuste con el join del producto. (nil, nil) si no existe.
func (r *StockAdjustmentRepo) GetByID(ctx context.Context, id string) (*entity.StockAdjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + `
		FROM stock_adjustments sa
		JOIN products p ON p.id = sa.product_id
		WHERE sa.id = $1`
	a, err := scanAdjustment(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	return a, nil
}

// List devuelve ajustes filtrados, más recientes primero. Limit <= 0 no limita.
// Si la tabla aún no existe devuelve (nil, nil): ledger vacío.
func (r *StockAdjustmentRepo) List(ctx context.Context, f repository.AdjustmentFilter) ([]*entity.StockAdjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + `
		FROM stock_adjustments sa
		JOIN products p ON p.id = sa.product_id
		WHERE 1=1`
	args := []any{}
	pos := 1

	add := func(cond string, val any) {
		query += fmt.Sprintf(" AND "+cond, pos)
		args = append(args, val)
		pos++
	}
	if f.ProductID != "" {
		add("sa.product_id = $%d", f.ProductID)
	}
	if f.Type != "" {
		add("sa.adjustment_type = $%d", f.Type)
	}
	if f.Reason != "" {
		add("sa.reason = $%d", f.Reason)
	}
	if f.Status != "" {
		add("sa.status = $%d", f.Status)
	}
	if f.Location != "" {
		add("sa.location = $%d", f.Location)
	}
	if f.CreatedBy != "" {
		add("sa.created_by = $%d", f.CreatedBy)
	}
	if !f.CreatedAfter.IsZero() {
		add("sa.created_at >= $%d", f.CreatedAfter)
	}
	query += " ORDER BY sa.created_at DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", pos)
		args = append(args, f.Limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()
	return collectAdjustments(rows)
}

// ListAll devuelve el ledger completo (reporting). (nil, nil) si la tabla no existe.
func (r *StockAdjustmentRepo) ListAll(ctx context.Context) ([]*entity.StockAdjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + `
		FROM stock_adjustments sa
		JOIN products p ON p.id = sa.product_id
		ORDER BY sa.created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list all adjustments: %w", err)
	}
	defer rows.Close()
	return collectAdjustments(rows)
}

// Update escribe los campos mutables de un ajuste existente.
func (r *StockAdjustmentRepo) Update(ctx context.Context, a *entity.StockAdjustment) error {
	query := `
		UPDATE stock_adjustments SET
			adjustment_type = $2, reason = $3, quantity_before = $4,
			quantity_after = $5, quantity_change = $6, location = $7,
			reference = $8, notes = $9, cost_impact = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		a.ID, a.AdjustmentType, a.Reason, a.QuantityBefore, a.QuantityAfter,
		a.QuantityChange, a.Location, nullable(a.Reference), nullable(a.Notes),
		a.CostImpact, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update adjustment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ApplyDecision ejecuta la transición pending→approved|rejected en un único
// UPDATE condicionado a status='pending'. El append de notas se hace del lado
// del servidor en la misma sentencia, así que no hay read-modify-write: dos
// aprobaciones concurrentes sobre la misma fila no pueden perder una nota (la
// segunda simplemente no matchea el guard y devuelve cero filas).
// Devuelve (nil, nil) si el ajuste no existe o ya no está pendiente.
func (r *StockAdjustmentRepo) ApplyDecision(ctx context.Context, id string, d repository.ApprovalDecision) (*entity.StockAdjustment, error) {
	status := entity.AdjustmentStatusRejected
	if d.Approved {
		status = entity.AdjustmentStatusApproved
	}
	query := `
		UPDATE stock_adjustments sa SET
			status = $2,
			approved_by = $3,
			approved_at = $4,
			updated_at = $4,
			notes = CASE
				WHEN $5::text = '' THEN sa.notes
				WHEN coalesce(sa.notes, '') = '' THEN 'Approval Notes: ' || $5::text
				ELSE sa.notes || e'\n\n' || 'Approval Notes: ' || $5::text
			END
		FROM products p
		WHERE sa.id = $1 AND sa.status = 'pending' AND p.id = sa.product_id
		RETURNING ` + adjustmentColumns
	a, err := scanAdjustment(r.q.QueryRow(ctx, query, id, status, d.ApprovedBy, d.DecidedAt, d.ApprovalNotes))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("apply decision: %w", err)
	}
	return a, nil
}

// scanAdjustment escanea una fila con adjustmentColumns.
func scanAdjustment(row pgx.Row) (*entity.StockAdjustment, error) {
	var a entity.StockAdjustment
	var reference, notes, approvedBy, barcode *string
	err := row.Scan(
		&a.ID, &a.ProductID, &a.AdjustmentType, &a.Reason,
		&a.QuantityBefore, &a.QuantityAfter, &a.QuantityChange,
		&a.Location, &reference, &notes, &a.CreatedBy, &a.Status,
		&approvedBy, &a.ApprovedAt, &a.CostImpact, &a.CreatedAt, &a.UpdatedAt,
		&a.ProductName, &a.ProductSKU, &barcode,
	)
	if err != nil {
		return nil, err
	}
	a.Reference = deref(reference)
	a.Notes = deref(notes)
	a.ApprovedBy = deref(approvedBy)
	a.ProductBarcode = deref(barcode)
	return &a, nil
}

func collectAdjustments(rows pgx.Rows) ([]*entity.StockAdjustment, error) {
	var list []*entity.StockAdjustment
	for rows.Next() {
		a, err := scanAdjustment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// nullable convierte "" a NULL para columnas opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
