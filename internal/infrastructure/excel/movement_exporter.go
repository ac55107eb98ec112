// Package excel exporta el ledger de movimientos como libro XLSX.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockledger-api/internal/application/report"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// MovementExporter implementa report.MovementWorkbookExporter usando excelize.
type MovementExporter struct{}

// NewMovementExporter construye el exportador.
func NewMovementExporter() *MovementExporter { return &MovementExporter{} }

var _ report.MovementWorkbookExporter = (*MovementExporter)(nil)

// ExportMovements escribe una hoja con una fila por movimiento, en el orden
// recibido, y devuelve los bytes del libro.
func (e *MovementExporter) ExportMovements(movements []*entity.StockMovement) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"id",
		"product_id",
		"product_name",
		"product_sku",
		"movement_type",
		"quantity",
		"reason",
		"location_from",
		"location_to",
		"unit_cost",
		"reference",
		"status",
		"created_by",
		"created_at",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("excel: escribir cabecera: %w", err)
	}

	rowNum := 2
	for _, m := range movements {
		excelRow := []interface{}{
			m.ID,
			m.ProductID,
			m.ProductName,
			m.ProductSKU,
			m.MovementType,
			m.Quantity,
			m.Reason,
			m.LocationFromName,
			m.LocationToName,
			m.UnitCost.StringFixed(2),
			m.ReferenceNumber,
			m.Status,
			m.CreatedBy,
			m.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return nil, fmt.Errorf("excel: coordenadas de fila %d: %w", rowNum, err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("excel: escribir fila %d: %w", rowNum, err)
		}
		rowNum++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}
