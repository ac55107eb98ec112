package report

import (
	"context"
	"time"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// SummaryReportData datos consolidados de ambos ledgers para el reporte imprimible.
type SummaryReportData struct {
	GeneratedAt time.Time
	Days        int
	Adjustments dto.AdjustmentSummaryDTO
	Movements   dto.MovementSummaryDTO
	TopReasons  []dto.ReasonStatsDTO
}

// SummaryPDFGenerator puerto para la representación PDF del resumen (DIP:
// la infraestructura implementa, el caso de uso consume).
type SummaryPDFGenerator interface {
	GenerateSummaryPDF(ctx context.Context, data SummaryReportData) ([]byte, error)
}

// MovementWorkbookExporter puerto para exportar el ledger de movimientos como
// libro de cálculo.
type MovementWorkbookExporter interface {
	ExportMovements(movements []*entity.StockMovement) ([]byte, error)
}
