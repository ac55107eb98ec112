package adjustment

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// ApprovalFailure par (id, error) de un elemento fallido del lote.
type ApprovalFailure struct {
	AdjustmentID string
	Err          error
}

// ApprovalResult resultado de una aprobación por lotes: exitosos y fallidos en
// el orden de entrada. Un lote con fallos parciales no es un error.
type ApprovalResult struct {
	Updated  []*entity.StockAdjustment
	Failures []ApprovalFailure
}

// Approve aplica la misma decisión (aprobado/rechazado) a cada ajuste del lote
// de forma independiente: un id que falla se registra en el log y se salta, sin
// abortar a sus hermanos (best-effort batch). Cada actualización es un único
// UPDATE condicionado a status='pending' con el append de notas del lado del
// servidor, así que la transición es atómica por fila.
//
// Falla solo con lista vacía (antes de cualquier escritura) o cuando ningún id
// pudo actualizarse (domain.ErrBatchFailed).
func (uc *UseCase) Approve(ctx context.Context, in dto.ApproveAdjustmentsRequest) (*ApprovalResult, error) {
	if len(in.AdjustmentIDs) == 0 {
		return nil, fmt.Errorf("%w: adjustmentIds no puede estar vacío", domain.ErrInvalidInput)
	}
	if in.Approved == nil {
		return nil, fmt.Errorf("%w: approved es obligatorio", domain.ErrInvalidInput)
	}

	approvedBy := in.ApprovedBy
	if approvedBy == "" {
		approvedBy = "system"
	}

	decision := repository.ApprovalDecision{
		Approved:      *in.Approved,
		ApprovedBy:    approvedBy,
		ApprovalNotes: in.ApprovalNotes,
		DecidedAt:     uc.nowFn(),
	}

	result := &ApprovalResult{}
	for _, id := range in.AdjustmentIDs {
		updated, err := uc.adjustmentRepo.ApplyDecision(ctx, id, decision)
		if err == nil && updated == nil {
			// Inexistente o ya en estado terminal: cuenta como fallo del elemento.
			err = fmt.Errorf("%w: ajuste %s no está pendiente", domain.ErrConflict, id)
		}
		if err != nil {
			uc.log.Warn().Err(err).Str("adjustment_id", id).Msg("aprobación de ajuste omitida")
			result.Failures = append(result.Failures, ApprovalFailure{AdjustmentID: id, Err: err})
			continue
		}
		result.Updated = append(result.Updated, updated)
	}

	if len(result.Updated) == 0 {
		return nil, fmt.Errorf("%w: %d ajustes fallidos", domain.ErrBatchFailed, len(result.Failures))
	}
	return result, nil
}
