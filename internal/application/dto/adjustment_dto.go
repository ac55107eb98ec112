package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// CreateAdjustmentRequest body para POST /api/adjustments.
// quantity_before y quantity_after son obligatorios (punteros para distinguir
// 0 de ausente); quantity_change se calcula siempre en el servidor.
type CreateAdjustmentRequest struct {
	ProductID      string           `json:"product_id"`
	AdjustmentType string           `json:"adjustment_type"`
	Reason         string           `json:"reason"`
	QuantityBefore *int64           `json:"quantity_before"`
	QuantityAfter  *int64           `json:"quantity_after"`
	Location       string           `json:"location,omitempty"`
	Reference      string           `json:"reference,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	CreatedBy      string           `json:"created_by,omitempty"`
	Status         string           `json:"status,omitempty"`
	CostImpact     *decimal.Decimal `json:"cost_impact,omitempty"`
}

// UpdateAdjustmentRequest body para PUT /api/adjustments/:id. Solo los campos
// presentes se modifican; si vienen ambas cantidades se recalcula quantity_change.
type UpdateAdjustmentRequest struct {
	AdjustmentType *string          `json:"adjustment_type,omitempty"`
	Reason         *string          `json:"reason,omitempty"`
	QuantityBefore *int64           `json:"quantity_before,omitempty"`
	QuantityAfter  *int64           `json:"quantity_after,omitempty"`
	Location       *string          `json:"location,omitempty"`
	Reference      *string          `json:"reference,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
	CostImpact     *decimal.Decimal `json:"cost_impact,omitempty"`
}

// ApproveAdjustmentsRequest body para POST /api/adjustments/approve.
// La decisión se aplica uniformemente a todos los ids, cada uno de forma independiente.
type ApproveAdjustmentsRequest struct {
	AdjustmentIDs []string `json:"adjustmentIds"`
	Approved      *bool    `json:"approved"`
	ApprovalNotes string   `json:"approvalNotes,omitempty"`
	ApprovedBy    string   `json:"approvedBy,omitempty"`
}

// AdjustmentResponse registro de ajuste tal como lo expone la API.
type AdjustmentResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	AdjustmentType string          `json:"adjustment_type"`
	Reason         string          `json:"reason"`
	QuantityBefore int64           `json:"quantity_before"`
	QuantityAfter  int64           `json:"quantity_after"`
	QuantityChange int64           `json:"quantity_change"`
	Location       string          `json:"location"`
	Reference      string          `json:"reference,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedBy      string          `json:"created_by"`
	Status         string          `json:"status"`
	ApprovedBy     string          `json:"approved_by,omitempty"`
	ApprovedAt     *time.Time      `json:"approved_at,omitempty"`
	CostImpact     decimal.Decimal `json:"cost_impact"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Products       *ProductRefDTO  `json:"products,omitempty"`
}

// NewAdjustmentResponse convierte la entidad al DTO de salida.
func NewAdjustmentResponse(a *entity.StockAdjustment) AdjustmentResponse {
	resp := AdjustmentResponse{
		ID:             a.ID,
		ProductID:      a.ProductID,
		AdjustmentType: a.AdjustmentType,
		Reason:         a.Reason,
		QuantityBefore: a.QuantityBefore,
		QuantityAfter:  a.QuantityAfter,
		QuantityChange: a.QuantityChange,
		Location:       a.Location,
		Reference:      a.Reference,
		Notes:          a.Notes,
		CreatedBy:      a.CreatedBy,
		Status:         a.Status,
		ApprovedBy:     a.ApprovedBy,
		ApprovedAt:     a.ApprovedAt,
		CostImpact:     a.CostImpact,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
	if a.ProductName != "" || a.ProductSKU != "" {
		resp.Products = &ProductRefDTO{Name: a.ProductName, SKU: a.ProductSKU, Barcode: a.ProductBarcode}
	}
	return resp
}

// NewAdjustmentResponses convierte una lista de entidades, preservando el orden.
func NewAdjustmentResponses(list []*entity.StockAdjustment) []AdjustmentResponse {
	out := make([]AdjustmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, NewAdjustmentResponse(a))
	}
	return out
}

// AdjustmentSummaryDTO resumen agregado del ledger de ajustes.
// Los buckets temporales se calculan con el reloj del servidor al momento del request:
// hoy = día calendario local, semana inicia domingo, mes = primer día del mes.
type AdjustmentSummaryDTO struct {
	TotalAdjustments     int             `json:"totalAdjustments"`
	PendingAdjustments   int             `json:"pendingAdjustments"`
	ApprovedAdjustments  int             `json:"approvedAdjustments"`
	RejectedAdjustments  int             `json:"rejectedAdjustments"`
	TotalIncreases       int             `json:"totalIncreases"`
	TotalDecreases       int             `json:"totalDecreases"`
	TotalCostImpact      decimal.Decimal `json:"totalCostImpact"`
	AdjustmentsToday     int             `json:"adjustmentsToday"`
	AdjustmentsThisWeek  int             `json:"adjustmentsThisWeek"`
	AdjustmentsThisMonth int             `json:"adjustmentsThisMonth"`
}

// ReasonStatsDTO desglose de ajustes por razón. Percentage es sobre el total
// global de ajustes (0 cuando el ledger está vacío).
type ReasonStatsDTO struct {
	Reason        string  `json:"reason"`
	Count         int     `json:"count"`
	TotalQuantity int64   `json:"totalQuantity"`
	Percentage    float64 `json:"percentage"`
}

// AdjustmentProductStatsDTO agregación de ajustes por producto.
type AdjustmentProductStatsDTO struct {
	ProductID         string    `json:"productId"`
	ProductName       string    `json:"productName"`
	ProductSKU        string    `json:"productSku"`
	TotalAdjustments  int       `json:"totalAdjustments"`
	TotalIncrease     int64     `json:"totalIncrease"`
	TotalDecrease     int64     `json:"totalDecrease"`
	NetAdjustment     int64     `json:"netAdjustment"`
	LastAdjustment    time.Time `json:"lastAdjustment"`
	AvgAdjustmentSize float64   `json:"avgAdjustmentSize"`
}
