package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-backoffice/internal/application/ledger"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
)

// StockItemResponse una fila de stock (maestro + cantidades de la ubicación).
type StockItemResponse struct {
	IngredientID string          `json:"ingredient_id"`
	Name         string          `json:"name"`
	Category     string          `json:"category,omitempty"`
	Unit         string          `json:"unit"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	Location     string          `json:"location"`
	Quantity     decimal.Decimal `json:"quantity"`
	MinThreshold decimal.Decimal `json:"min_threshold"`
	IsLow        bool            `json:"is_low"`
	LastUpdated  time.Time       `json:"last_updated"`
}

// StockItemFromView arma la respuesta desde la vista del ledger.
func StockItemFromView(v *ledger.StockView, loc entity.Location) StockItemResponse {
	return StockItemResponse{
		IngredientID: v.Ingredient.ID,
		Name:         v.Ingredient.Name,
		Category:     v.Ingredient.Category,
		Unit:         v.Ingredient.Unit,
		CostPrice:    v.Ingredient.CostPrice,
		Location:     loc.Key(),
		Quantity:     v.Quantity,
		MinThreshold: v.MinThreshold,
		IsLow:        v.IsLow,
		LastUpdated:  v.LastUpdated,
	}
}

// TransactionResponse una fila del historial del ledger.
type TransactionResponse struct {
	ID              string          `json:"id"`
	IngredientID    string          `json:"ingredient_id"`
	Location        string          `json:"location"`
	Type            string          `json:"type"`
	QuantityDelta   decimal.Decimal `json:"quantity_delta"`
	PreviousQty     decimal.Decimal `json:"previous_qty"`
	NewQty          decimal.Decimal `json:"new_qty"`
	Reason          string          `json:"reason,omitempty"`
	ReferenceID     string          `json:"reference_id,omitempty"`
	PerformedBy     string          `json:"performed_by,omitempty"`
	PerformedByName string          `json:"performed_by_name,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TransactionFromEntity arma la respuesta desde la entidad.
func TransactionFromEntity(t *entity.StockTransaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		IngredientID:    t.IngredientID,
		Location:        t.Location.Key(),
		Type:            t.Type,
		QuantityDelta:   t.QuantityDelta,
		PreviousQty:     t.PreviousQty,
		NewQty:          t.NewQty,
		Reason:          t.Reason,
		ReferenceID:     t.ReferenceID,
		PerformedBy:     t.PerformedBy,
		PerformedByName: t.PerformedByName,
		CreatedAt:       t.CreatedAt,
	}
}

// SetThresholdRequest body para fijar el mínimo de alerta.
type SetThresholdRequest struct {
	Location     string          `json:"location"`
	MinThreshold decimal.Decimal `json:"min_threshold"`
}

// TransferRequest body para mover stock entre ubicaciones.
type TransferRequest struct {
	IngredientID string          `json:"ingredient_id"`
	From         string          `json:"from"`
	To           string          `json:"to"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// WasteRequest body para registrar una merma.
type WasteRequest struct {
	IngredientID string          `json:"ingredient_id"`
	Location     string          `json:"location"`
	Quantity     decimal.Decimal `json:"quantity"`
	Reason       string          `json:"reason"`
}

// AuditCountRequest una línea del conteo físico. ActualQty es puntero para
// distinguir "contado cero" de "sin contar": una línea sin actual_qty se
// salta sin ajustar.
type AuditCountRequest struct {
	IngredientID string           `json:"ingredient_id"`
	ActualQty    *decimal.Decimal `json:"actual_qty"`
}

// AuditSubmitRequest body para aplicar un conteo físico.
type AuditSubmitRequest struct {
	Location string              `json:"location"`
	Counts   []AuditCountRequest `json:"counts"`
	Reason   string              `json:"reason,omitempty"`
}

// OrderLineRequest una línea de consumo de pedido.
type OrderLineRequest struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// OrderHookRequest body de los hooks de pedidos.
type OrderHookRequest struct {
	OrderID  string             `json:"order_id"`
	Location string             `json:"location"`
	Lines    []OrderLineRequest `json:"lines"`
}
