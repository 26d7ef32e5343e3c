package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
)

// ReceiptItemRequest una línea de recepción.
type ReceiptItemRequest struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
}

// CreateReceiptRequest body para crear una recepción PENDING.
type CreateReceiptRequest struct {
	SupplierID string               `json:"supplier_id"`
	Location   string               `json:"location"`
	Items      []ReceiptItemRequest `json:"items"`
	Notes      string               `json:"notes,omitempty"`
}

// CancelReceiptRequest body para cancelar una recepción.
type CancelReceiptRequest struct {
	Reason string `json:"reason"`
}

// ReceiptItemResponse una línea de recepción en respuestas.
type ReceiptItemResponse struct {
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	PricePerUnit   decimal.Decimal `json:"price_per_unit"`
	Total          decimal.Decimal `json:"total"`
}

// ReceiptResponse una recepción completa.
type ReceiptResponse struct {
	ID              string                `json:"id"`
	Code            string                `json:"code"`
	SupplierID      string                `json:"supplier_id"`
	Location        string                `json:"location"`
	Items           []ReceiptItemResponse `json:"items"`
	TotalAmount     decimal.Decimal       `json:"total_amount"`
	Status          string                `json:"status"`
	Notes           string                `json:"notes,omitempty"`
	CreatedBy       string                `json:"created_by"`
	CreatedByName   string                `json:"created_by_name,omitempty"`
	CompletedBy     string                `json:"completed_by,omitempty"`
	CompletedByName string                `json:"completed_by_name,omitempty"`
	CompletedAt     *time.Time            `json:"completed_at,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// ReceiptFromEntity arma la respuesta desde la entidad.
func ReceiptFromEntity(rc *entity.ImportReceipt) ReceiptResponse {
	items := make([]ReceiptItemResponse, 0, len(rc.Items))
	for _, it := range rc.Items {
		items = append(items, ReceiptItemResponse{
			IngredientID:   it.IngredientID,
			IngredientName: it.IngredientName,
			Quantity:       it.Quantity,
			Unit:           it.Unit,
			PricePerUnit:   it.PricePerUnit,
			Total:          it.Total,
		})
	}
	return ReceiptResponse{
		ID:              rc.ID,
		Code:            rc.Code,
		SupplierID:      rc.SupplierID,
		Location:        rc.Location.Key(),
		Items:           items,
		TotalAmount:     rc.TotalAmount,
		Status:          rc.Status,
		Notes:           rc.Notes,
		CreatedBy:       rc.CreatedBy,
		CreatedByName:   rc.CreatedByName,
		CompletedBy:     rc.CompletedBy,
		CompletedByName: rc.CompletedByName,
		CompletedAt:     rc.CompletedAt,
		CreatedAt:       rc.CreatedAt,
		UpdatedAt:       rc.UpdatedAt,
	}
}
