package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una recepción de mercancía. PENDING es el único no terminal:
// PENDING → COMPLETED o PENDING → CANCELLED, sin más transiciones.
const (
	ReceiptStatusPending   = "PENDING"
	ReceiptStatusCompleted = "COMPLETED"
	ReceiptStatusCancelled = "CANCELLED"
)

// ReceiptItem es una línea de la recepción. Unit e IngredientName se
// desnormalizan al crear para que el documento quede legible aunque el
// maestro cambie después.
type ReceiptItem struct {
	IngredientID   string
	IngredientName string
	Quantity       decimal.Decimal
	Unit           string
	PricePerUnit   decimal.Decimal
	Total          decimal.Decimal
}

// ImportReceipt es el documento de entrada de mercancía de un proveedor.
// Code es secuencial por día calendario (PN-YYYYMMDD-NN).
type ImportReceipt struct {
	ID              string
	Code            string
	SupplierID      string
	Location        Location
	Items           []ReceiptItem
	TotalAmount     decimal.Decimal
	Status          string
	Notes           string
	CreatedBy       string
	CreatedByName   string
	CompletedBy     string
	CompletedByName string
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsPending indica si la recepción todavía admite completar o cancelar.
func (r *ImportReceipt) IsPending() bool { return r.Status == ReceiptStatusPending }
