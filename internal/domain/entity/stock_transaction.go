package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del ledger.
const (
	TxnTypeImport          = "IMPORT"
	TxnTypeSale            = "SALE"
	TxnTypeTransferIn      = "TRANSFER_IN"
	TxnTypeTransferOut     = "TRANSFER_OUT"
	TxnTypeWaste           = "WASTE"
	TxnTypeAuditAdjustment = "AUDIT_ADJUSTMENT"
)

// ValidTxnType verifica que el tipo pertenezca al enum del ledger.
func ValidTxnType(t string) bool {
	switch t {
	case TxnTypeImport, TxnTypeSale, TxnTypeTransferIn, TxnTypeTransferOut,
		TxnTypeWaste, TxnTypeAuditAdjustment:
		return true
	}
	return false
}

// StockTransaction es una entrada inmutable del ledger: el delta firmado
// aplicado a un StockRecord más el snapshot antes/después. Las correcciones
// se hacen con nuevas filas AUDIT_ADJUSTMENT, nunca editando la historia.
// Invariante: NewQty = PreviousQty + QuantityDelta.
type StockTransaction struct {
	ID              string
	IngredientID    string
	Location        Location
	Type            string
	QuantityDelta   decimal.Decimal // firmado: negativo para salidas
	PreviousQty     decimal.Decimal
	NewQty          decimal.Decimal
	Reason          string
	ReferenceID     string // correlaciona pares (transferencia, pedido, recepción)
	PerformedBy     string
	PerformedByName string
	CreatedAt       time.Time
}
