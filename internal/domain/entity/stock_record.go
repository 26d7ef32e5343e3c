package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinThreshold es el umbral mínimo asignado a los registros de stock
// creados de forma perezosa (primera escritura para un par insumo/ubicación).
var DefaultMinThreshold = decimal.NewFromInt(5)

// StockRecord es la cantidad materializada de un insumo en una ubicación.
// Clave única (IngredientID, Location). Quantity nunca es negativa; el único
// escritor lógico es el ledger vía ApplyDelta.
type StockRecord struct {
	IngredientID string
	Location     Location
	Quantity     decimal.Decimal
	MinThreshold decimal.Decimal
	LastUpdated  time.Time
}

// IsLow indica si la cantidad está por debajo del umbral mínimo.
func (s *StockRecord) IsLow() bool {
	return s.Quantity.LessThan(s.MinThreshold)
}
