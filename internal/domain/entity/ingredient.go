package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient es el dato maestro de un insumo de cocina. CostPrice es el costo
// promedio ponderado y solo lo escribe el flujo de recepción de mercancía.
type Ingredient struct {
	ID          string
	Name        string // único
	Category    string // Meat, Seafood, Vegetable, Spice, Dry, Drink, Other
	Unit        string // kg, g, liter, ml, pcs, can, bottle
	CostPrice   decimal.Decimal
	LastUpdated time.Time
}
