// Package inventory contiene servicios de dominio puros del motor de stock.
package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost calcula el costo promedio ponderado tras una entrada:
//
//	NuevoCosto = round((StockPrevio*CostoPrevio + CantEntrada*PrecioEntrada) / (StockPrevio + CantEntrada))
//
// El resultado se redondea a entero (los precios se manejan en la unidad
// monetaria mínima). Si el denominador es cero o negativo devuelve el costo
// previo sin cambios: una entrada que no aporta cantidad no redefine el costo.
func WeightedAverageCost(prevQty, prevCost, inQty, inPrice decimal.Decimal) decimal.Decimal {
	denom := prevQty.Add(inQty)
	if denom.LessThanOrEqual(decimal.Zero) {
		return prevCost
	}
	num := prevQty.Mul(prevCost).Add(inQty.Mul(inPrice))
	return num.Div(denom).Round(0)
}
