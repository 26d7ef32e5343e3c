package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
)

// StockRepository puerto de persistencia de registros de stock.
//
// La mutación de Quantity está formalizada como compare-and-swap: la
// escritura lleva la cantidad previamente leída como guarda y falla (sin
// escribir) si otra transacción ganó la carrera. Ningún otro método del
// repositorio escribe Quantity.
type StockRepository interface {
	// Get devuelve el registro o nil si aún no existe para ese par.
	Get(ctx context.Context, ingredientID string, loc entity.Location) (*entity.StockRecord, error)
	// ListByLocation devuelve los registros existentes de UNA ubicación,
	// nunca un total global.
	ListByLocation(ctx context.Context, loc entity.Location) ([]*entity.StockRecord, error)
	// CompareAndSwapQuantity escribe newQty solo si la fila todavía tiene
	// expected. Devuelve false (sin escribir) si la guarda falla.
	CompareAndSwapQuantity(ctx context.Context, ingredientID string, loc entity.Location, expected, newQty decimal.Decimal, now time.Time) (bool, error)
	// InsertIfAbsent crea el registro de forma perezosa (primera escritura
	// del par). Devuelve false si otra transacción lo creó antes.
	InsertIfAbsent(ctx context.Context, rec *entity.StockRecord) (bool, error)
	// UpdateThreshold cambia el umbral mínimo sin tocar la cantidad.
	UpdateThreshold(ctx context.Context, ingredientID string, loc entity.Location, threshold decimal.Decimal, now time.Time) error
}
