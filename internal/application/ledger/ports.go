package ledger

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el registro de stock, la fila
// del ledger y cualquier cambio de estado padre se confirmen o reviertan
// juntos; una escritura parcial nunca es observable.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		txnRepo repository.StockTransactionRepository,
		ingredientRepo repository.IngredientRepository,
	) error) error

	// RunReceipt añade el repositorio de recepciones a la misma transacción
	// (completado de recepción: deltas + costo + flip de estado, atómico).
	RunReceipt(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		txnRepo repository.StockTransactionRepository,
		ingredientRepo repository.IngredientRepository,
		receiptRepo repository.ImportReceiptRepository,
	) error) error
}

// StockAlert es el evento publicado tras un ApplyDelta confirmado.
type StockAlert struct {
	IngredientID string          `json:"ingredient_id"`
	Location     entity.Location `json:"location"`
	Quantity     decimal.Decimal `json:"quantity"`
	IsLowStock   bool            `json:"is_low_stock"`
}

// Notifier publica eventos de stock y de costo para dashboards y el módulo
// de recetas. Entrega best-effort, a lo sumo una vez, SIEMPRE fuera de la
// transacción del ledger: un fallo aquí nunca revierte stock.
type Notifier interface {
	StockChanged(ctx context.Context, alert StockAlert) error
	CostChanged(ctx context.Context, ingredientID string, cost decimal.Decimal) error
}

// NopNotifier descarta todo (tests y despliegues sin redis).
type NopNotifier struct{}

func (NopNotifier) StockChanged(context.Context, StockAlert) error             { return nil }
func (NopNotifier) CostChanged(context.Context, string, decimal.Decimal) error { return nil }
