package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
)

// StockTransactionRepository puerto del ledger. Solo inserta y lee: las
// transacciones son append-only y nunca se editan ni borran.
type StockTransactionRepository interface {
	Create(ctx context.Context, txn *entity.StockTransaction) error
	// ListByStock devuelve la historia de un par (insumo, ubicación),
	// más reciente primero.
	ListByStock(ctx context.Context, ingredientID string, loc entity.Location, limit, offset int) ([]*entity.StockTransaction, error)
	// ExistsByReference indica si ya hay una fila del tipo dado para el
	// referenceID con el signo pedido. Soporta la idempotencia de los
	// hooks de pedidos (deducción y reposición por orderID).
	ExistsByReference(ctx context.Context, referenceID, txnType string, negativeDelta bool) (bool, error)
	// ListByTypeAndPeriod filtra por tipo y rango de fechas; loc nil = todas
	// las ubicaciones. Alimenta el análisis de mermas.
	ListByTypeAndPeriod(ctx context.Context, txnType string, loc *entity.Location, from, to time.Time) ([]*entity.StockTransaction, error)
}
