package memory

import (
	"context"
	"time"

	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo adaptador en memoria del ledger (append-only).
type StockTransactionRepo struct {
	store *Store
	inTx  bool
}

// NewStockTransactionRepository construye el adaptador con locking propio.
func NewStockTransactionRepository(store *Store) *StockTransactionRepo {
	return &StockTransactionRepo{store: store}
}

func (r *StockTransactionRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

// Create agrega la fila al ledger.
func (r *StockTransactionRepo) Create(ctx context.Context, txn *entity.StockTransaction) error {
	defer r.lock()()
	c := *txn
	r.store.txns = append(r.store.txns, &c)
	return nil
}

// ListByStock historia de un par, más reciente primero.
func (r *StockTransactionRepo) ListByStock(ctx context.Context, ingredientID string, loc entity.Location, limit, offset int) ([]*entity.StockTransaction, error) {
	defer r.lock()()
	var matched []*entity.StockTransaction
	// El slice crece en orden de inserción; recorremos al revés.
	for i := len(r.store.txns) - 1; i >= 0; i-- {
		txn := r.store.txns[i]
		if txn.IngredientID == ingredientID && txn.Location == loc {
			matched = append(matched, txn)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	out := make([]*entity.StockTransaction, 0, len(matched))
	for _, txn := range matched {
		c := *txn
		out = append(out, &c)
	}
	return out, nil
}

// ExistsByReference indica si hay una fila del tipo y signo pedidos.
func (r *StockTransactionRepo) ExistsByReference(ctx context.Context, referenceID, txnType string, negativeDelta bool) (bool, error) {
	defer r.lock()()
	for _, txn := range r.store.txns {
		if txn.ReferenceID != referenceID || txn.Type != txnType {
			continue
		}
		if negativeDelta == txn.QuantityDelta.IsNegative() {
			return true, nil
		}
	}
	return false, nil
}

// ListByTypeAndPeriod filtra por tipo y rango [from, to); loc nil = todas.
func (r *StockTransactionRepo) ListByTypeAndPeriod(ctx context.Context, txnType string, loc *entity.Location, from, to time.Time) ([]*entity.StockTransaction, error) {
	defer r.lock()()
	var out []*entity.StockTransaction
	for _, txn := range r.store.txns {
		if txn.Type != txnType {
			continue
		}
		if loc != nil && txn.Location != *loc {
			continue
		}
		if txn.CreatedAt.Before(from) || !txn.CreatedAt.Before(to) {
			continue
		}
		c := *txn
		out = append(out, &c)
	}
	return out, nil
}
