package memory

import (
	"context"

	"github.com/tu-usuario/resto-backoffice/internal/application/ledger"
	"github.com/tu-usuario/resto-backoffice/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner simula la transacción: toma el lock del store, saca un snapshot
// y lo restaura si el callback falla. Los repos entregados al callback no
// toman el lock (ya lo tiene el runner).
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos atados al estado bajo lock; rollback por snapshot.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	txnRepo repository.StockTransactionRepository,
	ingredientRepo repository.IngredientRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.snapshot()
	err := fn(
		&StockRepo{store: r.store, inTx: true},
		&StockTransactionRepo{store: r.store, inTx: true},
		&IngredientRepo{store: r.store, inTx: true},
	)
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

// RunReceipt igual que Run, con el repo de recepciones incluido.
func (r *TxRunner) RunReceipt(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	txnRepo repository.StockTransactionRepository,
	ingredientRepo repository.IngredientRepository,
	receiptRepo repository.ImportReceiptRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.snapshot()
	err := fn(
		&StockRepo{store: r.store, inTx: true},
		&StockTransactionRepo{store: r.store, inTx: true},
		&IngredientRepo{store: r.store, inTx: true},
		&ImportReceiptRepo{store: r.store, inTx: true},
	)
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
