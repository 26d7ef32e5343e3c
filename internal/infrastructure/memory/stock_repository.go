package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo adaptador en memoria de StockRepository.
type StockRepo struct {
	store *Store
	inTx  bool
}

// NewStockRepository construye el adaptador con locking propio (fuera de tx).
func NewStockRepository(store *Store) *StockRepo {
	return &StockRepo{store: store}
}

func (r *StockRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

// Get devuelve una copia del registro o nil si no existe.
func (r *StockRepo) Get(ctx context.Context, ingredientID string, loc entity.Location) (*entity.StockRecord, error) {
	defer r.lock()()
	rec, ok := r.store.stocks[stockKey(ingredientID, loc)]
	if !ok {
		return nil, nil
	}
	c := *rec
	return &c, nil
}

// ListByLocation devuelve copias de los registros de una ubicación.
func (r *StockRepo) ListByLocation(ctx context.Context, loc entity.Location) ([]*entity.StockRecord, error) {
	defer r.lock()()
	var out []*entity.StockRecord
	for _, k := range sortedKeys(r.store.stocks) {
		rec := r.store.stocks[k]
		if rec.Location == loc {
			c := *rec
			out = append(out, &c)
		}
	}
	return out, nil
}

// CompareAndSwapQuantity escribe solo si la cantidad actual coincide con la
// esperada.
func (r *StockRepo) CompareAndSwapQuantity(ctx context.Context, ingredientID string, loc entity.Location, expected, newQty decimal.Decimal, now time.Time) (bool, error) {
	defer r.lock()()
	rec, ok := r.store.stocks[stockKey(ingredientID, loc)]
	if !ok || !rec.Quantity.Equal(expected) {
		return false, nil
	}
	c := *rec
	c.Quantity = newQty
	c.LastUpdated = now
	r.store.stocks[stockKey(ingredientID, loc)] = &c
	return true, nil
}

// InsertIfAbsent crea el registro si el par todavía no existe.
func (r *StockRepo) InsertIfAbsent(ctx context.Context, rec *entity.StockRecord) (bool, error) {
	defer r.lock()()
	key := stockKey(rec.IngredientID, rec.Location)
	if _, exists := r.store.stocks[key]; exists {
		return false, nil
	}
	c := *rec
	r.store.stocks[key] = &c
	return true, nil
}

// UpdateThreshold cambia el umbral sin tocar la cantidad.
func (r *StockRepo) UpdateThreshold(ctx context.Context, ingredientID string, loc entity.Location, threshold decimal.Decimal, now time.Time) error {
	defer r.lock()()
	rec, ok := r.store.stocks[stockKey(ingredientID, loc)]
	if !ok {
		return nil
	}
	c := *rec
	c.MinThreshold = threshold
	c.LastUpdated = now
	r.store.stocks[stockKey(ingredientID, loc)] = &c
	return nil
}
