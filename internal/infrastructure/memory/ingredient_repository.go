package memory

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo adaptador en memoria del maestro de insumos.
type IngredientRepo struct {
	store *Store
	inTx  bool
}

// NewIngredientRepository construye el adaptador con locking propio.
func NewIngredientRepository(store *Store) *IngredientRepo {
	return &IngredientRepo{store: store}
}

func (r *IngredientRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *IngredientRepo) nameTaken(name, exceptID string) bool {
	for _, ing := range r.store.ingredients {
		if ing.ID != exceptID && strings.EqualFold(ing.Name, name) {
			return true
		}
	}
	return false
}

// Create inserta el insumo; nombre repetido -> domain.ErrDuplicate.
func (r *IngredientRepo) Create(ctx context.Context, ing *entity.Ingredient) error {
	defer r.lock()()
	if r.nameTaken(ing.Name, "") {
		return domain.ErrDuplicate
	}
	c := *ing
	r.store.ingredients[ing.ID] = &c
	return nil
}

// GetByID devuelve una copia o nil si no existe.
func (r *IngredientRepo) GetByID(ctx context.Context, id string) (*entity.Ingredient, error) {
	defer r.lock()()
	ing, ok := r.store.ingredients[id]
	if !ok {
		return nil, nil
	}
	c := *ing
	return &c, nil
}

// List devuelve el catálogo en orden estable.
func (r *IngredientRepo) List(ctx context.Context) ([]*entity.Ingredient, error) {
	defer r.lock()()
	out := make([]*entity.Ingredient, 0, len(r.store.ingredients))
	for _, k := range sortedKeys(r.store.ingredients) {
		c := *r.store.ingredients[k]
		out = append(out, &c)
	}
	return out, nil
}

// UpdateMaster actualiza nombre/categoría/unidad.
func (r *IngredientRepo) UpdateMaster(ctx context.Context, ing *entity.Ingredient) error {
	defer r.lock()()
	current, ok := r.store.ingredients[ing.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.nameTaken(ing.Name, ing.ID) {
		return domain.ErrDuplicate
	}
	c := *current
	c.Name = ing.Name
	c.Category = ing.Category
	c.Unit = ing.Unit
	c.LastUpdated = ing.LastUpdated
	r.store.ingredients[ing.ID] = &c
	return nil
}

// UpdateCost escribe el costo promedio ponderado.
func (r *IngredientRepo) UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error {
	defer r.lock()()
	current, ok := r.store.ingredients[id]
	if !ok {
		return domain.ErrNotFound
	}
	c := *current
	c.CostPrice = cost
	c.LastUpdated = time.Now()
	r.store.ingredients[id] = &c
	return nil
}

// Delete elimina el insumo y cascadea a sus registros de stock; el ledger
// queda intacto.
func (r *IngredientRepo) Delete(ctx context.Context, id string) error {
	defer r.lock()()
	if _, ok := r.store.ingredients[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.ingredients, id)
	for _, k := range sortedKeys(r.store.stocks) {
		if r.store.stocks[k].IngredientID == id {
			delete(r.store.stocks, k)
		}
	}
	return nil
}
