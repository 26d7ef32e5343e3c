package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/domain/repository"
)

var _ repository.ImportReceiptRepository = (*ImportReceiptRepo)(nil)

// ImportReceiptRepo adaptador en memoria de recepciones.
type ImportReceiptRepo struct {
	store *Store
	inTx  bool
}

// NewImportReceiptRepository construye el adaptador con locking propio.
func NewImportReceiptRepository(store *Store) *ImportReceiptRepo {
	return &ImportReceiptRepo{store: store}
}

func (r *ImportReceiptRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func cloneReceipt(rc *entity.ImportReceipt) *entity.ImportReceipt {
	c := *rc
	c.Items = append([]entity.ReceiptItem(nil), rc.Items...)
	return &c
}

// Create persiste la recepción; código repetido -> domain.ErrDuplicate.
func (r *ImportReceiptRepo) Create(ctx context.Context, rc *entity.ImportReceipt) error {
	defer r.lock()()
	for _, existing := range r.store.receipts {
		if existing.Code == rc.Code {
			return domain.ErrDuplicate
		}
	}
	r.store.receipts[rc.ID] = cloneReceipt(rc)
	return nil
}

// GetByID devuelve una copia o nil si no existe.
func (r *ImportReceiptRepo) GetByID(ctx context.Context, id string) (*entity.ImportReceipt, error) {
	defer r.lock()()
	rc, ok := r.store.receipts[id]
	if !ok {
		return nil, nil
	}
	return cloneReceipt(rc), nil
}

// GetByIDForUpdate en memoria no hay row locks: el TxRunner ya serializa
// con el mutex del store.
func (r *ImportReceiptRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.ImportReceipt, error) {
	return r.GetByID(ctx, id)
}

// List devuelve recepciones filtradas, más recientes primero.
func (r *ImportReceiptRepo) List(ctx context.Context, filter repository.ReceiptListFilter) ([]*entity.ImportReceipt, error) {
	defer r.lock()()
	var out []*entity.ImportReceipt
	for _, k := range sortedKeys(r.store.receipts) {
		rc := r.store.receipts[k]
		if filter.Status != "" && rc.Status != filter.Status {
			continue
		}
		if filter.Location != nil && rc.Location != *filter.Location {
			continue
		}
		out = append(out, cloneReceipt(rc))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

// Update persiste estado, notas y campos de completado.
func (r *ImportReceiptRepo) Update(ctx context.Context, rc *entity.ImportReceipt) error {
	defer r.lock()()
	current, ok := r.store.receipts[rc.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c := cloneReceipt(current)
	c.Status = rc.Status
	c.Notes = rc.Notes
	c.CompletedBy = rc.CompletedBy
	c.CompletedByName = rc.CompletedByName
	c.CompletedAt = rc.CompletedAt
	c.UpdatedAt = rc.UpdatedAt
	r.store.receipts[rc.ID] = c
	return nil
}

// LatestCodeForDay devuelve el código con mayor número de secuencia del día.
// La comparación es numérica: a partir de la recepción 100 el sufijo se
// ensancha y el orden lexicográfico dejaría de servir.
func (r *ImportReceiptRepo) LatestCodeForDay(ctx context.Context, prefix string) (string, error) {
	defer r.lock()()
	latest, latestSeq := "", -1
	for _, rc := range r.store.receipts {
		if !hasPrefix(rc.Code, prefix) {
			continue
		}
		if seq := codeSequence(rc.Code); seq > latestSeq {
			latest, latestSeq = rc.Code, seq
		}
	}
	return latest, nil
}

func codeSequence(code string) int {
	parts := strings.Split(code, "-")
	n, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return -1
	}
	return n
}
