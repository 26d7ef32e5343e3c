package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo implementación del ledger sobre PostgreSQL. La tabla
// es append-only: no hay UPDATE ni DELETE aquí, por diseño del puerto.
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

const txnColumns = `id, ingredient_id, location, type, quantity_delta, previous_qty, new_qty,
		reason, reference_id, performed_by, performed_by_name, created_at`

// Create inserta una fila del ledger.
func (r *StockTransactionRepo) Create(ctx context.Context, txn *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (` + txnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		txn.ID, txn.IngredientID, txn.Location.Key(), txn.Type,
		txn.QuantityDelta, txn.PreviousQty, txn.NewQty,
		nullIfEmpty(txn.Reason), nullIfEmpty(txn.ReferenceID),
		nullIfEmpty(txn.PerformedBy), nullIfEmpty(txn.PerformedByName), txn.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert stock transaction: %w", err)
	}
	return nil
}

// ListByStock devuelve la historia de un par (insumo, ubicación), más
// reciente primero.
func (r *StockTransactionRepo) ListByStock(ctx context.Context, ingredientID string, loc entity.Location, limit, offset int) ([]*entity.StockTransaction, error) {
	query := `
		SELECT ` + txnColumns + `
		FROM stock_transactions
		WHERE ingredient_id = $1 AND location = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, ingredientID, loc.Key(), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()
	return collectTxns(rows)
}

// ExistsByReference indica si ya hay una fila del tipo dado para el
// referenceID con el signo pedido.
func (r *StockTransactionRepo) ExistsByReference(ctx context.Context, referenceID, txnType string, negativeDelta bool) (bool, error) {
	sign := "> 0"
	if negativeDelta {
		sign = "< 0"
	}
	query := `
		SELECT EXISTS (
			SELECT 1 FROM stock_transactions
			WHERE reference_id = $1 AND type = $2 AND quantity_delta ` + sign + `
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, referenceID, txnType).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists by reference: %w", err)
	}
	return exists, nil
}

// ListByTypeAndPeriod filtra por tipo y rango [from, to); loc nil = todas
// las ubicaciones.
func (r *StockTransactionRepo) ListByTypeAndPeriod(ctx context.Context, txnType string, loc *entity.Location, from, to time.Time) ([]*entity.StockTransaction, error) {
	query := `
		SELECT ` + txnColumns + `
		FROM stock_transactions
		WHERE type = $1 AND created_at >= $2 AND created_at < $3`
	args := []any{txnType, from, to}
	if loc != nil {
		query += ` AND location = $4`
		args = append(args, loc.Key())
	}
	query += ` ORDER BY created_at`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions by period: %w", err)
	}
	defer rows.Close()
	return collectTxns(rows)
}

func collectTxns(rows pgx.Rows) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for rows.Next() {
		var txn entity.StockTransaction
		var locKey string
		var reason, refID, performedBy, performedByName *string
		if err := rows.Scan(
			&txn.ID, &txn.IngredientID, &locKey, &txn.Type,
			&txn.QuantityDelta, &txn.PreviousQty, &txn.NewQty,
			&reason, &refID, &performedBy, &performedByName, &txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		loc, err := entity.ParseLocationKey(locKey)
		if err != nil {
			return nil, err
		}
		txn.Location = loc
		txn.Reason = deref(reason)
		txn.ReferenceID = deref(refID)
		txn.PerformedBy = deref(performedBy)
		txn.PerformedByName = deref(performedByName)
		out = append(out, &txn)
	}
	return out, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
