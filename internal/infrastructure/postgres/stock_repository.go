package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con
// pool o tx). La ubicación se persiste por su clave: "central" o el ID de la
// sucursal; nunca NULL.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get devuelve el registro o nil si aún no existe para el par.
func (r *StockRepo) Get(ctx context.Context, ingredientID string, loc entity.Location) (*entity.StockRecord, error) {
	query := `
		SELECT ingredient_id, location, quantity, min_threshold, last_updated
		FROM stock_records WHERE ingredient_id = $1 AND location = $2`
	rec, err := scanStockRecord(r.q.QueryRow(ctx, query, ingredientID, loc.Key()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record: %w", err)
	}
	return rec, nil
}

// ListByLocation devuelve los registros existentes de una ubicación.
func (r *StockRepo) ListByLocation(ctx context.Context, loc entity.Location) ([]*entity.StockRecord, error) {
	query := `
		SELECT ingredient_id, location, quantity, min_threshold, last_updated
		FROM stock_records WHERE location = $1
		ORDER BY ingredient_id`
	rows, err := r.q.Query(ctx, query, loc.Key())
	if err != nil {
		return nil, fmt.Errorf("list stock records: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockRecord
	for rows.Next() {
		rec, err := scanStockRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// CompareAndSwapQuantity escribe newQty solo si la fila todavía tiene la
// cantidad esperada. RowsAffected 0 significa que otra transacción ganó la
// carrera; no se escribe nada.
func (r *StockRepo) CompareAndSwapQuantity(ctx context.Context, ingredientID string, loc entity.Location, expected, newQty decimal.Decimal, now time.Time) (bool, error) {
	query := `
		UPDATE stock_records
		SET quantity = $4, last_updated = $5
		WHERE ingredient_id = $1 AND location = $2 AND quantity = $3`
	tag, err := r.q.Exec(ctx, query, ingredientID, loc.Key(), expected, newQty, now)
	if err != nil {
		return false, fmt.Errorf("cas stock quantity: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// InsertIfAbsent crea el registro si el par todavía no existe. Devuelve
// false si otra transacción lo creó antes.
func (r *StockRepo) InsertIfAbsent(ctx context.Context, rec *entity.StockRecord) (bool, error) {
	query := `
		INSERT INTO stock_records (ingredient_id, location, quantity, min_threshold, last_updated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (ingredient_id, location) DO NOTHING`
	tag, err := r.q.Exec(ctx, query,
		rec.IngredientID, rec.Location.Key(), rec.Quantity, rec.MinThreshold, rec.LastUpdated)
	if err != nil {
		return false, fmt.Errorf("insert stock record: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// UpdateThreshold cambia el umbral mínimo sin tocar la cantidad.
func (r *StockRepo) UpdateThreshold(ctx context.Context, ingredientID string, loc entity.Location, threshold decimal.Decimal, now time.Time) error {
	query := `
		UPDATE stock_records
		SET min_threshold = $3, last_updated = $4
		WHERE ingredient_id = $1 AND location = $2`
	_, err := r.q.Exec(ctx, query, ingredientID, loc.Key(), threshold, now)
	if err != nil {
		return fmt.Errorf("update stock threshold: %w", err)
	}
	return nil
}

func scanStockRecord(row pgx.Row) (*entity.StockRecord, error) {
	var rec entity.StockRecord
	var locKey string
	if err := row.Scan(&rec.IngredientID, &locKey, &rec.Quantity, &rec.MinThreshold, &rec.LastUpdated); err != nil {
		return nil, err
	}
	loc, err := entity.ParseLocationKey(locKey)
	if err != nil {
		return nil, err
	}
	rec.Location = loc
	return &rec, nil
}
