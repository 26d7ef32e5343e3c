package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación de IngredientRepository (usable con pool o tx).
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

// Create inserta el insumo. Nombre duplicado -> domain.ErrDuplicate.
func (r *IngredientRepo) Create(ctx context.Context, ing *entity.Ingredient) error {
	query := `
		INSERT INTO ingredients (id, name, category, unit, cost_price, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		ing.ID, ing.Name, nullIfEmpty(ing.Category), ing.Unit, ing.CostPrice, ing.LastUpdated)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

// GetByID devuelve el insumo o nil si no existe.
func (r *IngredientRepo) GetByID(ctx context.Context, id string) (*entity.Ingredient, error) {
	query := `
		SELECT id, name, COALESCE(category, ''), unit, cost_price, last_updated
		FROM ingredients WHERE id = $1`
	var ing entity.Ingredient
	err := r.q.QueryRow(ctx, query, id).Scan(
		&ing.ID, &ing.Name, &ing.Category, &ing.Unit, &ing.CostPrice, &ing.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return &ing, nil
}

// List devuelve el catálogo ordenado por nombre.
func (r *IngredientRepo) List(ctx context.Context) ([]*entity.Ingredient, error) {
	query := `
		SELECT id, name, COALESCE(category, ''), unit, cost_price, last_updated
		FROM ingredients ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()

	var out []*entity.Ingredient
	for rows.Next() {
		var ing entity.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Category, &ing.Unit, &ing.CostPrice, &ing.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		out = append(out, &ing)
	}
	return out, rows.Err()
}

// UpdateMaster actualiza nombre/categoría/unidad. El costo no se toca aquí.
func (r *IngredientRepo) UpdateMaster(ctx context.Context, ing *entity.Ingredient) error {
	query := `
		UPDATE ingredients
		SET name = $2, category = $3, unit = $4, last_updated = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		ing.ID, ing.Name, nullIfEmpty(ing.Category), ing.Unit, ing.LastUpdated)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update ingredient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateCost escribe el costo promedio ponderado (solo el flujo de recepción
// llama aquí).
func (r *IngredientRepo) UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error {
	query := `UPDATE ingredients SET cost_price = $2, last_updated = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, cost)
	if err != nil {
		return fmt.Errorf("update ingredient cost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el insumo; los stock_records caen por FK ON DELETE CASCADE
// y las filas del ledger se conservan (sin FK al maestro).
func (r *IngredientRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
