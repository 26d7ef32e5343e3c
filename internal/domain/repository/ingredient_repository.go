package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
)

// IngredientRepository puerto de persistencia del maestro de insumos (DIP).
type IngredientRepository interface {
	Create(ctx context.Context, ing *entity.Ingredient) error
	GetByID(ctx context.Context, id string) (*entity.Ingredient, error)
	List(ctx context.Context) ([]*entity.Ingredient, error)
	// UpdateMaster actualiza nombre/categoría/unidad. El costo NO se toca aquí:
	// solo el flujo de recepción escribe CostPrice (vía UpdateCost).
	UpdateMaster(ctx context.Context, ing *entity.Ingredient) error
	UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error
	// Delete elimina el insumo y cascadea a sus StockRecords. Las filas del
	// ledger se conservan: la historia es inmutable.
	Delete(ctx context.Context, id string) error
}
