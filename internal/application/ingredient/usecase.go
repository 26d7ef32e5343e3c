// Package ingredient gestiona el catálogo maestro de insumos. El costo
// promedio NO se edita por aquí: solo las recepciones completadas lo mueven.
package ingredient

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-backoffice/internal/application/rbac"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/domain/repository"
	"github.com/tu-usuario/resto-backoffice/pkg/logger"
)

// IngredientUseCase CRUD del catálogo de insumos.
type IngredientUseCase struct {
	ingredientRepo repository.IngredientRepository
	log            *logger.Logger
}

// NewIngredientUseCase construye el caso de uso.
func NewIngredientUseCase(ingredientRepo repository.IngredientRepository, log *logger.Logger) *IngredientUseCase {
	return &IngredientUseCase{ingredientRepo: ingredientRepo, log: log.Component("ingredient")}
}

// CreateInput datos de un insumo nuevo.
type CreateInput struct {
	Name      string
	Category  string
	Unit      string
	CostPrice decimal.Decimal
}

// Create da de alta un insumo. El nombre es único; un duplicado responde
// ErrDuplicate. Solo admin.
func (uc *IngredientUseCase) Create(ctx context.Context, scope rbac.Scope, in CreateInput) (*entity.Ingredient, error) {
	if err := scope.CanEditMaster(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Unit == "" || in.CostPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	ing := &entity.Ingredient{
		ID:          uuid.New().String(),
		Name:        name,
		Category:    in.Category,
		Unit:        in.Unit,
		CostPrice:   in.CostPrice,
		LastUpdated: time.Now(),
	}
	if err := uc.ingredientRepo.Create(ctx, ing); err != nil {
		return nil, err
	}
	uc.log.Info().Str("ingredient_id", ing.ID).Str("name", ing.Name).Msg("insumo creado")
	return ing, nil
}

// Get devuelve un insumo por ID.
func (uc *IngredientUseCase) Get(ctx context.Context, id string) (*entity.Ingredient, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	ing, err := uc.ingredientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	return ing, nil
}

// List devuelve el catálogo completo.
func (uc *IngredientUseCase) List(ctx context.Context) ([]*entity.Ingredient, error) {
	return uc.ingredientRepo.List(ctx)
}

// UpdateInput campos editables del maestro. El costo no está aquí.
type UpdateInput struct {
	Name     string
	Category string
	Unit     string
}

// Update edita nombre, categoría y unidad. Solo admin.
func (uc *IngredientUseCase) Update(ctx context.Context, scope rbac.Scope, id string, in UpdateInput) (*entity.Ingredient, error) {
	if err := scope.CanEditMaster(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if id == "" || name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	ing, err := uc.ingredientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	ing.Name = name
	ing.Category = in.Category
	ing.Unit = in.Unit
	ing.LastUpdated = time.Now()
	if err := uc.ingredientRepo.UpdateMaster(ctx, ing); err != nil {
		return nil, err
	}
	uc.log.Info().Str("ingredient_id", id).Msg("insumo actualizado")
	return ing, nil
}

// Delete elimina el insumo y sus registros de stock en todas las
// ubicaciones. El historial del ledger se conserva. Solo admin.
func (uc *IngredientUseCase) Delete(ctx context.Context, scope rbac.Scope, id string) error {
	if err := scope.CanEditMaster(); err != nil {
		return err
	}
	if id == "" {
		return domain.ErrInvalidInput
	}
	ing, err := uc.ingredientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ing == nil {
		return domain.ErrNotFound
	}
	if err := uc.ingredientRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("ingredient_id", id).Str("name", ing.Name).Msg("insumo eliminado")
	return nil
}
