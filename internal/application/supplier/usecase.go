// Package supplier gestiona el registro de proveedores.
package supplier

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/resto-backoffice/internal/application/rbac"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/domain/repository"
	"github.com/tu-usuario/resto-backoffice/pkg/logger"
)

// SupplierUseCase alta y consulta de proveedores.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
	log          *logger.Logger
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(supplierRepo repository.SupplierRepository, log *logger.Logger) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo, log: log.Component("supplier")}
}

// CreateInput datos de un proveedor nuevo.
type CreateInput struct {
	Name          string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
	Category      string
}

// Create da de alta un proveedor. Solo admin.
func (uc *SupplierUseCase) Create(ctx context.Context, scope rbac.Scope, in CreateInput) (*entity.Supplier, error) {
	if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || !entity.ValidSupplierCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}
	sp := &entity.Supplier{
		ID:            uuid.New().String(),
		Name:          name,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		Category:      in.Category,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}
	if err := uc.supplierRepo.Create(ctx, sp); err != nil {
		return nil, err
	}
	uc.log.Info().Str("supplier_id", sp.ID).Str("name", sp.Name).Msg("proveedor creado")
	return sp, nil
}

// Get devuelve un proveedor por ID.
func (uc *SupplierUseCase) Get(ctx context.Context, id string) (*entity.Supplier, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	sp, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, domain.ErrNotFound
	}
	return sp, nil
}

// List devuelve los proveedores activos.
func (uc *SupplierUseCase) List(ctx context.Context) ([]*entity.Supplier, error) {
	return uc.supplierRepo.List(ctx, true)
}
