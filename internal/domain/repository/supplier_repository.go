package repository

import (
	"context"

	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
)

// SupplierRepository puerto de persistencia de proveedores.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	List(ctx context.Context, onlyActive bool) ([]*entity.Supplier, error)
}
