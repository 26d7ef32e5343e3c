package repository

import (
	"context"

	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
)

// BranchRepository puerto de persistencia de sucursales.
type BranchRepository interface {
	Create(ctx context.Context, b *entity.Branch) error
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
	List(ctx context.Context, onlyActive bool) ([]*entity.Branch, error)
	Update(ctx context.Context, b *entity.Branch) error
	// Deactivate es el borrado lógico (la sucursal conserva su historia).
	Deactivate(ctx context.Context, id string) error
}
