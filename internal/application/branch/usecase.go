// Package branch gestiona el registro de sucursales.
package branch

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

// BranchUseCase CRUD de sucursales.
type BranchUseCase struct {
	branchRepo repository.BranchRepository
	log        *logger.Logger
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(branchRepo repository.BranchRepository, log *logger.Logger) *BranchUseCase {
	return &BranchUseCase{branchRepo: branchRepo, log: log.Component("branch")}
}

// CreateInput datos de una sucursal nueva.
type CreateInput struct {
	Name    string
	Address string
	Phone   string
}

// Create da de alta una sucursal activa. Solo admin.
func (uc *BranchUseCase) Create(ctx context.Context, scope rbac.Scope, in CreateInput) (*entity.Branch, error) {
	if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	br := &entity.Branch{
		ID:        uuid.New().String(),
		Name:      name,
		Address:   in.Address,
		Phone:     in.Phone,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.branchRepo.Create(ctx, br); err != nil {
		return nil, err
	}
	uc.log.Info().Str("branch_id", br.ID).Str("name", br.Name).Msg("sucursal creada")
	return br, nil
}

// Get devuelve una sucursal por ID.
func (uc *BranchUseCase) Get(ctx context.Context, id string) (*entity.Branch, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	br, err := uc.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if br == nil {
		return nil, domain.ErrNotFound
	}
	return br, nil
}

// List devuelve las sucursales. Un manager ve solo la suya; admin y guest
// ven todas las activas, y admin puede pedir también las inactivas.
func (uc *BranchUseCase) List(ctx context.Context, scope rbac.Scope, includeInactive bool) ([]*entity.Branch, error) {
	if scope.Role == entity.RoleManager {
		if !scope.Home.IsValid() || scope.Home.IsCentral() {
			return nil, domain.ErrUnauthorized
		}
		br, err := uc.branchRepo.GetByID(ctx, scope.Home.BranchID())
		if err != nil {
			return nil, err
		}
		if br == nil {
			return nil, domain.ErrNotFound
		}
		return []*entity.Branch{br}, nil
	}
	onlyActive := true
	if includeInactive && scope.IsAdmin() {
		onlyActive = false
	}
	return uc.branchRepo.List(ctx, onlyActive)
}

// UpdateInput campos editables de la sucursal.
type UpdateInput struct {
	Name    string
	Address string
	Phone   string
}

// Update edita los datos de la sucursal. Solo admin.
func (uc *BranchUseCase) Update(ctx context.Context, scope rbac.Scope, id string, in UpdateInput) (*entity.Branch, error) {
	if err := scope.RequireAdmin(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if id == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	br, err := uc.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if br == nil {
		return nil, domain.ErrNotFound
	}
	br.Name = name
	br.Address = in.Address
	br.Phone = in.Phone
	br.UpdatedAt = time.Now()
	if err := uc.branchRepo.Update(ctx, br); err != nil {
		return nil, err
	}
	uc.log.Info().Str("branch_id", id).Msg("sucursal actualizada")
	return br, nil
}

// Deactivate marca la sucursal como inactiva. Su stock y su historial se
// conservan. Solo admin.
func (uc *BranchUseCase) Deactivate(ctx context.Context, scope rbac.Scope, id string) error {
	if err := scope.RequireAdmin(); err != nil {
		return err
	}
	if id == "" {
		return domain.ErrInvalidInput
	}
	br, err := uc.branchRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if br == nil {
		return domain.ErrNotFound
	}
	if err := uc.branchRepo.Deactivate(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("branch_id", id).Str("name", br.Name).Msg("sucursal desactivada")
	return nil
}
