package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/domain/repository"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo implementación de BranchRepository (usable con pool o tx).
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

// Create inserta la sucursal.
func (r *BranchRepo) Create(ctx context.Context, b *entity.Branch) error {
	query := `
		INSERT INTO branches (id, name, address, phone, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.Name, nullIfEmpty(b.Address), nullIfEmpty(b.Phone), b.IsActive, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

// GetByID devuelve la sucursal o nil si no existe.
func (r *BranchRepo) GetByID(ctx context.Context, id string) (*entity.Branch, error) {
	query := `
		SELECT id, name, COALESCE(address, ''), COALESCE(phone, ''), is_active, created_at, updated_at
		FROM branches WHERE id = $1`
	var b entity.Branch
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.Address, &b.Phone, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return &b, nil
}

// List devuelve las sucursales; con onlyActive solo las activas.
func (r *BranchRepo) List(ctx context.Context, onlyActive bool) ([]*entity.Branch, error) {
	query := `
		SELECT id, name, COALESCE(address, ''), COALESCE(phone, ''), is_active, created_at, updated_at
		FROM branches`
	if onlyActive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	var out []*entity.Branch
	for rows.Next() {
		var b entity.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.Phone, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

// Update persiste nombre/dirección/teléfono.
func (r *BranchRepo) Update(ctx context.Context, b *entity.Branch) error {
	query := `
		UPDATE branches
		SET name = $2, address = $3, phone = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, b.ID, b.Name, nullIfEmpty(b.Address), nullIfEmpty(b.Phone), b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update branch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate es el borrado lógico; el stock y el historial de la sucursal
// se conservan.
func (r *BranchRepo) Deactivate(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE branches SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate branch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
