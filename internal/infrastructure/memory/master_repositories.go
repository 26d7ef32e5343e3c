package memory

import (
	"context"
	"strings"
	"time"

	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
	"github.com/tu-usuario/resto-backoffice/internal/domain/repository"
)

var (
	_ repository.BranchRepository   = (*BranchRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
)

// BranchRepo adaptador en memoria de sucursales.
type BranchRepo struct {
	store *Store
}

// NewBranchRepository construye el adaptador.
func NewBranchRepository(store *Store) *BranchRepo {
	return &BranchRepo{store: store}
}

func (r *BranchRepo) Create(ctx context.Context, b *entity.Branch) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *b
	r.store.branches[b.ID] = &c
	return nil
}

func (r *BranchRepo) GetByID(ctx context.Context, id string) (*entity.Branch, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.branches[id]
	if !ok {
		return nil, nil
	}
	c := *b
	return &c, nil
}

func (r *BranchRepo) List(ctx context.Context, onlyActive bool) ([]*entity.Branch, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Branch
	for _, k := range sortedKeys(r.store.branches) {
		b := r.store.branches[k]
		if onlyActive && !b.IsActive {
			continue
		}
		c := *b
		out = append(out, &c)
	}
	return out, nil
}

func (r *BranchRepo) Update(ctx context.Context, b *entity.Branch) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.branches[b.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c := *current
	c.Name = b.Name
	c.Address = b.Address
	c.Phone = b.Phone
	c.UpdatedAt = b.UpdatedAt
	r.store.branches[b.ID] = &c
	return nil
}

func (r *BranchRepo) Deactivate(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.branches[id]
	if !ok {
		return domain.ErrNotFound
	}
	c := *current
	c.IsActive = false
	c.UpdatedAt = time.Now()
	r.store.branches[id] = &c
	return nil
}

// SupplierRepo adaptador en memoria de proveedores.
type SupplierRepo struct {
	store *Store
}

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(store *Store) *SupplierRepo {
	return &SupplierRepo{store: store}
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *s
	r.store.suppliers[s.ID] = &c
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.suppliers[id]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (r *SupplierRepo) List(ctx context.Context, onlyActive bool) ([]*entity.Supplier, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Supplier
	for _, k := range sortedKeys(r.store.suppliers) {
		s := r.store.suppliers[k]
		if onlyActive && !s.IsActive {
			continue
		}
		c := *s
		out = append(out, &c)
	}
	return out, nil
}

// UserRepo adaptador en memoria de usuarios.
type UserRepo struct {
	store *Store
}

// NewUserRepository construye el adaptador.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	c := *u
	r.store.users[u.ID] = &c
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if strings.EqualFold(u.Email, email) {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}
