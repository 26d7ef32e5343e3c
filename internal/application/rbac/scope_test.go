package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/resto-backoffice/internal/application/rbac"
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Matriz de capacidades: admin todo, manager solo su ubicación, guest solo
// lectura pública. Cualquier cambio aquí es un cambio de política de acceso.
// ──────────────────────────────────────────────────────────────────────────────

func TestScope_AdminPuedeTodo(t *testing.T) {
	admin := rbac.Admin("u-1", "Ana")

	assert.NoError(t, admin.RequireAdmin())
	assert.NoError(t, admin.CanRead(entity.Central()))
	assert.NoError(t, admin.CanRead(entity.AtBranch("b-1")))
	assert.NoError(t, admin.CanMutateStock(entity.Central()))
	assert.NoError(t, admin.CanMutateStock(entity.AtBranch("b-1")))
	assert.NoError(t, admin.CanReadBackoffice(entity.AtBranch("b-1")))
	assert.NoError(t, admin.CanEditMaster())
}

func TestScope_ManagerSoloSuUbicacion(t *testing.T) {
	home := entity.AtBranch("b-1")
	otra := entity.AtBranch("b-2")
	mgr := rbac.Manager("u-2", "Luis", home)

	assert.NoError(t, mgr.CanRead(home))
	assert.NoError(t, mgr.CanMutateStock(home))
	assert.NoError(t, mgr.CanReadBackoffice(home))

	assert.ErrorIs(t, mgr.CanRead(otra), domain.ErrUnauthorized)
	assert.ErrorIs(t, mgr.CanMutateStock(otra), domain.ErrUnauthorized)
	assert.ErrorIs(t, mgr.CanMutateStock(entity.Central()), domain.ErrUnauthorized)
	assert.ErrorIs(t, mgr.CanReadBackoffice(otra), domain.ErrUnauthorized)
}

func TestScope_ManagerNoEsAdmin(t *testing.T) {
	mgr := rbac.Manager("u-2", "Luis", entity.Central())
	assert.ErrorIs(t, mgr.RequireAdmin(), domain.ErrUnauthorized)
	assert.ErrorIs(t, mgr.CanEditMaster(), domain.ErrUnauthorized)
}

// TestScope_GuestSoloLectura: el visitante puede leer stock (el catálogo
// público lo necesita) pero jamás mutar ni ver documentos internos.
func TestScope_GuestSoloLectura(t *testing.T) {
	guest := rbac.Guest()

	assert.NoError(t, guest.CanRead(entity.Central()))
	assert.NoError(t, guest.CanRead(entity.AtBranch("b-1")))

	assert.ErrorIs(t, guest.CanMutateStock(entity.Central()), domain.ErrUnauthorized)
	assert.ErrorIs(t, guest.CanReadBackoffice(entity.Central()), domain.ErrUnauthorized)
	assert.ErrorIs(t, guest.RequireAdmin(), domain.ErrUnauthorized)
	assert.ErrorIs(t, guest.CanEditMaster(), domain.ErrUnauthorized)
}

func TestScope_ActorName(t *testing.T) {
	assert.Equal(t, "Ana", rbac.Admin("u-1", "Ana").ActorName())
	assert.Equal(t, "System", rbac.Scope{}.ActorName(), "sin nombre se registra System")
	assert.Equal(t, "Guest", rbac.Guest().ActorName())
}
