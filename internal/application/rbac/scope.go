// Package rbac centraliza el control de acceso del back-office en una sola
// puerta de capacidades. Cada punto de entrada de los casos de uso recibe un
// Scope y lo consulta antes de tocar I/O; los checks ad hoc por endpoint
// quedan prohibidos.
package rbac

import (
	"github.com/tu-usuario/resto-backoffice/internal/domain"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
)

// Scope es la identidad efectiva de una petición: quién es, qué rol tiene y,
// para managers, a qué ubicación está atado.
type Scope struct {
	UserID string
	Name   string
	Role   string
	// Home es la única ubicación que un manager puede leer y mutar.
	// Sin significado para admin (todas) ni guest (ninguna mutación).
	Home entity.Location
}

// Admin construye el scope de un administrador.
func Admin(userID, name string) Scope {
	return Scope{UserID: userID, Name: name, Role: entity.RoleAdmin}
}

// Manager construye el scope de un manager atado a home.
func Manager(userID, name string, home entity.Location) Scope {
	return Scope{UserID: userID, Name: name, Role: entity.RoleManager, Home: home}
}

// Guest es el visitante sin autenticar: solo lectura.
func Guest() Scope {
	return Scope{Role: entity.RoleGuest, Name: "Guest"}
}

// IsAdmin indica si el scope es de administrador.
func (s Scope) IsAdmin() bool { return s.Role == entity.RoleAdmin }

// ActorName devuelve el nombre a registrar en el ledger.
func (s Scope) ActorName() string {
	if s.Name == "" {
		return "System"
	}
	return s.Name
}

// RequireAdmin falla salvo para administradores. Transferencias y completado
// de recepciones son admin-only sin importar la ubicación.
func (s Scope) RequireAdmin() error {
	if !s.IsAdmin() {
		return domain.ErrUnauthorized
	}
	return nil
}

// CanRead autoriza lectura de stock/historia en loc. El admin ve todo; el
// manager solo su ubicación; el guest tiene visibilidad de solo lectura
// (el catálogo público la necesita), jamás mutación.
func (s Scope) CanRead(loc entity.Location) error {
	switch s.Role {
	case entity.RoleAdmin, entity.RoleGuest:
		return nil
	case entity.RoleManager:
		if s.Home == loc {
			return nil
		}
		return domain.ErrUnauthorized
	default:
		return domain.ErrUnauthorized
	}
}

// CanMutateStock autoriza escrituras de cantidad/umbral en loc: admin en
// cualquier ubicación, manager solo en la suya, guest nunca.
func (s Scope) CanMutateStock(loc entity.Location) error {
	switch s.Role {
	case entity.RoleAdmin:
		return nil
	case entity.RoleManager:
		if s.Home == loc {
			return nil
		}
		return domain.ErrUnauthorized
	default:
		return domain.ErrUnauthorized
	}
}

// CanReadBackoffice autoriza lectura de documentos internos (recepciones,
// reportes) en loc. Como CanRead pero sin la visibilidad pública del guest.
func (s Scope) CanReadBackoffice(loc entity.Location) error {
	switch s.Role {
	case entity.RoleAdmin:
		return nil
	case entity.RoleManager:
		if s.Home == loc {
			return nil
		}
		return domain.ErrUnauthorized
	default:
		return domain.ErrUnauthorized
	}
}

// CanEditMaster autoriza mutar el maestro de insumos (nombre, categoría,
// unidad) y los registros de sucursales/proveedores. Solo admin: el costo
// promedio ni siquiera pasa por aquí, lo escribe únicamente la recepción.
func (s Scope) CanEditMaster() error {
	if !s.IsAdmin() {
		return domain.ErrUnauthorized
	}
	return nil
}
