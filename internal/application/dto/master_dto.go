package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
)

// IngredientResponse un insumo del catálogo.
type IngredientResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category,omitempty"`
	Unit        string          `json:"unit"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	LastUpdated time.Time       `json:"last_updated"`
}

// IngredientFromEntity arma la respuesta desde la entidad.
func IngredientFromEntity(ing *entity.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:          ing.ID,
		Name:        ing.Name,
		Category:    ing.Category,
		Unit:        ing.Unit,
		CostPrice:   ing.CostPrice,
		LastUpdated: ing.LastUpdated,
	}
}

// BranchResponse una sucursal.
type BranchResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// BranchFromEntity arma la respuesta desde la entidad.
func BranchFromEntity(b *entity.Branch) BranchResponse {
	return BranchResponse{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
	}
}

// SupplierResponse un proveedor.
type SupplierResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	Category      string    `json:"category"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// SupplierFromEntity arma la respuesta desde la entidad.
func SupplierFromEntity(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Email:         s.Email,
		Address:       s.Address,
		Category:      s.Category,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
	}
}

// CreateIngredientRequest body para dar de alta un insumo.
type CreateIngredientRequest struct {
	Name      string          `json:"name"`
	Category  string          `json:"category,omitempty"`
	Unit      string          `json:"unit"`
	CostPrice decimal.Decimal `json:"cost_price"`
}

// UpdateIngredientRequest body para editar el maestro de un insumo. El
// costo promedio no se edita por aquí.
type UpdateIngredientRequest struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Unit     string `json:"unit"`
}

// CreateBranchRequest body para dar de alta una sucursal.
type CreateBranchRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// UpdateBranchRequest body para editar una sucursal.
type UpdateBranchRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// CreateSupplierRequest body para dar de alta un proveedor.
type CreateSupplierRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	Address       string `json:"address,omitempty"`
	Category      string `json:"category"`
}
