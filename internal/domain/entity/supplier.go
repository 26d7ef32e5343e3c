package entity

import "time"

// Categorías de proveedor.
const (
	SupplierCategoryMeat      = "MEAT"
	SupplierCategoryVeg       = "VEG"
	SupplierCategoryDry       = "DRY"
	SupplierCategoryPackaging = "PACKAGING"
	SupplierCategoryOther     = "OTHER"
)

// ValidSupplierCategory reporta si la categoría es una de las conocidas.
func ValidSupplierCategory(c string) bool {
	switch c {
	case SupplierCategoryMeat, SupplierCategoryVeg, SupplierCategoryDry,
		SupplierCategoryPackaging, SupplierCategoryOther:
		return true
	}
	return false
}

// Supplier es el proveedor referenciado por las recepciones de mercancía.
type Supplier struct {
	ID            string
	Name          string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
	Category      string
	IsActive      bool
	CreatedAt     time.Time
}
