package entity

import "time"

// Branch es una sucursal del grupo de restaurantes. El almacén central no es
// una sucursal: se representa con entity.Central().
type Branch struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
