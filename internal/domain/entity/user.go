package entity

import "time"

// Roles de usuario. Un manager queda atado a exactamente una sucursal
// (HomeLocation); guest es el visitante sin autenticar, solo lectura.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleGuest   = "guest"
)

// User es un usuario del back-office.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	HomeLocation Location // solo significativa para managers
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
