package entity

import "time"

// Roles de usuario para RBAC.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
)

// User representa un usuario del sistema (operadores del inventario).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | bodeguero
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
