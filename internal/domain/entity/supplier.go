package entity

import "time"

// Supplier representa un proveedor de productos.
type Supplier struct {
	ID            string
	Name          string
	Code          string // código único, se guarda en mayúsculas
	ContactPerson string
	Phone         string
	Email         string
	Address       string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
