package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleProduccion = "produccion"
	RoleVentas     = "ventas"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, produccion, ventas
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
