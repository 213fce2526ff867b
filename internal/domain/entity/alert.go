package entity

import "time"

// Tipos de alerta y de entidad alertada.
const (
	AlertTypeLowStock = "low_stock"

	AlertEntityProduct  = "product"
	AlertEntityMaterial = "material"
)

// Alert representa una alerta operativa abierta o resuelta.
// Invariante: a lo sumo una alerta activa por (EntityID, AlertType),
// respaldada por un índice único parcial en la tabla.
type Alert struct {
	ID         string
	EntityID   string // producto o materia prima alertada
	EntityType string // product | material
	AlertType  string // low_stock
	Title      string
	Message    string
	IsActive   bool
	CreatedAt  time.Time
	ResolvedAt *time.Time
}
