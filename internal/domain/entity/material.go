package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawMaterial representa una materia prima de producción (plátano, maní, aceite...).
// MaterialCode es la clave natural para las cargas masivas.
type RawMaterial struct {
	ID           string
	MaterialCode string
	Name         string
	Unit         string // "kg", "litro", "saco"
	Stock        decimal.Decimal
	MinStock     decimal.Decimal
	UnitCost     decimal.Decimal
	Supplier     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BelowMinStock indica si la materia prima está en o bajo su umbral mínimo.
func (m *RawMaterial) BelowMinStock() bool {
	return m.MinStock.GreaterThan(decimal.Zero) && m.Stock.LessThanOrEqual(m.MinStock)
}
