package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto terminado de Nubestock (snack empacado).
// SKU es la clave natural: decide si una carga masiva inserta o actualiza.
type Product struct {
	ID          string
	SKU         string // código único del producto
	Name        string
	Description string
	Category    string          // ej. "chifles", "maní", "mix"
	Price       decimal.Decimal // precio de venta unitario
	Cost        decimal.Decimal // costo de producción unitario
	Stock       decimal.Decimal
	MinStock    decimal.Decimal // umbral de alerta de stock bajo
	Unit        string          // unidad de medida: "unidad", "caja", "kg"
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BelowMinStock indica si el producto está en o bajo su umbral mínimo.
// Un umbral en cero desactiva la alerta para ese producto.
func (p *Product) BelowMinStock() bool {
	return p.MinStock.GreaterThan(decimal.Zero) && p.Stock.LessThanOrEqual(p.MinStock)
}
