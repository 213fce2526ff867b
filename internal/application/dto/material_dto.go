package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BulkMaterialRecord un registro del endpoint de carga masiva de materias primas.
// La clave natural es material_code.
type BulkMaterialRecord struct {
	MaterialCode string          `json:"material_code" validate:"required,min=1,max=100"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Unit         string          `json:"unit" validate:"max=50"`
	Stock        decimal.Decimal `json:"stock" validate:"gte=0"`
	MinStock     decimal.Decimal `json:"min_stock" validate:"gte=0"`
	UnitCost     decimal.Decimal `json:"unit_cost" validate:"gte=0"`
	Supplier     string          `json:"supplier" validate:"max=200"`
}

// CreateMaterialRequest entrada para crear una materia prima.
type CreateMaterialRequest struct {
	MaterialCode string          `json:"material_code" validate:"required,min=1,max=100"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Unit         string          `json:"unit" validate:"max=50"`
	Stock        decimal.Decimal `json:"stock" validate:"gte=0"`
	MinStock     decimal.Decimal `json:"min_stock" validate:"gte=0"`
	UnitCost     decimal.Decimal `json:"unit_cost" validate:"gte=0"`
	Supplier     string          `json:"supplier" validate:"max=200"`
}

// UpdateMaterialRequest entrada para actualizar una materia prima (campos opcionales).
type UpdateMaterialRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Unit     *string          `json:"unit" validate:"omitempty,max=50"`
	Stock    *decimal.Decimal `json:"stock"`
	MinStock *decimal.Decimal `json:"min_stock"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
	Supplier *string          `json:"supplier" validate:"omitempty,max=200"`
	IsActive *bool            `json:"is_active"`
}

// MaterialResponse salida de una materia prima.
type MaterialResponse struct {
	ID           string          `json:"id"`
	MaterialCode string          `json:"material_code"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Stock        decimal.Decimal `json:"stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Supplier     string          `json:"supplier"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// MaterialListResponse lista paginada de materias primas.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
