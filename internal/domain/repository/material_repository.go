package repository

import (
	"context"

	"github.com/nubestock/nubestock-api/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para RawMaterial.
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.RawMaterial) error
	GetByID(ctx context.Context, id string) (*entity.RawMaterial, error)
	GetByCode(ctx context.Context, code string) (*entity.RawMaterial, error)
	Update(ctx context.Context, material *entity.RawMaterial) error
	List(ctx context.Context, limit, offset int) ([]*entity.RawMaterial, error)
	Delete(ctx context.Context, id string) error
	ListLowStock(ctx context.Context) ([]*entity.RawMaterial, error)

	// FindIDsByCode devuelve material_code -> id para los códigos que ya existen.
	FindIDsByCode(ctx context.Context, codes []string) (map[string]string, error)
	// InsertBatch inserta todas las materias primas en una sola sentencia y
	// devuelve los IDs generados en el mismo orden de entrada. Todo-o-nada.
	InsertBatch(ctx context.Context, materials []*entity.RawMaterial) ([]string, error)
}
