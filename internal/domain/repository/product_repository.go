package repository

import (
	"context"

	"github.com/nubestock/nubestock-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// FindIDsBySKU e InsertBatch existen para la carga masiva: una sola consulta de
// existencia y un solo INSERT multi-fila por lote.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
	ListLowStock(ctx context.Context) ([]*entity.Product, error)

	// FindIDsBySKU devuelve sku -> id para los SKUs que ya existen.
	FindIDsBySKU(ctx context.Context, skus []string) (map[string]string, error)
	// InsertBatch inserta todos los productos en una sola sentencia y devuelve
	// los IDs generados en el mismo orden de entrada. Todo-o-nada.
	InsertBatch(ctx context.Context, products []*entity.Product) ([]string, error)
}
