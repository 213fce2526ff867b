package repository

import (
	"context"

	"github.com/nubestock/nubestock-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetByRucCedula(ctx context.Context, rucCedula string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	List(ctx context.Context, limit, offset int) ([]*entity.Client, error)
	Delete(ctx context.Context, id string) error

	// FindIDsByRucCedula devuelve ruc_cedula -> id para los documentos que ya existen.
	FindIDsByRucCedula(ctx context.Context, docs []string) (map[string]string, error)
	// InsertBatch inserta todos los clientes en una sola sentencia y devuelve
	// los IDs generados en el mismo orden de entrada. Todo-o-nada.
	InsertBatch(ctx context.Context, clients []*entity.Client) ([]string, error)
}
