package repository

import (
	"context"

	"github.com/nubestock/nubestock-api/internal/domain/entity"
)

// AlertRepository define el puerto de persistencia para Alert.
type AlertRepository interface {
	// FindActiveEntityIDs devuelve los IDs de entidad que ya tienen una alerta
	// activa del tipo indicado, entre los IDs consultados (una sola consulta IN).
	FindActiveEntityIDs(ctx context.Context, alertType, entityType string, entityIDs []string) (map[string]struct{}, error)
	// InsertBatch inserta las alertas en una sola sentencia. Los conflictos con
	// el índice único parcial (alerta activa ya existente) se descartan en silencio.
	InsertBatch(ctx context.Context, alerts []*entity.Alert) error

	ListActive(ctx context.Context, limit, offset int) ([]*entity.Alert, error)
	GetByID(ctx context.Context, id string) (*entity.Alert, error)
	Resolve(ctx context.Context, id string) error
}
