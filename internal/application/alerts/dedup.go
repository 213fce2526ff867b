package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nubestock/nubestock-api/internal/domain/entity"
	"github.com/nubestock/nubestock-api/internal/domain/repository"
	"github.com/nubestock/nubestock-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// Candidate una entidad que cruzó su umbral de stock mínimo en esta petición.
// Transitoria: se calcula al momento, no se persiste.
type Candidate struct {
	EntityID   string
	EntityType string // entity.AlertEntityProduct | entity.AlertEntityMaterial
	Name       string
	Code       string // clave natural legible (SKU, código de materia prima)
	Unit       string
	Current    decimal.Decimal
	Threshold  decimal.Decimal
}

// Deduplicator crea alertas de stock bajo garantizando a lo sumo una alerta
// activa por (entidad, tipo) dentro de una invocación. El índice único parcial
// de la tabla respalda el invariante entre invocaciones concurrentes.
type Deduplicator struct {
	repo repository.AlertRepository
	log  *logger.Logger
}

// NewDeduplicator construye el deduplicador.
func NewDeduplicator(repo repository.AlertRepository, log *logger.Logger) *Deduplicator {
	return &Deduplicator{repo: repo, log: log}
}

// CreateLowStockAlerts suprime candidatos que ya tienen una alerta activa del
// mismo tipo e inserta el resto en un solo lote. La creación de alertas es
// explícitamente no crítica: cualquier fallo se loguea y se traga, nunca
// propaga a la operación padre.
func (d *Deduplicator) CreateLowStockAlerts(ctx context.Context, cands []Candidate) {
	// Entidades sin ID (no respaldadas aún en la base) se excluyen; el
	// Reconciler es responsable de rellenar los IDs generados antes de llegar aquí.
	valid := make([]Candidate, 0, len(cands))
	ids := make([]string, 0, len(cands))
	for _, c := range cands {
		if c.EntityID == "" {
			continue
		}
		valid = append(valid, c)
		ids = append(ids, c.EntityID)
	}
	if len(valid) == 0 {
		return
	}

	active, err := d.repo.FindActiveEntityIDs(ctx, entity.AlertTypeLowStock, valid[0].EntityType, ids)
	if err != nil {
		d.log.Error().Err(err).Int("candidatos", len(valid)).
			Msg("consulta de alertas activas fallida; se omite la creación de alertas")
		return
	}

	rows := make([]*entity.Alert, 0, len(valid))
	now := time.Now()
	for _, c := range valid {
		if _, dup := active[c.EntityID]; dup {
			continue
		}
		rows = append(rows, &entity.Alert{
			ID:         uuid.New().String(),
			EntityID:   c.EntityID,
			EntityType: c.EntityType,
			AlertType:  entity.AlertTypeLowStock,
			Title:      fmt.Sprintf("Stock bajo: %s", c.Name),
			Message: fmt.Sprintf("%s (%s) tiene %s %s en stock; el mínimo es %s",
				c.Name, c.Code, c.Current.String(), c.Unit, c.Threshold.String()),
			IsActive:  true,
			CreatedAt: now,
		})
	}
	if len(rows) == 0 {
		return
	}

	if err := d.repo.InsertBatch(ctx, rows); err != nil {
		d.log.Error().Err(err).Int("alertas", len(rows)).
			Msg("inserción de alertas de stock bajo fallida; la operación padre continúa")
		return
	}
	d.log.Info().Int("alertas", len(rows)).Int("suprimidas", len(valid)-len(rows)).
		Msg("alertas de stock bajo creadas")
}
