package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/nubestock/nubestock-api/internal/domain/entity"
	"github.com/nubestock/nubestock-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

const alertColumns = `id, entity_id, entity_type, alert_type, title, message, is_active, created_at, resolved_at`

// AlertRepo implementación del puerto AlertRepository sobre PostgreSQL.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador de persistencia para alertas.
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// FindActiveEntityIDs devuelve el conjunto de entity_ids que ya tienen una
// alerta activa del tipo indicado, entre los consultados.
func (r *AlertRepo) FindActiveEntityIDs(ctx context.Context, alertType, entityType string, entityIDs []string) (map[string]struct{}, error) {
	query := `
		SELECT entity_id FROM alerts
		WHERE alert_type = $1 AND entity_type = $2 AND is_active AND entity_id = ANY($3)`
	rows, err := r.q.Query(ctx, query, alertType, entityType, entityIDs)
	if err != nil {
		return nil, fmt.Errorf("find active alert entity ids: %w", err)
	}
	defer rows.Close()
	found := make(map[string]struct{}, len(entityIDs))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan alert entity id: %w", err)
		}
		found[id] = struct{}{}
	}
	return found, rows.Err()
}

// InsertBatch inserta las alertas en una sola sentencia multi-fila.
// ON CONFLICT DO NOTHING sobre el índice único parcial descarta en silencio
// las alertas que perdieron la carrera contra otra petición concurrente.
func (r *AlertRepo) InsertBatch(ctx context.Context, alerts []*entity.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(`INSERT INTO alerts (id, entity_id, entity_type, alert_type, title, message, is_active) VALUES `)
	args := make([]any, 0, len(alerts)*7)
	for i, a := range alerts {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i * 7
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7)
		args = append(args, a.ID, a.EntityID, a.EntityType, a.AlertType, a.Title, a.Message, a.IsActive)
	}
	sb.WriteString(" ON CONFLICT (entity_id, alert_type) WHERE is_active DO NOTHING")

	if _, err := r.q.Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("insert alert batch: %w", err)
	}
	return nil
}

// ListActive lista alertas activas con paginación, más recientes primero.
func (r *AlertRepo) ListActive(ctx context.Context, limit, offset int) ([]*entity.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE is_active ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list active alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Alert
	for rows.Next() {
		var a entity.Alert
		if err := rows.Scan(
			&a.ID, &a.EntityID, &a.EntityType, &a.AlertType, &a.Title,
			&a.Message, &a.IsActive, &a.CreatedAt, &a.ResolvedAt,
		); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// GetByID obtiene una alerta por ID. Devuelve nil si no existe.
func (r *AlertRepo) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	var a entity.Alert
	err := r.q.QueryRow(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id).Scan(
		&a.ID, &a.EntityID, &a.EntityType, &a.AlertType, &a.Title,
		&a.Message, &a.IsActive, &a.CreatedAt, &a.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return &a, nil
}

// Resolve marca una alerta como resuelta.
func (r *AlertRepo) Resolve(ctx context.Context, id string) error {
	query := `UPDATE alerts SET is_active = false, resolved_at = now() WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("resolve alert: %w", err)
	}
	return nil
}
