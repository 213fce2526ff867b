package alerts_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nubestock/nubestock-api/internal/application/alerts"
	"github.com/nubestock/nubestock-api/internal/domain/entity"
	"github.com/nubestock/nubestock-api/pkg/logger"
)

// fakeAlertRepo implementación en memoria del puerto AlertRepository,
// reducida a lo que ejercita el deduplicador.
type fakeAlertRepo struct {
	active   map[string]struct{} // entity_ids con alerta activa
	inserted []*entity.Alert

	findErr   error
	insertErr error
}

func (r *fakeAlertRepo) FindActiveEntityIDs(_ context.Context, _, _ string, ids []string) (map[string]struct{}, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	found := map[string]struct{}{}
	for _, id := range ids {
		if _, ok := r.active[id]; ok {
			found[id] = struct{}{}
		}
	}
	return found, nil
}

func (r *fakeAlertRepo) InsertBatch(_ context.Context, rows []*entity.Alert) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, rows...)
	return nil
}

func (r *fakeAlertRepo) ListActive(context.Context, int, int) ([]*entity.Alert, error) { return nil, nil }
func (r *fakeAlertRepo) GetByID(context.Context, string) (*entity.Alert, error)        { return nil, nil }
func (r *fakeAlertRepo) Resolve(context.Context, string) error                         { return nil }

func lowStockCand(entityID, name string) alerts.Candidate {
	return alerts.Candidate{
		EntityID:   entityID,
		EntityType: entity.AlertEntityProduct,
		Name:       name,
		Code:       "SKU-" + name,
		Unit:       "unidad",
		Current:    decimal.NewFromInt(3),
		Threshold:  decimal.NewFromInt(10),
	}
}

// Entidades con alerta activa se suprimen; el resto se inserta en un solo lote.
func TestCreateLowStockAlerts_SuprimeActivas(t *testing.T) {
	repo := &fakeAlertRepo{active: map[string]struct{}{"p1": {}}}
	d := alerts.NewDeduplicator(repo, logger.Nop())

	d.CreateLowStockAlerts(context.Background(), []alerts.Candidate{
		lowStockCand("p1", "Papas"),
		lowStockCand("p2", "Chifles"),
	})

	require.Len(t, repo.inserted, 1)
	a := repo.inserted[0]
	assert.Equal(t, "p2", a.EntityID)
	assert.Equal(t, entity.AlertTypeLowStock, a.AlertType)
	assert.True(t, a.IsActive)
	assert.NotEmpty(t, a.ID, "la alerta lleva ID generado en el cliente")
	assert.Contains(t, a.Title, "Chifles")
	assert.Contains(t, a.Message, "SKU-Chifles")
}

// Candidatos sin EntityID (registros que no quedaron respaldados) se excluyen.
func TestCreateLowStockAlerts_ExcluyeSinID(t *testing.T) {
	repo := &fakeAlertRepo{active: map[string]struct{}{}}
	d := alerts.NewDeduplicator(repo, logger.Nop())

	d.CreateLowStockAlerts(context.Background(), []alerts.Candidate{
		lowStockCand("", "Fantasma"),
		lowStockCand("p9", "Real"),
	})

	require.Len(t, repo.inserted, 1)
	assert.Equal(t, "p9", repo.inserted[0].EntityID)
}

// Si todos tienen alerta activa no se inserta nada.
func TestCreateLowStockAlerts_TodoSuprimido(t *testing.T) {
	repo := &fakeAlertRepo{active: map[string]struct{}{"p1": {}, "p2": {}}}
	d := alerts.NewDeduplicator(repo, logger.Nop())

	d.CreateLowStockAlerts(context.Background(), []alerts.Candidate{
		lowStockCand("p1", "A"),
		lowStockCand("p2", "B"),
	})

	assert.Empty(t, repo.inserted)
}

// Los fallos de la capa de alertas se tragan: nunca deben propagar (ni
// entrar en pánico) hacia la operación padre.
func TestCreateLowStockAlerts_FallosSilenciosos(t *testing.T) {
	t.Run("fallo de consulta", func(t *testing.T) {
		repo := &fakeAlertRepo{findErr: errors.New("timeout")}
		d := alerts.NewDeduplicator(repo, logger.Nop())
		assert.NotPanics(t, func() {
			d.CreateLowStockAlerts(context.Background(), []alerts.Candidate{lowStockCand("p1", "A")})
		})
		assert.Empty(t, repo.inserted)
	})

	t.Run("fallo de inserción", func(t *testing.T) {
		repo := &fakeAlertRepo{active: map[string]struct{}{}, insertErr: errors.New("conexión perdida")}
		d := alerts.NewDeduplicator(repo, logger.Nop())
		assert.NotPanics(t, func() {
			d.CreateLowStockAlerts(context.Background(), []alerts.Candidate{lowStockCand("p1", "A")})
		})
	})
}

func TestCreateLowStockAlerts_LoteVacio(t *testing.T) {
	repo := &fakeAlertRepo{}
	d := alerts.NewDeduplicator(repo, logger.Nop())
	d.CreateLowStockAlerts(context.Background(), nil)
	assert.Empty(t, repo.inserted)
}
