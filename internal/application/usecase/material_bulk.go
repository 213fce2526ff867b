package usecase

import (
	"context"

	"github.com/nubestock/nubestock-api/internal/application/alerts"
	"github.com/nubestock/nubestock-api/internal/application/batch"
	"github.com/nubestock/nubestock-api/internal/application/dto"
	"github.com/nubestock/nubestock-api/internal/application/validation"
	"github.com/nubestock/nubestock-api/internal/domain"
	"github.com/nubestock/nubestock-api/internal/domain/entity"
	"github.com/nubestock/nubestock-api/internal/domain/repository"
)

// materialBatchStore adapta MaterialRepository al puerto del motor de lotes.
type materialBatchStore struct {
	repo repository.MaterialRepository
}

func (s materialBatchStore) FindIDsByKey(ctx context.Context, keys []string) (map[string]string, error) {
	return s.repo.FindIDsByCode(ctx, keys)
}

func (s materialBatchStore) InsertBatch(ctx context.Context, items []entity.RawMaterial) ([]string, error) {
	rows := make([]*entity.RawMaterial, len(items))
	for i := range items {
		rows[i] = &items[i]
	}
	return s.repo.InsertBatch(ctx, rows)
}

func (s materialBatchStore) Update(ctx context.Context, id string, item entity.RawMaterial) error {
	item.ID = id
	return s.repo.Update(ctx, &item)
}

// BulkUpsert procesa un lote de materias primas reconciliado por material_code,
// con pasada de alertas de stock bajo al final. Mismo contrato que el bulk de
// productos: respuesta agregada + estado 201/400/207, error solo por validación.
func (uc *MaterialUseCase) BulkUpsert(ctx context.Context, in []dto.BulkMaterialRecord) (*dto.BulkResponse, int, error) {
	if len(in) == 0 {
		return nil, 0, domain.ErrEmptyBatch
	}
	if len(in) > dto.MaxBulkRecords {
		return nil, 0, domain.ErrBatchTooLarge
	}

	var verrs validation.Errors
	cands := make([]batch.Candidate[entity.RawMaterial], 0, len(in))
	for i, rec := range in {
		if errs := uc.validate.StructAt(i, rec); errs != nil {
			verrs = append(verrs, errs...)
			continue
		}
		cands = append(cands, batch.Candidate[entity.RawMaterial]{
			Key:   rec.MaterialCode,
			Index: i,
			Payload: entity.RawMaterial{
				MaterialCode: rec.MaterialCode,
				Name:         rec.Name,
				Unit:         defaultUnit(rec.Unit),
				Stock:        rec.Stock,
				MinStock:     rec.MinStock,
				UnitCost:     rec.UnitCost,
				Supplier:     rec.Supplier,
				IsActive:     true,
			},
		})
	}
	if len(verrs) > 0 {
		return nil, 0, verrs
	}

	res := uc.reconciler.Reconcile(ctx, cands)

	lowStock := make([]alerts.Candidate, 0)
	res.ForEach(func(o batch.Outcome[entity.RawMaterial]) {
		if o.Action == batch.ActionFailed {
			return
		}
		m := o.Payload
		if !m.BelowMinStock() {
			return
		}
		lowStock = append(lowStock, alerts.Candidate{
			EntityID:   o.ID,
			EntityType: entity.AlertEntityMaterial,
			Name:       m.Name,
			Code:       m.MaterialCode,
			Unit:       m.Unit,
			Current:    m.Stock,
			Threshold:  m.MinStock,
		})
	})
	if len(lowStock) > 0 {
		uc.dedup.CreateLowStockAlerts(ctx, lowStock)
	}

	resp := batch.Aggregate(res, func(m entity.RawMaterial) string { return m.Name })
	return resp, batch.HTTPStatus(res), nil
}
