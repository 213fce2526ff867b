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

// productBatchStore adapta ProductRepository al puerto del motor de lotes.
type productBatchStore struct {
	repo repository.ProductRepository
}

func (s productBatchStore) FindIDsByKey(ctx context.Context, keys []string) (map[string]string, error) {
	return s.repo.FindIDsBySKU(ctx, keys)
}

func (s productBatchStore) InsertBatch(ctx context.Context, items []entity.Product) ([]string, error) {
	rows := make([]*entity.Product, len(items))
	for i := range items {
		rows[i] = &items[i]
	}
	return s.repo.InsertBatch(ctx, rows)
}

func (s productBatchStore) Update(ctx context.Context, id string, item entity.Product) error {
	item.ID = id
	return s.repo.Update(ctx, &item)
}

// BulkUpsert procesa hasta dto.MaxBulkRecords productos: valida cada registro,
// reconcilia el lote por SKU (insertar nuevos, actualizar existentes) y dispara
// la pasada de alertas de stock bajo sobre los registros respaldados.
// Devuelve la respuesta agregada y el estado HTTP según la regla 201/400/207.
// Un error de retorno significa que el lote nunca llegó al motor (validación).
func (uc *ProductUseCase) BulkUpsert(ctx context.Context, in []dto.BulkProductRecord) (*dto.BulkResponse, int, error) {
	if len(in) == 0 {
		return nil, 0, domain.ErrEmptyBatch
	}
	if len(in) > dto.MaxBulkRecords {
		return nil, 0, domain.ErrBatchTooLarge
	}

	var verrs validation.Errors
	cands := make([]batch.Candidate[entity.Product], 0, len(in))
	for i, rec := range in {
		if errs := uc.validate.StructAt(i, rec); errs != nil {
			verrs = append(verrs, errs...)
			continue
		}
		cands = append(cands, batch.Candidate[entity.Product]{
			Key:   rec.SKU,
			Index: i,
			Payload: entity.Product{
				SKU:         rec.SKU,
				Name:        rec.Name,
				Description: rec.Description,
				Category:    rec.Category,
				Price:       rec.Price,
				Cost:        rec.Cost,
				Stock:       rec.Stock,
				MinStock:    rec.MinStock,
				Unit:        defaultUnit(rec.Unit),
				IsActive:    true,
			},
		})
	}
	if len(verrs) > 0 {
		return nil, 0, verrs
	}

	res := uc.reconciler.Reconcile(ctx, cands)

	lowStock := make([]alerts.Candidate, 0)
	res.ForEach(func(o batch.Outcome[entity.Product]) {
		if o.Action == batch.ActionFailed {
			return
		}
		p := o.Payload
		if !p.BelowMinStock() {
			return
		}
		lowStock = append(lowStock, alerts.Candidate{
			EntityID:   o.ID,
			EntityType: entity.AlertEntityProduct,
			Name:       p.Name,
			Code:       p.SKU,
			Unit:       p.Unit,
			Current:    p.Stock,
			Threshold:  p.MinStock,
		})
	})
	if len(lowStock) > 0 {
		uc.dedup.CreateLowStockAlerts(ctx, lowStock)
	}

	resp := batch.Aggregate(res, func(p entity.Product) string { return p.Name })
	return resp, batch.HTTPStatus(res), nil
}
