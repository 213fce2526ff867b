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

// MaterialUseCase casos de uso para materias primas: CRUD, stock bajo y carga
// masiva por código de material.
type MaterialUseCase struct {
	repo       repository.MaterialRepository
	validate   *validation.Validator
	reconciler *batch.Reconciler[entity.RawMaterial]
	dedup      *alerts.Deduplicator
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(
	repo repository.MaterialRepository,
	validate *validation.Validator,
	dedup *alerts.Deduplicator,
	updateLimit int,
) *MaterialUseCase {
	return &MaterialUseCase{
		repo:       repo,
		validate:   validate,
		dedup:      dedup,
		reconciler: batch.NewReconciler[entity.RawMaterial](materialBatchStore{repo: repo}, updateLimit),
	}
}

// Create crea una materia prima. Devuelve ErrDuplicate si el código ya existe.
func (uc *MaterialUseCase) Create(ctx context.Context, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if errs := uc.validate.Struct(in); errs != nil {
		return nil, errs
	}
	existing, _ := uc.repo.GetByCode(ctx, in.MaterialCode)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	material := &entity.RawMaterial{
		MaterialCode: in.MaterialCode,
		Name:         in.Name,
		Unit:         defaultUnit(in.Unit),
		Stock:        in.Stock,
		MinStock:     in.MinStock,
		UnitCost:     in.UnitCost,
		Supplier:     in.Supplier,
		IsActive:     true,
	}
	if err := uc.repo.Create(ctx, material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// GetByID obtiene una materia prima por ID. Devuelve nil si no existe.
func (uc *MaterialUseCase) GetByID(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}
	return toMaterialResponse(material), nil
}

// Update actualiza los campos presentes en la petición.
func (uc *MaterialUseCase) Update(ctx context.Context, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	if errs := uc.validate.Struct(in); errs != nil {
		return nil, errs
	}
	material, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}
	if in.Name != nil {
		material.Name = *in.Name
	}
	if in.Unit != nil {
		material.Unit = *in.Unit
	}
	if in.Stock != nil {
		material.Stock = *in.Stock
	}
	if in.MinStock != nil {
		material.MinStock = *in.MinStock
	}
	if in.UnitCost != nil {
		material.UnitCost = *in.UnitCost
	}
	if in.Supplier != nil {
		material.Supplier = *in.Supplier
	}
	if in.IsActive != nil {
		material.IsActive = *in.IsActive
	}
	if err := uc.repo.Update(ctx, material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// List lista materias primas con paginación.
func (uc *MaterialUseCase) List(ctx context.Context, limit, offset int) (*dto.MaterialListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return &dto.MaterialListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListLowStock lista las materias primas en o bajo su umbral mínimo.
func (uc *MaterialUseCase) ListLowStock(ctx context.Context) ([]dto.MaterialResponse, error) {
	list, err := uc.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return items, nil
}

// Delete elimina una materia prima por ID.
func (uc *MaterialUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toMaterialResponse(m *entity.RawMaterial) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		ID:           m.ID,
		MaterialCode: m.MaterialCode,
		Name:         m.Name,
		Unit:         m.Unit,
		Stock:        m.Stock,
		MinStock:     m.MinStock,
		UnitCost:     m.UnitCost,
		Supplier:     m.Supplier,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
