package usecase

import (
	"context"

	"github.com/nubestock/nubestock-api/internal/application/dto"
	"github.com/nubestock/nubestock-api/internal/domain"
	"github.com/nubestock/nubestock-api/internal/domain/entity"
	"github.com/nubestock/nubestock-api/internal/domain/repository"
)

// AlertUseCase consulta y resolución de alertas operativas.
type AlertUseCase struct {
	repo repository.AlertRepository
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(repo repository.AlertRepository) *AlertUseCase {
	return &AlertUseCase{repo: repo}
}

// ListActive lista las alertas activas, más recientes primero.
func (uc *AlertUseCase) ListActive(ctx context.Context, limit, offset int) (*dto.AlertListResponse, error) {
	list, err := uc.repo.ListActive(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAlertResponse(a))
	}
	return &dto.AlertListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Resolve marca una alerta como resuelta. ErrNotFound si no existe o ya está resuelta.
func (uc *AlertUseCase) Resolve(ctx context.Context, id string) error {
	alert, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if alert == nil || !alert.IsActive {
		return domain.ErrNotFound
	}
	return uc.repo.Resolve(ctx, id)
}

func toAlertResponse(a *entity.Alert) *dto.AlertResponse {
	if a == nil {
		return nil
	}
	return &dto.AlertResponse{
		ID:         a.ID,
		EntityID:   a.EntityID,
		EntityType: a.EntityType,
		AlertType:  a.AlertType,
		Title:      a.Title,
		Message:    a.Message,
		IsActive:   a.IsActive,
		CreatedAt:  a.CreatedAt,
		ResolvedAt: a.ResolvedAt,
	}
}
