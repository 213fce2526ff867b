package usecase

import (
	"context"

	"github.com/nubestock/nubestock-api/internal/application/batch"
	"github.com/nubestock/nubestock-api/internal/application/dto"
	"github.com/nubestock/nubestock-api/internal/application/validation"
	"github.com/nubestock/nubestock-api/internal/domain"
	"github.com/nubestock/nubestock-api/internal/domain/entity"
	"github.com/nubestock/nubestock-api/internal/domain/repository"
)

// ClientUseCase casos de uso para clientes: CRUD y carga masiva por RUC/cédula.
// Los clientes no tienen stock, así que no hay pasada de alertas.
type ClientUseCase struct {
	repo       repository.ClientRepository
	validate   *validation.Validator
	reconciler *batch.Reconciler[entity.Client]
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, validate *validation.Validator, updateLimit int) *ClientUseCase {
	return &ClientUseCase{
		repo:       repo,
		validate:   validate,
		reconciler: batch.NewReconciler[entity.Client](clientBatchStore{repo: repo}, updateLimit),
	}
}

// Create crea un cliente. Devuelve ErrDuplicate si el RUC/cédula ya existe.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if errs := uc.validate.Struct(in); errs != nil {
		return nil, errs
	}
	existing, _ := uc.repo.GetByRucCedula(ctx, in.RucCedula)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	client := &entity.Client{
		RucCedula:    in.RucCedula,
		BusinessName: in.BusinessName,
		ContactName:  in.ContactName,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		ClientType:   defaultClientType(in.ClientType),
		IsActive:     true,
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente por ID. Devuelve nil si no existe.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	return toClientResponse(client), nil
}

// Update actualiza los campos presentes en la petición.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if errs := uc.validate.Struct(in); errs != nil {
		return nil, errs
	}
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	if in.BusinessName != nil {
		client.BusinessName = *in.BusinessName
	}
	if in.ContactName != nil {
		client.ContactName = *in.ContactName
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	if in.Phone != nil {
		client.Phone = *in.Phone
	}
	if in.Address != nil {
		client.Address = *in.Address
	}
	if in.ClientType != nil {
		client.ClientType = *in.ClientType
	}
	if in.IsActive != nil {
		client.IsActive = *in.IsActive
	}
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List lista clientes con paginación.
func (uc *ClientUseCase) List(ctx context.Context, limit, offset int) (*dto.ClientListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un cliente por ID.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func defaultClientType(t string) string {
	if t == "" {
		return entity.ClientTypeMinorista
	}
	return t
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:           c.ID,
		RucCedula:    c.RucCedula,
		BusinessName: c.BusinessName,
		ContactName:  c.ContactName,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		ClientType:   c.ClientType,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// clientBatchStore adapta ClientRepository al puerto del motor de lotes.
type clientBatchStore struct {
	repo repository.ClientRepository
}

func (s clientBatchStore) FindIDsByKey(ctx context.Context, keys []string) (map[string]string, error) {
	return s.repo.FindIDsByRucCedula(ctx, keys)
}

func (s clientBatchStore) InsertBatch(ctx context.Context, items []entity.Client) ([]string, error) {
	rows := make([]*entity.Client, len(items))
	for i := range items {
		rows[i] = &items[i]
	}
	return s.repo.InsertBatch(ctx, rows)
}

func (s clientBatchStore) Update(ctx context.Context, id string, item entity.Client) error {
	item.ID = id
	return s.repo.Update(ctx, &item)
}

// BulkUpsert procesa un lote de clientes reconciliado por ruc_cedula.
func (uc *ClientUseCase) BulkUpsert(ctx context.Context, in []dto.BulkClientRecord) (*dto.BulkResponse, int, error) {
	if len(in) == 0 {
		return nil, 0, domain.ErrEmptyBatch
	}
	if len(in) > dto.MaxBulkRecords {
		return nil, 0, domain.ErrBatchTooLarge
	}

	var verrs validation.Errors
	cands := make([]batch.Candidate[entity.Client], 0, len(in))
	for i, rec := range in {
		if errs := uc.validate.StructAt(i, rec); errs != nil {
			verrs = append(verrs, errs...)
			continue
		}
		cands = append(cands, batch.Candidate[entity.Client]{
			Key:   rec.RucCedula,
			Index: i,
			Payload: entity.Client{
				RucCedula:    rec.RucCedula,
				BusinessName: rec.BusinessName,
				ContactName:  rec.ContactName,
				Email:        rec.Email,
				Phone:        rec.Phone,
				Address:      rec.Address,
				ClientType:   defaultClientType(rec.ClientType),
				IsActive:     true,
			},
		})
	}
	if len(verrs) > 0 {
		return nil, 0, verrs
	}

	res := uc.reconciler.Reconcile(ctx, cands)
	resp := batch.Aggregate(res, func(c entity.Client) string { return c.BusinessName })
	return resp, batch.HTTPStatus(res), nil
}
