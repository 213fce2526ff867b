package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/nubestock/nubestock-api/internal/domain"
	"github.com/nubestock/nubestock-api/internal/domain/entity"
	"github.com/nubestock/nubestock-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, ruc_cedula, business_name, contact_name, email, phone, address, client_type, is_active, created_at, updated_at`

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador de persistencia para clientes.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un nuevo cliente. ID y timestamps los genera la base.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (ruc_cedula, business_name, contact_name, email, phone, address, client_type, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		c.RucCedula, c.BusinessName, c.ContactName, c.Email, c.Phone, c.Address, c.ClientType, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. Devuelve nil si no existe.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
}

// GetByRucCedula obtiene un cliente por RUC/cédula. Devuelve nil si no existe.
func (r *ClientRepo) GetByRucCedula(ctx context.Context, doc string) (*entity.Client, error) {
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE ruc_cedula = $1`, doc)
}

func (r *ClientRepo) getOne(ctx context.Context, query string, arg any) (*entity.Client, error) {
	var c entity.Client
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.RucCedula, &c.BusinessName, &c.ContactName, &c.Email, &c.Phone,
		&c.Address, &c.ClientType, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// Update actualiza los campos mutables por ID. El RUC/cédula no se modifica.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients
		SET business_name = $2, contact_name = $3, email = $4, phone = $5,
		    address = $6, client_type = $7, is_active = $8, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.BusinessName, c.ContactName, c.Email, c.Phone, c.Address, c.ClientType, c.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// List lista clientes con paginación.
func (r *ClientRepo) List(ctx context.Context, limit, offset int) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(
			&c.ID, &c.RucCedula, &c.BusinessName, &c.ContactName, &c.Email, &c.Phone,
			&c.Address, &c.ClientType, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina un cliente por ID.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

// FindIDsByRucCedula devuelve ruc_cedula -> id para los documentos existentes (una sola consulta IN).
func (r *ClientRepo) FindIDsByRucCedula(ctx context.Context, docs []string) (map[string]string, error) {
	rows, err := r.q.Query(ctx, `SELECT ruc_cedula, id FROM clients WHERE ruc_cedula = ANY($1)`, docs)
	if err != nil {
		return nil, fmt.Errorf("find client ids by ruc/cedula: %w", err)
	}
	defer rows.Close()
	found := make(map[string]string, len(docs))
	for rows.Next() {
		var doc, id string
		if err := rows.Scan(&doc, &id); err != nil {
			return nil, fmt.Errorf("scan client id: %w", err)
		}
		found[doc] = id
	}
	return found, rows.Err()
}

// InsertBatch inserta todos los clientes en una sola sentencia multi-fila y
// devuelve los IDs generados en el orden de entrada. Todo-o-nada.
func (r *ClientRepo) InsertBatch(ctx context.Context, clients []*entity.Client) ([]string, error) {
	if len(clients) == 0 {
		return nil, nil
	}
	var sb strings.Builder
	sb.WriteString(`INSERT INTO clients (ruc_cedula, business_name, contact_name, email, phone, address, client_type, is_active) VALUES `)
	args := make([]any, 0, len(clients)*8)
	for i, c := range clients {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i * 8
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8)
		args = append(args, c.RucCedula, c.BusinessName, c.ContactName, c.Email, c.Phone, c.Address, c.ClientType, c.IsActive)
	}
	sb.WriteString(" RETURNING id")

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("insert client batch: %w", err)
	}
	defer rows.Close()
	ids := make([]string, 0, len(clients))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan inserted client id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
