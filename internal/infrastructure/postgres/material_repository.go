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

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, material_code, name, unit, stock, min_stock, unit_cost, supplier, is_active, created_at, updated_at`

// MaterialRepo implementación del puerto MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de persistencia para materias primas.
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste una nueva materia prima. ID y timestamps los genera la base.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.RawMaterial) error {
	query := `
		INSERT INTO raw_materials (material_code, name, unit, stock, min_stock, unit_cost, supplier, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		m.MaterialCode, m.Name, m.Unit, m.Stock, m.MinStock, m.UnitCost, m.Supplier, m.IsActive,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene una materia prima por ID. Devuelve nil si no existe.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.RawMaterial, error) {
	return r.getOne(ctx, `SELECT `+materialColumns+` FROM raw_materials WHERE id = $1`, id)
}

// GetByCode obtiene una materia prima por código. Devuelve nil si no existe.
func (r *MaterialRepo) GetByCode(ctx context.Context, code string) (*entity.RawMaterial, error) {
	return r.getOne(ctx, `SELECT `+materialColumns+` FROM raw_materials WHERE material_code = $1`, code)
}

func (r *MaterialRepo) getOne(ctx context.Context, query string, arg any) (*entity.RawMaterial, error) {
	var m entity.RawMaterial
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&m.ID, &m.MaterialCode, &m.Name, &m.Unit, &m.Stock, &m.MinStock,
		&m.UnitCost, &m.Supplier, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}

// Update actualiza los campos mutables por ID. El código no se modifica.
func (r *MaterialRepo) Update(ctx context.Context, m *entity.RawMaterial) error {
	query := `
		UPDATE raw_materials
		SET name = $2, unit = $3, stock = $4, min_stock = $5, unit_cost = $6,
		    supplier = $7, is_active = $8, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Unit, m.Stock, m.MinStock, m.UnitCost, m.Supplier, m.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// List lista materias primas con paginación.
func (r *MaterialRepo) List(ctx context.Context, limit, offset int) ([]*entity.RawMaterial, error) {
	query := `SELECT ` + materialColumns + ` FROM raw_materials ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	return scanMaterials(rows)
}

// ListLowStock devuelve materias primas activas en o bajo su umbral mínimo.
func (r *MaterialRepo) ListLowStock(ctx context.Context) ([]*entity.RawMaterial, error) {
	query := `
		SELECT ` + materialColumns + `
		FROM raw_materials
		WHERE is_active AND min_stock > 0 AND stock <= min_stock
		ORDER BY (min_stock - stock) DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list low stock materials: %w", err)
	}
	return scanMaterials(rows)
}

// Delete elimina una materia prima por ID.
func (r *MaterialRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM raw_materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	return nil
}

// FindIDsByCode devuelve material_code -> id para los códigos existentes (una sola consulta IN).
func (r *MaterialRepo) FindIDsByCode(ctx context.Context, codes []string) (map[string]string, error) {
	rows, err := r.q.Query(ctx, `SELECT material_code, id FROM raw_materials WHERE material_code = ANY($1)`, codes)
	if err != nil {
		return nil, fmt.Errorf("find material ids by code: %w", err)
	}
	defer rows.Close()
	found := make(map[string]string, len(codes))
	for rows.Next() {
		var code, id string
		if err := rows.Scan(&code, &id); err != nil {
			return nil, fmt.Errorf("scan material id: %w", err)
		}
		found[code] = id
	}
	return found, rows.Err()
}

// InsertBatch inserta todas las materias primas en una sola sentencia multi-fila
// y devuelve los IDs generados en el orden de entrada. Todo-o-nada.
func (r *MaterialRepo) InsertBatch(ctx context.Context, materials []*entity.RawMaterial) ([]string, error) {
	if len(materials) == 0 {
		return nil, nil
	}
	var sb strings.Builder
	sb.WriteString(`INSERT INTO raw_materials (material_code, name, unit, stock, min_stock, unit_cost, supplier, is_active) VALUES `)
	args := make([]any, 0, len(materials)*8)
	for i, m := range materials {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i * 8
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8)
		args = append(args, m.MaterialCode, m.Name, m.Unit, m.Stock, m.MinStock, m.UnitCost, m.Supplier, m.IsActive)
	}
	sb.WriteString(" RETURNING id")

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("insert material batch: %w", err)
	}
	defer rows.Close()
	ids := make([]string, 0, len(materials))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan inserted material id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanMaterials(rows pgx.Rows) ([]*entity.RawMaterial, error) {
	defer rows.Close()
	var list []*entity.RawMaterial
	for rows.Next() {
		var m entity.RawMaterial
		if err := rows.Scan(
			&m.ID, &m.MaterialCode, &m.Name, &m.Unit, &m.Stock, &m.MinStock,
			&m.UnitCost, &m.Supplier, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
