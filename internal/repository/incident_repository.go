package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/helpdesk-labs/incident-service/internal/domain"
)

// IncidentFilter captures listing parameters. Filters combine with
// logical AND; each is independent of the others.
type IncidentFilter struct {
	OwnerUserID *int64
	StatusID    *int64
	CategoryID  *int64
	SearchTerm  *string
	Limit       int
	Offset      int
}

// IncidentRepository encapsulates incident persistence.
type IncidentRepository interface {
	Create(ctx context.Context, incident *domain.Incident) error
	Update(ctx context.Context, incident *domain.Incident) error
	GetByID(ctx context.Context, id int64) (*domain.IncidentDetail, error)
	ListPage(ctx context.Context, filter IncidentFilter) ([]domain.IncidentDetail, int64, error)
	Delete(ctx context.Context, id int64) error
}

type incidentRepository struct {
	pool *pgxpool.Pool
}

// NewIncidentRepository instantiates repository.
func NewIncidentRepository(pool *pgxpool.Pool) IncidentRepository {
	return &incidentRepository{pool: pool}
}

const incidentSelect = `
        SELECT i.id_incidencia, i.titulo, i.descripcion, i.fecha_registro,
               i.estado_id, i.categoria_id, i.usuario_id, i.administrador_id,
               e.nombre AS estado_nombre, c.nombre AS categoria_nombre,
               u.nombre AS usuario_nombre, a.nombre AS administrador_nombre
        FROM incidencia i
        INNER JOIN estado e ON i.estado_id = e.id_estado
        INNER JOIN categoria c ON i.categoria_id = c.id_categoria
        INNER JOIN usuario u ON i.usuario_id = u.id_usuario
        LEFT JOIN administrador a ON i.administrador_id = a.id_admin`

func (r *incidentRepository) Create(ctx context.Context, incident *domain.Incident) error {
	const query = `
        INSERT INTO incidencia (titulo, descripcion, fecha_registro, estado_id, categoria_id, usuario_id, administrador_id)
        VALUES ($1, $2, NOW(), $3, $4, $5, $6)
        RETURNING id_incidencia, fecha_registro`
	return r.pool.QueryRow(ctx, query,
		incident.Title,
		incident.Description,
		incident.StatusID,
		incident.CategoryID,
		incident.OwnerUserID,
		incident.AssignedAdminID,
	).Scan(&incident.ID, &incident.CreatedAt)
}

func (r *incidentRepository) Update(ctx context.Context, incident *domain.Incident) error {
	const query = `
        UPDATE incidencia SET titulo=$1, descripcion=$2, estado_id=$3, categoria_id=$4,
            usuario_id=$5, administrador_id=$6
        WHERE id_incidencia=$7`
	cmd, err := r.pool.Exec(ctx, query,
		incident.Title,
		incident.Description,
		incident.StatusID,
		incident.CategoryID,
		incident.OwnerUserID,
		incident.AssignedAdminID,
		incident.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *incidentRepository) GetByID(ctx context.Context, id int64) (*domain.IncidentDetail, error) {
	query := incidentSelect + ` WHERE i.id_incidencia=$1`
	var detail domain.IncidentDetail
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&detail.ID,
		&detail.Title,
		&detail.Description,
		&detail.CreatedAt,
		&detail.StatusID,
		&detail.CategoryID,
		&detail.OwnerUserID,
		&detail.AssignedAdminID,
		&detail.StatusName,
		&detail.CategoryName,
		&detail.OwnerName,
		&detail.AdminName,
	); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListPage returns one page of enriched incidents plus the unpaged total,
// newest first.
func (r *incidentRepository) ListPage(ctx context.Context, filter IncidentFilter) ([]domain.IncidentDetail, int64, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.OwnerUserID != nil {
		args = append(args, *filter.OwnerUserID)
		clauses = append(clauses, fmt.Sprintf("i.usuario_id=$%d", len(args)))
	}
	if filter.StatusID != nil {
		args = append(args, *filter.StatusID)
		clauses = append(clauses, fmt.Sprintf("i.estado_id=$%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("i.categoria_id=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(i.titulo) LIKE %s OR LOWER(i.descripcion) LIKE %s)", placeholder, placeholder))
	}

	where := strings.Join(clauses, " AND ")

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY i.fecha_registro DESC LIMIT %d OFFSET %d`,
		incidentSelect, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result, err := scanIncidents(rows)
	if err != nil {
		return nil, 0, err
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM incidencia i WHERE %s`, where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

// Delete removes an incident unless audit entries reference it. Check and
// delete share one transaction so a transition recorded concurrently is
// still detected.
func (r *incidentRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var refs int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM historial WHERE incidencia_id=$1`, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrReferenced
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM incidencia WHERE id_incidencia=$1`, id)
	if err != nil {
		// A history row committed after the count still trips the FK restrict.
		if isForeignKeyViolation(err) {
			return ErrReferenced
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return tx.Commit(ctx)
}

func scanIncidents(rows pgx.Rows) ([]domain.IncidentDetail, error) {
	var result []domain.IncidentDetail
	for rows.Next() {
		var detail domain.IncidentDetail
		if err := rows.Scan(
			&detail.ID,
			&detail.Title,
			&detail.Description,
			&detail.CreatedAt,
			&detail.StatusID,
			&detail.CategoryID,
			&detail.OwnerUserID,
			&detail.AssignedAdminID,
			&detail.StatusName,
			&detail.CategoryName,
			&detail.OwnerName,
			&detail.AdminName,
		); err != nil {
			return nil, err
		}
		result = append(result, detail)
	}
	return result, rows.Err()
}
