package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/helpdesk-labs/incident-service/internal/domain"
)

// AuditRepository stores incident status-change history.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
	List(ctx context.Context) ([]domain.AuditDetail, error)
	ListByIncident(ctx context.Context, incidentID int64) ([]domain.AuditDetail, error)
	GetByID(ctx context.Context, id int64) (*domain.AuditDetail, error)
	Update(ctx context.Context, entry *domain.AuditEntry) error
	Delete(ctx context.Context, id int64) error
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository builds repository.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

const auditSelect = `
        SELECT h.id_historial, h.fecha_cambio, h.descripcion,
               h.estado_anterior_id, h.estado_nuevo_id, h.incidencia_id, h.realizado_por_id,
               e1.nombre AS estado_anterior, e2.nombre AS estado_nuevo,
               i.titulo AS incidencia_titulo, a.nombre AS administrador_nombre
        FROM historial h
        INNER JOIN estado e1 ON h.estado_anterior_id = e1.id_estado
        INNER JOIN estado e2 ON h.estado_nuevo_id = e2.id_estado
        INNER JOIN incidencia i ON h.incidencia_id = i.id_incidencia
        INNER JOIN administrador a ON h.realizado_por_id = a.id_admin`

func (r *auditRepository) Create(ctx context.Context, entry *domain.AuditEntry) error {
	const query = `
        INSERT INTO historial (fecha_cambio, descripcion, estado_anterior_id, estado_nuevo_id, incidencia_id, realizado_por_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id_historial`
	return r.pool.QueryRow(ctx, query,
		entry.ChangedAt,
		entry.Description,
		entry.FromStatusID,
		entry.ToStatusID,
		entry.IncidentID,
		entry.ChangedByAdminID,
	).Scan(&entry.ID)
}

func (r *auditRepository) List(ctx context.Context) ([]domain.AuditDetail, error) {
	rows, err := r.pool.Query(ctx, auditSelect+` ORDER BY h.fecha_cambio DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAuditDetails(rows)
}

func (r *auditRepository) ListByIncident(ctx context.Context, incidentID int64) ([]domain.AuditDetail, error) {
	rows, err := r.pool.Query(ctx, auditSelect+` WHERE h.incidencia_id=$1 ORDER BY h.fecha_cambio DESC`, incidentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAuditDetails(rows)
}

func (r *auditRepository) GetByID(ctx context.Context, id int64) (*domain.AuditDetail, error) {
	var detail domain.AuditDetail
	if err := r.pool.QueryRow(ctx, auditSelect+` WHERE h.id_historial=$1`, id).Scan(
		&detail.ID,
		&detail.ChangedAt,
		&detail.Description,
		&detail.FromStatusID,
		&detail.ToStatusID,
		&detail.IncidentID,
		&detail.ChangedByAdminID,
		&detail.FromStatusName,
		&detail.ToStatusName,
		&detail.IncidentTitle,
		&detail.AdminName,
	); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *auditRepository) Update(ctx context.Context, entry *domain.AuditEntry) error {
	const query = `
        UPDATE historial
        SET fecha_cambio=$1, descripcion=$2, estado_anterior_id=$3, estado_nuevo_id=$4, incidencia_id=$5, realizado_por_id=$6
        WHERE id_historial=$7`
	cmd, err := r.pool.Exec(ctx, query,
		entry.ChangedAt,
		entry.Description,
		entry.FromStatusID,
		entry.ToStatusID,
		entry.IncidentID,
		entry.ChangedByAdminID,
		entry.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *auditRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM historial WHERE id_historial=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanAuditDetails(rows pgx.Rows) ([]domain.AuditDetail, error) {
	var result []domain.AuditDetail
	for rows.Next() {
		var detail domain.AuditDetail
		if err := rows.Scan(
			&detail.ID,
			&detail.ChangedAt,
			&detail.Description,
			&detail.FromStatusID,
			&detail.ToStatusID,
			&detail.IncidentID,
			&detail.ChangedByAdminID,
			&detail.FromStatusName,
			&detail.ToStatusName,
			&detail.IncidentTitle,
			&detail.AdminName,
		); err != nil {
			return nil, err
		}
		result = append(result, detail)
	}
	return result, rows.Err()
}
