package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/helpdesk-labs/incident-service/internal/domain"
)

// StatusRepository stores the status reference enumeration.
type StatusRepository interface {
	List(ctx context.Context) ([]domain.Status, error)
	GetByID(ctx context.Context, id int64) (*domain.Status, error)
	Create(ctx context.Context, name string) (*domain.Status, error)
	Update(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}

type statusRepository struct {
	pool *pgxpool.Pool
}

// NewStatusRepository returns a Postgres-backed implementation.
func NewStatusRepository(pool *pgxpool.Pool) StatusRepository {
	return &statusRepository{pool: pool}
}

func (r *statusRepository) List(ctx context.Context) ([]domain.Status, error) {
	rows, err := r.pool.Query(ctx, `SELECT id_estado, nombre FROM estado ORDER BY id_estado`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Status
	for rows.Next() {
		var st domain.Status
		if err := rows.Scan(&st.ID, &st.Name); err != nil {
			return nil, err
		}
		result = append(result, st)
	}
	return result, rows.Err()
}

func (r *statusRepository) GetByID(ctx context.Context, id int64) (*domain.Status, error) {
	var st domain.Status
	err := r.pool.QueryRow(ctx, `SELECT id_estado, nombre FROM estado WHERE id_estado=$1`, id).
		Scan(&st.ID, &st.Name)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *statusRepository) Create(ctx context.Context, name string) (*domain.Status, error) {
	st := domain.Status{Name: name}
	err := r.pool.QueryRow(ctx, `INSERT INTO estado (nombre) VALUES ($1) RETURNING id_estado`, name).
		Scan(&st.ID)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *statusRepository) Update(ctx context.Context, id int64, name string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE estado SET nombre=$1 WHERE id_estado=$2`, name, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *statusRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM estado WHERE id_estado=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
