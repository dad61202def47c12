package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/helpdesk-labs/incident-service/internal/domain"
)

// CategoryRepository stores the category reference enumeration.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
	Update(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository returns a Postgres-backed implementation.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id_categoria, nombre FROM categoria ORDER BY id_categoria`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var cat domain.Category
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, err
		}
		result = append(result, cat)
	}
	return result, rows.Err()
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var cat domain.Category
	err := r.pool.QueryRow(ctx, `SELECT id_categoria, nombre FROM categoria WHERE id_categoria=$1`, id).
		Scan(&cat.ID, &cat.Name)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *categoryRepository) Create(ctx context.Context, name string) (*domain.Category, error) {
	cat := domain.Category{Name: name}
	err := r.pool.QueryRow(ctx, `INSERT INTO categoria (nombre) VALUES ($1) RETURNING id_categoria`, name).
		Scan(&cat.ID)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *categoryRepository) Update(ctx context.Context, id int64, name string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE categoria SET nombre=$1 WHERE id_categoria=$2`, name, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a category unless an incident still references it. The
// reference check and the delete run in one transaction so a concurrent
// insert cannot slip between them.
func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var refs int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM incidencia WHERE categoria_id=$1`, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrReferenced
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM categoria WHERE id_categoria=$1`, id)
	if err != nil {
		// An incident committed after the count still trips the FK restrict.
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
