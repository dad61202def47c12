package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/helpdesk-labs/incident-service/internal/domain"
)

// AdministratorRepository defines persistence access for administrators.
// Administrators are provisioned out-of-band, so there is no Create.
type AdministratorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Administrator, error)
	GetByEmail(ctx context.Context, email string) (*domain.Administrator, error)
	List(ctx context.Context) ([]domain.Administrator, error)
}

type administratorRepository struct {
	pool *pgxpool.Pool
}

// NewAdministratorRepository returns a Postgres-backed implementation.
func NewAdministratorRepository(pool *pgxpool.Pool) AdministratorRepository {
	return &administratorRepository{pool: pool}
}

func (r *administratorRepository) GetByID(ctx context.Context, id int64) (*domain.Administrator, error) {
	const query = `
        SELECT id_admin, nombre, correo, password_hash, created_at
        FROM administrador WHERE id_admin=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *administratorRepository) GetByEmail(ctx context.Context, email string) (*domain.Administrator, error) {
	const query = `
        SELECT id_admin, nombre, correo, password_hash, created_at
        FROM administrador WHERE correo=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *administratorRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Administrator, error) {
	var admin domain.Administrator
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&admin.ID,
		&admin.Name,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *administratorRepository) List(ctx context.Context) ([]domain.Administrator, error) {
	const query = `
        SELECT id_admin, nombre, correo, password_hash, created_at
        FROM administrador ORDER BY id_admin`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Administrator
	for rows.Next() {
		var admin domain.Administrator
		if err := rows.Scan(
			&admin.ID,
			&admin.Name,
			&admin.Email,
			&admin.PasswordHash,
			&admin.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, admin)
	}
	return result, rows.Err()
}
