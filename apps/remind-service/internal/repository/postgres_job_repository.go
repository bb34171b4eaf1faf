package repository

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/pkg/database"
)

// PostgresJobRepository implements JobRepository using PostgreSQL
type PostgresJobRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresJobRepository creates a new PostgresJobRepository
func NewPostgresJobRepository(pool *pgxpool.Pool) *PostgresJobRepository {
	return &PostgresJobRepository{pool: pool}
}

// Create creates a new job
func (r *PostgresJobRepository) Create(ctx context.Context, job *domain.Job) error {
	job.Touch(time.Now())
	err := database.Conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO job (name, created_at, updated_at) VALUES ($1, $2, $3) RETURNING job_id`,
		job.Name, job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
	if isUniqueViolation(err) {
		return domain.ErrJobAlreadyExists
	}
	return err
}

// GetByID retrieves a job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	return r.getOne(ctx, `SELECT job_id, name, created_at, updated_at FROM job WHERE job_id = $1`, id)
}

// GetByName retrieves a job by name
func (r *PostgresJobRepository) GetByName(ctx context.Context, name string) (*domain.Job, error) {
	return r.getOne(ctx, `SELECT job_id, name, created_at, updated_at FROM job WHERE name = $1`, name)
}

func (r *PostgresJobRepository) getOne(ctx context.Context, query string, arg any) (*domain.Job, error) {
	job := &domain.Job{}
	if err := pgxscan.Get(ctx, database.Conn(ctx, r.pool), job, query, arg); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return job, nil
}

// List lists every job ordered by ID
func (r *PostgresJobRepository) List(ctx context.Context) ([]*domain.Job, error) {
	var jobs []*domain.Job
	err := pgxscan.Select(ctx, database.Conn(ctx, r.pool), &jobs,
		`SELECT job_id, name, created_at, updated_at FROM job ORDER BY job_id`)
	return jobs, err
}

// Update renames a job
func (r *PostgresJobRepository) Update(ctx context.Context, job *domain.Job) error {
	job.UpdatedAt = time.Now()
	result, err := database.Conn(ctx, r.pool).Exec(ctx,
		`UPDATE job SET name = $2, updated_at = $3 WHERE job_id = $1`,
		job.ID, job.Name, job.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrJobAlreadyExists
	}
	return notFoundOr(err, result, domain.ErrJobNotFound)
}

// Delete deletes a job by ID
func (r *PostgresJobRepository) Delete(ctx context.Context, id int64) error {
	result, err := database.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM job WHERE job_id = $1`, id)
	return notFoundOr(err, result, domain.ErrJobNotFound)
}
