package repository

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/pkg/database"
)

const projectColumns = `project_id, portfolio_id, name, duration, description, belong, link, created_at, updated_at`

// PostgresProjectRepository implements ProjectRepository using PostgreSQL
type PostgresProjectRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresProjectRepository creates a new PostgresProjectRepository
func NewPostgresProjectRepository(pool *pgxpool.Pool) *PostgresProjectRepository {
	return &PostgresProjectRepository{pool: pool}
}

// Create creates a new project
func (r *PostgresProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	p.Touch(time.Now())
	return database.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO project (portfolio_id, name, duration, description, belong, link, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING project_id`,
		p.PortfolioID, p.Name, p.Duration, p.Description, p.Belong, p.Link, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
}

// GetByID retrieves a project by ID
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	project := &domain.Project{}
	err := pgxscan.Get(ctx, database.Conn(ctx, r.pool), project,
		`SELECT `+projectColumns+` FROM project WHERE project_id = $1`, id)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return project, nil
}

// ListByPortfolio lists the projects of a portfolio in creation order
func (r *PostgresProjectRepository) ListByPortfolio(ctx context.Context, portfolioID int64) ([]*domain.Project, error) {
	var projects []*domain.Project
	err := pgxscan.Select(ctx, database.Conn(ctx, r.pool), &projects,
		`SELECT `+projectColumns+` FROM project WHERE portfolio_id = $1 ORDER BY project_id`, portfolioID)
	return projects, err
}

// Update updates the scalar project fields
func (r *PostgresProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	p.UpdatedAt = time.Now()
	result, err := database.Conn(ctx, r.pool).Exec(ctx, `
		UPDATE project
		SET name = $2, duration = $3, description = $4, belong = $5, link = $6, updated_at = $7
		WHERE project_id = $1`,
		p.ID, p.Name, p.Duration, p.Description, p.Belong, p.Link, p.UpdatedAt,
	)
	return notFoundOr(err, result, domain.ErrProjectNotFound)
}

// Delete deletes a project with its skills, images and award
func (r *PostgresProjectRepository) Delete(ctx context.Context, id int64) error {
	result, err := database.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM project WHERE project_id = $1`, id)
	return notFoundOr(err, result, domain.ErrProjectNotFound)
}

// PostgresProjectSkillRepository implements ProjectSkillRepository using PostgreSQL
type PostgresProjectSkillRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresProjectSkillRepository creates a new PostgresProjectSkillRepository
func NewPostgresProjectSkillRepository(pool *pgxpool.Pool) *PostgresProjectSkillRepository {
	return &PostgresProjectSkillRepository{pool: pool}
}

// ListByProjects lists the skills of several projects
func (r *PostgresProjectSkillRepository) ListByProjects(ctx context.Context, projectIDs []int64) ([]*domain.ProjectSkill, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	var skills []*domain.ProjectSkill
	err := pgxscan.Select(ctx, database.Conn(ctx, r.pool), &skills, `
		SELECT project_skill_id, project_id, type, name, created_at, updated_at
		FROM project_skill
		WHERE project_id = ANY($1)
		ORDER BY project_skill_id`, projectIDs)
	return skills, err
}

// CreateBatch inserts skills and sets their IDs
func (r *PostgresProjectSkillRepository) CreateBatch(ctx context.Context, skills []*domain.ProjectSkill) error {
	if len(skills) == 0 {
		return nil
	}
	now := time.Now()
	batch := &pgx.Batch{}
	for _, s := range skills {
		s.Touch(now)
		batch.Queue(`
			INSERT INTO project_skill (project_id, type, name, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING project_skill_id`,
			s.ProjectID, s.Type, s.Name, s.CreatedAt, s.UpdatedAt,
		)
	}
	return sendBatch(ctx, r.pool, batch, func(i int, row pgx.Row) error {
		return row.Scan(&skills[i].ID)
	})
}

// DeleteByIDs deletes skills by ID
func (r *PostgresProjectSkillRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := database.Conn(ctx, r.pool).Exec(ctx,
		`DELETE FROM project_skill WHERE project_skill_id = ANY($1)`, ids)
	return err
}

// PostgresProjectImgRepository implements ProjectImgRepository using PostgreSQL
type PostgresProjectImgRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresProjectImgRepository creates a new PostgresProjectImgRepository
func NewPostgresProjectImgRepository(pool *pgxpool.Pool) *PostgresProjectImgRepository {
	return &PostgresProjectImgRepository{pool: pool}
}

// ListByProjects lists the images of several projects
func (r *PostgresProjectImgRepository) ListByProjects(ctx context.Context, projectIDs []int64) ([]*domain.ProjectImg, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	var imgs []*domain.ProjectImg
	err := pgxscan.Select(ctx, database.Conn(ctx, r.pool), &imgs, `
		SELECT project_img_id, project_id, url, created_at, updated_at
		FROM project_img
		WHERE project_id = ANY($1)
		ORDER BY project_img_id`, projectIDs)
	return imgs, err
}

// CreateBatch inserts images and sets their IDs
func (r *PostgresProjectImgRepository) CreateBatch(ctx context.Context, imgs []*domain.ProjectImg) error {
	if len(imgs) == 0 {
		return nil
	}
	now := time.Now()
	batch := &pgx.Batch{}
	for _, img := range imgs {
		img.Touch(now)
		batch.Queue(`
			INSERT INTO project_img (project_id, url, created_at, updated_at)
			VALUES ($1, $2, $3, $4)
			RETURNING project_img_id`,
			img.ProjectID, img.URL, img.CreatedAt, img.UpdatedAt,
		)
	}
	return sendBatch(ctx, r.pool, batch, func(i int, row pgx.Row) error {
		return row.Scan(&imgs[i].ID)
	})
}

// DeleteByIDs deletes images by ID
func (r *PostgresProjectImgRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := database.Conn(ctx, r.pool).Exec(ctx,
		`DELETE FROM project_img WHERE project_img_id = ANY($1)`, ids)
	return err
}

// PostgresProjectAwardRepository implements ProjectAwardRepository using PostgreSQL
type PostgresProjectAwardRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresProjectAwardRepository creates a new PostgresProjectAwardRepository
func NewPostgresProjectAwardRepository(pool *pgxpool.Pool) *PostgresProjectAwardRepository {
	return &PostgresProjectAwardRepository{pool: pool}
}

// ListByProjects lists the awards of several projects
func (r *PostgresProjectAwardRepository) ListByProjects(ctx context.Context, projectIDs []int64) ([]*domain.ProjectAward, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	var awards []*domain.ProjectAward
	err := pgxscan.Select(ctx, database.Conn(ctx, r.pool), &awards, `
		SELECT project_award_id, project_id, supervision, grade, description, created_at, updated_at
		FROM project_award
		WHERE project_id = ANY($1)`, projectIDs)
	return awards, err
}

// Upsert writes the one award row of a project
func (r *PostgresProjectAwardRepository) Upsert(ctx context.Context, a *domain.ProjectAward) error {
	a.Touch(time.Now())
	return database.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO project_award (project_id, supervision, grade, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (project_id) DO UPDATE
		SET supervision = EXCLUDED.supervision,
			grade = EXCLUDED.grade,
			description = EXCLUDED.description,
			updated_at = EXCLUDED.updated_at
		RETURNING project_award_id, created_at`,
		a.ProjectID, a.Supervision, a.Grade, a.Description, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID, &a.CreatedAt)
}
