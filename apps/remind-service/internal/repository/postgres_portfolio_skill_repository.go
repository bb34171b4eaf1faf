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

// PostgresPortfolioSkillRepository implements PortfolioSkillRepository using PostgreSQL
type PostgresPortfolioSkillRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPortfolioSkillRepository creates a new PostgresPortfolioSkillRepository
func NewPostgresPortfolioSkillRepository(pool *pgxpool.Pool) *PostgresPortfolioSkillRepository {
	return &PostgresPortfolioSkillRepository{pool: pool}
}

// ListByPortfolio lists the skills of a portfolio
func (r *PostgresPortfolioSkillRepository) ListByPortfolio(ctx context.Context, portfolioID int64) ([]*domain.PortfolioSkill, error) {
	var skills []*domain.PortfolioSkill
	err := pgxscan.Select(ctx, database.Conn(ctx, r.pool), &skills, `
		SELECT portfolio_skill_id, portfolio_id, type, name, path, created_at, updated_at
		FROM portfolio_skill
		WHERE portfolio_id = $1
		ORDER BY portfolio_skill_id`, portfolioID)
	return skills, err
}

// CreateBatch inserts skills in one round trip and sets their IDs
func (r *PostgresPortfolioSkillRepository) CreateBatch(ctx context.Context, skills []*domain.PortfolioSkill) error {
	if len(skills) == 0 {
		return nil
	}

	now := time.Now()
	batch := &pgx.Batch{}
	for _, s := range skills {
		s.Touch(now)
		batch.Queue(`
			INSERT INTO portfolio_skill (portfolio_id, type, name, path, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING portfolio_skill_id`,
			s.PortfolioID, s.Type, s.Name, s.Path, s.CreatedAt, s.UpdatedAt,
		)
	}

	return sendBatch(ctx, r.pool, batch, func(i int, row pgx.Row) error {
		return row.Scan(&skills[i].ID)
	})
}

// DeleteByIDs deletes skills by ID
func (r *PostgresPortfolioSkillRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := database.Conn(ctx, r.pool).Exec(ctx,
		`DELETE FROM portfolio_skill WHERE portfolio_skill_id = ANY($1)`, ids)
	return err
}
