package repository

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/pkg/database"
)

const portfolioAwardColumns = `portfolio_award_id, portfolio_id, supervision, grade, description, created_at, updated_at`

// PostgresPortfolioAwardRepository implements PortfolioAwardRepository using PostgreSQL
type PostgresPortfolioAwardRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPortfolioAwardRepository creates a new PostgresPortfolioAwardRepository
func NewPostgresPortfolioAwardRepository(pool *pgxpool.Pool) *PostgresPortfolioAwardRepository {
	return &PostgresPortfolioAwardRepository{pool: pool}
}

// Create creates a new portfolio award
func (r *PostgresPortfolioAwardRepository) Create(ctx context.Context, a *domain.PortfolioAward) error {
	a.Touch(time.Now())
	return database.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO portfolio_award (portfolio_id, supervision, grade, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING portfolio_award_id`,
		a.PortfolioID, a.Supervision, a.Grade, a.Description, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
}

// GetByID retrieves a portfolio award by ID
func (r *PostgresPortfolioAwardRepository) GetByID(ctx context.Context, id int64) (*domain.PortfolioAward, error) {
	award := &domain.PortfolioAward{}
	err := pgxscan.Get(ctx, database.Conn(ctx, r.pool), award,
		`SELECT `+portfolioAwardColumns+` FROM portfolio_award WHERE portfolio_award_id = $1`, id)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return award, nil
}

// ListByPortfolio lists the awards of a portfolio
func (r *PostgresPortfolioAwardRepository) ListByPortfolio(ctx context.Context, portfolioID int64) ([]*domain.PortfolioAward, error) {
	var awards []*domain.PortfolioAward
	err := pgxscan.Select(ctx, database.Conn(ctx, r.pool), &awards,
		`SELECT `+portfolioAwardColumns+` FROM portfolio_award WHERE portfolio_id = $1 ORDER BY portfolio_award_id`,
		portfolioID)
	return awards, err
}

// Update overwrites the award text
func (r *PostgresPortfolioAwardRepository) Update(ctx context.Context, a *domain.PortfolioAward) error {
	a.UpdatedAt = time.Now()
	result, err := database.Conn(ctx, r.pool).Exec(ctx, `
		UPDATE portfolio_award
		SET supervision = $2, grade = $3, description = $4, updated_at = $5
		WHERE portfolio_award_id = $1`,
		a.ID, a.Supervision, a.Grade, a.Description, a.UpdatedAt,
	)
	return notFoundOr(err, result, domain.ErrPortfolioAwardNotFound)
}

// Delete deletes a portfolio award by ID
func (r *PostgresPortfolioAwardRepository) Delete(ctx context.Context, id int64) error {
	result, err := database.Conn(ctx, r.pool).Exec(ctx,
		`DELETE FROM portfolio_award WHERE portfolio_award_id = $1`, id)
	return notFoundOr(err, result, domain.ErrPortfolioAwardNotFound)
}
