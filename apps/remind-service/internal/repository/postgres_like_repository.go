package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/pkg/database"
)

// PostgresLikeRepository implements LikeRepository using PostgreSQL
type PostgresLikeRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(pool *pgxpool.Pool) *PostgresLikeRepository {
	return &PostgresLikeRepository{pool: pool}
}

// Exists checks if the member already likes the portfolio
func (r *PostgresLikeRepository) Exists(ctx context.Context, memberID, portfolioID int64) (bool, error) {
	var exists bool
	err := database.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM likes WHERE member_id = $1 AND portfolio_id = $2)`,
		memberID, portfolioID,
	).Scan(&exists)
	return exists, err
}

// Create inserts a like; the unique pair index turns a concurrent duplicate into a no-op
func (r *PostgresLikeRepository) Create(ctx context.Context, like *domain.Like) (bool, error) {
	like.CreatedAt = time.Now()
	result, err := database.Conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO likes (member_id, portfolio_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (member_id, portfolio_id) DO NOTHING`,
		like.MemberID, like.PortfolioID, like.CreatedAt,
	)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

// Delete removes the like of a member on a portfolio
func (r *PostgresLikeRepository) Delete(ctx context.Context, memberID, portfolioID int64) (bool, error) {
	result, err := database.Conn(ctx, r.pool).Exec(ctx,
		`DELETE FROM likes WHERE member_id = $1 AND portfolio_id = $2`, memberID, portfolioID)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

// CountByPortfolio counts the likes a portfolio received
func (r *PostgresLikeRepository) CountByPortfolio(ctx context.Context, portfolioID int64) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT COUNT(*) FROM likes WHERE portfolio_id = $1`, portfolioID,
	).Scan(&count)
	return count, err
}
