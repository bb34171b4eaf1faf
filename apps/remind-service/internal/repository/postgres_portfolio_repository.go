package repository

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/pkg/database"
)

const portfolioColumns = `portfolio_id, member_id, job_id, title, description, background_img, created_at, updated_at`

// like_count is computed per row so cards never drift from the likes table
const portfolioCardSelect = `
	SELECT p.portfolio_id, p.title, p.description, p.background_img, p.created_at,
		m.nick_name, m.profile_img,
		(SELECT COUNT(*) FROM likes l WHERE l.portfolio_id = p.portfolio_id) AS like_count
	FROM portfolio p
	JOIN member m ON m.member_id = p.member_id
`

// PostgresPortfolioRepository implements PortfolioRepository using PostgreSQL
type PostgresPortfolioRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPortfolioRepository creates a new PostgresPortfolioRepository
func NewPostgresPortfolioRepository(pool *pgxpool.Pool) *PostgresPortfolioRepository {
	return &PostgresPortfolioRepository{pool: pool}
}

// Create creates a new portfolio
func (r *PostgresPortfolioRepository) Create(ctx context.Context, p *domain.Portfolio) error {
	query := `
		INSERT INTO portfolio (member_id, job_id, title, description, background_img, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING portfolio_id
	`
	p.Touch(time.Now())
	return database.Conn(ctx, r.pool).QueryRow(ctx, query,
		p.WriterID, p.JobID, p.Title, p.Description, p.BackgroundImg, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
}

// GetByID retrieves a portfolio by ID
func (r *PostgresPortfolioRepository) GetByID(ctx context.Context, id int64) (*domain.Portfolio, error) {
	portfolio := &domain.Portfolio{}
	err := pgxscan.Get(ctx, database.Conn(ctx, r.pool), portfolio,
		`SELECT `+portfolioColumns+` FROM portfolio WHERE portfolio_id = $1`, id)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return portfolio, nil
}

// ListByWriter lists a member's portfolios, newest first
func (r *PostgresPortfolioRepository) ListByWriter(ctx context.Context, writerID int64) ([]*domain.Portfolio, error) {
	var portfolios []*domain.Portfolio
	err := pgxscan.Select(ctx, database.Conn(ctx, r.pool), &portfolios,
		`SELECT `+portfolioColumns+` FROM portfolio WHERE member_id = $1 ORDER BY portfolio_id DESC`, writerID)
	return portfolios, err
}

// ListCards lists portfolios of a job whose title contains the keyword
func (r *PostgresPortfolioRepository) ListCards(ctx context.Context, filter *domain.PortfolioFilter) ([]*domain.PortfolioCard, int, error) {
	conn := database.Conn(ctx, r.pool)
	pattern := "%" + filter.Keyword + "%"

	var total int
	err := conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM portfolio WHERE job_id = $1 AND title LIKE $2`,
		filter.JobID, pattern,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	var cards []*domain.PortfolioCard
	err = pgxscan.Select(ctx, conn, &cards, portfolioCardSelect+`
		WHERE p.job_id = $1 AND p.title LIKE $2
		ORDER BY p.portfolio_id DESC
		LIMIT $3 OFFSET $4`,
		filter.JobID, pattern, filter.Limit, filter.Offset,
	)
	if err != nil {
		return nil, 0, err
	}
	return cards, total, nil
}

// ListLikedCards lists portfolios liked by a member
func (r *PostgresPortfolioRepository) ListLikedCards(ctx context.Context, memberID int64, limit, offset int) ([]*domain.PortfolioCard, int, error) {
	conn := database.Conn(ctx, r.pool)

	var total int
	if err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE member_id = $1`, memberID).Scan(&total); err != nil {
		return nil, 0, err
	}

	var cards []*domain.PortfolioCard
	err := pgxscan.Select(ctx, conn, &cards, portfolioCardSelect+`
		JOIN likes mine ON mine.portfolio_id = p.portfolio_id AND mine.member_id = $1
		ORDER BY mine.likes_id DESC
		LIMIT $2 OFFSET $3`,
		memberID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	return cards, total, nil
}

// Update updates the editable portfolio fields
func (r *PostgresPortfolioRepository) Update(ctx context.Context, p *domain.Portfolio) error {
	p.UpdatedAt = time.Now()
	result, err := database.Conn(ctx, r.pool).Exec(ctx, `
		UPDATE portfolio
		SET title = $2, description = $3, background_img = $4, updated_at = $5
		WHERE portfolio_id = $1`,
		p.ID, p.Title, p.Description, p.BackgroundImg, p.UpdatedAt,
	)
	return notFoundOr(err, result, domain.ErrPortfolioNotFound)
}

// Delete deletes a portfolio; children go with it through ON DELETE CASCADE
func (r *PostgresPortfolioRepository) Delete(ctx context.Context, id int64) error {
	result, err := database.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM portfolio WHERE portfolio_id = $1`, id)
	return notFoundOr(err, result, domain.ErrPortfolioNotFound)
}
