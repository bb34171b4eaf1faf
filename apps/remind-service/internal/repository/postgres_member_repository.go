package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/pkg/database"
)

const memberColumns = `member_id, login_id, password, nick_name, email, phone_num, gender, birth,
	profile_img, academic, dept, github_link, blog_link, role, created_at, updated_at`

// PostgresMemberRepository implements MemberRepository using PostgreSQL
type PostgresMemberRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresMemberRepository creates a new PostgresMemberRepository
func NewPostgresMemberRepository(pool *pgxpool.Pool) *PostgresMemberRepository {
	return &PostgresMemberRepository{pool: pool}
}

// Create creates a new member
func (r *PostgresMemberRepository) Create(ctx context.Context, m *domain.Member) error {
	query := `
		INSERT INTO member (login_id, password, nick_name, email, phone_num, gender, birth,
			profile_img, academic, dept, github_link, blog_link, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING member_id
	`
	m.Touch(time.Now())
	err := database.Conn(ctx, r.pool).QueryRow(ctx, query,
		m.LoginID,
		m.Password,
		m.NickName,
		m.Email,
		m.PhoneNum,
		m.Gender,
		m.Birth,
		m.ProfileImg,
		m.Academic,
		m.Dept,
		m.GitHubLink,
		m.BlogLink,
		string(m.Role),
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&m.ID)
	if isUniqueViolation(err) {
		if violatedConstraint(err) == "member_email_key" {
			return fmt.Errorf("%w: email already registered", domain.ErrBadRequest)
		}
		return domain.ErrLoginIDAlreadyExists
	}
	return err
}

// GetByID retrieves a member by ID
func (r *PostgresMemberRepository) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	return r.getOne(ctx, `SELECT `+memberColumns+` FROM member WHERE member_id = $1`, id)
}

// GetByLoginID retrieves a member by login id
func (r *PostgresMemberRepository) GetByLoginID(ctx context.Context, loginID string) (*domain.Member, error) {
	return r.getOne(ctx, `SELECT `+memberColumns+` FROM member WHERE login_id = $1`, loginID)
}

func (r *PostgresMemberRepository) getOne(ctx context.Context, query string, arg any) (*domain.Member, error) {
	member := &domain.Member{}
	if err := pgxscan.Get(ctx, database.Conn(ctx, r.pool), member, query, arg); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return member, nil
}

// ExistsByLoginID checks if a login id is taken
func (r *PostgresMemberRepository) ExistsByLoginID(ctx context.Context, loginID string) (bool, error) {
	var exists bool
	err := database.Conn(ctx, r.pool).
		QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM member WHERE login_id = $1)`, loginID).
		Scan(&exists)
	return exists, err
}

// Update updates a member
func (r *PostgresMemberRepository) Update(ctx context.Context, m *domain.Member) error {
	query := `
		UPDATE member
		SET password = $2, nick_name = $3, email = $4, phone_num = $5, gender = $6, birth = $7,
			profile_img = $8, academic = $9, dept = $10, github_link = $11, blog_link = $12,
			role = $13, updated_at = $14
		WHERE member_id = $1
	`
	m.UpdatedAt = time.Now()
	result, err := database.Conn(ctx, r.pool).Exec(ctx, query,
		m.ID,
		m.Password,
		m.NickName,
		m.Email,
		m.PhoneNum,
		m.Gender,
		m.Birth,
		m.ProfileImg,
		m.Academic,
		m.Dept,
		m.GitHubLink,
		m.BlogLink,
		string(m.Role),
		m.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: email already registered", domain.ErrBadRequest)
	}
	return notFoundOr(err, result, domain.ErrMemberNotFound)
}
