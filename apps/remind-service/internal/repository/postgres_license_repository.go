package repository

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/pkg/database"
)

const licenseColumns = `license_id, member_id, name, issue_institution, issue_date, created_at, updated_at`

// PostgresLicenseRepository implements LicenseRepository using PostgreSQL
type PostgresLicenseRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresLicenseRepository creates a new PostgresLicenseRepository
func NewPostgresLicenseRepository(pool *pgxpool.Pool) *PostgresLicenseRepository {
	return &PostgresLicenseRepository{pool: pool}
}

// Create creates a new license
func (r *PostgresLicenseRepository) Create(ctx context.Context, l *domain.License) error {
	query := `
		INSERT INTO license (member_id, name, issue_institution, issue_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING license_id
	`
	l.Touch(time.Now())
	err := database.Conn(ctx, r.pool).QueryRow(ctx, query,
		l.OwnerID, l.Name, l.IssueInstitution, l.IssueDate, l.CreatedAt, l.UpdatedAt,
	).Scan(&l.ID)
	if isUniqueViolation(err) {
		return domain.ErrLicenseAlreadyEnrolled
	}
	return err
}

// GetByOwnerAndName retrieves a member's license by name
func (r *PostgresLicenseRepository) GetByOwnerAndName(ctx context.Context, ownerID int64, name string) (*domain.License, error) {
	license := &domain.License{}
	err := pgxscan.Get(ctx, database.Conn(ctx, r.pool), license,
		`SELECT `+licenseColumns+` FROM license WHERE member_id = $1 AND name = $2`, ownerID, name)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return license, nil
}

// ListByOwner lists a member's licenses in enrollment order
func (r *PostgresLicenseRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.License, error) {
	var licenses []*domain.License
	err := pgxscan.Select(ctx, database.Conn(ctx, r.pool), &licenses,
		`SELECT `+licenseColumns+` FROM license WHERE member_id = $1 ORDER BY license_id`, ownerID)
	return licenses, err
}

// Update updates the issuing details of a license
func (r *PostgresLicenseRepository) Update(ctx context.Context, l *domain.License) error {
	l.UpdatedAt = time.Now()
	result, err := database.Conn(ctx, r.pool).Exec(ctx,
		`UPDATE license SET issue_institution = $2, issue_date = $3, updated_at = $4 WHERE license_id = $1`,
		l.ID, l.IssueInstitution, l.IssueDate, l.UpdatedAt,
	)
	return notFoundOr(err, result, domain.ErrLicenseNotFound)
}
