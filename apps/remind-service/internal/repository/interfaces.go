package repository

import (
	"context"
	"time"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
)

// Getters return (nil, nil) when the row does not exist.

// MemberRepository defines the interface for member data access
type MemberRepository interface {
	// Create inserts a member and sets its ID and timestamps
	Create(ctx context.Context, member *domain.Member) error
	// GetByID retrieves a member by ID
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
	// GetByLoginID retrieves a member by login id
	GetByLoginID(ctx context.Context, loginID string) (*domain.Member, error)
	// ExistsByLoginID checks if a login id is taken
	ExistsByLoginID(ctx context.Context, loginID string) (bool, error)
	// Update writes profile fields, password and role
	Update(ctx context.Context, member *domain.Member) error
}

// JobRepository defines the interface for job data access
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id int64) (*domain.Job, error)
	GetByName(ctx context.Context, name string) (*domain.Job, error)
	List(ctx context.Context) ([]*domain.Job, error)
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id int64) error
}

// LicenseRepository defines the interface for license data access
type LicenseRepository interface {
	Create(ctx context.Context, license *domain.License) error
	GetByOwnerAndName(ctx context.Context, ownerID int64, name string) (*domain.License, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.License, error)
	Update(ctx context.Context, license *domain.License) error
}

// PortfolioRepository defines the interface for portfolio data access
type PortfolioRepository interface {
	Create(ctx context.Context, portfolio *domain.Portfolio) error
	GetByID(ctx context.Context, id int64) (*domain.Portfolio, error)
	ListByWriter(ctx context.Context, writerID int64) ([]*domain.Portfolio, error)
	// ListCards lists portfolios of a job whose title contains the keyword, newest first
	ListCards(ctx context.Context, filter *domain.PortfolioFilter) ([]*domain.PortfolioCard, int, error)
	// ListLikedCards lists portfolios liked by a member, most recently liked first
	ListLikedCards(ctx context.Context, memberID int64, limit, offset int) ([]*domain.PortfolioCard, int, error)
	Update(ctx context.Context, portfolio *domain.Portfolio) error
	Delete(ctx context.Context, id int64) error
}

// PortfolioSkillRepository defines the interface for portfolio skill data access
type PortfolioSkillRepository interface {
	ListByPortfolio(ctx context.Context, portfolioID int64) ([]*domain.PortfolioSkill, error)
	CreateBatch(ctx context.Context, skills []*domain.PortfolioSkill) error
	DeleteByIDs(ctx context.Context, ids []int64) error
}

// PortfolioAwardRepository defines the interface for portfolio award data access
type PortfolioAwardRepository interface {
	Create(ctx context.Context, award *domain.PortfolioAward) error
	GetByID(ctx context.Context, id int64) (*domain.PortfolioAward, error)
	ListByPortfolio(ctx context.Context, portfolioID int64) ([]*domain.PortfolioAward, error)
	Update(ctx context.Context, award *domain.PortfolioAward) error
	Delete(ctx context.Context, id int64) error
}

// LikeRepository defines the interface for like data access
type LikeRepository interface {
	Exists(ctx context.Context, memberID, portfolioID int64) (bool, error)
	// Create reports false when the pair already existed
	Create(ctx context.Context, like *domain.Like) (bool, error)
	// Delete reports false when there was nothing to delete
	Delete(ctx context.Context, memberID, portfolioID int64) (bool, error)
	CountByPortfolio(ctx context.Context, portfolioID int64) (int64, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	ListByPortfolio(ctx context.Context, portfolioID int64) ([]*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id int64) error
}

// ProjectSkillRepository defines the interface for project skill data access
type ProjectSkillRepository interface {
	ListByProjects(ctx context.Context, projectIDs []int64) ([]*domain.ProjectSkill, error)
	CreateBatch(ctx context.Context, skills []*domain.ProjectSkill) error
	DeleteByIDs(ctx context.Context, ids []int64) error
}

// ProjectImgRepository defines the interface for project image data access
type ProjectImgRepository interface {
	ListByProjects(ctx context.Context, projectIDs []int64) ([]*domain.ProjectImg, error)
	CreateBatch(ctx context.Context, imgs []*domain.ProjectImg) error
	DeleteByIDs(ctx context.Context, ids []int64) error
}

// ProjectAwardRepository defines the interface for project award data access
type ProjectAwardRepository interface {
	ListByProjects(ctx context.Context, projectIDs []int64) ([]*domain.ProjectAward, error)
	// Upsert inserts or replaces the award of award.ProjectID
	Upsert(ctx context.Context, award *domain.ProjectAward) error
}

// TokenStore keeps refresh tokens and logout markers
type TokenStore interface {
	SaveRefreshToken(ctx context.Context, loginID, token string, ttl time.Duration) error
	// GetRefreshToken returns "" when none is stored
	GetRefreshToken(ctx context.Context, loginID string) (string, error)
	DeleteRefreshToken(ctx context.Context, loginID string) error
	// RotateRefreshToken replaces expected with next only if expected is still stored
	RotateRefreshToken(ctx context.Context, loginID, expected, next string, ttl time.Duration) (bool, error)
	MarkLoggedOut(ctx context.Context, accessToken string, ttl time.Duration) error
	IsLoggedOut(ctx context.Context, accessToken string) (bool, error)
}
