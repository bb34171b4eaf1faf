package service

import (
	"context"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/repository"
)

// OwnershipGuard resolves the acting member and checks it owns the aggregate
// before any mutation. Ownership is compared by member id.
type OwnershipGuard struct {
	memberRepo    repository.MemberRepository
	portfolioRepo repository.PortfolioRepository
	projectRepo   repository.ProjectRepository
	awardRepo     repository.PortfolioAwardRepository
}

// NewOwnershipGuard creates a new OwnershipGuard
func NewOwnershipGuard(
	memberRepo repository.MemberRepository,
	portfolioRepo repository.PortfolioRepository,
	projectRepo repository.ProjectRepository,
	awardRepo repository.PortfolioAwardRepository,
) *OwnershipGuard {
	return &OwnershipGuard{
		memberRepo:    memberRepo,
		portfolioRepo: portfolioRepo,
		projectRepo:   projectRepo,
		awardRepo:     awardRepo,
	}
}

// CurrentMember loads the member behind loginID
func (g *OwnershipGuard) CurrentMember(ctx context.Context, loginID string) (*domain.Member, error) {
	if loginID == "" {
		return nil, domain.ErrMemberNotFound
	}
	member, err := g.memberRepo.GetByLoginID(ctx, loginID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, domain.ErrMemberNotFound
	}
	return member, nil
}

// AssertPortfolioWriter loads the portfolio and checks member wrote it
func (g *OwnershipGuard) AssertPortfolioWriter(ctx context.Context, member *domain.Member, portfolioID int64) (*domain.Portfolio, error) {
	portfolio, err := g.portfolio(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	if !portfolio.WrittenBy(member.ID) {
		return nil, domain.ErrMemberNotMatch
	}
	return portfolio, nil
}

// AssertProjectOwner checks the project sits under the portfolio and member wrote the portfolio
func (g *OwnershipGuard) AssertProjectOwner(ctx context.Context, member *domain.Member, portfolioID, projectID int64) (*domain.Project, error) {
	portfolio, err := g.AssertPortfolioWriter(ctx, member, portfolioID)
	if err != nil {
		return nil, err
	}

	project, err := g.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrProjectNotFound
	}
	if !project.BelongsTo(portfolio.ID) {
		return nil, domain.ErrProjectNotMatch
	}
	return project, nil
}

// AssertPortfolioAwardOwner loads an award whose portfolio member wrote.
// An award on someone else's portfolio is reported as not found.
func (g *OwnershipGuard) AssertPortfolioAwardOwner(ctx context.Context, member *domain.Member, awardID int64) (*domain.PortfolioAward, error) {
	award, err := g.awardRepo.GetByID(ctx, awardID)
	if err != nil {
		return nil, err
	}
	if award == nil {
		return nil, domain.ErrPortfolioAwardNotFound
	}

	portfolio, err := g.portfolioRepo.GetByID(ctx, award.PortfolioID)
	if err != nil {
		return nil, err
	}
	if portfolio == nil || !portfolio.WrittenBy(member.ID) {
		return nil, domain.ErrPortfolioAwardNotFound
	}
	return award, nil
}

// AssertLicenseOwner checks member owns license
func (g *OwnershipGuard) AssertLicenseOwner(member *domain.Member, license *domain.License) error {
	if !license.OwnedBy(member.ID) {
		return domain.ErrMemberNotMatch
	}
	return nil
}

func (g *OwnershipGuard) portfolio(ctx context.Context, portfolioID int64) (*domain.Portfolio, error) {
	portfolio, err := g.portfolioRepo.GetByID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	if portfolio == nil {
		return nil, domain.ErrPortfolioNotFound
	}
	return portfolio, nil
}
