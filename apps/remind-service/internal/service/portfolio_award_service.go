package service

import (
	"context"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/dto"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/repository"
)

// PortfolioAwardService defines the interface for portfolio awards
type PortfolioAwardService interface {
	EnrollPortfolioAward(ctx context.Context, loginID string, portfolioID int64) error
	GetPortfolioAwardList(ctx context.Context, portfolioID int64) ([]*dto.PortfolioAwardResponse, error)
	UpdatePortfolioAward(ctx context.Context, loginID string, awardID int64, req *dto.AwardRequest) error
	DeletePortfolioAward(ctx context.Context, loginID string, awardID int64) error
}

type portfolioAwardService struct {
	awardRepo repository.PortfolioAwardRepository
	guard     *OwnershipGuard
}

// NewPortfolioAwardService creates a new PortfolioAwardService
func NewPortfolioAwardService(awardRepo repository.PortfolioAwardRepository, guard *OwnershipGuard) PortfolioAwardService {
	return &portfolioAwardService{awardRepo: awardRepo, guard: guard}
}

// EnrollPortfolioAward adds a placeholder award to a portfolio the member wrote
func (s *portfolioAwardService) EnrollPortfolioAward(ctx context.Context, loginID string, portfolioID int64) error {
	member, err := s.guard.CurrentMember(ctx, loginID)
	if err != nil {
		return err
	}
	portfolio, err := s.guard.AssertPortfolioWriter(ctx, member, portfolioID)
	if err != nil {
		return err
	}

	award, err := domain.NewBasicPortfolioAward(portfolio.ID)
	if err != nil {
		return err
	}
	return s.awardRepo.Create(ctx, award)
}

func (s *portfolioAwardService) GetPortfolioAwardList(ctx context.Context, portfolioID int64) ([]*dto.PortfolioAwardResponse, error) {
	if _, err := s.guard.portfolio(ctx, portfolioID); err != nil {
		return nil, err
	}
	awards, err := s.awardRepo.ListByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	return dto.NewPortfolioAwardResponses(awards), nil
}

func (s *portfolioAwardService) UpdatePortfolioAward(ctx context.Context, loginID string, awardID int64, req *dto.AwardRequest) error {
	member, err := s.guard.CurrentMember(ctx, loginID)
	if err != nil {
		return err
	}
	award, err := s.guard.AssertPortfolioAwardOwner(ctx, member, awardID)
	if err != nil {
		return err
	}

	award.Update(req.Supervision, req.Grade, req.Description)
	return s.awardRepo.Update(ctx, award)
}

func (s *portfolioAwardService) DeletePortfolioAward(ctx context.Context, loginID string, awardID int64) error {
	member, err := s.guard.CurrentMember(ctx, loginID)
	if err != nil {
		return err
	}
	award, err := s.guard.AssertPortfolioAwardOwner(ctx, member, awardID)
	if err != nil {
		return err
	}
	return s.awardRepo.Delete(ctx, award.ID)
}
