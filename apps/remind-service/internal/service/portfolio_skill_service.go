package service

import (
	"context"
	"strings"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/dto"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/event"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/metrics"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/repository"
)

// PortfolioSkillService defines the interface for portfolio skills
type PortfolioSkillService interface {
	// UpdatePortfolioSkill makes the stored skills equal the requested set, matched by name
	UpdatePortfolioSkill(ctx context.Context, loginID string, portfolioID int64, req *dto.PortfolioSkillUpdateRequest) error
	GetPortfolioSkill(ctx context.Context, portfolioID int64) ([]dto.PortfolioSkillResponse, error)
}

type portfolioSkillService struct {
	skillRepo repository.PortfolioSkillRepository
	guard     *OwnershipGuard
	tx        Transactor
	publisher event.Publisher
}

// NewPortfolioSkillService creates a new PortfolioSkillService
func NewPortfolioSkillService(
	skillRepo repository.PortfolioSkillRepository,
	guard *OwnershipGuard,
	tx Transactor,
	publisher event.Publisher,
) PortfolioSkillService {
	return &portfolioSkillService{skillRepo: skillRepo, guard: guard, tx: tx, publisher: publisher}
}

func (s *portfolioSkillService) UpdatePortfolioSkill(ctx context.Context, loginID string, portfolioID int64, req *dto.PortfolioSkillUpdateRequest) (err error) {
	ctx, span := startSpan(ctx, "UpdatePortfolioSkill")
	defer func() { endSpan(span, err) }()

	var plan ReconcilePlan[*domain.PortfolioSkill, dto.PortfolioSkillItem]
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		member, err := s.guard.CurrentMember(ctx, loginID)
		if err != nil {
			return err
		}
		portfolio, err := s.guard.AssertPortfolioWriter(ctx, member, portfolioID)
		if err != nil {
			return err
		}

		current, err := s.skillRepo.ListByPortfolio(ctx, portfolio.ID)
		if err != nil {
			return err
		}

		plan = Reconcile(current, req.Skills,
			func(c *domain.PortfolioSkill) string { return c.Name },
			func(d dto.PortfolioSkillItem) string { return strings.TrimSpace(d.Name) },
		)
		if plan.Empty() {
			return nil
		}

		ids := make([]int64, 0, len(plan.ToDelete))
		for _, c := range plan.ToDelete {
			ids = append(ids, c.ID)
		}
		if err := s.skillRepo.DeleteByIDs(ctx, ids); err != nil {
			return err
		}

		created := make([]*domain.PortfolioSkill, 0, len(plan.ToCreate))
		for _, d := range plan.ToCreate {
			skill, err := domain.NewPortfolioSkill(portfolio.ID, d.Type, d.Name, d.Path)
			if err != nil {
				return err
			}
			created = append(created, skill)
		}
		return s.skillRepo.CreateBatch(ctx, created)
	})
	if err != nil {
		return err
	}

	metrics.ObserveReconcile(metrics.CollectionPortfolioSkill, len(plan.ToCreate), len(plan.ToDelete))
	if !plan.Empty() {
		publish(ctx, s.publisher, domain.NewEvent(domain.EventPortfolioSkillsSet, loginID, map[string]any{
			"portfolio_id": portfolioID,
			"created":      len(plan.ToCreate),
			"deleted":      len(plan.ToDelete),
		}))
	}
	return nil
}

func (s *portfolioSkillService) GetPortfolioSkill(ctx context.Context, portfolioID int64) ([]dto.PortfolioSkillResponse, error) {
	if _, err := s.guard.portfolio(ctx, portfolioID); err != nil {
		return nil, err
	}
	skills, err := s.skillRepo.ListByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	return dto.NewPortfolioSkillResponses(skills), nil
}
