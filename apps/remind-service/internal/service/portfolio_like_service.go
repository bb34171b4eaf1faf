package service

import (
	"context"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/dto"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/event"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/metrics"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/repository"
)

// PortfolioLikeService defines the interface for portfolio likes
type PortfolioLikeService interface {
	// ToggleLike likes the portfolio, or unlikes it when already liked
	ToggleLike(ctx context.Context, loginID string, portfolioID int64) (*dto.PortfolioLikeResponse, error)
	GetLikedPortfolios(ctx context.Context, loginID string, page int) (*dto.PortfolioAndMemberListResponse, error)
}

type portfolioLikeService struct {
	likeRepo      repository.LikeRepository
	portfolioRepo repository.PortfolioRepository
	guard         *OwnershipGuard
	tx            Transactor
	publisher     event.Publisher
	paging        PagingConfig
}

// NewPortfolioLikeService creates a new PortfolioLikeService
func NewPortfolioLikeService(
	likeRepo repository.LikeRepository,
	portfolioRepo repository.PortfolioRepository,
	guard *OwnershipGuard,
	tx Transactor,
	publisher event.Publisher,
	paging PagingConfig,
) PortfolioLikeService {
	return &portfolioLikeService{
		likeRepo:      likeRepo,
		portfolioRepo: portfolioRepo,
		guard:         guard,
		tx:            tx,
		publisher:     publisher,
		paging:        paging.withDefaults(),
	}
}

// ToggleLike flips the like of (member, portfolio) and re-reads the count
func (s *portfolioLikeService) ToggleLike(ctx context.Context, loginID string, portfolioID int64) (resp *dto.PortfolioLikeResponse, err error) {
	ctx, span := startSpan(ctx, "ToggleLike")
	defer func() { endSpan(span, err) }()

	resp = &dto.PortfolioLikeResponse{}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		member, err := s.guard.CurrentMember(ctx, loginID)
		if err != nil {
			return err
		}
		portfolio, err := s.guard.portfolio(ctx, portfolioID)
		if err != nil {
			return err
		}

		exists, err := s.likeRepo.Exists(ctx, member.ID, portfolio.ID)
		if err != nil {
			return err
		}

		if exists {
			if _, err := s.likeRepo.Delete(ctx, member.ID, portfolio.ID); err != nil {
				return err
			}
			resp.LikeStatus = false
		} else {
			like, err := domain.NewLike(member.ID, portfolio.ID)
			if err != nil {
				return err
			}
			// a concurrent insert of the same pair leaves it liked either way
			if _, err := s.likeRepo.Create(ctx, like); err != nil {
				return err
			}
			resp.LikeStatus = true
		}

		resp.LikeCount, err = s.likeRepo.CountByPortfolio(ctx, portfolio.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.ObserveLike(resp.LikeStatus)
	eventType := domain.EventPortfolioUnliked
	if resp.LikeStatus {
		eventType = domain.EventPortfolioLiked
	}
	publish(ctx, s.publisher, domain.NewEvent(eventType, loginID, map[string]any{
		"portfolio_id": portfolioID,
		"like_count":   resp.LikeCount,
	}))
	return resp, nil
}

// GetLikedPortfolios pages the portfolios the member liked, latest like first
func (s *portfolioLikeService) GetLikedPortfolios(ctx context.Context, loginID string, page int) (*dto.PortfolioAndMemberListResponse, error) {
	member, err := s.guard.CurrentMember(ctx, loginID)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}

	cards, total, err := s.portfolioRepo.ListLikedCards(ctx, member.ID, s.paging.Size, dto.Offset(page, s.paging.Size))
	if err != nil {
		return nil, err
	}

	paging := dto.NewPagingUtil(total, page, s.paging.Size, s.paging.PageNum)
	if paging.Page != page && total > 0 {
		cards, _, err = s.portfolioRepo.ListLikedCards(ctx, member.ID, s.paging.Size, dto.Offset(paging.Page, s.paging.Size))
		if err != nil {
			return nil, err
		}
	}
	return dto.NewPortfolioAndMemberListResponse(cards, paging), nil
}
