package service

import (
	"context"
	"errors"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/dto"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/event"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/repository"
)

// PagingConfig sizes paged lists
type PagingConfig struct {
	Size    int
	PageNum int
}

func (c PagingConfig) withDefaults() PagingConfig {
	if c.Size <= 0 {
		c.Size = dto.DefaultPageSize
	}
	if c.PageNum <= 0 {
		c.PageNum = dto.DefaultPageNum
	}
	return c
}

// PortfolioService defines the interface for portfolio operations
type PortfolioService interface {
	EnrollBasicPortfolio(ctx context.Context, loginID, jobName string) (*dto.BasicPortfolioResponse, error)
	// GetPortfolio returns the detail view; loginID is empty for anonymous callers
	GetPortfolio(ctx context.Context, loginID string, portfolioID int64) (*dto.PortfolioInfoResponse, error)
	GetPortfolioList(ctx context.Context, jobName string, page int, keyword string) (*dto.PortfolioAndMemberListResponse, error)
	GetPortfolioAboutMe(ctx context.Context, portfolioID int64) (*dto.MemberResponse, error)
	GetMemberPortfolioList(ctx context.Context, loginID string) (*dto.PortfolioAndMemberListResponse, error)
	UpdatePortfolio(ctx context.Context, loginID string, portfolioID int64, req *dto.PortfolioUpdateRequest) error
	DeletePortfolio(ctx context.Context, loginID string, portfolioID int64) error
}

type portfolioService struct {
	portfolioRepo repository.PortfolioRepository
	jobRepo       repository.JobRepository
	memberRepo    repository.MemberRepository
	likeRepo      repository.LikeRepository
	guard         *OwnershipGuard
	publisher     event.Publisher
	paging        PagingConfig
}

// NewPortfolioService creates a new PortfolioService
func NewPortfolioService(
	portfolioRepo repository.PortfolioRepository,
	jobRepo repository.JobRepository,
	memberRepo repository.MemberRepository,
	likeRepo repository.LikeRepository,
	guard *OwnershipGuard,
	publisher event.Publisher,
	paging PagingConfig,
) PortfolioService {
	return &portfolioService{
		portfolioRepo: portfolioRepo,
		jobRepo:       jobRepo,
		memberRepo:    memberRepo,
		likeRepo:      likeRepo,
		guard:         guard,
		publisher:     publisher,
		paging:        paging.withDefaults(),
	}
}

// EnrollBasicPortfolio creates a placeholder portfolio under jobName
func (s *portfolioService) EnrollBasicPortfolio(ctx context.Context, loginID, jobName string) (*dto.BasicPortfolioResponse, error) {
	member, err := s.guard.CurrentMember(ctx, loginID)
	if err != nil {
		return nil, err
	}

	job, err := s.jobByName(ctx, jobName)
	if err != nil {
		return nil, err
	}

	portfolio, err := domain.NewBasicPortfolio(member.ID, job.ID)
	if err != nil {
		return nil, err
	}
	if err := s.portfolioRepo.Create(ctx, portfolio); err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, domain.NewEvent(domain.EventPortfolioCreated, member.LoginID, map[string]any{
		"portfolio_id": portfolio.ID,
		"job":          job.Name,
	}))
	return &dto.BasicPortfolioResponse{PortfolioID: portfolio.ID}, nil
}

func (s *portfolioService) GetPortfolio(ctx context.Context, loginID string, portfolioID int64) (*dto.PortfolioInfoResponse, error) {
	portfolio, err := s.guard.portfolio(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, portfolio.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrJobNotFound
	}

	liked := false
	if loginID != "" {
		member, err := s.guard.CurrentMember(ctx, loginID)
		if err != nil {
			return nil, err
		}
		if liked, err = s.likeRepo.Exists(ctx, member.ID, portfolio.ID); err != nil {
			return nil, err
		}
	}

	count, err := s.likeRepo.CountByPortfolio(ctx, portfolio.ID)
	if err != nil {
		return nil, err
	}
	return dto.NewPortfolioInfoResponse(portfolio, job.Name, liked, count), nil
}

// GetPortfolioList pages the portfolios of a job whose title contains keyword
func (s *portfolioService) GetPortfolioList(ctx context.Context, jobName string, page int, keyword string) (*dto.PortfolioAndMemberListResponse, error) {
	job, err := s.jobByName(ctx, jobName)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}

	filter := &domain.PortfolioFilter{
		JobID:   job.ID,
		Keyword: keyword,
		Limit:   s.paging.Size,
		Offset:  dto.Offset(page, s.paging.Size),
	}
	cards, total, err := s.portfolioRepo.ListCards(ctx, filter)
	if err != nil {
		return nil, err
	}

	paging := dto.NewPagingUtil(total, page, s.paging.Size, s.paging.PageNum)
	if paging.Page != page && total > 0 {
		// requested page was past the end, show the last one
		filter.Offset = dto.Offset(paging.Page, s.paging.Size)
		if cards, _, err = s.portfolioRepo.ListCards(ctx, filter); err != nil {
			return nil, err
		}
	}
	return dto.NewPortfolioAndMemberListResponse(cards, paging), nil
}

// GetPortfolioAboutMe returns the public profile of the portfolio writer
func (s *portfolioService) GetPortfolioAboutMe(ctx context.Context, portfolioID int64) (*dto.MemberResponse, error) {
	portfolio, err := s.guard.portfolio(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	writer, err := s.memberRepo.GetByID(ctx, portfolio.WriterID)
	if err != nil {
		return nil, err
	}
	if writer == nil {
		return nil, domain.ErrMemberNotFound
	}
	return dto.NewMemberResponse(writer), nil
}

func (s *portfolioService) GetMemberPortfolioList(ctx context.Context, loginID string) (*dto.PortfolioAndMemberListResponse, error) {
	member, err := s.guard.CurrentMember(ctx, loginID)
	if err != nil {
		return nil, err
	}

	portfolios, err := s.portfolioRepo.ListByWriter(ctx, member.ID)
	if err != nil {
		return nil, err
	}

	cards := make([]*domain.PortfolioCard, 0, len(portfolios))
	for _, p := range portfolios {
		count, err := s.likeRepo.CountByPortfolio(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		cards = append(cards, &domain.PortfolioCard{
			PortfolioID:   p.ID,
			Title:         p.Title,
			Description:   p.Description,
			BackgroundImg: p.BackgroundImg,
			NickName:      member.NickName,
			ProfileImg:    member.ProfileImg,
			LikeCount:     count,
			CreatedAt:     p.CreatedAt,
		})
	}
	return dto.NewPortfolioAndMemberListResponse(cards, nil), nil
}

func (s *portfolioService) UpdatePortfolio(ctx context.Context, loginID string, portfolioID int64, req *dto.PortfolioUpdateRequest) error {
	portfolio, _, err := s.writtenPortfolio(ctx, loginID, portfolioID)
	if err != nil {
		return err
	}
	portfolio.Update(req.Title, req.Description, req.BackgroundImg)
	return s.portfolioRepo.Update(ctx, portfolio)
}

// DeletePortfolio removes the portfolio; children go with it through FK cascades
func (s *portfolioService) DeletePortfolio(ctx context.Context, loginID string, portfolioID int64) error {
	portfolio, member, err := s.writtenPortfolio(ctx, loginID, portfolioID)
	if err != nil {
		return err
	}
	if err := s.portfolioRepo.Delete(ctx, portfolio.ID); err != nil {
		return err
	}

	publish(ctx, s.publisher, domain.NewEvent(domain.EventPortfolioDeleted, member.LoginID, map[string]any{
		"portfolio_id": portfolio.ID,
	}))
	return nil
}

// writtenPortfolio reports a foreign portfolio as ErrWriterNotMatchedPortfolio
func (s *portfolioService) writtenPortfolio(ctx context.Context, loginID string, portfolioID int64) (*domain.Portfolio, *domain.Member, error) {
	member, err := s.guard.CurrentMember(ctx, loginID)
	if err != nil {
		return nil, nil, err
	}
	portfolio, err := s.guard.AssertPortfolioWriter(ctx, member, portfolioID)
	if errors.Is(err, domain.ErrMemberNotMatch) {
		return nil, nil, domain.ErrWriterNotMatchedPortfolio
	}
	if err != nil {
		return nil, nil, err
	}
	return portfolio, member, nil
}

func (s *portfolioService) jobByName(ctx context.Context, name string) (*domain.Job, error) {
	job, err := s.jobRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrJobNotFound
	}
	return job, nil
}
