package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/dto"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/middleware"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/service"
	"github.com/Ms-You/poje-remind/pkg/response"
)

const portfolioIDParam = "portfolio_id"

// PortfolioHandler handles portfolios and their awards, skills and likes
type PortfolioHandler struct {
	portfolioService service.PortfolioService
	awardService     service.PortfolioAwardService
	skillService     service.PortfolioSkillService
	likeService      service.PortfolioLikeService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(
	portfolioService service.PortfolioService,
	awardService service.PortfolioAwardService,
	skillService service.PortfolioSkillService,
	likeService service.PortfolioLikeService,
) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		awardService:     awardService,
		skillService:     skillService,
		likeService:      likeService,
	}
}

// EnrollBasicPortfolio creates a placeholder portfolio for a job
// POST /member/portfolio?job=
func (h *PortfolioHandler) EnrollBasicPortfolio(c *gin.Context) {
	resp, err := h.portfolioService.EnrollBasicPortfolio(c.Request.Context(), middleware.LoginID(c), c.Query("job"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, "기본 포트폴리오가 생성되었습니다.", resp)
}

// GetPortfolio returns the detail view; the like status is false for anonymous callers
// GET /portfolio/:portfolio_id
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	id, ok := pathID(c, portfolioIDParam)
	if !ok {
		return
	}

	resp, err := h.portfolioService.GetPortfolio(c.Request.Context(), middleware.LoginID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "포트폴리오 정보 반환", resp)
}

// GetPortfolioList GET /portfolios?name=&keyword=&page=
func (h *PortfolioHandler) GetPortfolioList(c *gin.Context) {
	resp, err := h.portfolioService.GetPortfolioList(c.Request.Context(), c.Query("name"), queryPage(c), c.Query("keyword"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "직무별 포트폴리오 목록 반환", resp)
}

// GetPortfolioAboutMe GET /portfolio/:portfolio_id/about-me
func (h *PortfolioHandler) GetPortfolioAboutMe(c *gin.Context) {
	id, ok := pathID(c, portfolioIDParam)
	if !ok {
		return
	}

	resp, err := h.portfolioService.GetPortfolioAboutMe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "포트폴리오 About Me 정보 반환", resp)
}

// GetMemberPortfolioList GET /member/portfolio
func (h *PortfolioHandler) GetMemberPortfolioList(c *gin.Context) {
	resp, err := h.portfolioService.GetMemberPortfolioList(c.Request.Context(), middleware.LoginID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "내 포트폴리오 목록 조회", resp)
}

// UpdatePortfolio changes a portfolio and returns the detail view
// PUT /member/portfolio/:portfolio_id
func (h *PortfolioHandler) UpdatePortfolio(c *gin.Context) {
	id, ok := pathID(c, portfolioIDParam)
	if !ok {
		return
	}
	var req dto.PortfolioUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	loginID := middleware.LoginID(c)
	if err := h.portfolioService.UpdatePortfolio(ctx, loginID, id, &req); err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.portfolioService.GetPortfolio(ctx, loginID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "포트폴리오가 수정되었습니다.", resp)
}

// DeletePortfolio DELETE /member/portfolio/:portfolio_id
func (h *PortfolioHandler) DeletePortfolio(c *gin.Context) {
	id, ok := pathID(c, portfolioIDParam)
	if !ok {
		return
	}

	if err := h.portfolioService.DeletePortfolio(c.Request.Context(), middleware.LoginID(c), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "포트폴리오가 삭제되었습니다.", nil)
}

// EnrollPortfolioAward POST /member/portfolio/:portfolio_id/award
func (h *PortfolioHandler) EnrollPortfolioAward(c *gin.Context) {
	id, ok := pathID(c, portfolioIDParam)
	if !ok {
		return
	}

	if err := h.awardService.EnrollPortfolioAward(c.Request.Context(), middleware.LoginID(c), id); err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, "기본 수상 정보가 등록되었습니다.", nil)
}

// GetPortfolioAwardList GET /portfolio/:portfolio_id/award
func (h *PortfolioHandler) GetPortfolioAwardList(c *gin.Context) {
	id, ok := pathID(c, portfolioIDParam)
	if !ok {
		return
	}

	resp, err := h.awardService.GetPortfolioAwardList(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "포트폴리오 수상 정보 목록 조회", resp)
}

// UpdatePortfolioAward PUT /member/portfolio/award/:award_id
func (h *PortfolioHandler) UpdatePortfolioAward(c *gin.Context) {
	id, ok := pathID(c, "award_id")
	if !ok {
		return
	}
	var req dto.AwardRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.awardService.UpdatePortfolioAward(c.Request.Context(), middleware.LoginID(c), id, &req); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "수상 정보가 수정되었습니다.", nil)
}

// DeletePortfolioAward DELETE /member/portfolio/award/:award_id
func (h *PortfolioHandler) DeletePortfolioAward(c *gin.Context) {
	id, ok := pathID(c, "award_id")
	if !ok {
		return
	}

	if err := h.awardService.DeletePortfolioAward(c.Request.Context(), middleware.LoginID(c), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "수상 정보가 삭제되었습니다.", nil)
}

// ToggleLike POST /member/portfolio/:portfolio_id/like
func (h *PortfolioHandler) ToggleLike(c *gin.Context) {
	id, ok := pathID(c, portfolioIDParam)
	if !ok {
		return
	}

	resp, err := h.likeService.ToggleLike(c.Request.Context(), middleware.LoginID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "'좋아요'를 취소하셨습니다."
	if resp.LikeStatus {
		message = "'좋아요'를 누르셨습니다."
	}
	response.Success(c, message, resp)
}

// GetLikedPortfolios GET /member/like/portfolio?page=
func (h *PortfolioHandler) GetLikedPortfolios(c *gin.Context) {
	resp, err := h.likeService.GetLikedPortfolios(c.Request.Context(), middleware.LoginID(c), queryPage(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "좋아요 누른 포트폴리오 목록 정보 조회", resp)
}

// UpdatePortfolioSkill PUT /member/portfolio/:portfolio_id/skill
func (h *PortfolioHandler) UpdatePortfolioSkill(c *gin.Context) {
	id, ok := pathID(c, portfolioIDParam)
	if !ok {
		return
	}
	var req dto.PortfolioSkillUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.skillService.UpdatePortfolioSkill(c.Request.Context(), middleware.LoginID(c), id, &req); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "사용 기술이 수정되었습니다.", nil)
}

// GetPortfolioSkill GET /portfolio/:portfolio_id/skill
func (h *PortfolioHandler) GetPortfolioSkill(c *gin.Context) {
	id, ok := pathID(c, portfolioIDParam)
	if !ok {
		return
	}

	resp, err := h.skillService.GetPortfolioSkill(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "포트폴리오 사용 기술 목록 반환", resp)
}
