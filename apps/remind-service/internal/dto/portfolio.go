package dto

import "github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"

// PortfolioUpdateRequest represents portfolio update request
type PortfolioUpdateRequest struct {
	Title         string `json:"title" binding:"required,max=200"`
	Description   string `json:"description"`
	BackgroundImg string `json:"backgroundImg"`
}

// BasicPortfolioResponse is returned when a portfolio is created
type BasicPortfolioResponse struct {
	PortfolioID int64 `json:"portfolioId"`
}

// PortfolioInfoResponse is the detail view of a portfolio
type PortfolioInfoResponse struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	BackgroundImg string `json:"backgroundImg"`
	JobName       string `json:"jobName"`
	LikeStatus    bool   `json:"likeStatus"`
	LikeCount     int64  `json:"likeCount"`
}

// NewPortfolioInfoResponse builds PortfolioInfoResponse
func NewPortfolioInfoResponse(p *domain.Portfolio, jobName string, likeStatus bool, likeCount int64) *PortfolioInfoResponse {
	return &PortfolioInfoResponse{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		BackgroundImg: p.BackgroundImg,
		JobName:       jobName,
		LikeStatus:    likeStatus,
		LikeCount:     likeCount,
	}
}

// PortfolioAndMemberResponse is one card of a portfolio list
type PortfolioAndMemberResponse struct {
	PortfolioID   int64  `json:"portfolioId"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	BackgroundImg string `json:"backgroundImg"`
	NickName      string `json:"nickName"`
	ProfileImg    string `json:"profileImg"`
	LikeCount     int64  `json:"likeCount"`
}

// PortfolioAndMemberListResponse is a page of portfolio cards
type PortfolioAndMemberListResponse struct {
	PagingUtil                 *PagingUtil                  `json:"pagingUtil,omitempty"`
	PortfolioAndMemberRespList []PortfolioAndMemberResponse `json:"portfolioAndMemberRespList"`
}

// NewPortfolioAndMemberListResponse builds a card list; paging may be nil
func NewPortfolioAndMemberListResponse(cards []*domain.PortfolioCard, paging *PagingUtil) *PortfolioAndMemberListResponse {
	resp := &PortfolioAndMemberListResponse{
		PagingUtil:                 paging,
		PortfolioAndMemberRespList: make([]PortfolioAndMemberResponse, 0, len(cards)),
	}
	for _, c := range cards {
		resp.PortfolioAndMemberRespList = append(resp.PortfolioAndMemberRespList, PortfolioAndMemberResponse{
			PortfolioID:   c.PortfolioID,
			Title:         c.Title,
			Description:   c.Description,
			BackgroundImg: c.BackgroundImg,
			NickName:      c.NickName,
			ProfileImg:    c.ProfileImg,
			LikeCount:     c.LikeCount,
		})
	}
	return resp
}

// PortfolioLikeResponse is the state after a like toggle
type PortfolioLikeResponse struct {
	LikeStatus bool  `json:"likeStatus"`
	LikeCount  int64 `json:"likeCount"`
}
