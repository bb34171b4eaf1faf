package dto

import "github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"

// AwardRequest represents award update request; used for portfolio and project awards
type AwardRequest struct {
	Supervision string `json:"supervision"`
	Grade       string `json:"grade"`
	Description string `json:"description"`
}

// PortfolioAwardResponse represents one portfolio award
type PortfolioAwardResponse struct {
	PortfolioAwardID int64  `json:"portfolioAwardId"`
	Supervision      string `json:"supervision"`
	Grade            string `json:"grade"`
	Description      string `json:"description"`
}

// NewPortfolioAwardResponse builds PortfolioAwardResponse
func NewPortfolioAwardResponse(a *domain.PortfolioAward) *PortfolioAwardResponse {
	return &PortfolioAwardResponse{
		PortfolioAwardID: a.ID,
		Supervision:      a.Supervision,
		Grade:            a.Grade,
		Description:      a.Description,
	}
}

// NewPortfolioAwardResponses builds the award list of a portfolio
func NewPortfolioAwardResponses(awards []*domain.PortfolioAward) []*PortfolioAwardResponse {
	resp := make([]*PortfolioAwardResponse, 0, len(awards))
	for _, a := range awards {
		resp = append(resp, NewPortfolioAwardResponse(a))
	}
	return resp
}
