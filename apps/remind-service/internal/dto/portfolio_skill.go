package dto

import "github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"

// PortfolioSkillItem is one desired skill
type PortfolioSkillItem struct {
	Type string `json:"type"`
	Name string `json:"name" binding:"required"`
	Path string `json:"path"`
}

// PortfolioSkillUpdateRequest is the full desired skill set of a portfolio
type PortfolioSkillUpdateRequest struct {
	Skills []PortfolioSkillItem `json:"skills" binding:"dive"`
}

// PortfolioSkillResponse represents one stored skill
type PortfolioSkillResponse struct {
	SkillID int64  `json:"skillId"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Path    string `json:"path"`
}

// NewPortfolioSkillResponses builds the skill list of a portfolio
func NewPortfolioSkillResponses(skills []*domain.PortfolioSkill) []PortfolioSkillResponse {
	resp := make([]PortfolioSkillResponse, 0, len(skills))
	for _, s := range skills {
		resp = append(resp, PortfolioSkillResponse{SkillID: s.ID, Type: s.Type, Name: s.Name, Path: s.Path})
	}
	return resp
}
