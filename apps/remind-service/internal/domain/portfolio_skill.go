package domain

import (
	"fmt"
	"strings"
)

// PortfolioSkill is keyed by Name within its portfolio
type PortfolioSkill struct {
	ID          int64  `json:"id" db:"portfolio_skill_id"`
	PortfolioID int64  `json:"portfolio_id" db:"portfolio_id"`
	Type        string `json:"type" db:"type"`
	Name        string `json:"name" db:"name"`
	Path        string `json:"path" db:"path"`
	Timestamps
}

// NewPortfolioSkill validates and builds a PortfolioSkill
func NewPortfolioSkill(portfolioID int64, skillType, name, path string) (*PortfolioSkill, error) {
	if portfolioID <= 0 {
		return nil, fmt.Errorf("%w: skill portfolio is required", ErrInvalidArgument)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: skill name is required", ErrInvalidArgument)
	}
	return &PortfolioSkill{
		PortfolioID: portfolioID,
		Type:        skillType,
		Name:        name,
		Path:        path,
	}, nil
}
