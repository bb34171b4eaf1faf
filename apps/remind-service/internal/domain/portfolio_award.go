package domain

import "fmt"

// Placeholders for a freshly enrolled portfolio award
const (
	DefaultAwardSupervision = "주최를 입력해주세요."
	DefaultAwardGrade       = "순위를 입력해주세요. (e.g.3등 or 동상)"
	DefaultAwardDescription = "설명을 입력해주세요."
)

// PortfolioAward is an award listed on a portfolio
type PortfolioAward struct {
	ID          int64  `json:"id" db:"portfolio_award_id"`
	PortfolioID int64  `json:"portfolio_id" db:"portfolio_id"`
	Supervision string `json:"supervision" db:"supervision"`
	Grade       string `json:"grade" db:"grade"`
	Description string `json:"description" db:"description"`
	Timestamps
}

// NewBasicPortfolioAward creates an award with placeholder text
func NewBasicPortfolioAward(portfolioID int64) (*PortfolioAward, error) {
	if portfolioID <= 0 {
		return nil, fmt.Errorf("%w: award portfolio is required", ErrInvalidArgument)
	}
	return &PortfolioAward{
		PortfolioID: portfolioID,
		Supervision: DefaultAwardSupervision,
		Grade:       DefaultAwardGrade,
		Description: DefaultAwardDescription,
	}, nil
}

// Update overwrites the award text
func (a *PortfolioAward) Update(supervision, grade, description string) {
	a.Supervision = supervision
	a.Grade = grade
	a.Description = description
}
