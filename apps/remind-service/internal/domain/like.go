package domain

import (
	"fmt"
	"time"
)

// Like joins a member and a portfolio; at most one per pair
type Like struct {
	ID          int64     `json:"id" db:"likes_id"`
	MemberID    int64     `json:"member_id" db:"member_id"`
	PortfolioID int64     `json:"portfolio_id" db:"portfolio_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// NewLike validates and builds a Like
func NewLike(memberID, portfolioID int64) (*Like, error) {
	if memberID <= 0 || portfolioID <= 0 {
		return nil, fmt.Errorf("%w: like needs a member and a portfolio", ErrInvalidArgument)
	}
	return &Like{MemberID: memberID, PortfolioID: portfolioID}, nil
}
