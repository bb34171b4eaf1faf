package domain

import (
	"fmt"
	"time"
)

// Portfolio defaults applied by the basic-portfolio builder
const (
	DefaultPortfolioTitle       = "제목을 입력해주세요."
	DefaultPortfolioDescription = "내용을 입력해주세요."
	DefaultPortfolioImg         = "DEFAULT_PORTFOLIO_IMG"
)

// Portfolio belongs to one writer and one job
type Portfolio struct {
	ID            int64  `json:"id" db:"portfolio_id"`
	WriterID      int64  `json:"writer_id" db:"member_id"`
	JobID         int64  `json:"job_id" db:"job_id"`
	Title         string `json:"title" db:"title"`
	Description   string `json:"description" db:"description"`
	BackgroundImg string `json:"background_img" db:"background_img"`
	Timestamps
}

// NewBasicPortfolio creates a portfolio filled with placeholder text
func NewBasicPortfolio(writerID, jobID int64) (*Portfolio, error) {
	if writerID <= 0 {
		return nil, fmt.Errorf("%w: portfolio writer is required", ErrInvalidArgument)
	}
	if jobID <= 0 {
		return nil, fmt.Errorf("%w: portfolio job is required", ErrInvalidArgument)
	}
	return &Portfolio{
		WriterID:      writerID,
		JobID:         jobID,
		Title:         DefaultPortfolioTitle,
		Description:   DefaultPortfolioDescription,
		BackgroundImg: DefaultPortfolioImg,
	}, nil
}

// Update changes the editable fields. An empty background keeps the current one.
func (p *Portfolio) Update(title, description, backgroundImg string) {
	p.Title = title
	p.Description = description
	if backgroundImg != "" {
		p.BackgroundImg = backgroundImg
	}
}

// WrittenBy reports whether memberID is the writer
func (p *Portfolio) WrittenBy(memberID int64) bool {
	return p.WriterID == memberID
}

// PortfolioCard is the list read model: portfolio plus writer summary and like count
type PortfolioCard struct {
	PortfolioID   int64     `json:"portfolio_id" db:"portfolio_id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	BackgroundImg string    `json:"background_img" db:"background_img"`
	NickName      string    `json:"nick_name" db:"nick_name"`
	ProfileImg    string    `json:"profile_img" db:"profile_img"`
	LikeCount     int64     `json:"like_count" db:"like_count"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// PortfolioFilter narrows a portfolio listing
type PortfolioFilter struct {
	JobID   int64
	Keyword string
	Limit   int
	Offset  int
}
