package domain

import (
	"fmt"
	"strings"
)

// Placeholders for a freshly enrolled project
const (
	DefaultProjectName        = "제목을 입력해주세요."
	DefaultProjectDuration    = "기간을 입력해주세요."
	DefaultProjectDescription = "설명을 입력해주세요."
	DefaultProjectBelong      = "소속을 입력해주세요. (e.g. 토이 프로젝트, 팀 프로젝트)"
	DefaultProjectLink        = "관련 링크를 입력해주세요."

	DefaultProjectAwardSupervision = "주관을 입력해주세요."
	DefaultProjectAwardGrade       = "순위를 입력해주세요. (e.g.3등 or 동상)"
	DefaultProjectAwardDescription = "설명을 입력해주세요."
)

// Project is a project listed on a portfolio
type Project struct {
	ID          int64  `json:"id" db:"project_id"`
	PortfolioID int64  `json:"portfolio_id" db:"portfolio_id"`
	Name        string `json:"name" db:"name"`
	Duration    string `json:"duration" db:"duration"`
	Description string `json:"description" db:"description"`
	Belong      string `json:"belong" db:"belong"`
	Link        string `json:"link" db:"link"`
	Timestamps
}

// NewBasicProject creates a project with placeholder text
func NewBasicProject(portfolioID int64) (*Project, error) {
	if portfolioID <= 0 {
		return nil, fmt.Errorf("%w: project portfolio is required", ErrInvalidArgument)
	}
	return &Project{
		PortfolioID: portfolioID,
		Name:        DefaultProjectName,
		Duration:    DefaultProjectDuration,
		Description: DefaultProjectDescription,
		Belong:      DefaultProjectBelong,
		Link:        DefaultProjectLink,
	}, nil
}

// ProjectUpdate holds the scalar project fields
type ProjectUpdate struct {
	Name        string
	Duration    string
	Description string
	Belong      string
	Link        string
}

// Update overwrites the scalar fields
func (p *Project) Update(u ProjectUpdate) {
	p.Name = u.Name
	p.Duration = u.Duration
	p.Description = u.Description
	p.Belong = u.Belong
	p.Link = u.Link
}

// BelongsTo reports whether the project is listed on portfolioID
func (p *Project) BelongsTo(portfolioID int64) bool {
	return p.PortfolioID == portfolioID
}

// ProjectSkill is keyed by Name within its project
type ProjectSkill struct {
	ID        int64  `json:"id" db:"project_skill_id"`
	ProjectID int64  `json:"project_id" db:"project_id"`
	Type      string `json:"type" db:"type"`
	Name      string `json:"name" db:"name"`
	Timestamps
}

// NewProjectSkill validates and builds a ProjectSkill
func NewProjectSkill(projectID int64, name string) (*ProjectSkill, error) {
	if projectID <= 0 {
		return nil, fmt.Errorf("%w: skill project is required", ErrInvalidArgument)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: skill name is required", ErrInvalidArgument)
	}
	return &ProjectSkill{ProjectID: projectID, Name: name}, nil
}

// ProjectImg is keyed by URL within its project
type ProjectImg struct {
	ID        int64  `json:"id" db:"project_img_id"`
	ProjectID int64  `json:"project_id" db:"project_id"`
	URL       string `json:"url" db:"url"`
	Timestamps
}

// NewProjectImg validates and builds a ProjectImg
func NewProjectImg(projectID int64, url string) (*ProjectImg, error) {
	if projectID <= 0 {
		return nil, fmt.Errorf("%w: image project is required", ErrInvalidArgument)
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("%w: image url is required", ErrInvalidArgument)
	}
	return &ProjectImg{ProjectID: projectID, URL: url}, nil
}

// ProjectAward is the one award a project may carry
type ProjectAward struct {
	ID          int64  `json:"id" db:"project_award_id"`
	ProjectID   int64  `json:"project_id" db:"project_id"`
	Supervision string `json:"supervision" db:"supervision"`
	Grade       string `json:"grade" db:"grade"`
	Description string `json:"description" db:"description"`
	Timestamps
}

// NewProjectAward validates and builds a ProjectAward
func NewProjectAward(projectID int64, supervision, grade, description string) (*ProjectAward, error) {
	if projectID <= 0 {
		return nil, fmt.Errorf("%w: award project is required", ErrInvalidArgument)
	}
	return &ProjectAward{
		ProjectID:   projectID,
		Supervision: supervision,
		Grade:       grade,
		Description: description,
	}, nil
}

// PlaceholderProjectAward is shown for projects without an award row
func PlaceholderProjectAward(projectID int64) ProjectAward {
	return ProjectAward{
		ProjectID:   projectID,
		Supervision: DefaultProjectAwardSupervision,
		Grade:       DefaultProjectAwardGrade,
		Description: DefaultProjectAwardDescription,
	}
}
