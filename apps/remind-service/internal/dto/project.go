package dto

import "github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"

// ProjectSkillItem is one desired project skill
type ProjectSkillItem struct {
	Name string `json:"name" binding:"required"`
}

// ProjectUpdateRequest is the full desired state of a project
type ProjectUpdateRequest struct {
	Name        string             `json:"name" binding:"required,max=200"`
	Duration    string             `json:"duration"`
	Description string             `json:"description"`
	Belong      string             `json:"belong"`
	Link        string             `json:"link"`
	Award       *AwardRequest      `json:"award"`
	Skills      []ProjectSkillItem `json:"skills" binding:"dive"`
	Images      []string           `json:"images"`
}

// ToProjectUpdate converts the scalar fields
func (r *ProjectUpdateRequest) ToProjectUpdate() domain.ProjectUpdate {
	return domain.ProjectUpdate{
		Name:        r.Name,
		Duration:    r.Duration,
		Description: r.Description,
		Belong:      r.Belong,
		Link:        r.Link,
	}
}

// ProjectAwardResponse represents the award of a project
type ProjectAwardResponse struct {
	Supervision string `json:"supervision"`
	Grade       string `json:"grade"`
	Description string `json:"description"`
}

// ProjectSkillResponse represents one project skill
type ProjectSkillResponse struct {
	Name string `json:"name"`
}

// ProjectResponse is one project with its award, skills and images
type ProjectResponse struct {
	ProjectID   int64                  `json:"projectId"`
	Name        string                 `json:"name"`
	Duration    string                 `json:"duration"`
	Description string                 `json:"description"`
	Belong      string                 `json:"belong"`
	Link        string                 `json:"link"`
	Award       ProjectAwardResponse   `json:"award"`
	Skills      []ProjectSkillResponse `json:"skills"`
	Images      []string               `json:"images"`
}

// NewProjectResponse assembles a project view; a nil award shows the placeholder
func NewProjectResponse(p *domain.Project, award *domain.ProjectAward, skills []*domain.ProjectSkill, imgs []*domain.ProjectImg) ProjectResponse {
	if award == nil {
		placeholder := domain.PlaceholderProjectAward(p.ID)
		award = &placeholder
	}

	resp := ProjectResponse{
		ProjectID:   p.ID,
		Name:        p.Name,
		Duration:    p.Duration,
		Description: p.Description,
		Belong:      p.Belong,
		Link:        p.Link,
		Award: ProjectAwardResponse{
			Supervision: award.Supervision,
			Grade:       award.Grade,
			Description: award.Description,
		},
		Skills: make([]ProjectSkillResponse, 0, len(skills)),
		Images: make([]string, 0, len(imgs)),
	}
	for _, s := range skills {
		resp.Skills = append(resp.Skills, ProjectSkillResponse{Name: s.Name})
	}
	for _, img := range imgs {
		resp.Images = append(resp.Images, img.URL)
	}
	return resp
}
