package service

import (
	"context"
	"strings"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/dto"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/event"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/metrics"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/repository"
)

// ProjectService defines the interface for portfolio projects
type ProjectService interface {
	EnrollBasicProject(ctx context.Context, loginID string, portfolioID int64) error
	GetProjectList(ctx context.Context, portfolioID int64) ([]dto.ProjectResponse, error)
	// UpdateProject writes the fields, upserts the award and reconciles skills and images in one transaction
	UpdateProject(ctx context.Context, loginID string, portfolioID, projectID int64, req *dto.ProjectUpdateRequest) error
	DeleteProject(ctx context.Context, loginID string, portfolioID, projectID int64) error
}

// ProjectRepositories groups the project aggregate repositories
type ProjectRepositories struct {
	Projects repository.ProjectRepository
	Skills   repository.ProjectSkillRepository
	Images   repository.ProjectImgRepository
	Awards   repository.ProjectAwardRepository
}

type projectService struct {
	repos     ProjectRepositories
	guard     *OwnershipGuard
	tx        Transactor
	publisher event.Publisher
}

// NewProjectService creates a new ProjectService
func NewProjectService(repos ProjectRepositories, guard *OwnershipGuard, tx Transactor, publisher event.Publisher) ProjectService {
	return &projectService{repos: repos, guard: guard, tx: tx, publisher: publisher}
}

// EnrollBasicProject adds a placeholder project to a portfolio the member wrote
func (s *projectService) EnrollBasicProject(ctx context.Context, loginID string, portfolioID int64) error {
	member, err := s.guard.CurrentMember(ctx, loginID)
	if err != nil {
		return err
	}
	portfolio, err := s.guard.AssertPortfolioWriter(ctx, member, portfolioID)
	if err != nil {
		return err
	}

	project, err := domain.NewBasicProject(portfolio.ID)
	if err != nil {
		return err
	}
	return s.repos.Projects.Create(ctx, project)
}

// GetProjectList lists the projects of a portfolio with their award, skills and images
func (s *projectService) GetProjectList(ctx context.Context, portfolioID int64) ([]dto.ProjectResponse, error) {
	if _, err := s.guard.portfolio(ctx, portfolioID); err != nil {
		return nil, err
	}

	projects, err := s.repos.Projects.ListByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return []dto.ProjectResponse{}, nil
	}

	ids := make([]int64, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}

	awards, err := s.repos.Awards.ListByProjects(ctx, ids)
	if err != nil {
		return nil, err
	}
	skills, err := s.repos.Skills.ListByProjects(ctx, ids)
	if err != nil {
		return nil, err
	}
	imgs, err := s.repos.Images.ListByProjects(ctx, ids)
	if err != nil {
		return nil, err
	}

	awardOf := make(map[int64]*domain.ProjectAward, len(awards))
	for _, a := range awards {
		awardOf[a.ProjectID] = a
	}
	skillsOf := make(map[int64][]*domain.ProjectSkill)
	for _, sk := range skills {
		skillsOf[sk.ProjectID] = append(skillsOf[sk.ProjectID], sk)
	}
	imgsOf := make(map[int64][]*domain.ProjectImg)
	for _, img := range imgs {
		imgsOf[img.ProjectID] = append(imgsOf[img.ProjectID], img)
	}

	resp := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, dto.NewProjectResponse(p, awardOf[p.ID], skillsOf[p.ID], imgsOf[p.ID]))
	}
	return resp, nil
}

func (s *projectService) UpdateProject(ctx context.Context, loginID string, portfolioID, projectID int64, req *dto.ProjectUpdateRequest) (err error) {
	ctx, span := startSpan(ctx, "UpdateProject")
	defer func() { endSpan(span, err) }()

	var (
		skillPlan ReconcilePlan[*domain.ProjectSkill, dto.ProjectSkillItem]
		imgPlan   ReconcilePlan[*domain.ProjectImg, string]
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		member, err := s.guard.CurrentMember(ctx, loginID)
		if err != nil {
			return err
		}
		project, err := s.guard.AssertProjectOwner(ctx, member, portfolioID, projectID)
		if err != nil {
			return err
		}

		project.Update(req.ToProjectUpdate())
		if err := s.repos.Projects.Update(ctx, project); err != nil {
			return err
		}

		if req.Award != nil {
			award, err := domain.NewProjectAward(project.ID, req.Award.Supervision, req.Award.Grade, req.Award.Description)
			if err != nil {
				return err
			}
			if err := s.repos.Awards.Upsert(ctx, award); err != nil {
				return err
			}
		}

		if skillPlan, err = s.reconcileSkills(ctx, project.ID, req.Skills); err != nil {
			return err
		}
		imgPlan, err = s.reconcileImages(ctx, project.ID, req.Images)
		return err
	})
	if err != nil {
		return err
	}

	metrics.ObserveReconcile(metrics.CollectionProjectSkill, len(skillPlan.ToCreate), len(skillPlan.ToDelete))
	metrics.ObserveReconcile(metrics.CollectionProjectImg, len(imgPlan.ToCreate), len(imgPlan.ToDelete))
	publish(ctx, s.publisher, domain.NewEvent(domain.EventProjectUpdated, loginID, map[string]any{
		"portfolio_id": portfolioID,
		"project_id":   projectID,
	}))
	return nil
}

func (s *projectService) reconcileSkills(ctx context.Context, projectID int64, desired []dto.ProjectSkillItem) (ReconcilePlan[*domain.ProjectSkill, dto.ProjectSkillItem], error) {
	current, err := s.repos.Skills.ListByProjects(ctx, []int64{projectID})
	if err != nil {
		return ReconcilePlan[*domain.ProjectSkill, dto.ProjectSkillItem]{}, err
	}

	plan := Reconcile(current, desired,
		func(c *domain.ProjectSkill) string { return c.Name },
		func(d dto.ProjectSkillItem) string { return strings.TrimSpace(d.Name) },
	)
	if plan.Empty() {
		return plan, nil
	}

	ids := make([]int64, 0, len(plan.ToDelete))
	for _, c := range plan.ToDelete {
		ids = append(ids, c.ID)
	}
	if err := s.repos.Skills.DeleteByIDs(ctx, ids); err != nil {
		return plan, err
	}

	created := make([]*domain.ProjectSkill, 0, len(plan.ToCreate))
	for _, d := range plan.ToCreate {
		skill, err := domain.NewProjectSkill(projectID, d.Name)
		if err != nil {
			return plan, err
		}
		created = append(created, skill)
	}
	return plan, s.repos.Skills.CreateBatch(ctx, created)
}

func (s *projectService) reconcileImages(ctx context.Context, projectID int64, desired []string) (ReconcilePlan[*domain.ProjectImg, string], error) {
	current, err := s.repos.Images.ListByProjects(ctx, []int64{projectID})
	if err != nil {
		return ReconcilePlan[*domain.ProjectImg, string]{}, err
	}

	plan := Reconcile(current, desired,
		func(c *domain.ProjectImg) string { return c.URL },
		strings.TrimSpace,
	)
	if plan.Empty() {
		return plan, nil
	}

	ids := make([]int64, 0, len(plan.ToDelete))
	for _, c := range plan.ToDelete {
		ids = append(ids, c.ID)
	}
	if err := s.repos.Images.DeleteByIDs(ctx, ids); err != nil {
		return plan, err
	}

	created := make([]*domain.ProjectImg, 0, len(plan.ToCreate))
	for _, url := range plan.ToCreate {
		img, err := domain.NewProjectImg(projectID, url)
		if err != nil {
			return plan, err
		}
		created = append(created, img)
	}
	return plan, s.repos.Images.CreateBatch(ctx, created)
}

func (s *projectService) DeleteProject(ctx context.Context, loginID string, portfolioID, projectID int64) error {
	member, err := s.guard.CurrentMember(ctx, loginID)
	if err != nil {
		return err
	}
	project, err := s.guard.AssertProjectOwner(ctx, member, portfolioID, projectID)
	if err != nil {
		return err
	}
	return s.repos.Projects.Delete(ctx, project.ID)
}
