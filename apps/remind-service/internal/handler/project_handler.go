package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/dto"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/middleware"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/service"
	"github.com/Ms-You/poje-remind/pkg/response"
)

// ProjectHandler handles portfolio projects
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// EnrollBasicProject POST /member/portfolio/:portfolio_id/project
func (h *ProjectHandler) EnrollBasicProject(c *gin.Context) {
	portfolioID, ok := pathID(c, portfolioIDParam)
	if !ok {
		return
	}

	if err := h.projectService.EnrollBasicProject(c.Request.Context(), middleware.LoginID(c), portfolioID); err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, "기본 프로젝트가 추가되었습니다.", nil)
}

// GetProjectList GET /portfolio/:portfolio_id/project
func (h *ProjectHandler) GetProjectList(c *gin.Context) {
	portfolioID, ok := pathID(c, portfolioIDParam)
	if !ok {
		return
	}

	resp, err := h.projectService.GetProjectList(c.Request.Context(), portfolioID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "프로젝트 목록 조회", resp)
}

// UpdateProject PUT /member/portfolio/:portfolio_id/project/:project_id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	portfolioID, ok := pathID(c, portfolioIDParam)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}
	var req dto.ProjectUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.projectService.UpdateProject(c.Request.Context(), middleware.LoginID(c), portfolioID, projectID, &req); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "프로젝트가 수정되었습니다.", nil)
}

// DeleteProject DELETE /member/portfolio/:portfolio_id/project/:project_id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	portfolioID, ok := pathID(c, portfolioIDParam)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), middleware.LoginID(c), portfolioID, projectID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "프로젝트가 삭제되었습니다.", nil)
}
