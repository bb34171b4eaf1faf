package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/dto"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/service"
	"github.com/Ms-You/poje-remind/pkg/response"
)

// JobHandler handles the job catalogue
type JobHandler struct {
	jobService service.JobService
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(jobService service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// GetJobList GET /job
func (h *JobHandler) GetJobList(c *gin.Context) {
	resp, err := h.jobService.GetJobList(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "직무 목록 반환", resp)
}

// EnrollJob POST /admin/job
func (h *JobHandler) EnrollJob(c *gin.Context) {
	var req dto.JobCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.jobService.EnrollJob(c.Request.Context(), req.Name); err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, "직무가 생성되었습니다.", nil)
}

// UpdateJob PUT /admin/job
func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req dto.JobUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.jobService.UpdateJob(c.Request.Context(), req.JobID, req.Name); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "직무가 수정되었습니다.", nil)
}

// DeleteJob DELETE /admin/job/:job_id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, ok := pathID(c, "job_id")
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "직무가 삭제되었습니다.", nil)
}
