package dto

import "github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"

// JobCreateRequest represents job enrollment request
type JobCreateRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// JobUpdateRequest represents job rename request
type JobUpdateRequest struct {
	JobID int64  `json:"jobId" binding:"required,min=1"`
	Name  string `json:"name" binding:"required,max=50"`
}

// JobResponse represents one job
type JobResponse struct {
	JobID int64  `json:"jobId"`
	Name  string `json:"name"`
}

// JobListResponse represents the job catalogue
type JobListResponse struct {
	JobRespList []JobResponse `json:"jobRespList"`
}

// NewJobListResponse builds JobListResponse
func NewJobListResponse(jobs []*domain.Job) *JobListResponse {
	resp := &JobListResponse{JobRespList: make([]JobResponse, 0, len(jobs))}
	for _, j := range jobs {
		resp.JobRespList = append(resp.JobRespList, JobResponse{JobID: j.ID, Name: j.Name})
	}
	return resp
}
