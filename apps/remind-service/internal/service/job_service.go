package service

import (
	"context"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/dto"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/repository"
)

// JobService defines the interface for the job catalogue
type JobService interface {
	GetJobList(ctx context.Context) (*dto.JobListResponse, error)
	EnrollJob(ctx context.Context, name string) error
	UpdateJob(ctx context.Context, id int64, name string) error
	DeleteJob(ctx context.Context, id int64) error
}

type jobService struct {
	jobRepo repository.JobRepository
}

// NewJobService creates a new JobService
func NewJobService(jobRepo repository.JobRepository) JobService {
	return &jobService{jobRepo: jobRepo}
}

func (s *jobService) GetJobList(ctx context.Context) (*dto.JobListResponse, error) {
	jobs, err := s.jobRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewJobListResponse(jobs), nil
}

// EnrollJob adds a job; names are unique
func (s *jobService) EnrollJob(ctx context.Context, name string) error {
	job, err := domain.NewJob(name)
	if err != nil {
		return err
	}

	existing, err := s.jobRepo.GetByName(ctx, job.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrJobAlreadyExists
	}
	return s.jobRepo.Create(ctx, job)
}

func (s *jobService) UpdateJob(ctx context.Context, id int64, name string) error {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if job == nil {
		return domain.ErrJobNotFound
	}
	if err := job.Rename(name); err != nil {
		return err
	}
	return s.jobRepo.Update(ctx, job)
}

func (s *jobService) DeleteJob(ctx context.Context, id int64) error {
	return s.jobRepo.Delete(ctx, id)
}
