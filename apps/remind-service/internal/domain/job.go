package domain

import (
	"fmt"
	"strings"
)

// Job is a portfolio category (Developer, Designer, ...)
type Job struct {
	ID   int64  `json:"id" db:"job_id"`
	Name string `json:"name" db:"name"`
	Timestamps
}

// NewJob validates and builds a Job
func NewJob(name string) (*Job, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: job name is required", ErrInvalidArgument)
	}
	return &Job{Name: name}, nil
}

// Rename changes the job name
func (j *Job) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: job name is required", ErrInvalidArgument)
	}
	j.Name = name
	return nil
}
