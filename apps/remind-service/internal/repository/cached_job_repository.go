package repository

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/pkg/logger"
)

const (
	jobListKey      = "job:list"
	jobListCacheTTL = 10 * time.Minute
)

// Cache is the key/value subset of pkg/redis.Client the cached repositories use
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// CachedJobRepository wraps JobRepository and caches the full job list
type CachedJobRepository struct {
	repo  JobRepository
	cache Cache
}

// NewCachedJobRepository creates a new CachedJobRepository
func NewCachedJobRepository(repo JobRepository, cache Cache) *CachedJobRepository {
	return &CachedJobRepository{repo: repo, cache: cache}
}

// Create creates a job and invalidates the list cache
func (r *CachedJobRepository) Create(ctx context.Context, job *domain.Job) error {
	if err := r.repo.Create(ctx, job); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

// GetByID bypasses the cache
func (r *CachedJobRepository) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	return r.repo.GetByID(ctx, id)
}

// GetByName bypasses the cache
func (r *CachedJobRepository) GetByName(ctx context.Context, name string) (*domain.Job, error) {
	return r.repo.GetByName(ctx, name)
}

// List serves the job list from cache when possible
func (r *CachedJobRepository) List(ctx context.Context) ([]*domain.Job, error) {
	cached, ok, err := r.cache.Get(ctx, jobListKey)
	if err == nil && ok {
		var jobs []*domain.Job
		if err := json.Unmarshal([]byte(cached), &jobs); err == nil {
			return jobs, nil
		}
	}

	jobs, err := r.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(jobs); err == nil {
		if err := r.cache.Set(ctx, jobListKey, string(data), jobListCacheTTL); err != nil {
			logger.Get().Warn("failed to cache job list", zap.Error(err))
		}
	}
	return jobs, nil
}

// Update renames a job and invalidates the list cache
func (r *CachedJobRepository) Update(ctx context.Context, job *domain.Job) error {
	if err := r.repo.Update(ctx, job); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

// Delete deletes a job and invalidates the list cache
func (r *CachedJobRepository) Delete(ctx context.Context, id int64) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedJobRepository) invalidate(ctx context.Context) {
	if err := r.cache.Del(ctx, jobListKey); err != nil {
		logger.Get().Warn("failed to invalidate job list cache", zap.Error(err))
	}
}
