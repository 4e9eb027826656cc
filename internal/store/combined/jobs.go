package combined

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/23BCE0066/Hirely/internal/common/logger"
	"github.com/23BCE0066/Hirely/internal/common/metrics"
	"github.com/23BCE0066/Hirely/internal/models"
	"github.com/23BCE0066/Hirely/internal/store/cache"
	"github.com/23BCE0066/Hirely/internal/store/remote"
)

// Jobs applies the combined read/write policy to locally posted jobs.
type Jobs struct {
	remote *remote.Client
	cache  *cache.Store
	log    logger.Logger
}

func NewJobs(rc *remote.Client, cs *cache.Store, log logger.Logger) *Jobs {
	return &Jobs{
		remote: rc,
		cache:  cs,
		log:    log.WithFields(map[string]interface{}{"entity": entityJobs}),
	}
}

// List returns the merged local-origin job list. Read failures are fully
// absorbed by the fallback policy and never surface as errors.
func (s *Jobs) List(ctx context.Context) []models.Job {
	var local []models.Job
	if err := s.cache.Read(ctx, entityJobs, &local); err != nil {
		s.log.Warn("cache read failed", map[string]interface{}{"error": err.Error()})
	}

	var remoteList []models.Job
	if err := s.remote.List(ctx, entityJobs, &remoteList); err != nil {
		metrics.RemoteFallbacks.WithLabelValues(entityJobs).Inc()
		s.log.Warn("remote list failed, serving cached jobs", map[string]interface{}{
			"error":  err.Error(),
			"cached": len(local),
		})
		return local
	}

	merged := mergeByID(remoteList, local, func(j models.Job) string { return j.ID })

	// Refresh with the merged list: remote wins for shared ids, so a
	// cached update whose remote write failed is reverted here, but
	// purely-local creates survive.
	if err := s.cache.WriteAll(ctx, entityJobs, merged); err != nil {
		s.log.Warn("cache refresh failed", map[string]interface{}{"error": err.Error()})
	}

	return merged
}

// Create persists a new locally posted job, cache first.
func (s *Jobs) Create(ctx context.Context, job models.Job) (models.Job, SyncResult) {
	if job.ID == "" {
		job.ID = "job_" + uuid.NewString()
	}
	if job.CreatedAt == 0 {
		job.CreatedAt = time.Now().UnixMilli()
	}
	if job.PostedAt == "" {
		job.PostedAt = time.UnixMilli(job.CreatedAt).UTC().Format("2006-01-02")
	}
	job.IsExternal = false

	var res SyncResult

	var local []models.Job
	if err := s.cache.Read(ctx, entityJobs, &local); err != nil {
		s.log.Warn("cache read failed before create", map[string]interface{}{"error": err.Error()})
	}
	local = append([]models.Job{job}, local...)
	if err := s.cache.WriteAll(ctx, entityJobs, local); err != nil {
		s.log.Error("cache write failed on create", map[string]interface{}{"error": err.Error()})
	} else {
		res.CacheWritten = true
	}

	if err := s.remote.Create(ctx, entityJobs, job, nil); err != nil {
		metrics.RemoteSyncFailures.WithLabelValues(entityJobs, "create").Inc()
		res.RemoteErr = err
	} else {
		res.RemoteSynced = true
	}

	return job, res
}

// Delete removes a locally posted job, cache first.
func (s *Jobs) Delete(ctx context.Context, id string) SyncResult {
	var res SyncResult

	var local []models.Job
	if err := s.cache.Read(ctx, entityJobs, &local); err != nil {
		s.log.Warn("cache read failed before delete", map[string]interface{}{"error": err.Error()})
	}
	kept := local[:0]
	for _, j := range local {
		if j.ID != id {
			kept = append(kept, j)
		}
	}
	if err := s.cache.WriteAll(ctx, entityJobs, kept); err != nil {
		s.log.Error("cache write failed on delete", map[string]interface{}{"error": err.Error()})
	} else {
		res.CacheWritten = true
	}

	if err := s.remote.Delete(ctx, entityJobs, id); err != nil {
		metrics.RemoteSyncFailures.WithLabelValues(entityJobs, "delete").Inc()
		res.RemoteErr = err
	} else {
		res.RemoteSynced = true
	}

	return res
}
