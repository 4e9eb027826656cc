package combined

import (
	"context"

	"github.com/23BCE0066/Hirely/internal/common/logger"
	"github.com/23BCE0066/Hirely/internal/common/metrics"
	"github.com/23BCE0066/Hirely/internal/models"
	"github.com/23BCE0066/Hirely/internal/store/cache"
	"github.com/23BCE0066/Hirely/internal/store/remote"
)

// Profiles applies the combined policy to identity records. Profiles are
// created lazily on first sign-in and upserted thereafter.
type Profiles struct {
	remote *remote.Client
	cache  *cache.Store
	log    logger.Logger
}

func NewProfiles(rc *remote.Client, cs *cache.Store, log logger.Logger) *Profiles {
	return &Profiles{
		remote: rc,
		cache:  cs,
		log:    log.WithFields(map[string]interface{}{"entity": entityProfiles}),
	}
}

// Get looks up a profile by auth subject id, remote first with cache
// fallback. The second return reports whether the profile exists.
func (s *Profiles) Get(ctx context.Context, id string) (models.Profile, bool) {
	var p models.Profile
	if err := s.remote.GetByID(ctx, entityProfiles, id, &p); err == nil && p.ID != "" {
		return p, true
	}

	metrics.RemoteFallbacks.WithLabelValues(entityProfiles).Inc()
	var local []models.Profile
	if err := s.cache.Read(ctx, entityProfiles, &local); err != nil {
		s.log.Warn("cache read failed", map[string]interface{}{"error": err.Error()})
	}
	for _, cached := range local {
		if cached.ID == id {
			return cached, true
		}
	}
	return models.Profile{}, false
}

// Upsert creates or replaces a profile under its subject id, cache first.
func (s *Profiles) Upsert(ctx context.Context, p models.Profile) (models.Profile, SyncResult) {
	var res SyncResult

	var local []models.Profile
	if err := s.cache.Read(ctx, entityProfiles, &local); err != nil {
		s.log.Warn("cache read failed before upsert", map[string]interface{}{"error": err.Error()})
	}
	replaced := false
	for i := range local {
		if local[i].ID == p.ID {
			local[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		local = append(local, p)
	}
	if err := s.cache.WriteAll(ctx, entityProfiles, local); err != nil {
		s.log.Error("cache write failed on upsert", map[string]interface{}{"error": err.Error()})
	} else {
		res.CacheWritten = true
	}

	if err := s.remote.Upsert(ctx, entityProfiles, p.ID, p, nil); err != nil {
		metrics.RemoteSyncFailures.WithLabelValues(entityProfiles, "upsert").Inc()
		res.RemoteErr = err
	} else {
		res.RemoteSynced = true
	}

	return p, res
}
