package combined

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/23BCE0066/Hirely/internal/common/logger"
	"github.com/23BCE0066/Hirely/internal/common/metrics"
	"github.com/23BCE0066/Hirely/internal/models"
	"github.com/23BCE0066/Hirely/internal/store/cache"
	"github.com/23BCE0066/Hirely/internal/store/remote"
)

// ErrApplicationNotFound is returned by mutations targeting an id that
// exists in neither the cache nor the remote store.
var ErrApplicationNotFound = fmt.Errorf("application not found")

// Applications applies the combined read/write policy to candidate
// applications and their embedded chat messages.
type Applications struct {
	remote *remote.Client
	cache  *cache.Store
	log    logger.Logger
}

func NewApplications(rc *remote.Client, cs *cache.Store, log logger.Logger) *Applications {
	return &Applications{
		remote: rc,
		cache:  cs,
		log:    log.WithFields(map[string]interface{}{"entity": entityApplications}),
	}
}

// List returns the merged application list, remote-wins on id collision.
func (s *Applications) List(ctx context.Context) []models.Application {
	var local []models.Application
	if err := s.cache.Read(ctx, entityApplications, &local); err != nil {
		s.log.Warn("cache read failed", map[string]interface{}{"error": err.Error()})
	}

	var remoteList []models.Application
	if err := s.remote.List(ctx, entityApplications, &remoteList); err != nil {
		metrics.RemoteFallbacks.WithLabelValues(entityApplications).Inc()
		s.log.Warn("remote list failed, serving cached applications", map[string]interface{}{
			"error":  err.Error(),
			"cached": len(local),
		})
		return local
	}

	merged := mergeByID(remoteList, local, func(a models.Application) string { return a.ID })

	if err := s.cache.WriteAll(ctx, entityApplications, merged); err != nil {
		s.log.Warn("cache refresh failed", map[string]interface{}{"error": err.Error()})
	}

	return merged
}

// Create records a new candidate application, cache first.
func (s *Applications) Create(ctx context.Context, app models.Application) (models.Application, SyncResult) {
	if app.ID == "" {
		app.ID = "app_" + uuid.NewString()
	}
	if app.AppliedAt == 0 {
		app.AppliedAt = time.Now().UnixMilli()
	}
	if app.Status == "" {
		app.Status = models.StatusPending
	}
	if app.Messages == nil {
		app.Messages = []models.Message{}
	}

	var res SyncResult

	var local []models.Application
	if err := s.cache.Read(ctx, entityApplications, &local); err != nil {
		s.log.Warn("cache read failed before create", map[string]interface{}{"error": err.Error()})
	}
	local = append([]models.Application{app}, local...)
	if err := s.cache.WriteAll(ctx, entityApplications, local); err != nil {
		s.log.Error("cache write failed on create", map[string]interface{}{"error": err.Error()})
	} else {
		res.CacheWritten = true
	}

	if err := s.remote.Create(ctx, entityApplications, app, nil); err != nil {
		metrics.RemoteSyncFailures.WithLabelValues(entityApplications, "create").Inc()
		res.RemoteErr = err
	} else {
		res.RemoteSynced = true
	}

	return app, res
}

// UpdateStatus sets the recruiter-driven review status. Any status is
// reachable from any other; no transition rules are enforced.
func (s *Applications) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (models.Application, SyncResult, error) {
	return s.mutate(ctx, id, "status", func(app *models.Application) {
		app.Status = status
	})
}

// AppendMessage appends a chat entry to the application's message list.
func (s *Applications) AppendMessage(ctx context.Context, id string, msg models.Message) (models.Application, SyncResult, error) {
	if msg.ID == "" {
		msg.ID = "msg_" + uuid.NewString()
	}
	if msg.SentAt == 0 {
		msg.SentAt = time.Now().UnixMilli()
	}
	return s.mutate(ctx, id, "message", func(app *models.Application) {
		app.Messages = append(app.Messages, msg)
	})
}

// SetVideoCall updates the video-call sub-state of a chat message.
func (s *Applications) SetVideoCall(ctx context.Context, id, msgID string, status models.VideoCallStatus) (models.Application, SyncResult, error) {
	return s.mutate(ctx, id, "video-call", func(app *models.Application) {
		for i := range app.Messages {
			if app.Messages[i].ID == msgID && app.Messages[i].VideoCall != nil {
				app.Messages[i].VideoCall.Status = status
			}
		}
	})
}

// mutate applies fn to the application with the given id following the
// combined write policy: the cache copy is updated synchronously first,
// then the full updated record is pushed to the remote store.
func (s *Applications) mutate(ctx context.Context, id, op string, fn func(*models.Application)) (models.Application, SyncResult, error) {
	var res SyncResult

	var local []models.Application
	if err := s.cache.Read(ctx, entityApplications, &local); err != nil {
		s.log.Warn("cache read failed before mutation", map[string]interface{}{"error": err.Error()})
	}

	idx := -1
	for i := range local {
		if local[i].ID == id {
			idx = i
			break
		}
	}

	// Not cached yet: seed from the remote store so the mutation has a
	// base record to apply to.
	if idx == -1 {
		var app models.Application
		if err := s.remote.GetByID(ctx, entityApplications, id, &app); err != nil {
			return models.Application{}, res, ErrApplicationNotFound
		}
		local = append(local, app)
		idx = len(local) - 1
	}

	fn(&local[idx])
	updated := local[idx]

	if err := s.cache.WriteAll(ctx, entityApplications, local); err != nil {
		s.log.Error("cache write failed on mutation", map[string]interface{}{
			"op":    op,
			"error": err.Error(),
		})
	} else {
		res.CacheWritten = true
	}

	patch := map[string]interface{}{
		"status":   updated.Status,
		"messages": updated.Messages,
	}
	if err := s.remote.Update(ctx, entityApplications, id, patch, nil); err != nil {
		metrics.RemoteSyncFailures.WithLabelValues(entityApplications, op).Inc()
		res.RemoteErr = err
	} else {
		res.RemoteSynced = true
	}

	return updated, res, nil
}
