package combined

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/23BCE0066/Hirely/internal/common/logger"
	"github.com/23BCE0066/Hirely/internal/models"
	"github.com/23BCE0066/Hirely/internal/store/cache"
	"github.com/23BCE0066/Hirely/internal/store/remote"
)

// ==========================
// Test Helper Functions
// ==========================

type fixture struct {
	cache  *cache.Store
	remote *remote.Client
	mr     *miniredis.Miniredis
	srv    *httptest.Server
}

// fakeStoreAPI serves a canned remote store. A nil mux yields an
// unreachable remote (connection refused).
func newFixture(t *testing.T, mux *http.ServeMux) *fixture {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	log := logger.NewTestLogger(t)
	cs := cache.New(rdb, "hirely:cache", log)

	var srv *httptest.Server
	baseURL := "http://127.0.0.1:1" // nothing listens here
	if mux != nil {
		srv = httptest.NewServer(mux)
		t.Cleanup(srv.Close)
		baseURL = srv.URL
	}

	return &fixture{
		cache:  cs,
		remote: remote.NewClient(baseURL, 2*time.Second, log),
		mr:     mr,
		srv:    srv,
	}
}

func (f *fixture) seedCache(t *testing.T, entity string, list any) {
	require.NoError(t, f.cache.WriteAll(context.Background(), entity, list))
}

func jobsMux(remoteJobs []models.Job) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/db/jobs", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(remoteJobs)
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{}`))
		}
	})
	return mux
}

// ==========================
// Jobs
// ==========================

func TestJobsList_MergesRemoteAndLocalOnly(t *testing.T) {
	remoteJobs := []models.Job{{ID: "job_r1", Title: "Remote Copy"}}
	f := newFixture(t, jobsMux(remoteJobs))
	f.seedCache(t, "jobs", []models.Job{
		{ID: "job_r1", Title: "Stale Local Copy"},
		{ID: "job_l1", Title: "Local Only"},
	})

	jobs := NewJobs(f.remote, f.cache, logger.NewTestLogger(t))
	got := jobs.List(context.Background())

	require.Len(t, got, 2)
	// Remote wins on id collision and comes first.
	assert.Equal(t, "job_r1", got[0].ID)
	assert.Equal(t, "Remote Copy", got[0].Title)
	assert.Equal(t, "job_l1", got[1].ID)
}

func TestJobsList_RefreshesCacheWithMergedList(t *testing.T) {
	remoteJobs := []models.Job{{ID: "job_r1", Title: "Fresh"}}
	f := newFixture(t, jobsMux(remoteJobs))
	f.seedCache(t, "jobs", []models.Job{
		{ID: "job_r1", Title: "Stale"},
		{ID: "job_l1", Title: "Local Only"},
	})

	jobs := NewJobs(f.remote, f.cache, logger.NewTestLogger(t))
	jobs.List(context.Background())

	var cached []models.Job
	require.NoError(t, f.cache.Read(context.Background(), "jobs", &cached))
	require.Len(t, cached, 2)
	// Remote wins for the shared id; the local-only entry survives.
	assert.Equal(t, "Fresh", cached[0].Title)
	assert.Equal(t, "job_l1", cached[1].ID)
}

func TestJobsList_RemoteDownServesCacheUnmodified(t *testing.T) {
	f := newFixture(t, nil)
	f.seedCache(t, "jobs", []models.Job{
		{ID: "job_1", Title: "Cached A"},
		{ID: "job_2", Title: "Cached B"},
	})

	jobs := NewJobs(f.remote, f.cache, logger.NewTestLogger(t))
	got := jobs.List(context.Background())

	require.Len(t, got, 2)
	assert.Equal(t, "job_1", got[0].ID)
	assert.Equal(t, "job_2", got[1].ID)
}

func TestJobsList_IdempotentWithoutWrites(t *testing.T) {
	remoteJobs := []models.Job{{ID: "job_r1"}, {ID: "job_r2"}}
	f := newFixture(t, jobsMux(remoteJobs))
	f.seedCache(t, "jobs", []models.Job{{ID: "job_l1"}})

	jobs := NewJobs(f.remote, f.cache, logger.NewTestLogger(t))
	first := jobs.List(context.Background())
	second := jobs.List(context.Background())

	assert.Equal(t, first, second)
	require.Len(t, first, 3)
}

func TestJobsList_BothStoresEmpty(t *testing.T) {
	f := newFixture(t, jobsMux([]models.Job{}))

	jobs := NewJobs(f.remote, f.cache, logger.NewTestLogger(t))
	assert.Empty(t, jobs.List(context.Background()))
}

func TestJobsCreate_CacheFirstThenRemote(t *testing.T) {
	f := newFixture(t, jobsMux(nil))

	jobs := NewJobs(f.remote, f.cache, logger.NewTestLogger(t))
	created, res := jobs.Create(context.Background(), models.Job{Title: "Backend Developer", Company: "Acme"})

	assert.Regexp(t, `^job_`, created.ID)
	assert.NotZero(t, created.CreatedAt)
	assert.NotEmpty(t, created.PostedAt)
	assert.False(t, created.IsExternal)
	assert.True(t, res.CacheWritten)
	assert.True(t, res.RemoteSynced)
	assert.True(t, res.Succeeded())

	var cached []models.Job
	require.NoError(t, f.cache.Read(context.Background(), "jobs", &cached))
	require.Len(t, cached, 1)
	assert.Equal(t, created.ID, cached[0].ID)
}

func TestJobsCreate_RemoteDownStillSucceedsLocally(t *testing.T) {
	f := newFixture(t, nil)

	jobs := NewJobs(f.remote, f.cache, logger.NewTestLogger(t))
	created, res := jobs.Create(context.Background(), models.Job{Title: "Backend Developer"})

	assert.True(t, res.CacheWritten)
	assert.False(t, res.RemoteSynced)
	assert.Error(t, res.RemoteErr)
	assert.True(t, res.Succeeded())

	// The offline write is visible to subsequent reads.
	got := jobs.List(context.Background())
	require.Len(t, got, 1)
	assert.Equal(t, created.ID, got[0].ID)
}

func TestJobsDelete_RemovesFromCache(t *testing.T) {
	f := newFixture(t, nil)
	f.seedCache(t, "jobs", []models.Job{{ID: "job_1"}, {ID: "job_2"}})

	jobs := NewJobs(f.remote, f.cache, logger.NewTestLogger(t))
	res := jobs.Delete(context.Background(), "job_1")

	assert.True(t, res.CacheWritten)
	assert.False(t, res.RemoteSynced)

	var cached []models.Job
	require.NoError(t, f.cache.Read(context.Background(), "jobs", &cached))
	require.Len(t, cached, 1)
	assert.Equal(t, "job_2", cached[0].ID)
}

// ==========================
// Applications
// ==========================

func TestApplicationsCreate_Defaults(t *testing.T) {
	f := newFixture(t, nil)

	apps := NewApplications(f.remote, f.cache, logger.NewTestLogger(t))
	created, res := apps.Create(context.Background(), models.Application{
		JobID:          "job_1",
		CandidateID:    "cand_1",
		CandidateName:  "Priya",
		CandidateEmail: "priya@example.com",
	})

	assert.Regexp(t, `^app_`, created.ID)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.NotZero(t, created.AppliedAt)
	assert.NotNil(t, created.Messages)
	assert.True(t, res.Succeeded())
}

func TestApplicationsUpdateStatus(t *testing.T) {
	f := newFixture(t, nil)
	f.seedCache(t, "applications", []models.Application{
		{ID: "app_1", Status: models.StatusPending, Messages: []models.Message{}},
	})

	apps := NewApplications(f.remote, f.cache, logger.NewTestLogger(t))
	updated, res, err := apps.UpdateStatus(context.Background(), "app_1", models.StatusAccepted)

	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, updated.Status)
	assert.True(t, res.CacheWritten)

	var cached []models.Application
	require.NoError(t, f.cache.Read(context.Background(), "applications", &cached))
	assert.Equal(t, models.StatusAccepted, cached[0].Status)
}

func TestApplicationsMutate_UnknownIDNotFound(t *testing.T) {
	f := newFixture(t, nil)

	apps := NewApplications(f.remote, f.cache, logger.NewTestLogger(t))
	_, _, err := apps.UpdateStatus(context.Background(), "app_missing", models.StatusReviewed)

	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestApplicationsAppendMessage(t *testing.T) {
	f := newFixture(t, nil)
	f.seedCache(t, "applications", []models.Application{
		{ID: "app_1", Messages: []models.Message{}},
	})

	apps := NewApplications(f.remote, f.cache, logger.NewTestLogger(t))
	updated, _, err := apps.AppendMessage(context.Background(), "app_1", models.Message{
		Sender: "recruiter_1",
		Text:   "When can you start?",
	})

	require.NoError(t, err)
	require.Len(t, updated.Messages, 1)
	assert.Regexp(t, `^msg_`, updated.Messages[0].ID)
	assert.NotZero(t, updated.Messages[0].SentAt)
}

func TestApplicationsSetVideoCall(t *testing.T) {
	f := newFixture(t, nil)
	f.seedCache(t, "applications", []models.Application{
		{ID: "app_1", Messages: []models.Message{
			{ID: "msg_1", VideoCall: &models.VideoCall{Status: models.VideoCallPending, MeetingURL: "https://meet.example/x"}},
			{ID: "msg_2"},
		}},
	})

	apps := NewApplications(f.remote, f.cache, logger.NewTestLogger(t))
	updated, _, err := apps.SetVideoCall(context.Background(), "app_1", "msg_1", models.VideoCallAccepted)

	require.NoError(t, err)
	assert.Equal(t, models.VideoCallAccepted, updated.Messages[0].VideoCall.Status)
	assert.Nil(t, updated.Messages[1].VideoCall)
}

// ==========================
// Profiles
// ==========================

func TestProfilesGet_FallsBackToCache(t *testing.T) {
	f := newFixture(t, nil)
	f.seedCache(t, "profiles", []models.Profile{
		{ID: "sub_1", Role: models.RoleCandidate, Name: "Priya"},
	})

	profiles := NewProfiles(f.remote, f.cache, logger.NewTestLogger(t))

	got, ok := profiles.Get(context.Background(), "sub_1")
	require.True(t, ok)
	assert.Equal(t, "Priya", got.Name)

	_, ok = profiles.Get(context.Background(), "sub_unknown")
	assert.False(t, ok)
}

func TestProfilesUpsert_ReplacesInCache(t *testing.T) {
	f := newFixture(t, nil)
	f.seedCache(t, "profiles", []models.Profile{
		{ID: "sub_1", Role: models.RoleCandidate, Name: "Old Name"},
	})

	profiles := NewProfiles(f.remote, f.cache, logger.NewTestLogger(t))
	saved, res := profiles.Upsert(context.Background(), models.Profile{
		ID: "sub_1", Role: models.RoleCandidate, Name: "New Name",
	})

	assert.True(t, res.CacheWritten)
	assert.Equal(t, "New Name", saved.Name)

	var cached []models.Profile
	require.NoError(t, f.cache.Read(context.Background(), "profiles", &cached))
	require.Len(t, cached, 1)
	assert.Equal(t, "New Name", cached[0].Name)
}

// ==========================
// Merge helper
// ==========================

func TestMergeByID(t *testing.T) {
	remoteList := []models.Job{{ID: "a"}, {ID: "b"}}
	localList := []models.Job{{ID: "b", Title: "shadowed"}, {ID: "c"}}

	out := mergeByID(remoteList, localList, func(j models.Job) string { return j.ID })

	require.Len(t, out, 3)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
	assert.Empty(t, out[1].Title)
	assert.Equal(t, "c", out[2].ID)
}
