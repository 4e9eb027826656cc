package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/23BCE0066/Hirely/internal/common/errors"
	"github.com/23BCE0066/Hirely/internal/common/logger"
	"github.com/23BCE0066/Hirely/internal/models"
)

func TestList_DecodesEntityList(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewEncoder(w).Encode([]models.Job{{ID: "job_1", Title: "Backend Developer"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second, logger.NewTestLogger(t))

	var jobs []models.Job
	require.NoError(t, c.List(context.Background(), "jobs", &jobs))
	assert.Equal(t, "/api/db/jobs", path)
	require.Len(t, jobs, 1)
	assert.Equal(t, "job_1", jobs[0].ID)
}

func TestCall_NonSuccessStatusIsRemoteUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second, logger.NewTestLogger(t))

	var jobs []models.Job
	err := c.List(context.Background(), "jobs", &jobs)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeRemoteUnavailable))
}

func TestCall_TimeoutIsRemoteUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 50*time.Millisecond, logger.NewTestLogger(t))

	var jobs []models.Job
	err := c.List(context.Background(), "jobs", &jobs)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeRemoteUnavailable))
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	c := NewClient("http://localhost:8090", 0, logger.NewNoOpLogger())
	require.NotNil(t, c)
	assert.Equal(t, 8*time.Second, DefaultTimeout)
}

func TestDelete_TargetsEntityID(t *testing.T) {
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		w.Write([]byte(`{"deleted": true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second, logger.NewTestLogger(t))

	require.NoError(t, c.Delete(context.Background(), "jobs", "job_1"))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/api/db/jobs/job_1", path)
}
