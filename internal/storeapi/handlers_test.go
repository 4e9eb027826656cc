package storeapi

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/23BCE0066/Hirely/internal/common/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestHandler(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.NewTestLogger(t)
	engine := gin.New()
	NewHandler(NewRepository(db, log), log).Register(engine)
	return engine, mock
}

func serve(engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestGetJob_ReturnsNotFound(t *testing.T) {
	engine, mock := newTestHandler(t)

	mock.ExpectQuery(`SELECT .+ FROM jobs WHERE id = \$1`).
		WithArgs("job_missing").
		WillReturnError(sql.ErrNoRows)

	rec := serve(engine, http.MethodGet, "/api/db/jobs/job_missing", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateJob_RequiresID(t *testing.T) {
	engine, _ := newTestHandler(t)

	rec := serve(engine, http.MethodPost, "/api/db/jobs", map[string]interface{}{
		"title": "Backend Developer",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateJob_Persists(t *testing.T) {
	engine, mock := newTestHandler(t)

	mock.ExpectExec(`INSERT INTO jobs`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := serve(engine, http.MethodPost, "/api/db/jobs", map[string]interface{}{
		"id":      "job_1",
		"title":   "Backend Developer",
		"company": "Acme",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateApplication_RejectsUnknownStatus(t *testing.T) {
	engine, _ := newTestHandler(t)

	rec := serve(engine, http.MethodPatch, "/api/db/applications/app_1", map[string]interface{}{
		"status": "hired",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateApplication_NotFound(t *testing.T) {
	engine, mock := newTestHandler(t)

	mock.ExpectExec(`UPDATE applications SET status = \$1 WHERE id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rec := serve(engine, http.MethodPatch, "/api/db/applications/app_missing", map[string]interface{}{
		"status": "accepted",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpsertProfile_IDFromPath(t *testing.T) {
	engine, mock := newTestHandler(t)

	mock.ExpectExec(`INSERT INTO profiles`).
		WithArgs("sub_1", "candidate", "Priya", "priya@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := serve(engine, http.MethodPut, "/api/db/profiles/sub_1", map[string]interface{}{
		"id":    "ignored",
		"role":  "candidate",
		"name":  "Priya",
		"email": "priya@example.com",
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "sub_1", out["id"])
}
