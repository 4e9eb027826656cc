package storeapi

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/23BCE0066/Hirely/internal/common/logger"
	"github.com/23BCE0066/Hirely/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db, logger.NewTestLogger(t)), mock
}

func jobRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "company", "location", "type", "salary", "category",
		"posted_at", "description", "logo", "employer_id", "document_url", "created_at",
	})
}

func applicationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "job_id", "job_title", "candidate_id", "candidate_name",
		"candidate_email", "applied_at", "status", "resume_url", "messages",
	})
}

// ==========================
// Jobs
// ==========================

func TestListJobs(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM jobs ORDER BY created_at DESC`).
		WillReturnRows(jobRows().
			AddRow("job_1", "Backend Developer", "Acme", "Mumbai", "Full-time",
				"₹50,000 - ₹70,000", "Engineering", "2026-08-01", "desc", "", "emp_1", "", int64(200)).
			AddRow("job_2", "UX Designer", "Pixel", "Remote", "Contract",
				"Not specified", "Design", "2026-07-15", "desc", "", "emp_2", "", int64(100)))

	jobs, err := repo.ListJobs(context.Background())

	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "job_1", jobs[0].ID)
	assert.Equal(t, models.TypeFullTime, jobs[0].Type)
	assert.Equal(t, int64(100), jobs[1].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListJobs_EmptyTable(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM jobs`).WillReturnRows(jobRows())

	jobs, err := repo.ListJobs(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
}

func TestCreateJob(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(`INSERT INTO jobs`).
		WithArgs("job_1", "Backend Developer", "Acme", "Mumbai", models.TypeFullTime,
			"", "Engineering", "2026-08-01", "desc", "", "emp_1", "", int64(123)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateJob(context.Background(), models.Job{
		ID: "job_1", Title: "Backend Developer", Company: "Acme", Location: "Mumbai",
		Type: models.TypeFullTime, Category: "Engineering", PostedAt: "2026-08-01",
		Description: "desc", EmployerID: "emp_1", CreatedAt: 123,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteJob(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(`DELETE FROM jobs WHERE id = \$1`).
		WithArgs("job_1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM jobs WHERE id = \$1`).
		WithArgs("job_missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteJob(context.Background(), "job_1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteJob(context.Background(), "job_missing")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestGetJob_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM jobs WHERE id = \$1`).
		WithArgs("job_missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetJob(context.Background(), "job_missing")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

// ==========================
// Applications
// ==========================

func TestListApplications_DecodesMessages(t *testing.T) {
	repo, mock := newTestRepo(t)

	messages := `[{"id":"msg_1","sender":"recruiter_1","text":"Hi","sentAt":123}]`
	mock.ExpectQuery(`SELECT .+ FROM applications ORDER BY applied_at DESC`).
		WillReturnRows(applicationRows().
			AddRow("app_1", "job_1", "Backend Developer", "cand_1", "Priya",
				"priya@example.com", int64(456), "pending", "", []byte(messages)))

	apps, err := repo.ListApplications(context.Background())

	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, models.StatusPending, apps[0].Status)
	require.Len(t, apps[0].Messages, 1)
	assert.Equal(t, "msg_1", apps[0].Messages[0].ID)
}

func TestListApplications_NullMessagesBecomeEmptySlice(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM applications`).
		WillReturnRows(applicationRows().
			AddRow("app_1", "job_1", "", "cand_1", "", "", int64(1), "pending", "", []byte(`null`)))

	apps, err := repo.ListApplications(context.Background())

	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.NotNil(t, apps[0].Messages)
	assert.Empty(t, apps[0].Messages)
}

func TestCreateApplication(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(`INSERT INTO applications`).
		WithArgs("app_1", "job_1", "Backend Developer", "cand_1", "Priya",
			"priya@example.com", int64(456), models.StatusPending, "", []byte(`[]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateApplication(context.Background(), models.Application{
		ID: "app_1", JobID: "job_1", JobTitle: "Backend Developer",
		CandidateID: "cand_1", CandidateName: "Priya", CandidateEmail: "priya@example.com",
		AppliedAt: 456, Status: models.StatusPending, Messages: []models.Message{},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateApplication_StatusOnly(t *testing.T) {
	repo, mock := newTestRepo(t)

	status := models.StatusAccepted
	mock.ExpectExec(`UPDATE applications SET status = \$1 WHERE id = \$2`).
		WithArgs(status, "app_1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.UpdateApplication(context.Background(), "app_1", ApplicationPatch{Status: &status})

	require.NoError(t, err)
	assert.True(t, updated)
}

func TestUpdateApplication_StatusAndMessages(t *testing.T) {
	repo, mock := newTestRepo(t)

	status := models.StatusReviewed
	messages := []models.Message{{ID: "msg_1", Sender: "recruiter_1", Text: "Hi", SentAt: 1}}
	mock.ExpectExec(`UPDATE applications SET status = \$1, messages = \$2 WHERE id = \$3`).
		WithArgs(status, sqlmock.AnyArg(), "app_1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.UpdateApplication(context.Background(), "app_1", ApplicationPatch{
		Status:   &status,
		Messages: &messages,
	})

	require.NoError(t, err)
	assert.True(t, updated)
}

func TestUpdateApplication_EmptyPatchIsNoOp(t *testing.T) {
	repo, _ := newTestRepo(t)

	updated, err := repo.UpdateApplication(context.Background(), "app_1", ApplicationPatch{})

	require.NoError(t, err)
	assert.False(t, updated)
}

// ==========================
// Profiles
// ==========================

func TestUpsertProfile(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(`INSERT INTO profiles .+ ON CONFLICT \(id\) DO UPDATE`).
		WithArgs("sub_1", models.RoleRecruiter, "Arjun", "arjun@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpsertProfile(context.Background(), models.Profile{
		ID: "sub_1", Role: models.RoleRecruiter, Name: "Arjun", Email: "arjun@example.com",
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProfile(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`SELECT id, role, name, email FROM profiles WHERE id = \$1`).
		WithArgs("sub_1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "role", "name", "email"}).
			AddRow("sub_1", "candidate", "Priya", "priya@example.com"))

	p, err := repo.GetProfile(context.Background(), "sub_1")

	require.NoError(t, err)
	assert.Equal(t, models.RoleCandidate, p.Role)
}
