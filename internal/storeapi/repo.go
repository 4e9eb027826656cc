// Package storeapi implements the hosted document store: a thin CRUD
// service over PostgreSQL exposed under /api/db/<entity>, consumed by
// the main server's remote store client.
package storeapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/23BCE0066/Hirely/internal/common/logger"
	"github.com/23BCE0066/Hirely/internal/models"
)

// Repository provides entity persistence over a SQL database.
type Repository struct {
	db  *sql.DB
	log logger.Logger
}

func NewRepository(db *sql.DB, log logger.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.WithFields(map[string]interface{}{"component": "storeapi.repo"}),
	}
}

// Migrate creates the backing tables if they do not exist. Messages are
// stored denormalized as JSONB inside the application row, matching the
// document shape the clients exchange.
func (r *Repository) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS jobs (
			id            TEXT PRIMARY KEY,
			title         TEXT NOT NULL,
			company       TEXT NOT NULL,
			location      TEXT NOT NULL DEFAULT '',
			type          TEXT NOT NULL DEFAULT '',
			salary        TEXT NOT NULL DEFAULT '',
			category      TEXT NOT NULL DEFAULT '',
			posted_at     TEXT NOT NULL DEFAULT '',
			description   TEXT NOT NULL DEFAULT '',
			logo          TEXT NOT NULL DEFAULT '',
			employer_id   TEXT NOT NULL DEFAULT '',
			document_url  TEXT NOT NULL DEFAULT '',
			created_at    BIGINT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS applications (
			id              TEXT PRIMARY KEY,
			job_id          TEXT NOT NULL,
			job_title       TEXT NOT NULL DEFAULT '',
			candidate_id    TEXT NOT NULL,
			candidate_name  TEXT NOT NULL DEFAULT '',
			candidate_email TEXT NOT NULL DEFAULT '',
			applied_at      BIGINT NOT NULL DEFAULT 0,
			status          TEXT NOT NULL DEFAULT 'pending',
			resume_url      TEXT NOT NULL DEFAULT '',
			messages        JSONB NOT NULL DEFAULT '[]'
		)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			id    TEXT PRIMARY KEY,
			role  TEXT NOT NULL DEFAULT '',
			name  TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT ''
		)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// --- jobs ---

const jobColumns = `id, title, company, location, type, salary, category,
	posted_at, description, logo, employer_id, document_url, created_at`

func (r *Repository) ListJobs(ctx context.Context) ([]models.Job, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		var j models.Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Type,
			&j.Salary, &j.Category, &j.PostedAt, &j.Description, &j.Logo,
			&j.EmployerID, &j.DocumentURL, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *Repository) GetJob(ctx context.Context, id string) (models.Job, error) {
	var j models.Job
	err := r.db.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id).
		Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Type,
			&j.Salary, &j.Category, &j.PostedAt, &j.Description, &j.Logo,
			&j.EmployerID, &j.DocumentURL, &j.CreatedAt)
	if err != nil {
		return models.Job{}, err
	}
	return j, nil
}

func (r *Repository) CreateJob(ctx context.Context, j models.Job) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO jobs (`+jobColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		j.ID, j.Title, j.Company, j.Location, j.Type, j.Salary, j.Category,
		j.PostedAt, j.Description, j.Logo, j.EmployerID, j.DocumentURL, j.CreatedAt)
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

func (r *Repository) DeleteJob(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete job: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// --- applications ---

const applicationColumns = `id, job_id, job_title, candidate_id, candidate_name,
	candidate_email, applied_at, status, resume_url, messages`

func scanApplication(scan func(dest ...interface{}) error) (models.Application, error) {
	var a models.Application
	var rawMessages []byte
	err := scan(&a.ID, &a.JobID, &a.JobTitle, &a.CandidateID, &a.CandidateName,
		&a.CandidateEmail, &a.AppliedAt, &a.Status, &a.ResumeURL, &rawMessages)
	if err != nil {
		return models.Application{}, err
	}
	if err := json.Unmarshal(rawMessages, &a.Messages); err != nil {
		return models.Application{}, fmt.Errorf("decode messages: %w", err)
	}
	if a.Messages == nil {
		a.Messages = []models.Message{}
	}
	return a, nil
}

func (r *Repository) ListApplications(ctx context.Context) ([]models.Application, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM applications ORDER BY applied_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		a, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (r *Repository) GetApplication(ctx context.Context, id string) (models.Application, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row.Scan)
}

func (r *Repository) CreateApplication(ctx context.Context, a models.Application) error {
	rawMessages, err := json.Marshal(a.Messages)
	if err != nil {
		return fmt.Errorf("encode messages: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO applications (`+applicationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.JobID, a.JobTitle, a.CandidateID, a.CandidateName,
		a.CandidateEmail, a.AppliedAt, a.Status, a.ResumeURL, rawMessages)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

// ApplicationPatch carries the mutable fields of an application row.
// Nil fields are left untouched.
type ApplicationPatch struct {
	Status   *models.ApplicationStatus `json:"status,omitempty"`
	Messages *[]models.Message         `json:"messages,omitempty"`
}

func (r *Repository) UpdateApplication(ctx context.Context, id string, patch ApplicationPatch) (bool, error) {
	if patch.Status == nil && patch.Messages == nil {
		return false, nil
	}

	set := ""
	args := []interface{}{}
	next := 1
	if patch.Status != nil {
		set += fmt.Sprintf("status = $%d", next)
		args = append(args, *patch.Status)
		next++
	}
	if patch.Messages != nil {
		rawMessages, err := json.Marshal(*patch.Messages)
		if err != nil {
			return false, fmt.Errorf("encode messages: %w", err)
		}
		if set != "" {
			set += ", "
		}
		set += fmt.Sprintf("messages = $%d", next)
		args = append(args, rawMessages)
		next++
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE applications SET %s WHERE id = $%d`, set, next), args...)
	if err != nil {
		return false, fmt.Errorf("update application: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// --- profiles ---

func (r *Repository) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, role, name, email FROM profiles`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Role, &p.Name, &p.Email); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *Repository) GetProfile(ctx context.Context, id string) (models.Profile, error) {
	var p models.Profile
	err := r.db.QueryRowContext(ctx,
		`SELECT id, role, name, email FROM profiles WHERE id = $1`, id).
		Scan(&p.ID, &p.Role, &p.Name, &p.Email)
	if err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

func (r *Repository) UpsertProfile(ctx context.Context, p models.Profile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (id, role, name, email) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET role = $2, name = $3, email = $4`,
		p.ID, p.Role, p.Name, p.Email)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
