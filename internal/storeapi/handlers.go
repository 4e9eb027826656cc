package storeapi

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/23BCE0066/Hirely/internal/common/logger"
	"github.com/23BCE0066/Hirely/internal/models"
)

// Handler exposes the repository as the /api/db CRUD surface.
type Handler struct {
	repo *Repository
	log  logger.Logger
}

func NewHandler(repo *Repository, log logger.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.WithFields(map[string]interface{}{"component": "storeapi.http"}),
	}
}

// Register mounts the CRUD routes on the given engine.
func (h *Handler) Register(r *gin.Engine) {
	db := r.Group("/api/db")
	{
		db.GET("/jobs", h.listJobs)
		db.GET("/jobs/:id", h.getJob)
		db.POST("/jobs", h.createJob)
		db.DELETE("/jobs/:id", h.deleteJob)

		db.GET("/applications", h.listApplications)
		db.GET("/applications/:id", h.getApplication)
		db.POST("/applications", h.createApplication)
		db.PATCH("/applications/:id", h.updateApplication)

		db.GET("/profiles", h.listProfiles)
		db.GET("/profiles/:id", h.getProfile)
		db.PUT("/profiles/:id", h.upsertProfile)
	}
	r.GET("/health", h.health)
}

func (h *Handler) health(c *gin.Context) {
	if err := h.repo.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *Handler) listJobs(c *gin.Context) {
	jobs, err := h.repo.ListJobs(c.Request.Context())
	if err != nil {
		h.fail(c, "list jobs", err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *Handler) getJob(c *gin.Context) {
	job, err := h.repo.GetJob(c.Request.Context(), c.Param("id"))
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	if err != nil {
		h.fail(c, "get job", err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handler) createJob(c *gin.Context) {
	var job models.Job
	if err := c.ShouldBindJSON(&job); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job payload"})
		return
	}
	if job.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}
	if err := h.repo.CreateJob(c.Request.Context(), job); err != nil {
		h.fail(c, "create job", err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *Handler) deleteJob(c *gin.Context) {
	deleted, err := h.repo.DeleteJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "delete job", err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) listApplications(c *gin.Context) {
	apps, err := h.repo.ListApplications(c.Request.Context())
	if err != nil {
		h.fail(c, "list applications", err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *Handler) getApplication(c *gin.Context) {
	app, err := h.repo.GetApplication(c.Request.Context(), c.Param("id"))
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}
	if err != nil {
		h.fail(c, "get application", err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *Handler) createApplication(c *gin.Context) {
	var app models.Application
	if err := c.ShouldBindJSON(&app); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application payload"})
		return
	}
	if app.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}
	if app.Messages == nil {
		app.Messages = []models.Message{}
	}
	if err := h.repo.CreateApplication(c.Request.Context(), app); err != nil {
		h.fail(c, "create application", err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *Handler) updateApplication(c *gin.Context) {
	var patch ApplicationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patch payload"})
		return
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}
	id := c.Param("id")
	updated, err := h.repo.UpdateApplication(c.Request.Context(), id, patch)
	if err != nil {
		h.fail(c, "update application", err)
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}
	app, err := h.repo.GetApplication(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "reload application", err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *Handler) listProfiles(c *gin.Context) {
	profiles, err := h.repo.ListProfiles(c.Request.Context())
	if err != nil {
		h.fail(c, "list profiles", err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (h *Handler) getProfile(c *gin.Context) {
	profile, err := h.repo.GetProfile(c.Request.Context(), c.Param("id"))
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	if err != nil {
		h.fail(c, "get profile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) upsertProfile(c *gin.Context) {
	var profile models.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile payload"})
		return
	}
	profile.ID = c.Param("id")
	if err := h.repo.UpsertProfile(c.Request.Context(), profile); err != nil {
		h.fail(c, "upsert profile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	h.log.WithError(err).Error("store operation failed", map[string]interface{}{"op": op})
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
