package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/23BCE0066/Hirely/internal/common/errors"
	"github.com/23BCE0066/Hirely/internal/common/validation"
	"github.com/23BCE0066/Hirely/internal/models"
	"github.com/23BCE0066/Hirely/internal/providers"
)

// listJobs serves the aggregated job feed: local postings first, then
// shuffled external listings, optionally filtered by category.
func (s *Server) listJobs(c *gin.Context) {
	query := c.Query("q")
	category := c.Query("category")

	jobs := s.deps.Aggregator.JobsForDisplay(c.Request.Context(), query, category)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(jobs),
		"jobs":    jobs,
	})
}

// searchSerp is the direct passthrough to the Google-jobs-backed
// provider, bypassing aggregation.
func (s *Server) searchSerp(c *gin.Context) {
	query := c.DefaultQuery("q", "software engineer")
	location := c.DefaultQuery("location", "India")

	pages := s.deps.PageBudget
	if raw := c.Query("pages"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n < pages {
			pages = n
		}
	}

	s.searchProvider(c, s.deps.Serp, query, location, pages)
}

// searchAdzuna is the direct passthrough to the Adzuna provider. The
// provider fetches a single page regardless of budget.
func (s *Server) searchAdzuna(c *gin.Context) {
	query := c.DefaultQuery("q", "software engineer")
	location := c.Query("location")
	s.searchProvider(c, s.deps.Adzuna, query, location, 1)
}

func (s *Server) searchProvider(c *gin.Context, p providers.Searcher, query, location string, pages int) {
	jobs, err := p.Search(c.Request.Context(), query, location, pages)
	if err != nil {
		s.log.WithError(err).Error("provider search failed", map[string]interface{}{"provider": p.Name()})
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "listing provider unavailable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(jobs),
		"query":    query,
		"location": location,
		"jobs":     jobs,
	})
}

// createJob validates and persists a locally posted job under the
// combined write policy.
func (s *Server) createJob(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unreadable body"})
		return
	}
	if err := validation.ValidateJobPost(payload); err != nil {
		s.validationFailure(c, err)
		return
	}

	var job models.Job
	if err := json.Unmarshal(payload, &job); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid job payload"})
		return
	}

	created, res := s.deps.Jobs.Create(c.Request.Context(), job)
	if !res.Succeeded() {
		s.log.Error("job create landed nowhere", map[string]interface{}{"job_id": created.ID})
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "store unavailable"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"job":     created,
		"synced":  res.RemoteSynced,
	})
}

// deleteJob removes a locally posted job. External listings are not
// owned by the platform and cannot be deleted.
func (s *Server) deleteJob(c *gin.Context) {
	id := c.Param("id")
	if strings.HasPrefix(id, "serp_") || strings.HasPrefix(id, "adzuna_") {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "external listings cannot be deleted",
		})
		return
	}

	res := s.deps.Jobs.Delete(c.Request.Context(), id)
	if !res.Succeeded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "store unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"synced":  res.RemoteSynced,
	})
}

func (s *Server) validationFailure(c *gin.Context, err error) {
	details := ""
	if e, ok := err.(*apperrors.StandardError); ok {
		details = e.Details
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   "validation failed",
		"details": details,
	})
}
