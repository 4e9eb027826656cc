package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/23BCE0066/Hirely/internal/models"
)

func (s *Server) getProfile(c *gin.Context) {
	profile, ok := s.deps.Profiles.Get(c.Request.Context(), c.Param("subjectId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}

// upsertProfile creates or replaces the profile for an auth subject.
// Called lazily on first sign-in.
func (s *Server) upsertProfile(c *gin.Context) {
	var profile models.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid profile payload"})
		return
	}
	profile.ID = c.Param("subjectId")
	if profile.Role != models.RoleCandidate && profile.Role != models.RoleRecruiter {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "role must be candidate or recruiter"})
		return
	}

	saved, res := s.deps.Profiles.Upsert(c.Request.Context(), profile)
	if !res.Succeeded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "store unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"profile": saved,
		"synced":  res.RemoteSynced,
	})
}
