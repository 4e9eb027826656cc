package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/23BCE0066/Hirely/internal/common/errors"
)

type chatRequest struct {
	Question string `json:"question"`
}

func (s *Server) aiChat(c *gin.Context) {
	if s.deps.Assistant == nil {
		s.aiDisabled(c)
		return
	}
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payload"})
		return
	}
	answer, err := s.deps.Assistant.Chat(c.Request.Context(), req.Question)
	if err != nil {
		s.aiFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "answer": answer})
}

type interviewRequest struct {
	Role       string `json:"role"`
	Transcript string `json:"transcript"`
}

func (s *Server) aiInterview(c *gin.Context) {
	if s.deps.Assistant == nil {
		s.aiDisabled(c)
		return
	}
	var req interviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payload"})
		return
	}
	reply, err := s.deps.Assistant.MockInterview(c.Request.Context(), req.Role, req.Transcript)
	if err != nil {
		s.aiFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reply": reply})
}

type headhunterRequest struct {
	Profile string `json:"profile"`
}

func (s *Server) aiHeadhunter(c *gin.Context) {
	if s.deps.Assistant == nil {
		s.aiDisabled(c)
		return
	}
	var req headhunterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payload"})
		return
	}
	summary, err := s.deps.Assistant.Headhunt(c.Request.Context(), req.Profile)
	if err != nil {
		s.aiFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "summary": summary})
}

func (s *Server) aiDisabled(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "AI features are not configured"})
}

func (s *Server) aiFailure(c *gin.Context, err error) {
	if apperrors.IsCode(err, apperrors.ErrCodeValidationFailed) {
		s.validationFailure(c, err)
		return
	}
	s.log.WithError(err).Error("assistant call failed", nil)
	c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "generation failed"})
}
