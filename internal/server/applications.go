package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/23BCE0066/Hirely/internal/common/validation"
	"github.com/23BCE0066/Hirely/internal/models"
	"github.com/23BCE0066/Hirely/internal/store/combined"
)

func (s *Server) listApplications(c *gin.Context) {
	apps := s.deps.Applications.List(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"count":        len(apps),
		"applications": apps,
	})
}

func (s *Server) createApplication(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unreadable body"})
		return
	}
	if err := validation.ValidateApplication(payload); err != nil {
		s.validationFailure(c, err)
		return
	}

	var app models.Application
	if err := json.Unmarshal(payload, &app); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid application payload"})
		return
	}

	created, res := s.deps.Applications.Create(c.Request.Context(), app)
	if !res.Succeeded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "store unavailable"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"application": created,
		"synced":      res.RemoteSynced,
	})
}

type statusUpdateRequest struct {
	Status models.ApplicationStatus `json:"status"`
}

func (s *Server) updateApplicationStatus(c *gin.Context) {
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown status"})
		return
	}

	app, res, err := s.deps.Applications.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if errors.Is(err, combined.ErrApplicationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "application not found"})
		return
	}
	if err != nil || !res.Succeeded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "store unavailable"})
		return
	}

	if s.deps.Notifier != nil {
		// Best-effort: a failed email never fails the status change.
		_ = s.deps.Notifier.ApplicationStatusChanged(c.Request.Context(), app)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"application": app,
		"synced":      res.RemoteSynced,
	})
}

type messageRequest struct {
	Sender           string `json:"sender"`
	Text             string `json:"text"`
	RequestVideoCall bool   `json:"requestVideoCall"`
}

// appendMessage adds a chat message to an application. Setting
// requestVideoCall attaches a pending video-call invitation with a
// generated meeting link.
func (s *Server) appendMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid message payload"})
		return
	}
	if strings.TrimSpace(req.Text) == "" && !req.RequestVideoCall {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "message text must not be empty"})
		return
	}

	msg := models.Message{
		Sender: req.Sender,
		Text:   req.Text,
	}
	if req.RequestVideoCall {
		msg.VideoCall = &models.VideoCall{
			Status:     models.VideoCallPending,
			MeetingURL: "https://meet.jit.si/hirely-" + uuid.NewString(),
		}
	}

	app, res, err := s.deps.Applications.AppendMessage(c.Request.Context(), c.Param("id"), msg)
	if errors.Is(err, combined.ErrApplicationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "application not found"})
		return
	}
	if err != nil || !res.Succeeded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "store unavailable"})
		return
	}

	if msg.VideoCall != nil && s.deps.Notifier != nil {
		_ = s.deps.Notifier.VideoCallInvited(c.Request.Context(), app, msg.VideoCall.MeetingURL)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"application": app,
		"synced":      res.RemoteSynced,
	})
}

type videoCallAnswerRequest struct {
	Status models.VideoCallStatus `json:"status"`
}

// answerVideoCall accepts or rejects a pending video-call invitation on
// a chat message.
func (s *Server) answerVideoCall(c *gin.Context) {
	var req videoCallAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		(req.Status != models.VideoCallAccepted && req.Status != models.VideoCallRejected) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "status must be accepted or rejected"})
		return
	}

	app, res, err := s.deps.Applications.SetVideoCall(
		c.Request.Context(), c.Param("id"), c.Param("msgId"), req.Status)
	if errors.Is(err, combined.ErrApplicationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "application not found"})
		return
	}
	if err != nil || !res.Succeeded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "store unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"application": app,
		"synced":      res.RemoteSynced,
	})
}
