// Package server wires the public HTTP API: aggregated job listings,
// local postings, applications with chat, profiles and the AI
// assistant endpoints.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/23BCE0066/Hirely/internal/common/logger"
	"github.com/23BCE0066/Hirely/internal/models"
	"github.com/23BCE0066/Hirely/internal/providers"
	"github.com/23BCE0066/Hirely/internal/store/combined"
)

// JobLister aggregates local and external listings for display.
type JobLister interface {
	JobsForDisplay(ctx context.Context, searchTerm, category string) []models.Job
}

// JobWriter covers the local posting operations of the combined store.
type JobWriter interface {
	Create(ctx context.Context, job models.Job) (models.Job, combined.SyncResult)
	Delete(ctx context.Context, id string) combined.SyncResult
}

// ApplicationStore covers the application operations of the combined
// store.
type ApplicationStore interface {
	List(ctx context.Context) []models.Application
	Create(ctx context.Context, app models.Application) (models.Application, combined.SyncResult)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (models.Application, combined.SyncResult, error)
	AppendMessage(ctx context.Context, id string, msg models.Message) (models.Application, combined.SyncResult, error)
	SetVideoCall(ctx context.Context, id, msgID string, status models.VideoCallStatus) (models.Application, combined.SyncResult, error)
}

// ProfileStore covers the identity operations of the combined store.
type ProfileStore interface {
	Get(ctx context.Context, id string) (models.Profile, bool)
	Upsert(ctx context.Context, p models.Profile) (models.Profile, combined.SyncResult)
}

// AIAssistant is implemented by ai.Assistant. Nil disables the AI
// endpoints.
type AIAssistant interface {
	Chat(ctx context.Context, question string) (string, error)
	MockInterview(ctx context.Context, role, transcript string) (string, error)
	Headhunt(ctx context.Context, profile string) (string, error)
}

// StatusNotifier is implemented by notify.Notifier. Nil disables
// outgoing email.
type StatusNotifier interface {
	ApplicationStatusChanged(ctx context.Context, app models.Application) error
	VideoCallInvited(ctx context.Context, app models.Application, meetingURL string) error
}

// RequestRecorder is implemented by observability.Observability. Nil
// disables per-request OTel metrics.
type RequestRecorder interface {
	RecordRequest(ctx context.Context, route, status string)
	RecordRequestDuration(ctx context.Context, duration time.Duration, route string)
}

// Deps holds everything the HTTP layer depends on.
type Deps struct {
	Aggregator   JobLister
	Jobs         JobWriter
	Applications ApplicationStore
	Profiles     ProfileStore
	Serp         providers.Searcher
	Adzuna       providers.Searcher
	PageBudget   int
	Assistant    AIAssistant
	Notifier     StatusNotifier
	Obs          RequestRecorder
	Log          logger.Logger
}

type Server struct {
	engine *gin.Engine
	deps   Deps
	log    logger.Logger
}

func New(deps Deps) *Server {
	s := &Server{
		engine: gin.New(),
		deps:   deps,
		log:    deps.Log.WithFields(map[string]interface{}{"component": "http"}),
	}
	s.engine.Use(gin.Recovery())
	if deps.Obs != nil {
		s.engine.Use(s.recordRequests())
	}
	s.engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.engine.Group("/api")
	{
		api.GET("/jobs", s.listJobs)
		api.GET("/jobs/search", s.searchSerp)
		api.GET("/jobs/adzuna", s.searchAdzuna)
		api.POST("/jobs", s.createJob)
		api.DELETE("/jobs/:id", s.deleteJob)

		api.GET("/applications", s.listApplications)
		api.POST("/applications", s.createApplication)
		api.PATCH("/applications/:id/status", s.updateApplicationStatus)
		api.POST("/applications/:id/messages", s.appendMessage)
		api.POST("/applications/:id/messages/:msgId/video-call", s.answerVideoCall)

		api.GET("/profiles/:subjectId", s.getProfile)
		api.PUT("/profiles/:subjectId", s.upsertProfile)

		ai := api.Group("/ai")
		{
			ai.POST("/chat", s.aiChat)
			ai.POST("/interview", s.aiInterview)
			ai.POST("/headhunter", s.aiHeadhunter)
		}
	}
	s.engine.GET("/health", s.health)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Handler exposes the underlying http.Handler for serving and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// recordRequests emits per-route OTel request metrics.
func (s *Server) recordRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		ctx := c.Request.Context()
		s.deps.Obs.RecordRequest(ctx, route, fmt.Sprintf("%d", c.Writer.Status()))
		s.deps.Obs.RecordRequestDuration(ctx, time.Since(start), route)
	}
}
