// Package httpapi exposes the blog pipeline over HTTP.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"BlogForge/internal/domain"
	"BlogForge/internal/ports"
)

// generationQueue is the queue surface the handlers need.
type generationQueue interface {
	Enqueue(ctx context.Context, topic string) *domain.GenerationJob
	EnqueueAll(ctx context.Context, topics []string) ([]string, error)
	Job(id string) (*domain.GenerationJob, bool)
	Jobs() []*domain.GenerationJob
	Stats() domain.QueueStats
	CleanupOldJobs() int
}

// Server hosts the JSON API.
type Server struct {
	engine   *gin.Engine
	server   *http.Server
	pipeline ports.BlogPipeline
	topics   ports.TopicSource
	queue    generationQueue
	logger   *slog.Logger
	region   string
}

// ServerDeps wires handler collaborators.
type ServerDeps struct {
	Pipeline ports.BlogPipeline
	Topics   ports.TopicSource
	Queue    generationQueue
	Logger   *slog.Logger
	Region   string
}

// NewServer builds the router. Port is the listen port without colon.
func NewServer(port string, deps ServerDeps) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine:   gin.New(),
		pipeline: deps.Pipeline,
		topics:   deps.Topics,
		queue:    deps.Queue,
		logger:   deps.Logger,
		region:   deps.Region,
	}
	s.engine.Use(gin.Recovery())
	s.routes()

	s.server = &http.Server{
		Addr:              ":" + port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", s.health)

	blog := s.engine.Group("/api/v1/blog")
	{
		blog.POST("/generate", s.generate)
		blog.POST("/generate/batch", s.generateBatch)
		blog.POST("/generate/trends", s.generateTrends)

		blog.GET("/jobs", s.listJobs)
		blog.GET("/jobs/:id", s.getJob)
		blog.POST("/jobs/cleanup", s.cleanupJobs)
		blog.GET("/queue/stats", s.queueStats)

		blog.GET("/articles/pending", s.pendingArticles)
		blog.POST("/articles/:id/publish", s.publishArticle)
		blog.GET("/stats", s.stats)
		blog.POST("/seed", s.seed)
		blog.GET("/topics", s.trendingTopics)
	}
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.log("http server listening", "addr", s.server.Addr)
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type generateRequest struct {
	Topic string `json:"topic" binding:"required"`
}

func (s *Server) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "topic is required")
		return
	}

	job := s.queue.Enqueue(c.Request.Context(), req.Topic)
	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"data":    job,
	})
}

type generateBatchRequest struct {
	Topics []string `json:"topics" binding:"required,min=1"`
}

func (s *Server) generateBatch(c *gin.Context) {
	var req generateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "topics must be a non-empty list")
		return
	}

	ids, err := s.queue.EnqueueAll(c.Request.Context(), req.Topics)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"data":    gin.H{"jobIds": ids},
	})
}

func (s *Server) generateTrends(c *gin.Context) {
	topics := s.topics.TrendingTopics(c.Request.Context(), s.region)
	if len(topics) == 0 {
		fail(c, http.StatusServiceUnavailable, "no topics available")
		return
	}

	ids, err := s.queue.EnqueueAll(c.Request.Context(), topics)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"data": gin.H{
			"topics": topics,
			"jobIds": ids,
		},
	})
}

func (s *Server) getJob(c *gin.Context) {
	job, ok := s.queue.Job(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, "job not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": job})
}

func (s *Server) listJobs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": s.queue.Jobs()})
}

func (s *Server) cleanupJobs(c *gin.Context) {
	removed := s.queue.CleanupOldJobs()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"removed": removed},
	})
}

func (s *Server) queueStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": s.queue.Stats()})
}

func (s *Server) pendingArticles(c *gin.Context) {
	articles, err := s.pipeline.PendingArticles(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": articles})
}

func (s *Server) publishArticle(c *gin.Context) {
	article, err := s.pipeline.Publish(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			fail(c, http.StatusNotFound, "article not found")
			return
		}
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": article})
}

func (s *Server) stats(c *gin.Context) {
	stats, err := s.pipeline.Stats(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

func (s *Server) seed(c *gin.Context) {
	created, err := s.pipeline.SeedPilotArticles(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"created": len(created)},
	})
}

func (s *Server) trendingTopics(c *gin.Context) {
	topics := s.topics.TrendingTopics(c.Request.Context(), s.region)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": topics})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

func (s *Server) log(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}
