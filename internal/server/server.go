// Package server exposes the pipeline trigger and event reads over HTTP.
package server

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/silverhaven/eventscout/internal/metrics"
	"github.com/silverhaven/eventscout/internal/model"
	"github.com/silverhaven/eventscout/internal/store"
)

// Runner triggers one full pipeline run
type Runner interface {
	Run(ctx context.Context) *model.RunSummary
}

// Server is the HTTP surface: an auth-gated sync trigger, filtered event
// reads for page rendering, health, and metrics.
type Server struct {
	cfg    model.ServerConfig
	runner Runner
	store  store.EventStore
	engine *gin.Engine
}

// New builds the router
func New(cfg model.ServerConfig, runner Runner, st store.EventStore) *Server {
	s := &Server{cfg: cfg, runner: runner, store: st}

	r := gin.Default()

	if cfg.EnableCORS {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		r.Use(cors.New(corsConfig))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "eventscout"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		api.POST("/events/sync", s.handleSync)
		api.GET("/events", s.handleList)
	}

	s.engine = r
	return s
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler { return s.engine }

// Start runs the server until it fails
func (s *Server) Start() error {
	log.Printf("server: listening on %s", s.cfg.Addr)
	return s.engine.Run(s.cfg.Addr)
}

// handleSync triggers a pipeline run. The gate fails closed: no valid
// credential, no work. A run in progress is not cancelled by the client
// disconnecting, so it executes on a background context.
func (s *Server) handleSync(c *gin.Context) {
	trigger, ok := s.authorize(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	metrics.RunsTotal.WithLabelValues(trigger).Inc()
	log.Printf("server: sync triggered (%s)", trigger)

	summary := s.runner.Run(context.Background())

	c.JSON(http.StatusOK, gin.H{"success": true, "summary": summary})
}

// handleList serves future-dated events ordered by date, bounded count
func (s *Server) handleList(c *gin.Context) {
	limit := s.cfg.ListLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	events, err := s.store.ListUpcoming(c.Request.Context(), time.Now().UTC(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(events), "events": events})
}
