// Package httpapi exposes the scanning engine's operational HTTP
// surface: health/readiness/liveness probes, a Prometheus scrape
// endpoint, and a status endpoint summarizing recent signal activity.
// Grounded on the teacher's internal/common/health.go HealthHandler and
// internal/config/gin.go's SetupHFTRoutes /metrics wiring.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/etfarb/arbscan/internal/repository"
)

// Server wires the engine's operational endpoints onto a gin.Engine.
type Server struct {
	serviceName string
	version     string
	startTime   time.Time
	repo        repository.SignalRepository
	registry    *prometheus.Registry
	logger      *zap.Logger
}

// New builds a Server. registry may be nil, in which case metrics
// scraping is skipped by RegisterRoutes.
func New(serviceName, version string, repo repository.SignalRepository, registry *prometheus.Registry, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		serviceName: serviceName,
		version:     version,
		startTime:   time.Now(),
		repo:        repo,
		registry:    registry,
		logger:      logger,
	}
}

// RegisterRoutes mounts every operational endpoint on router.
func (s *Server) RegisterRoutes(router gin.IRouter) {
	router.GET("/healthz", s.health)
	router.GET("/healthz/ready", s.ready)
	router.GET("/healthz/live", s.live)
	router.GET("/status", s.status)
	if s.registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   s.serviceName,
		"version":   s.version,
		"uptime":    time.Since(s.startTime).String(),
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"service":   s.serviceName,
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"service":   s.serviceName,
		"timestamp": time.Now().UTC(),
	})
}

// status reports the signal repository's current size and today's
// count, for dashboards and smoke checks.
func (s *Server) status(c *gin.Context) {
	total := 0
	today := 0
	if s.repo != nil {
		total = s.repo.Count()
		today = len(s.repo.GetToday())
	}
	c.JSON(http.StatusOK, gin.H{
		"service":        s.serviceName,
		"version":        s.version,
		"uptime":         time.Since(s.startTime).String(),
		"signals_total":  total,
		"signals_today":  today,
		"timestamp":      time.Now().UTC(),
	})
}
