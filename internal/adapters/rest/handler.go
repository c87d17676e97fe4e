// Package rest exposes vibe sessions over HTTP.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/ewilliams-labs/vibefinder/internal/core/ports"
	"github.com/ewilliams-labs/vibefinder/internal/core/services"
)

const readyTimeout = 5 * time.Second

// ReadyCheck reports whether a dependency can serve traffic.
type ReadyCheck func(ctx context.Context) error

// Handler manages the HTTP interface for our application.
type Handler struct {
	sessions *services.SessionManager
	ledger   ports.RequestLog
	checks   map[string]ReadyCheck
	logger   *log.Logger
	router   *gin.Engine
}

type Option func(*Handler)

// WithLedger enables GET /stats.
func WithLedger(l ports.RequestLog) Option {
	return func(h *Handler) { h.ledger = l }
}

// WithReadyCheck adds a dependency to GET /ready.
func WithReadyCheck(name string, check ReadyCheck) Option {
	return func(h *Handler) { h.checks[name] = check }
}

func WithLogger(l *log.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(sessions *services.SessionManager, opts ...Option) *Handler {
	h := &Handler{
		sessions: sessions,
		checks:   make(map[string]ReadyCheck),
		logger:   log.Default(),
		router:   gin.New(),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.router.Use(gin.Recovery(), h.requestLogger())
	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.GET("/health", h.HealthCheck)
	h.router.GET("/ready", h.Ready)

	sessions := h.router.Group("/sessions")
	{
		sessions.POST("", h.CreateSession)
		sessions.GET("/:id", h.GetSession)
		sessions.DELETE("/:id", h.DeleteSession)
		sessions.POST("/:id/vibe", h.SubmitVibe)
		sessions.GET("/:id/events", h.Events)
	}

	h.router.GET("/links", h.Links)
	h.router.GET("/embed", h.Embed)
	h.router.GET("/stats", h.Stats)
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready runs every registered dependency check.
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	failures := gin.H{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("readiness check failed", "check", name, "err", err)
			failures[name] = err.Error()
		}
	}

	if len(failures) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "errors": failures})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: message, Code: code})
}
