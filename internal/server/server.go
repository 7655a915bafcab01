// Package server is the HTTP boundary: request routing, static pages and
// pass-through wiring to the research engine and stores. No scoring logic
// lives here.
package server

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"investai/internal/interfaces"
	"investai/internal/logger"
	"investai/internal/news"
	"investai/internal/notify"
	"investai/internal/research"
	"investai/internal/store"
)

// Server hosts the InvestAI HTTP API.
type Server struct {
	cfg       *store.Config
	engine    *research.Engine
	results   *store.ResultStore
	watchlist *store.Watchlist
	settings  *store.SettingsStore
	scraper   *news.Scraper
	router    *gin.Engine

	// notifierFactory builds a notifier from credentials; swapped in tests.
	notifierFactory func(botToken, chatID string) interfaces.Notifier
}

// New wires the router.
func New(cfg *store.Config, engine *research.Engine, results *store.ResultStore, watchlist *store.Watchlist, settings *store.SettingsStore, scraper *news.Scraper) *Server {
	s := &Server{
		cfg:       cfg,
		engine:    engine,
		results:   results,
		watchlist: watchlist,
		settings:  settings,
		scraper:   scraper,
		notifierFactory: func(botToken, chatID string) interfaces.Notifier {
			return notify.NewTelegramNotifier(botToken, chatID)
		},
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), corsHeaders(), requestLogger())

	r.StaticFile("/", filepath.Join(cfg.WebDir, "index.html"))
	r.StaticFile("/dashboard", filepath.Join(cfg.WebDir, "dashboard.html"))
	r.StaticFile("/report", filepath.Join(cfg.WebDir, "report.html"))
	r.StaticFile("/settings", filepath.Join(cfg.WebDir, "settings.html"))

	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/analyze", s.analyze)
		api.GET("/portfolio", s.portfolio)
		api.GET("/watchlist", s.watchlistGet)
		api.POST("/watchlist", s.watchlistAdd)
		api.GET("/settings", s.settingsGet)
		api.POST("/settings", s.settingsSet)
		api.POST("/test-telegram", s.testTelegram)
		api.GET("/news", s.headlines)
	}

	s.router = r
	return s
}

// Handler exposes the router for net/http servers and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestID tags every request with a correlation id.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// corsHeaders applies the permissive policy the web UI relies on.
func corsHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info(c.Request.Context(), "HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", c.GetString("request_id"))
	}
}
