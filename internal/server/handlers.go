package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"investai/internal/auditlog"
	"investai/internal/logger"
	"investai/internal/research"
	"investai/internal/store"
	"investai/internal/types"
)

type analyzeResponse struct {
	types.ResearchResult
	TelegramSent bool `json:"telegram_sent"`
}

func (s *Server) health(c *gin.Context) {
	// reseed any storage file removed while the server is running
	for _, ensure := range []func() error{s.results.Ensure, s.watchlist.Ensure, s.settings.Ensure} {
		if err := ensure(); err != nil {
			logger.Warn(c.Request.Context(), "Storage ensure failed", "error", err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "app": "investai"})
}

func (s *Server) analyze(c *gin.Context) {
	entity := strings.TrimSpace(c.Query("entity"))
	if entity == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query parameter: entity"})
		return
	}

	ctx := c.Request.Context()
	result, err := s.engine.Analyze(ctx, entity, truthy(c.Query("demo_mode")))
	if err != nil {
		if errors.Is(err, research.ErrMissingEntity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Research failed: %v", err)})
		return
	}

	if err := auditlog.Append(auditlog.Entry{
		Entity:  result.Entity,
		Verdict: result.Verdict,
		Score:   result.Score,
		Mode:    result.Mode,
		Sources: map[string]string{
			"financials": result.Financials.Source,
			"founders":   result.Founders.Source,
			"social":     result.Social.Source,
		},
	}); err != nil {
		logger.Warn(ctx, "Failed to append audit entry", "entity", result.Entity, "error", err)
	}

	settings := s.settings.Load()
	notifier := s.notifierFactory(settings.TelegramBotToken, settings.TelegramChatID)
	sent := false
	if notifier.Active() {
		sent = notifier.SendResultCard(ctx, result)
	}

	c.JSON(http.StatusOK, analyzeResponse{ResearchResult: *result, TelegramSent: sent})
}

func (s *Server) portfolio(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": s.results.List()})
}

func (s *Server) watchlistGet(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"watchlist": s.watchlist.List()})
}

func (s *Server) watchlistAdd(c *gin.Context) {
	var payload struct {
		Entity string `json:"entity"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || strings.TrimSpace(payload.Entity) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing entity"})
		return
	}

	items, err := s.watchlist.Add(strings.TrimSpace(payload.Entity))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update watchlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"watchlist": items})
}

func (s *Server) settingsGet(c *gin.Context) {
	c.JSON(http.StatusOK, s.settings.Load())
}

func (s *Server) settingsSet(c *gin.Context) {
	var patch store.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	merged, err := s.settings.Update(patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}
	c.JSON(http.StatusOK, merged)
}

func (s *Server) testTelegram(c *gin.Context) {
	var payload struct {
		TelegramBotToken string `json:"telegram_bot_token"`
		TelegramChatID   string `json:"telegram_chat_id"`
	}
	_ = c.ShouldBindJSON(&payload)

	settings := s.settings.Load()
	token := payload.TelegramBotToken
	if token == "" {
		token = settings.TelegramBotToken
	}
	chatID := payload.TelegramChatID
	if chatID == "" {
		chatID = settings.TelegramChatID
	}

	notifier := s.notifierFactory(token, chatID)
	ok := false
	if notifier.Active() {
		ok = notifier.SendTest(c.Request.Context())
	}
	c.JSON(http.StatusOK, gin.H{"ok": ok, "active": notifier.Active()})
}

func (s *Server) headlines(c *gin.Context) {
	entity := strings.TrimSpace(c.Query("entity"))
	if entity == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query parameter: entity"})
		return
	}
	if s.scraper == nil || !s.cfg.News.Enabled {
		c.JSON(http.StatusOK, gin.H{"entity": entity, "headlines": []types.Headline{}})
		return
	}

	headlines, err := s.scraper.Headlines(c.Request.Context(), entity)
	if err != nil {
		logger.Warn(c.Request.Context(), "Headline scraping failed", "entity", entity, "error", err)
		headlines = []types.Headline{}
	}
	c.JSON(http.StatusOK, gin.H{"entity": entity, "headlines": headlines})
}

// truthy matches the flag forms the web UI sends.
func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
