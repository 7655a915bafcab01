package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"investai/internal/auditlog"
	"investai/internal/financial"
	"investai/internal/founder"
	"investai/internal/logger"
	"investai/internal/news"
	"investai/internal/research"
	"investai/internal/social"
	"investai/internal/store"
)

// initializeSystem loads the environment, initializes logging and compacts
// old audit journals.
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if v := os.Getenv("INVESTAI_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		if err := auditlog.CompressOlder(n); err != nil {
			logger.Warn(context.Background(), "Failed to compress old audit logs", "error", err)
		}
	}
	return nil
}

// initializeStores creates the persistence layer and seeds missing files.
func initializeStores(ctx context.Context, cfg *store.Config) (*store.ResultStore, *store.Watchlist, *store.SettingsStore, error) {
	results := store.NewResultStore(cfg.DataDir)
	watchlist := store.NewWatchlist(cfg.DataDir)
	settings := store.NewSettingsStore(cfg.DataDir)

	for _, ensure := range []func() error{results.Ensure, watchlist.Ensure, settings.Ensure} {
		if err := ensure(); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to seed storage: %w", err)
		}
	}
	logger.Info(ctx, "Storage ready", "data_dir", cfg.DataDir)
	return results, watchlist, settings, nil
}

// initializeEngine wires the three resolvers to the live settings and the
// result store.
func initializeEngine(settings *store.SettingsStore, results *store.ResultStore) *research.Engine {
	financialResolver := financial.NewResolver(func() string {
		return settings.Load().CoingeckoAPIKey
	})
	founderResolver := founder.NewResolver()
	socialResolver := social.NewResolver(func() social.RedditCredentials {
		s := settings.Load()
		return social.RedditCredentials{
			ClientID:     s.RedditClientID,
			ClientSecret: s.RedditClientSecret,
			UserAgent:    s.RedditUserAgent,
		}
	})

	return research.New(financialResolver, founderResolver, socialResolver, results, func() bool {
		return settings.Load().DemoMode
	})
}

// initializeScraper builds the headline scraper when enabled.
func initializeScraper(cfg *store.Config) *news.Scraper {
	if !cfg.News.Enabled {
		return nil
	}
	return news.NewScraper(time.Duration(cfg.News.TimeoutSeconds)*time.Second, cfg.News.MaxHeadlines)
}
