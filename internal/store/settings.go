package store

import (
	"os"
	"path/filepath"
	"sync"
)

// Settings is the runtime-mutable settings document. Absent credentials are
// not an error: they just disable the authenticated social provider or the
// Telegram notifier.
type Settings struct {
	DemoMode           bool   `json:"demo_mode"`
	CoingeckoAPIKey    string `json:"coingecko_api_key"`
	RedditClientID     string `json:"reddit_client_id"`
	RedditClientSecret string `json:"reddit_client_secret"`
	RedditUserAgent    string `json:"reddit_user_agent"`
	TelegramBotToken   string `json:"telegram_bot_token"`
	TelegramChatID     string `json:"telegram_chat_id"`
}

// SettingsPatch is a partial settings update; nil fields are left unchanged.
type SettingsPatch struct {
	DemoMode           *bool   `json:"demo_mode"`
	CoingeckoAPIKey    *string `json:"coingecko_api_key"`
	RedditClientID     *string `json:"reddit_client_id"`
	RedditClientSecret *string `json:"reddit_client_secret"`
	RedditUserAgent    *string `json:"reddit_user_agent"`
	TelegramBotToken   *string `json:"telegram_bot_token"`
	TelegramChatID     *string `json:"telegram_chat_id"`
}

func defaultSettings() Settings {
	return Settings{RedditUserAgent: "InvestAI/1.0"}
}

// SettingsStore persists the settings document as JSON.
type SettingsStore struct {
	mu   sync.Mutex
	path string
}

// NewSettingsStore creates a settings store under dataDir.
func NewSettingsStore(dataDir string) *SettingsStore {
	return &SettingsStore{path: filepath.Join(dataDir, "settings.json")}
}

// Ensure seeds the settings file with defaults if it does not exist yet.
func (s *SettingsStore) Ensure() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(s.path); err == nil {
		return nil
	}
	return writeJSON(s.path, defaultSettings())
}

// Load reads the current settings; missing or malformed files yield defaults.
func (s *SettingsStore) Load() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings := defaultSettings()
	readJSON(s.path, &settings)
	return settings
}

// Update merges a partial update into the stored settings and returns the
// merged document.
func (s *SettingsStore) Update(patch SettingsPatch) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := defaultSettings()
	readJSON(s.path, &settings)

	if patch.DemoMode != nil {
		settings.DemoMode = *patch.DemoMode
	}
	if patch.CoingeckoAPIKey != nil {
		settings.CoingeckoAPIKey = *patch.CoingeckoAPIKey
	}
	if patch.RedditClientID != nil {
		settings.RedditClientID = *patch.RedditClientID
	}
	if patch.RedditClientSecret != nil {
		settings.RedditClientSecret = *patch.RedditClientSecret
	}
	if patch.RedditUserAgent != nil {
		settings.RedditUserAgent = *patch.RedditUserAgent
	}
	if patch.TelegramBotToken != nil {
		settings.TelegramBotToken = *patch.TelegramBotToken
	}
	if patch.TelegramChatID != nil {
		settings.TelegramChatID = *patch.TelegramChatID
	}

	if err := writeJSON(s.path, settings); err != nil {
		return settings, err
	}
	return settings, nil
}
