package store

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// maxWatchlist caps the persisted watchlist.
const maxWatchlist = 200

// Watchlist is the ordered list of watched entity names, newest first,
// unique case-insensitively. Same dedup/cap/rewrite discipline as the
// result store.
type Watchlist struct {
	mu   sync.Mutex
	path string
}

// NewWatchlist creates a watchlist store under dataDir.
func NewWatchlist(dataDir string) *Watchlist {
	return &Watchlist{path: filepath.Join(dataDir, "watchlist.json")}
}

// Ensure seeds an empty watchlist file if none exists yet.
func (w *Watchlist) Ensure() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := os.Stat(w.path); err == nil {
		return nil
	}
	return writeJSON(w.path, []string{})
}

// List returns the watched entities, newest first.
func (w *Watchlist) List() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.load()
}

// Add prepends entity, dropping any case-insensitive duplicate, and returns
// the updated list.
func (w *Watchlist) Add(entity string) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	items := w.load()
	key := strings.ToLower(entity)
	kept := make([]string, 0, len(items)+1)
	kept = append(kept, entity)
	for _, item := range items {
		if strings.ToLower(item) == key {
			continue
		}
		kept = append(kept, item)
	}
	if len(kept) > maxWatchlist {
		kept = kept[:maxWatchlist]
	}
	if err := writeJSON(w.path, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (w *Watchlist) load() []string {
	items := []string{}
	readJSON(w.path, &items)
	return items
}
