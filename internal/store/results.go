package store

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"investai/internal/types"
)

// maxResults caps the persisted result history.
const maxResults = 250

// ResultStore is the bounded, deduplicated history of research outcomes,
// newest first, unique by case-insensitive entity. The whole sequence is
// rewritten on each insert.
type ResultStore struct {
	mu   sync.Mutex
	path string
}

// NewResultStore creates a result store under dataDir.
func NewResultStore(dataDir string) *ResultStore {
	return &ResultStore{path: filepath.Join(dataDir, "results.json")}
}

// Ensure seeds an empty results file if none exists yet.
func (s *ResultStore) Ensure() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(s.path); err == nil {
		return nil
	}
	return writeJSON(s.path, []types.ResearchResult{})
}

// List returns all stored results, newest first. A missing or corrupt file
// yields an empty list.
func (s *ResultStore) List() []types.ResearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Insert removes any prior entry for the same entity (case-insensitive),
// prepends result, truncates to the cap and flushes to disk.
func (s *ResultStore) Insert(result types.ResearchResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.load()
	key := strings.ToLower(result.Entity)
	kept := make([]types.ResearchResult, 0, len(rows)+1)
	kept = append(kept, result)
	for _, r := range rows {
		if strings.ToLower(r.Entity) == key {
			continue
		}
		kept = append(kept, r)
	}
	if len(kept) > maxResults {
		kept = kept[:maxResults]
	}
	return writeJSON(s.path, kept)
}

func (s *ResultStore) load() []types.ResearchResult {
	rows := []types.ResearchResult{}
	readJSON(s.path, &rows)
	return rows
}
