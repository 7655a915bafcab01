package store

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// readJSON loads a JSON document into v; a missing or malformed file means
// "start from empty" and leaves v untouched.
func readJSON(path string, v interface{}) {
	b, err := os.ReadFile(path)
	if err != nil {
		return
	}
	_ = json.Unmarshal(b, v)
}

// writeJSON rewrites the document wholesale via a temp file and rename, so
// readers never observe a partial write.
func writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
