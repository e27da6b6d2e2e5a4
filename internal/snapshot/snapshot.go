// Package snapshot persists the daily brief as a single JSON document,
// replacing any prior run's output wholesale.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samachar-desk/daily-brief/internal/domain"
)

// Writer serializes briefs to a fixed output path.
type Writer struct {
	path string
}

// NewWriter builds a writer for the given output path.
func NewWriter(path string) (*Writer, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot path must not be empty")
	}
	return &Writer{path: path}, nil
}

// Path returns the configured output path.
func (w *Writer) Path() string { return w.path }

// Write creates the output directory if absent and overwrites the snapshot
// file with the pretty-printed, UTF-8-preserving JSON encoding of the brief.
func (w *Writer) Write(brief domain.Brief) error {
	dir := filepath.Dir(w.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(brief); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}
