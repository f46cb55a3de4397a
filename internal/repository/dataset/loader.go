// Package dataset loads the knowledge-base JSON document from disk.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Loader reads the knowledge-base document. The document is consumed as one
// value at seeding time; there is no incremental-update path — changing the
// file requires a full re-flatten-and-upsert cycle.
type Loader struct {
	path string
}

// New creates a dataset loader for the given file path.
func New(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and decodes the document. The returned value is the generic
// encoding/json representation (map[string]any / []any / scalars).
func (l *Loader) Load() (any, error) {
	data, err := os.ReadFile(filepath.Clean(l.path))
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", l.path, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", l.path, err)
	}
	return doc, nil
}
