// Package meta reads the JSON metadata that labels each embedding row.
package meta

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"embview/internal/domain"
)

// Loader reads labels from a JSON array of objects. The label of row i is
// the entry's "filename" field when present, otherwise a placeholder
// built from the row index.
type Loader struct{}

func NewLoader() *Loader { return &Loader{} }

// Load parses the metadata file and returns exactly expected labels, one
// per embedding row in stored order.
func (l *Loader) Load(path string, expected int) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("read metadata %s: %w", path, err)
	}

	var entries []map[string]any
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse metadata %s: %w", path, err)
	}
	if len(entries) != expected {
		return nil, fmt.Errorf("%w: metadata count %d does not match embeddings %d",
			domain.ErrCountMismatch, len(entries), expected)
	}

	labels := make([]string, len(entries))
	for i, entry := range entries {
		labels[i] = labelOf(entry, i)
	}
	return labels, nil
}

// labelOf coerces the filename field to text, falling back to the
// positional placeholder for absent or null values.
func labelOf(entry map[string]any, idx int) string {
	v, ok := entry["filename"]
	if !ok || v == nil {
		return fmt.Sprintf("item %d", idx)
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
