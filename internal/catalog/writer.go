package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteJSON encodes the catalog as two-space indented JSON. Output depends
// only on the catalog content.
func WriteJSON(w io.Writer, cat *Catalog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(cat); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return nil
}

// SaveJSON writes the catalog to path, creating parent directories. The file
// is written in full or not replaced at all.
func SaveJSON(path string, cat *Catalog) error {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, cat); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil { // #nosec G306 - Catalog is public data
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}

// LoadJSON reads a catalog written by SaveJSON.
func LoadJSON(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) // #nosec G304 - Catalog path is user-specified
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return &cat, nil
}
