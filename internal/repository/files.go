package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"realty/internal/dataset"
	"realty/internal/utils"

	"gopkg.in/yaml.v3"
)

// FileStore loads datasets located through a Locator
type FileStore struct {
	locator *Locator
}

// NewFileStore creates a new file-backed dataset store
func NewFileStore(locator *Locator) *FileStore {
	return &FileStore{locator: locator}
}

// Locator returns the store's locator
func (s *FileStore) Locator() *Locator {
	return s.locator
}

// LoadTable locates a dataset by logical name and reads it. A missing file
// yields a *NotFoundError.
func (s *FileStore) LoadTable(ctx context.Context, name string) (*dataset.Frame, error) {
	name, table := splitTableRef(name)
	path, err := s.locator.Locate(name)
	if err != nil {
		return nil, err
	}
	if table != "" {
		path += "#" + table
	}
	return ReadTable(ctx, path)
}

// LoadTextMap locates and reads a JSON or YAML object of sector -> text
func (s *FileStore) LoadTextMap(ctx context.Context, name string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.locator.Locate(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	raw := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = utils.ParseLenientJSON(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case nil:
			out[k] = ""
		case []any:
			parts := make([]string, 0, len(t))
			for _, p := range t {
				parts = append(parts, dataset.Cell(p))
			}
			out[k] = strings.Join(parts, " ")
		default:
			out[k] = dataset.Cell(t)
		}
	}
	return out, nil
}

// ReadTable reads a table file, choosing the format by extension:
// .csv, .tsv, .json, .db/.sqlite/.sqlite3. A SQLite path may name a table
// with a "#table" suffix.
func ReadTable(ctx context.Context, path string) (*dataset.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, table := splitTableRef(path)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".tsv", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		comma := ','
		if ext == ".tsv" {
			comma = '\t'
		}
		frame, err := dataset.ReadCSV(f, comma)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return frame, nil
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		frame, err := dataset.ReadJSON(data)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return frame, nil
	case ".db", ".sqlite", ".sqlite3":
		frame, err := readSQLite(ctx, path, table)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return frame, nil
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", ext)
	}
}

// splitTableRef separates an optional "#table" suffix
func splitTableRef(ref string) (string, string) {
	if i := strings.LastIndex(ref, "#"); i > 0 {
		return ref[:i], ref[i+1:]
	}
	return ref, ""
}
