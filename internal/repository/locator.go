package repository

import (
	"os"
	"path/filepath"

	"realty/internal/metrics"

	"github.com/rs/zerolog/log"
)

// Built-in candidate directories, probed after any configured ones
const (
	StaticExportsDir = "app/static/exports"
	ExportedDataDir  = "exported_data"
)

// Locator finds dataset files by probing an ordered list of directories.
// Earlier directories always win.
type Locator struct {
	dirs    []string
	metrics *metrics.Metrics
}

// NewLocator builds the candidate list: exportDirs in order, then the static
// exports directory, the exported_data directory and finally the legacy
// dataset directory. Duplicates keep their first position.
func NewLocator(exportDirs []string, datasetDir string, m *metrics.Metrics) *Locator {
	seen := map[string]bool{}
	var dirs []string
	add := func(d string) {
		if d == "" {
			return
		}
		clean := filepath.Clean(d)
		if seen[clean] {
			return
		}
		seen[clean] = true
		dirs = append(dirs, clean)
	}
	for _, d := range exportDirs {
		add(d)
	}
	add(StaticExportsDir)
	add(ExportedDataDir)
	add(datasetDir)
	return &Locator{dirs: dirs, metrics: m}
}

// Dirs returns the candidate directories in probe order
func (l *Locator) Dirs() []string {
	return append([]string(nil), l.dirs...)
}

// Candidates returns every path probed for name
func (l *Locator) Candidates(name string) []string {
	if filepath.IsAbs(name) {
		return []string{name}
	}
	out := make([]string, 0, len(l.dirs))
	for _, d := range l.dirs {
		out = append(out, filepath.Join(d, name))
	}
	return out
}

// Locate returns the absolute path of the first candidate that exists as
// a regular file, or a *NotFoundError naming every candidate tried
func (l *Locator) Locate(name string) (string, error) {
	candidates := l.Candidates(name)
	for _, p := range candidates {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		l.metrics.ObserveLookup(name, true)
		return abs, nil
	}
	l.metrics.ObserveLookup(name, false)
	log.Warn().Str("name", name).Strs("candidates", candidates).Msg("Data source not found")
	return "", &NotFoundError{Name: name, Candidates: candidates}
}
