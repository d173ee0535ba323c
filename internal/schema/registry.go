package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"realty/internal/model"
	"realty/internal/utils"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// examplesDocument is the optional form schema exported next to the model
type examplesDocument struct {
	CategoricalValues map[string][]any             `json:"categorical_values" yaml:"categorical_values"`
	NumericHints      map[string]model.NumericHint `json:"numeric_hints" yaml:"numeric_hints"`
}

// Registry loads the expected feature columns and the form schema once and
// serves them read-only afterwards
type Registry struct {
	columnsPath  string
	examplesPath string

	once    sync.Once
	err     error
	columns []string
	allowed map[string][]string
	hints   map[string]model.NumericHint
}

// NewRegistry creates a registry reading from the given files. Nothing is
// read until the first accessor call or Load.
func NewRegistry(columnsPath, examplesPath string) *Registry {
	return &Registry{
		columnsPath:  columnsPath,
		examplesPath: examplesPath,
	}
}

// Load populates the registry. It is safe to call repeatedly; only the first
// call reads from disk and every call returns the same error.
func (r *Registry) Load() error {
	r.once.Do(r.load)
	return r.err
}

// ExpectedColumns returns the model's feature columns in training order
func (r *Registry) ExpectedColumns() ([]string, error) {
	if err := r.Load(); err != nil {
		return nil, err
	}
	return append([]string(nil), r.columns...), nil
}

// AllowedValues returns the permitted values per categorical field
func (r *Registry) AllowedValues() (map[string][]string, error) {
	if err := r.Load(); err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(r.allowed))
	for k, v := range r.allowed {
		out[k] = append([]string(nil), v...)
	}
	return out, nil
}

// NumericHints returns min/max/step per numeric field
func (r *Registry) NumericHints() (map[string]model.NumericHint, error) {
	if err := r.Load(); err != nil {
		return nil, err
	}
	out := make(map[string]model.NumericHint, len(r.hints))
	for k, v := range r.hints {
		out[k] = v
	}
	return out, nil
}

// CheckCompatibility verifies that every required training column is in
// the expected-columns list
func (r *Registry) CheckCompatibility() error {
	columns, err := r.ExpectedColumns()
	if err != nil {
		return err
	}
	return CheckColumns(columns)
}

// CheckColumns returns a *MismatchError listing, sorted, every required
// column absent from columns
func CheckColumns(columns []string) error {
	have := make(map[string]bool, len(columns))
	for _, c := range columns {
		have[c] = true
	}
	var missing []string
	for _, c := range RequiredColumns {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &MismatchError{Missing: missing}
	}
	return nil
}

func (r *Registry) load() {
	columns, err := readColumns(r.columnsPath)
	if err != nil {
		r.err = &LoadError{Path: r.columnsPath, Err: err}
		log.Error().Err(err).Str("path", r.columnsPath).Msg("Failed to load expected columns")
		return
	}
	r.columns = columns

	r.allowed = defaultAllowedValues()
	r.hints = defaultNumericHints()

	if r.examplesPath == "" {
		return
	}
	doc, err := readExamples(r.examplesPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info().Str("path", r.examplesPath).Msg("No examples document, using default form schema")
		} else {
			log.Warn().Err(err).Str("path", r.examplesPath).Msg("Ignoring unreadable examples document")
		}
	} else {
		mergeAllowed(r.allowed, doc.CategoricalValues)
		mergeHints(r.hints, doc.NumericHints)
	}

	log.Info().
		Int("columns", len(r.columns)).
		Int("categorical_fields", len(r.allowed)).
		Int("numeric_fields", len(r.hints)).
		Msg("Schema loaded")
}

func readColumns(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var columns []string
	if err := utils.ParseLenientJSON(data, &columns); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("expected columns list is empty")
	}
	return columns, nil
}

func readExamples(path string) (*examplesDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc examplesDocument
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = utils.ParseLenientJSON(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("decode examples document: %w", err)
	}
	return &doc, nil
}

// mergeAllowed replaces a field's list when the document provides one
func mergeAllowed(dst map[string][]string, loaded map[string][]any) {
	for field, values := range loaded {
		list := make([]string, 0, len(values))
		for _, v := range values {
			if v == nil {
				continue
			}
			list = append(list, strings.TrimSpace(fmt.Sprint(v)))
		}
		dst[field] = list
	}
}

// mergeHints overrides defaults per field and per sub-key; sub-keys the
// document leaves unset keep their default
func mergeHints(dst map[string]model.NumericHint, loaded map[string]model.NumericHint) {
	for field, h := range loaded {
		merged := dst[field]
		if h.Min != nil {
			merged.Min = h.Min
		}
		if h.Max != nil {
			merged.Max = h.Max
		}
		if h.Step != nil {
			merged.Step = h.Step
		}
		dst[field] = merged
	}
}
