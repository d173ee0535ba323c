package service

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"realty/internal/model"
	"realty/internal/schema"
	"realty/internal/utils"

	"github.com/rs/zerolog/log"
)

// Predictor runs the trained price model on one feature record and
// returns the prediction in crore
type Predictor interface {
	Predict(ctx context.Context, rec model.FeatureRecord) (float64, error)
}

// Unknown category handling of a LinearModel
const (
	HandleUnknownError  = "error"
	HandleUnknownIgnore = "ignore"
)

// LinearModel is a regression exported as JSON: an intercept, one
// coefficient per numeric column and one per (categorical column, level).
type LinearModel struct {
	Intercept   float64                       `json:"intercept"`
	Numeric     map[string]float64            `json:"numeric"`
	Categorical map[string]map[string]float64 `json:"categorical"`
	// TargetTransform "log1p" means the model was fit on log1p(price)
	TargetTransform string `json:"target_transform"`
	HandleUnknown   string `json:"handle_unknown"`
}

// LoadLinearModel reads a model artifact
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m LinearModel
	if err := utils.ParseLenientJSON(data, &m); err != nil {
		return nil, err
	}
	if len(m.Numeric) == 0 && len(m.Categorical) == 0 {
		return nil, fmt.Errorf("model has no coefficients")
	}
	switch m.TargetTransform {
	case "", "none", "log1p":
	default:
		return nil, fmt.Errorf("unsupported target_transform %q", m.TargetTransform)
	}
	if m.HandleUnknown == "" {
		m.HandleUnknown = HandleUnknownError
	}
	return &m, nil
}

// Columns returns every feature the model reads, sorted
func (m *LinearModel) Columns() []string {
	cols := make([]string, 0, len(m.Numeric)+len(m.Categorical))
	for c := range m.Numeric {
		cols = append(cols, c)
	}
	for c := range m.Categorical {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

// Predict evaluates the model
func (m *LinearModel) Predict(_ context.Context, rec model.FeatureRecord) (float64, error) {
	values := rec.Map()
	y := m.Intercept

	for col, coef := range m.Numeric {
		raw, ok := values[col]
		if !ok {
			return 0, fmt.Errorf("missing feature column %q", col)
		}
		x, err := toFloat(raw)
		if err != nil {
			return 0, fmt.Errorf("column %q: %w", col, err)
		}
		y += coef * x
	}

	for col, levels := range m.Categorical {
		raw, ok := values[col]
		if !ok {
			return 0, fmt.Errorf("missing feature column %q", col)
		}
		level := strings.TrimSpace(fmt.Sprint(raw))
		coef, ok := levels[level]
		if !ok {
			if m.HandleUnknown == HandleUnknownIgnore {
				continue
			}
			return 0, fmt.Errorf("found unknown category %q in column %q", level, col)
		}
		y += coef
	}

	if m.TargetTransform == "log1p" {
		y = math.Expm1(y)
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, fmt.Errorf("model produced a non-finite value")
	}
	return y, nil
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", t)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}

// ModelStore loads the local model artifact on first use and keeps it for
// the life of the process
type ModelStore struct {
	path  string
	once  sync.Once
	model *LinearModel
	err   error
}

// NewModelStore creates a store for the artifact at path
func NewModelStore(path string) *ModelStore {
	return &ModelStore{path: path}
}

// Load reads the artifact once. A failure is a *schema.LoadError.
func (s *ModelStore) Load() error {
	s.once.Do(func() {
		m, err := LoadLinearModel(s.path)
		if err != nil {
			s.err = &schema.LoadError{Path: s.path, Err: err}
			log.Error().Err(err).Str("path", s.path).Msg("Failed to load model")
			return
		}
		s.model = m
		log.Info().
			Str("path", s.path).
			Int("features", len(m.Columns())).
			Str("target_transform", m.TargetTransform).
			Msg("Model loaded")
	})
	return s.err
}

// Predict loads the model if needed and evaluates it
func (s *ModelStore) Predict(ctx context.Context, rec model.FeatureRecord) (float64, error) {
	if err := s.Load(); err != nil {
		return 0, err
	}
	return s.model.Predict(ctx, rec)
}

var (
	_ Predictor = (*LinearModel)(nil)
	_ Predictor = (*ModelStore)(nil)
)
