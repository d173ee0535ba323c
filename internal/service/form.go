package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"realty/internal/model"
	"realty/internal/schema"
)

// maxListedChoices bounds how many allowed values an error message shows
const maxListedChoices = 8

// SchemaProvider serves the expected columns and form schema
type SchemaProvider interface {
	ExpectedColumns() ([]string, error)
	AllowedValues() (map[string][]string, error)
	NumericHints() (map[string]model.NumericHint, error)
}

// FormValidator turns raw form fields into a feature record
type FormValidator struct {
	schema SchemaProvider
}

// NewFormValidator creates a new form validator
func NewFormValidator(schema SchemaProvider) *FormValidator {
	return &FormValidator{schema: schema}
}

// Validate checks every field and returns the record with all problems
// found. The record always has the expected columns in order, even when
// problems are reported; callers must not run inference in that case.
// The error is non-nil only when the schema itself cannot be loaded.
func (v *FormValidator) Validate(fields map[string]string) (model.FeatureRecord, []string, error) {
	columns, err := v.schema.ExpectedColumns()
	if err != nil {
		return model.FeatureRecord{}, nil, err
	}
	allowed, err := v.schema.AllowedValues()
	if err != nil {
		return model.FeatureRecord{}, nil, err
	}
	hints, err := v.schema.NumericHints()
	if err != nil {
		return model.FeatureRecord{}, nil, err
	}

	clean := make(map[string]any, len(schema.NumericFields)+len(schema.CategoricalFields))
	var problems []string

	for _, field := range schema.NumericFields {
		value := coerceNumeric(fields[field])
		if hint, ok := hints[field]; ok {
			if hint.Min != nil && value < *hint.Min {
				problems = append(problems, fmt.Sprintf("%s must be >= %g", field, *hint.Min))
			}
			if hint.Max != nil && value > *hint.Max {
				problems = append(problems, fmt.Sprintf("%s must be <= %g", field, *hint.Max))
			}
		}
		clean[schema.ColumnName(field)] = value
	}

	for _, field := range schema.CategoricalFields {
		value := strings.TrimSpace(fields[field])
		if choices := allowed[field]; len(choices) > 0 && !containsExact(choices, value) {
			problems = append(problems, choiceError(field, choices))
		}
		clean[schema.ColumnName(field)] = value
	}

	return reindex(clean, columns), problems, nil
}

// reindex lays values out in expected-column order. Absent categorical
// columns become "", every other absent column becomes 0.
func reindex(values map[string]any, columns []string) model.FeatureRecord {
	rec := model.FeatureRecord{
		Columns: append([]string(nil), columns...),
		Values:  make([]any, len(columns)),
	}
	for i, col := range columns {
		if v, ok := values[col]; ok {
			rec.Values[i] = v
			continue
		}
		if schema.IsCategoricalColumn(col) {
			rec.Values[i] = ""
		} else {
			rec.Values[i] = 0.0
		}
	}
	return rec
}

// coerceNumeric parses a form value, mapping blank, garbage and non-finite
// input to zero
func coerceNumeric(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func containsExact(list []string, value string) bool {
	for _, s := range list {
		if s == value {
			return true
		}
	}
	return false
}

func choiceError(field string, choices []string) string {
	shown := choices
	suffix := ""
	if len(shown) > maxListedChoices {
		shown = shown[:maxListedChoices]
		suffix = ", ..."
	}
	return fmt.Sprintf("%s must be one of: %s%s", field, strings.Join(shown, ", "), suffix)
}
