package model

// FeatureRecord is one row of named feature values handed to the model.
// Columns and Values are parallel and follow the expected-columns order.
// Numeric values are float64, categorical values are string.
type FeatureRecord struct {
	Columns []string
	Values  []any
}

// Get returns the value for a column
func (r FeatureRecord) Get(column string) (any, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i], true
		}
	}
	return nil, false
}

// Map returns the record as a column -> value map
func (r FeatureRecord) Map() map[string]any {
	m := make(map[string]any, len(r.Columns))
	for i, c := range r.Columns {
		m[c] = r.Values[i]
	}
	return m
}

// PriceBreakdown holds a price rendered in every denomination
type PriceBreakdown struct {
	INR   string `json:"inr"`
	Lakh  string `json:"lakh"`
	Crore string `json:"crore"`
}

// PredictionResult is the outcome of one successful inference request
type PredictionResult struct {
	ID        string         `json:"id"`
	Display   string         `json:"display"`
	Breakdown PriceBreakdown `json:"breakdown"`
	// Crore is the raw model output
	Crore float64 `json:"crore_value"`
}

// PredictResponse is returned by the predict endpoint
type PredictResponse struct {
	Result *PredictionResult `json:"result,omitempty"`
	Errors []string          `json:"errors,omitempty"`
}

// NumericHint bounds a numeric form field. Nil means unset.
type NumericHint struct {
	Min  *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max  *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Step *float64 `json:"step,omitempty" yaml:"step,omitempty"`
}

// SchemaResponse describes the prediction form
type SchemaResponse struct {
	ExpectedColumns []string               `json:"expected_columns"`
	AllowedValues   map[string][]string    `json:"allowed_values"`
	NumericHints    map[string]NumericHint `json:"numeric_hints"`
}
