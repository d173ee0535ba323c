package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLenientJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]interface{}
		wantErr bool
	}{
		{
			name:  "Pure JSON",
			input: `{"name": "flat", "count": 30}`,
			want: map[string]interface{}{
				"name":  "flat",
				"count": float64(30),
			},
		},
		{
			name:  "Byte order mark",
			input: "\ufeff{\"name\": \"house\"}",
			want: map[string]interface{}{
				"name": "house",
			},
		},
		{
			name:  "NaN and Infinity literals",
			input: `{"min": NaN, "max": Infinity, "low": -Infinity}`,
			want: map[string]interface{}{
				"min": nil,
				"max": nil,
				"low": nil,
			},
		},
		{
			name:  "NaN inside a string is preserved",
			input: `{"label": "NaN rows", "v": NaN,}`,
			want: map[string]interface{}{
				"label": "NaN rows",
				"v":     nil,
			},
		},
		{
			name:  "Trailing comma",
			input: `{"levels": ["Low", "High",],}`,
			want: map[string]interface{}{
				"levels": []interface{}{"Low", "High"},
			},
		},
		{
			name:    "Empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "Invalid JSON",
			input:   "not json at all",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]interface{}
			err := ParseLenientJSON([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReplaceNonFinite_EscapedQuotes(t *testing.T) {
	in := `{"a": "say \"NaN\"", "b": NaN}`
	assert.Equal(t, `{"a": "say \"NaN\"", "b": null}`, replaceNonFinite(in))
}
