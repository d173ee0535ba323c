package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullColumns = `["property_type", "sector", "bedRoom", "bathroom", "balcony", "agePossession",
 "built_up_area", "servant room", "store room", "furnishing_type", "luxury_category", "floor_category"]`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRegistry_DefaultsWithoutExamples(t *testing.T) {
	dir := t.TempDir()
	cols := writeFile(t, dir, "expected_columns.json", fullColumns)

	r := NewRegistry(cols, filepath.Join(dir, "missing.json"))
	columns, err := r.ExpectedColumns()
	require.NoError(t, err)
	assert.Len(t, columns, 12)
	assert.Equal(t, "property_type", columns[0])

	allowed, err := r.AllowedValues()
	require.NoError(t, err)
	assert.Equal(t, []string{"flat", "house"}, allowed[FieldPropertyType])
	assert.Empty(t, allowed[FieldSector])

	hints, err := r.NumericHints()
	require.NoError(t, err)
	require.NotNil(t, hints[FieldBedroom].Min)
	assert.Equal(t, 1.0, *hints[FieldBedroom].Min)
	assert.Equal(t, 20000.0, *hints[FieldArea].Max)
}

func TestRegistry_MergesExamplesDocument(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		contents string
	}{
		{
			name: "json with notebook quirks",
			file: "form_examples.json",
			contents: `{
  "categorical_values": {"sector": ["sector 45", "sohna road",], "balcony": [0, 1, "3+"]},
  "numeric_hints": {"bedRoom": {"max": 6, "step": NaN}, "built_up_area": {"min": 100}},
}`,
		},
		{
			name: "yaml",
			file: "form_examples.yaml",
			contents: `categorical_values:
  sector: ["sector 45", "sohna road"]
  balcony: [0, 1, "3+"]
numeric_hints:
  bedRoom:
    max: 6
  built_up_area:
    min: 100
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			cols := writeFile(t, dir, "expected_columns.json", fullColumns)
			examples := writeFile(t, dir, tt.file, tt.contents)

			r := NewRegistry(cols, examples)
			allowed, err := r.AllowedValues()
			require.NoError(t, err)
			assert.Equal(t, []string{"sector 45", "sohna road"}, allowed[FieldSector])
			assert.Equal(t, []string{"0", "1", "3+"}, allowed[FieldBalcony])
			// untouched fields keep defaults
			assert.Equal(t, []string{"Low", "Medium", "High"}, allowed[FieldLuxury])

			hints, err := r.NumericHints()
			require.NoError(t, err)
			// loaded sub-key wins, missing sub-keys come from defaults
			assert.Equal(t, 6.0, *hints[FieldBedroom].Max)
			assert.Equal(t, 1.0, *hints[FieldBedroom].Min)
			assert.Equal(t, 1.0, *hints[FieldBedroom].Step)
			assert.Equal(t, 100.0, *hints[FieldArea].Min)
			assert.Equal(t, 20000.0, *hints[FieldArea].Max)
		})
	}
}

func TestRegistry_MalformedExamplesFallsBack(t *testing.T) {
	dir := t.TempDir()
	cols := writeFile(t, dir, "expected_columns.json", fullColumns)
	examples := writeFile(t, dir, "form_examples.json", "{not json")

	r := NewRegistry(cols, examples)
	allowed, err := r.AllowedValues()
	require.NoError(t, err)
	assert.Equal(t, []string{"flat", "house"}, allowed[FieldPropertyType])
}

func TestRegistry_LoadError(t *testing.T) {
	dir := t.TempDir()
	r := NewRegistry(filepath.Join(dir, "expected_columns.json"), "")

	_, err := r.ExpectedColumns()
	require.Error(t, err)
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, filepath.Join(dir, "expected_columns.json"), loadErr.Path)

	// cached: the same error is returned again
	assert.Equal(t, err, r.Load())
	_, err = r.NumericHints()
	assert.Error(t, err)
}

func TestRegistry_ReturnsCopies(t *testing.T) {
	dir := t.TempDir()
	r := NewRegistry(writeFile(t, dir, "c.json", fullColumns), "")

	columns, err := r.ExpectedColumns()
	require.NoError(t, err)
	columns[0] = "mutated"

	again, err := r.ExpectedColumns()
	require.NoError(t, err)
	assert.Equal(t, "property_type", again[0])
}

func TestCheckCompatibility(t *testing.T) {
	t.Run("superset passes", func(t *testing.T) {
		dir := t.TempDir()
		r := NewRegistry(writeFile(t, dir, "c.json", fullColumns), "")
		assert.NoError(t, r.CheckCompatibility())
	})

	t.Run("missing columns listed sorted", func(t *testing.T) {
		dir := t.TempDir()
		r := NewRegistry(writeFile(t, dir, "c.json",
			`["property_type", "sector", "bedRoom", "bathroom", "balcony", "agePossession",
			  "built_up_area", "servant_room", "furnishing_type", "luxury_category", "floor_category"]`), "")

		err := r.CheckCompatibility()
		var mismatch *MismatchError
		require.True(t, errors.As(err, &mismatch))
		assert.Equal(t, []string{"servant room", "store room"}, mismatch.Missing)
		assert.Contains(t, err.Error(), "servant room")
	})
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "servant room", ColumnName("servant_room"))
	assert.Equal(t, "store room", ColumnName("store_room"))
	assert.Equal(t, "bedRoom", ColumnName("bedRoom"))
	assert.True(t, IsNumericColumn("servant room"))
	assert.False(t, IsNumericColumn("servant_room"))
	assert.True(t, IsCategoricalColumn("sector"))
}
