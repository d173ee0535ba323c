package utils

import (
	"strings"
)

// NormalizeName lowercases and trims a column or field name
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CompactName normalizes a name and removes spaces and underscores, so that
// "built_up_area", "builtup area" and "BuiltUpArea" compare equal
func CompactName(name string) string {
	s := NormalizeName(name)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// MatchColumn finds the column that best matches one of the aliases.
// Aliases are tried in priority order. The first pass compares names
// case-insensitively; the second pass compares compacted names.
// Returns the column exactly as it appears in columns.
func MatchColumn(columns []string, aliases []string) (string, bool) {
	// Exact match
	for _, alias := range aliases {
		want := NormalizeName(alias)
		for _, col := range columns {
			if NormalizeName(col) == want {
				return col, true
			}
		}
	}

	// Relaxed match
	for _, alias := range aliases {
		want := CompactName(alias)
		if want == "" {
			continue
		}
		for _, col := range columns {
			if CompactName(col) == want {
				return col, true
			}
		}
	}

	return "", false
}

// ContainsName reports whether names contains target, ignoring case and
// surrounding whitespace
func ContainsName(names []string, target string) bool {
	want := NormalizeName(target)
	for _, n := range names {
		if NormalizeName(n) == want {
			return true
		}
	}
	return false
}
