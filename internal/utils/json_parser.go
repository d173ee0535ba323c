package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var trailingComma = regexp.MustCompile(`,\s*([}\]])`)

// ParseLenientJSON decodes JSON written by notebook tooling, which may contain:
// - a UTF-8 byte order mark
// - bare NaN / Infinity / -Infinity literals (Python's json.dump default)
// - trailing commas before a closing brace or bracket
func ParseLenientJSON(input []byte, target interface{}) error {
	if len(input) == 0 {
		return fmt.Errorf("empty input")
	}

	// Try direct parsing first (most common case)
	if err := json.Unmarshal(input, target); err == nil {
		return nil
	}

	cleaned := cleanNotebookJSON(string(input))
	if err := json.Unmarshal([]byte(cleaned), target); err != nil {
		return fmt.Errorf("failed to parse JSON: %w (input: %s)", err, truncateString(cleaned, 100))
	}
	return nil
}

// cleanNotebookJSON rewrites the non-standard constructs listed on ParseLenientJSON
func cleanNotebookJSON(input string) string {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "\ufeff")
	s = replaceNonFinite(s)
	s = trailingComma.ReplaceAllString(s, "$1")
	return s
}

// replaceNonFinite swaps NaN and Infinity literals outside of strings for null
func replaceNonFinite(input string) string {
	var result strings.Builder
	result.Grow(len(input))
	inString := false
	escape := false

	for i := 0; i < len(input); i++ {
		ch := input[i]
		if escape {
			result.WriteByte(ch)
			escape = false
			continue
		}
		if inString {
			if ch == '\\' {
				escape = true
			} else if ch == '"' {
				inString = false
			}
			result.WriteByte(ch)
			continue
		}
		if ch == '"' {
			inString = true
			result.WriteByte(ch)
			continue
		}

		rest := input[i:]
		switch {
		case strings.HasPrefix(rest, "-Infinity"):
			result.WriteString("null")
			i += len("-Infinity") - 1
		case strings.HasPrefix(rest, "Infinity"):
			result.WriteString("null")
			i += len("Infinity") - 1
		case strings.HasPrefix(rest, "NaN"):
			result.WriteString("null")
			i += len("NaN") - 1
		default:
			result.WriteByte(ch)
		}
	}

	return result.String()
}

// truncateString truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
