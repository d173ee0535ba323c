package schema

import (
	"fmt"
	"strings"
)

// LoadError reports that a required model artifact could not be read.
// It is fatal at startup.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// MismatchError lists the required training columns absent from the loaded
// expected-columns list
type MismatchError struct {
	Missing []string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("model is missing required columns: [%s]; update expected_columns.json or the form schema",
		strings.Join(e.Missing, ", "))
}
