package repository

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError reports a dataset absent from every candidate directory
type NotFoundError struct {
	Name       string
	Candidates []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find %s in: %s", e.Name, strings.Join(e.Candidates, ", "))
}

// IsNotFound reports whether err is, or wraps, a *NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
