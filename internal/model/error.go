package model

import "fmt"

// ShapeError reports a malformed schema: a bad dimension reference, an
// illegal constant or an unresolvable type.
type ShapeError struct {
	Message string
	Path    string
}

func (e *ShapeError) Error() string {
	if e.Path == "" {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func ShapeErrorf(path string, format string, args ...any) *ShapeError {
	return &ShapeError{
		Message: fmt.Sprintf(format, args...),
		Path:    path,
	}
}
