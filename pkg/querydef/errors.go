package querydef

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrQueryNotFound is returned when a query name is not defined.
	ErrQueryNotFound = errors.New("querydef: query not found")

	// ErrInvalidDefinition is returned for structurally invalid definitions,
	// such as a node with no key or more than one key set.
	ErrInvalidDefinition = errors.New("querydef: invalid definition")
)

// NotFoundError reports an unknown query name.
type NotFoundError struct {
	Name      string
	Available []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %q (available: %s)", ErrQueryNotFound, e.Name, strings.Join(e.Available, ", "))
}

func (e *NotFoundError) Unwrap() error { return ErrQueryNotFound }

// DefinitionError reports an invalid node. Path locates the node inside the
// query, e.g. "where.and[1].eq".
type DefinitionError struct {
	Path   string
	Reason string
}

func (e *DefinitionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidDefinition, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidDefinition, e.Path, e.Reason)
}

func (e *DefinitionError) Unwrap() error { return ErrInvalidDefinition }

func invalid(path, format string, args ...any) error {
	return &DefinitionError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
