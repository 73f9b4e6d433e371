package store

import (
	"errors"
	"fmt"
)

// NotFoundError reports a missing entity, or one that is not a child of the expected parent.
type NotFoundError struct {
	Kind   string
	ID     string
	Parent string
}

func (e NotFoundError) Error() string {
	if e.Parent != "" {
		return fmt.Sprintf("%s not found: %s (in %s)", e.Kind, e.ID, e.Parent)
	}
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

var (
	ErrNoSelection     = errors.New("no current selection")
	ErrDependencyCycle = errors.New("dependency would create a cycle")
)

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
