package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument signals malformed caller input (id, version, filter, pagination).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound signals a well-formed request that matched zero documents.
	ErrNotFound = errors.New("not found")
	// ErrDependencyFailure signals an unreachable or failing store or filter cache.
	ErrDependencyFailure = errors.New("dependency failure")
)

// MissingResourcesError wraps ErrNotFound with the ids a batch request could not resolve.
type MissingResourcesError struct {
	IDs []string
}

func (e *MissingResourcesError) Error() string {
	return fmt.Sprintf(
		"the following requested resources were not found: %s",
		strings.Join(e.IDs, ", "),
	)
}

func (e *MissingResourcesError) Unwrap() error { return ErrNotFound }

// NewMissingResources creates a batch resolution error for the given missing ids.
func NewMissingResources(ids []string) error {
	return &MissingResourcesError{IDs: ids}
}
