package resources

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for branching on the failure kind with errors.Is.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidRequest = errors.New("invalid request")
)

// APIError carries the HTTP status and the server's error message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("resources: %s (status %d)", e.Message, e.StatusCode)
}

// Is maps HTTP statuses to the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrInvalidRequest:
		return e.StatusCode == http.StatusBadRequest
	}
	return false
}
