package domain

import (
	"errors"
	"strings"
)

// Sentinel errors for console operations
var (
	// ErrServerOffline indicates the backend is unreachable
	ErrServerOffline = errors.New("backend is unreachable")

	// ErrClipboardUnavailable indicates neither the system clipboard nor the terminal fallback worked
	ErrClipboardUnavailable = errors.New("clipboard unavailable")

	// ErrNotFound indicates a resource id is not in the current collection
	ErrNotFound = errors.New("resource not found")
)

// ValidationError reports missing required input. It is raised before any request is sent.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// RemoteRequestError is a non-success response from the backend.
// Message carries the response body text as sent by the server.
type RemoteRequestError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *RemoteRequestError) Error() string {
	return e.Message
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
