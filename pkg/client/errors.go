package client

import (
	"errors"
	"fmt"
)

// APIError is an error response from the primitive backend.
type APIError struct {
	Status int
	Code   string
	Msg    string
}

func (e *APIError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s (status %d)", e.Msg, e.Status)
	}
	return fmt.Sprintf("backend error: status %d", e.Status)
}

// IsNotFound reports whether err is a NotFound response from the backend.
// NotFound is an expected outcome for reads and removes of keys or elements
// that are not present.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var ae *APIError
	if !errors.As(err, &ae) {
		return false
	}
	return ae.Code == "NOT_FOUND" || ae.Status == 404
}
