package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorResponse is the error body returned by the file server
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// APIError describes a request the server rejected
type APIError struct {
	Op      string // list, create, upload, delete, rename, disk-space
	Status  int    // HTTP status, 200 when the body carried success=false
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: server returned %d %s", e.Op, e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
}

// AsAPIError extracts an *APIError from err
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsNotFound reports whether the server answered 404
func IsNotFound(err error) bool {
	ae, ok := AsAPIError(err)
	return ok && ae.Status == http.StatusNotFound
}
