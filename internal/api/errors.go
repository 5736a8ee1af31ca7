package api

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned when the server answered but refused the operation,
// either with a non-2xx status or with success=false in the envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// ErrUnauthorized is returned for 401 responses after the stored token has
// been cleared. Callers normally never see it directly since the auth
// expiry event has already fired, but it keeps the failure visible.
var ErrUnauthorized = &APIError{StatusCode: http.StatusUnauthorized, Message: "authentication required"}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}
