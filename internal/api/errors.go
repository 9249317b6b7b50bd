package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx reply from the backend
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// IsAuthFailure reports whether err is an authorization-failure
// response from any endpoint
func IsAuthFailure(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// errorBody is the error envelope the backend sends
type errorBody struct {
	Message string `json:"message"`
}
