package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyID is returned before any request is made when a path identifier is blank.
var ErrEmptyID = errors.New("identifier is required")

// NetworkError covers both transport failures (StatusCode == 0) and non-2xx answers.
type NetworkError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	// Detail is the server's {"detail": ...} or {"error": ...} message when present.
	Detail string
	Err    error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.URL, e.Err)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s %s: status %d: %s", e.Op, e.Method, e.URL, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s: %s %s: status %d", e.Op, e.Method, e.URL, e.StatusCode)
}

// Unwrap returns the underlying transport error, if any.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Transport reports whether the request never produced an HTTP response.
func (e *NetworkError) Transport() bool {
	return e.StatusCode == 0
}

// DecodeError reports a 2xx response whose body is not the expected JSON.
type DecodeError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Op, e.Err)
}

// Unwrap returns the JSON error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is (or wraps) a *NetworkError.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// StatusCode extracts the HTTP status from err, or 0.
func StatusCode(err error) int {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.StatusCode
	}
	return 0
}

// errorDetail pulls a human readable message out of an error body. FastAPI
// uses "detail", the payment endpoints use "error".
func errorDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return strings.TrimSpace(truncate(string(body), 200))
	}
	if len(payload.Detail) > 0 {
		var text string
		if err := json.Unmarshal(payload.Detail, &text); err == nil {
			return text
		}
		return truncate(string(payload.Detail), 200)
	}
	return payload.Error
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
