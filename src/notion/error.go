package notion

import (
	"fmt"
	"net/http"
	"time"
)

// APIError is the error payload returned by the Notion API for any non
// 2xx response.
type APIError struct {
	Status     int           `json:"status"`
	Code       string        `json:"code"`
	Message    string        `json:"message"`
	RetryAfter time.Duration `json:"-"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("notion: %s (status %d): %s", e.Code, e.Status,
			e.Message)
	}
	return fmt.Sprintf("notion: request failed with status %d: %s",
		e.Status, e.Message)
}

// Retryable reports whether the request may be reissued. Rate limits
// and server side failures are transient; auth and validation errors
// are not.
func (e *APIError) Retryable() bool {
	return e.Status == http.StatusTooManyRequests ||
		e.Status >= http.StatusInternalServerError
}

// IsUnauthorized reports whether the error is an invalid token failure.
func (e *APIError) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized
}
