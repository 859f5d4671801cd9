package telemetrysdk

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the API. Detail carries the body's
// "detail" field when the server provided one.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("telemetry api: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("telemetry api: %s (status %d)", e.Detail, e.StatusCode)
}

// IsNotFound reports whether err is an APIError with status 404, which the
// API uses for filter queries that matched no rows.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is an APIError with status 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
