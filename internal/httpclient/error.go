package httpclient

import (
	goerrors "errors"
	"fmt"

	ierr "github.com/flexprice/paymenthub-go/internal/errors"
)

// ConnectionError is returned when no HTTP response could be obtained,
// after any retries were used up.
type ConnectionError struct {
	Method   string
	URL      string
	Attempts int
	Cause    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("Error connecting to %s, reason: %v", e.URL, e.Cause)
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// NewConnectionError wraps cause and marks it as a connection failure.
func NewConnectionError(method, url string, attempts int, cause error) error {
	connErr := &ConnectionError{
		Method:   method,
		URL:      url,
		Attempts: attempts,
		Cause:    cause,
	}
	return ierr.WithError(connErr).
		WithHintf("Error connecting to %s", url).
		WithReportableDetails(map[string]any{
			"method":   method,
			"attempts": attempts,
		}).
		Mark(ierr.ErrConnection)
}

// IsConnectionError extracts the ConnectionError carried by err.
func IsConnectionError(err error) (*ConnectionError, bool) {
	var connErr *ConnectionError
	if goerrors.As(err, &connErr) {
		return connErr, true
	}
	return nil, false
}
