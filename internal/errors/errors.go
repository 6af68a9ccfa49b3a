package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for the five failure families surfaced to callers.
// Every error returned by the client is marked with exactly one of these,
// except deserialization failures which are also marked as API errors.
var (
	ErrConfiguration   = new(ErrCodeConfiguration, "invalid configuration")
	ErrSerialization   = new(ErrCodeSerialization, "request serialization failed")
	ErrConnection      = new(ErrCodeConnection, "connection failed")
	ErrAPI             = new(ErrCodeAPI, "api request unsuccessful")
	ErrDeserialization = new(ErrCodeDeserialization, "response deserialization failed")
)

const (
	ErrCodeConfiguration   = "configuration_error"
	ErrCodeSerialization   = "serialization_error"
	ErrCodeConnection      = "connection_error"
	ErrCodeAPI             = "api_error"
	ErrCodeDeserialization = "deserialization_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is matches on the error code so that copies of a sentinel compare equal.
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsConfiguration reports whether err was raised while validating settings.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsSerialization reports whether the request body could not be encoded.
func IsSerialization(err error) bool {
	return errors.Is(err, ErrSerialization)
}

// IsConnection reports whether no HTTP response was obtained.
func IsConnection(err error) bool {
	return errors.Is(err, ErrConnection)
}

// IsAPI reports whether the remote API answered with a failure, including
// successful answers that could not be decoded.
func IsAPI(err error) bool {
	return errors.Is(err, ErrAPI)
}

func IsDeserialization(err error) bool {
	return errors.Is(err, ErrDeserialization)
}

// Code returns the code of the family err belongs to, or an empty string.
func Code(err error) string {
	for _, sentinel := range []*InternalError{ErrDeserialization, ErrConfiguration, ErrSerialization, ErrConnection, ErrAPI} {
		if errors.Is(err, sentinel) {
			return sentinel.Code
		}
	}
	return ""
}
