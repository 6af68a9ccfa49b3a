package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
)

// APIKind classifies an unsuccessful API response.
type APIKind string

const (
	KindInvalidRequest     APIKind = "invalid_request"
	KindInvalidCredentials APIKind = "invalid_credentials"
	KindRequestDeclined    APIKind = "request_declined"
	KindUnauthorized       APIKind = "unauthorized"
	KindRequestConflict    APIKind = "request_conflict"
	KindServerError        APIKind = "server_error"
	KindUnknown            APIKind = "unknown"
	KindDeserialization    APIKind = "deserialization"
)

// KindForStatus maps an HTTP status to the kind of failure it represents.
func KindForStatus(status int) APIKind {
	switch {
	case status == http.StatusBadRequest:
		return KindInvalidRequest
	case status == http.StatusUnauthorized:
		return KindInvalidCredentials
	case status == http.StatusPaymentRequired:
		return KindRequestDeclined
	case status == http.StatusForbidden:
		return KindUnauthorized
	case status == http.StatusConflict:
		return KindRequestConflict
	case status >= http.StatusInternalServerError:
		return KindServerError
	default:
		return KindUnknown
	}
}

// APIError is returned when the API answered but the call did not succeed.
type APIError struct {
	Kind          APIKind
	StatusCode    int
	CorrelationID string
	Message       string
	// Detail is nil when the body was not a recognizable error payload.
	Detail *ErrorDetail
	// RawBody holds the response body verbatim.
	RawBody string
	Cause   error
}

func (e *APIError) Error() string {
	msg := e.Message
	if e.Detail != nil {
		msg = fmt.Sprintf("%s (code %s)", e.Detail.Message, e.Detail.Code)
	}
	if e.CorrelationID != "" {
		return fmt.Sprintf("%s: status %d: %s [correlation id %s]", e.Kind, e.StatusCode, msg, e.CorrelationID)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Kind, e.StatusCode, msg)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// Code returns the API error code, if one was present in the body.
func (e *APIError) Code() string {
	if e.Detail == nil {
		return ""
	}
	return e.Detail.Code
}

// DecodeDeclined decodes the body of a declined request into target.
// Declined responses carry the resource the caller asked for alongside the error.
func (e *APIError) DecodeDeclined(target any) error {
	if e.Kind != KindRequestDeclined {
		return NewErrorf("status %d is not a declined request", e.StatusCode).
			Mark(ErrDeserialization)
	}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(e.RawBody, target); err != nil {
		return WithError(err).
			WithHint("Error processing declined response body").
			Mark(ErrDeserialization)
	}
	return nil
}

// AsAPIError extracts the APIError carried by err.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
