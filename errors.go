package paymenthub

import (
	ierr "github.com/flexprice/paymenthub-go/internal/errors"
	"github.com/flexprice/paymenthub-go/internal/httpclient"
)

// Error families. Use errors.Is or the Is* helpers to branch on them.
var (
	ErrConfiguration   = ierr.ErrConfiguration
	ErrSerialization   = ierr.ErrSerialization
	ErrConnection      = ierr.ErrConnection
	ErrAPI             = ierr.ErrAPI
	ErrDeserialization = ierr.ErrDeserialization
)

type (
	APIError         = ierr.APIError
	APIKind          = ierr.APIKind
	ErrorDetail      = ierr.ErrorDetail
	FieldError       = ierr.FieldError
	AdditionalDetail = ierr.AdditionalDetail
	ConnectionError  = httpclient.ConnectionError
)

const (
	KindInvalidRequest     = ierr.KindInvalidRequest
	KindInvalidCredentials = ierr.KindInvalidCredentials
	KindRequestDeclined    = ierr.KindRequestDeclined
	KindUnauthorized       = ierr.KindUnauthorized
	KindRequestConflict    = ierr.KindRequestConflict
	KindServerError        = ierr.KindServerError
	KindUnknown            = ierr.KindUnknown
	KindDeserialization    = ierr.KindDeserialization
)

// IsConfiguration reports whether settings were rejected before sending.
func IsConfiguration(err error) bool {
	return ierr.IsConfiguration(err)
}

// IsSerialization reports whether the request body could not be encoded.
func IsSerialization(err error) bool {
	return ierr.IsSerialization(err)
}

// IsConnection reports whether no HTTP response was obtained.
func IsConnection(err error) bool {
	return ierr.IsConnection(err)
}

// IsAPI reports whether the API answered with a failure. Deserialization
// failures are API errors too.
func IsAPI(err error) bool {
	return ierr.IsAPI(err)
}

func IsDeserialization(err error) bool {
	return ierr.IsDeserialization(err)
}

// AsAPIError extracts the APIError carried by err.
func AsAPIError(err error) (*APIError, bool) {
	return ierr.AsAPIError(err)
}

// AsConnectionError extracts the ConnectionError carried by err.
func AsConnectionError(err error) (*ConnectionError, bool) {
	return httpclient.IsConnectionError(err)
}

// ErrorCode returns the family code of err, such as "connection_error",
// or an empty string for errors the client did not produce.
func ErrorCode(err error) string {
	return ierr.Code(err)
}
