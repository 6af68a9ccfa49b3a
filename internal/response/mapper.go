package response

import (
	"fmt"
	"net/http"

	ierr "github.com/flexprice/paymenthub-go/internal/errors"
	"github.com/flexprice/paymenthub-go/internal/httpclient"
	"github.com/flexprice/paymenthub-go/internal/logger"
	jsoniter "github.com/json-iterator/go"
)

// HeaderCorrelationID carries the server side trace id of a request.
const HeaderCorrelationID = "X-INTERNAL-CORRELATION-ID"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Mapper turns response envelopes into decoded values or typed errors.
type Mapper struct {
	logger *logger.Logger
}

func NewMapper(log *logger.Logger) *Mapper {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Mapper{logger: log}
}

// IsSuccessful reports whether status counts as success. Only 200 and
// 201 do; every other status, 204 included, is a failure.
func IsSuccessful(status int) bool {
	return status == http.StatusOK || status == http.StatusCreated
}

// DecodeInto decodes a successful response body into target, or returns
// the API error the response represents.
func (m *Mapper) DecodeInto(resp *httpclient.Response, target any) error {
	if !IsSuccessful(resp.StatusCode) {
		return m.Failure(resp)
	}
	if !resp.HasBody {
		return m.deserializationError(resp, ierr.NewError("empty response body").Error())
	}
	if err := json.UnmarshalFromString(resp.Body, target); err != nil {
		return m.deserializationError(resp, err)
	}
	return nil
}

// Decode is DecodeInto for a freshly allocated T.
func Decode[T any](m *Mapper, resp *httpclient.Response) (*T, error) {
	var out T
	if err := m.DecodeInto(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckDelete validates the status of a response whose body is not needed.
func (m *Mapper) CheckDelete(resp *httpclient.Response) error {
	if IsSuccessful(resp.StatusCode) {
		return nil
	}
	return m.Failure(resp)
}

// Failure builds the API error for an unsuccessful response. The error
// body is parsed when possible; otherwise the raw body is reported.
func (m *Mapper) Failure(resp *httpclient.Response) error {
	apiErr := &ierr.APIError{
		Kind:          ierr.KindForStatus(resp.StatusCode),
		StatusCode:    resp.StatusCode,
		CorrelationID: resp.Header(HeaderCorrelationID),
		RawBody:       resp.Body,
	}

	detail, err := parseErrorBody(resp)
	if err != nil {
		apiErr.Message = fmt.Sprintf("Exception while processing error response from PaymentHub: %s", resp.Body)
		apiErr.Cause = err
	} else {
		apiErr.Detail = detail
		apiErr.Message = detail.Message
	}

	m.logger.Debugw("api request unsuccessful",
		"status", apiErr.StatusCode,
		"kind", apiErr.Kind,
		"code", apiErr.Code(),
		"correlation_id", apiErr.CorrelationID,
	)

	return ierr.WithError(apiErr).
		WithHint(apiErr.Message).
		WithReportableDetails(map[string]any{
			"status":         apiErr.StatusCode,
			"correlation_id": apiErr.CorrelationID,
		}).
		Mark(ierr.ErrAPI)
}

func parseErrorBody(resp *httpclient.Response) (*ierr.ErrorDetail, error) {
	if !resp.HasBody {
		return nil, ierr.NewError("empty error body").Error()
	}

	var body ierr.ErrorResponse
	if err := json.UnmarshalFromString(resp.Body, &body); err != nil {
		return nil, err
	}
	if body.Error == nil {
		return nil, ierr.NewError("error body has no error object").Error()
	}
	return body.Error, nil
}

func (m *Mapper) deserializationError(resp *httpclient.Response, cause error) error {
	apiErr := &ierr.APIError{
		Kind:          ierr.KindDeserialization,
		StatusCode:    resp.StatusCode,
		CorrelationID: resp.Header(HeaderCorrelationID),
		Message:       fmt.Sprintf("Error processing json response: %v", cause),
		RawBody:       resp.Body,
		Cause:         cause,
	}

	m.logger.Errorw("failed to decode response",
		"status", apiErr.StatusCode,
		"correlation_id", apiErr.CorrelationID,
		"error", cause,
	)

	b := ierr.WithError(apiErr).WithHint(apiErr.Message)
	b.Mark(ierr.ErrDeserialization)
	return b.Mark(ierr.ErrAPI)
}
