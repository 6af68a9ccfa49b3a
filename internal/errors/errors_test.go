package errors

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFamilies(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		code  string
	}{
		{
			name:  "configuration",
			err:   NewError("bad key").Mark(ErrConfiguration),
			check: IsConfiguration,
			code:  ErrCodeConfiguration,
		},
		{
			name:  "serialization",
			err:   NewError("cannot encode").Mark(ErrSerialization),
			check: IsSerialization,
			code:  ErrCodeSerialization,
		},
		{
			name:  "connection",
			err:   WithError(context.DeadlineExceeded).WithHint("Error connecting").Mark(ErrConnection),
			check: IsConnection,
			code:  ErrCodeConnection,
		},
		{
			name:  "api",
			err:   WithError(&APIError{Kind: KindServerError, StatusCode: 503}).Mark(ErrAPI),
			check: IsAPI,
			code:  ErrCodeAPI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.Equal(t, tt.code, Code(tt.err))
		})
	}
}

func TestDeserializationIsAlsoAPI(t *testing.T) {
	b := WithError(&APIError{Kind: KindDeserialization, StatusCode: 200})
	b.Mark(ErrDeserialization)
	err := b.Mark(ErrAPI)

	assert.True(t, IsDeserialization(err))
	assert.True(t, IsAPI(err))
	assert.False(t, IsConnection(err))
	assert.Equal(t, ErrCodeDeserialization, Code(err))
}

func TestConnectionKeepsCause(t *testing.T) {
	err := WithError(context.Canceled).Mark(ErrConnection)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKindForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   APIKind
	}{
		{http.StatusBadRequest, KindInvalidRequest},
		{http.StatusUnauthorized, KindInvalidCredentials},
		{http.StatusPaymentRequired, KindRequestDeclined},
		{http.StatusForbidden, KindUnauthorized},
		{http.StatusConflict, KindRequestConflict},
		{http.StatusInternalServerError, KindServerError},
		{http.StatusServiceUnavailable, KindServerError},
		{http.StatusNotFound, KindUnknown},
		{http.StatusTeapot, KindUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, KindForStatus(tt.status), "status %d", tt.status)
	}
}

func TestAPIErrorAccessors(t *testing.T) {
	apiErr := &APIError{
		Kind:          KindRequestDeclined,
		StatusCode:    402,
		CorrelationID: "abc-123",
		Detail:        &ErrorDetail{Code: "3022", Message: "card declined"},
		RawBody:       `{"id":"p1","status":"FAILED","error":{"code":"3022","message":"card declined"}}`,
	}
	err := WithError(apiErr).Mark(ErrAPI)

	got, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "3022", got.Code())
	assert.Contains(t, got.Error(), "card declined")
	assert.Contains(t, got.Error(), "abc-123")

	var payment struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, got.DecodeDeclined(&payment))
	assert.Equal(t, "p1", payment.ID)
	assert.Equal(t, "FAILED", payment.Status)
}

func TestDecodeDeclinedRejectsOtherKinds(t *testing.T) {
	apiErr := &APIError{Kind: KindInvalidRequest, StatusCode: 400, RawBody: "{}"}
	err := apiErr.DecodeDeclined(&struct{}{})
	assert.True(t, IsDeserialization(err))
}

func TestAsAPIErrorMissing(t *testing.T) {
	_, ok := AsAPIError(NewError("plain").Mark(ErrConnection))
	assert.False(t, ok)
}
