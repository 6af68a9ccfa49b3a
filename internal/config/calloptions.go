package config

import (
	"time"

	"github.com/flexprice/paymenthub-go/internal/types"
	"github.com/flexprice/paymenthub-go/internal/validator"
	"github.com/samber/lo"
)

// CallOptions overrides client settings for a single call. Unset fields
// fall back to the client configuration.
type CallOptions struct {
	ConnectTimeout  *time.Duration   `validate:"omitempty,gt=0"`
	ResponseTimeout *time.Duration   `validate:"omitempty,gt=0"`
	MaxRetries      *int             `validate:"omitempty,min=0,max=5"`
	Simulator       *types.Simulator `validate:"omitempty,oneof=EXTERNAL INTERNAL"`
}

var callOptionsMessages = validator.Messages{
	"ConnectTimeout.gt":  "Connect timeout must be a positive value",
	"ResponseTimeout.gt": "Response timeout must be a positive value",
	"MaxRetries.max":     "Maximum allowed number of automatic retries is 5",
	"MaxRetries.min":     "Maximum automatic retries cannot be negative",
	"Simulator.oneof":    "Simulator must be one of EXTERNAL, INTERNAL",
}

func NewCallOptions() *CallOptions {
	return &CallOptions{}
}

func (o *CallOptions) WithConnectTimeout(d time.Duration) *CallOptions {
	o.ConnectTimeout = lo.ToPtr(d)
	return o
}

func (o *CallOptions) WithResponseTimeout(d time.Duration) *CallOptions {
	o.ResponseTimeout = lo.ToPtr(d)
	return o
}

func (o *CallOptions) WithMaxRetries(n int) *CallOptions {
	o.MaxRetries = lo.ToPtr(n)
	return o
}

func (o *CallOptions) WithSimulator(s types.Simulator) *CallOptions {
	o.Simulator = lo.ToPtr(s)
	return o
}

// Validate checks the overrides that are set. A nil receiver is valid.
func (o *CallOptions) Validate() error {
	if o == nil {
		return nil
	}
	return validator.ValidateRequest(o, callOptionsMessages)
}
