package paymenthub

import (
	"github.com/flexprice/paymenthub-go/internal/config"
	"github.com/flexprice/paymenthub-go/internal/httpclient"
	"github.com/flexprice/paymenthub-go/internal/request"
	"github.com/flexprice/paymenthub-go/internal/types"
	"github.com/flexprice/paymenthub-go/internal/version"
)

// Aliases for the types callers need to configure calls and read results.
type (
	Config        = config.ClientConfig
	LoggingConfig = config.LoggingConfig
	CallOptions   = config.CallOptions
	Response      = httpclient.Response

	Environment = types.Environment
	Simulator   = types.Simulator
	LogLevel    = types.LogLevel

	QueryParams = request.QueryParams
	QueryOption = request.QueryOption
)

const (
	Live = types.EnvironmentLive
	Test = types.EnvironmentTest

	SimulatorExternal = types.SimulatorExternal
	SimulatorInternal = types.SimulatorInternal

	DefaultConnectTimeout  = config.DefaultConnectTimeout
	DefaultResponseTimeout = config.DefaultResponseTimeout
	DefaultMaxRetries      = config.DefaultMaxRetries
	MaxAllowedRetries      = config.MaxAllowedRetries
)

var (
	WithMerchantRefNum     = request.WithMerchantRefNum
	WithEndDate            = request.WithEndDate
	WithLimit              = request.WithLimit
	WithOffset             = request.WithOffset
	WithStartDate          = request.WithStartDate
	WithMerchantCustomerID = request.WithMerchantCustomerID
	WithFields             = request.WithFields
)

// NewCallOptions returns empty per-call overrides to be filled with the
// With* methods.
func NewCallOptions() *CallOptions {
	return config.NewCallOptions()
}

// NewQueryParams builds query parameters; the order of opts is irrelevant.
func NewQueryParams(opts ...QueryOption) QueryParams {
	return request.NewQueryParams(opts...)
}

// LoadConfig reads paymenthub.yaml and PAYMENTHUB_* environment variables.
// An empty path searches the working directory, ./config and
// /etc/paymenthub.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// Version returns the library version sent in the User-Agent header.
func Version() string {
	return version.Version
}
