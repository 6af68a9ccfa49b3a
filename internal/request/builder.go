package request

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/flexprice/paymenthub-go/internal/config"
	ierr "github.com/flexprice/paymenthub-go/internal/errors"
	"github.com/flexprice/paymenthub-go/internal/types"
	"github.com/flexprice/paymenthub-go/internal/version"
	jsoniter "github.com/json-iterator/go"
)

const (
	HeaderAuthorization     = "Authorization"
	HeaderContentType       = "Content-Type"
	HeaderTransactionSource = "X-Transaction-Source"
	HeaderUserAgent         = "User-Agent"
	HeaderSimulator         = "Simulator"

	ContentTypeJSON   = "application/json;charset=utf-8"
	TransactionSource = "GoSDK"

	// APIPath prefixes every endpoint.
	APIPath = "/paymenthub"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Spec is a fully built request, ready to be sent.
type Spec struct {
	Method string
	URL    string
	Header http.Header
	// Body is nil for requests without a payload.
	Body []byte
}

// Builder turns an endpoint and payload into a Spec. It is immutable and
// safe for concurrent use.
type Builder struct {
	baseURL       string
	environment   types.Environment
	authorization string
	userAgent     string
}

// NewBuilder expects a validated configuration.
func NewBuilder(cfg config.ClientConfig) *Builder {
	cfg = cfg.WithDefaults()
	return &Builder{
		baseURL:       cfg.BaseURL(),
		environment:   cfg.Environment,
		authorization: "Basic " + base64.StdEncoding.EncodeToString([]byte(cfg.APIKey)),
		userAgent:     version.UserAgent(),
	}
}

// URL returns the absolute URL for endpoint, which may carry a query string.
func (b *Builder) URL(endpoint string) string {
	if endpoint != "" && !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return b.baseURL + APIPath + endpoint
}

// Build assembles the request. A nil body sends no payload; anything else
// is encoded as JSON, and an encoding failure is returned before any
// network activity.
func (b *Builder) Build(method, endpoint string, body any, opts config.EffectiveOptions) (*Spec, error) {
	spec := &Spec{
		Method: strings.ToUpper(method),
		URL:    b.URL(endpoint),
		Header: b.headers(opts),
	}

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHintf("Error serializing request body for %s %s", spec.Method, spec.URL).
				Mark(ierr.ErrSerialization)
		}
		spec.Body = payload
	}

	return spec, nil
}

func (b *Builder) headers(opts config.EffectiveOptions) http.Header {
	h := make(http.Header, 5)
	h.Set(HeaderAuthorization, b.authorization)
	h.Set(HeaderContentType, ContentTypeJSON)
	h.Set(HeaderTransactionSource, TransactionSource)
	h.Set(HeaderUserAgent, b.userAgent)
	if b.environment.IsTest() && opts.Simulator != "" {
		h.Set(HeaderSimulator, opts.Simulator.String())
	}
	return h
}
