package paymenthub

import (
	"context"
	"crypto/x509"
	"net/http"

	"github.com/flexprice/paymenthub-go/internal/config"
	"github.com/flexprice/paymenthub-go/internal/connection"
	"github.com/flexprice/paymenthub-go/internal/httpclient"
	"github.com/flexprice/paymenthub-go/internal/logger"
	"github.com/flexprice/paymenthub-go/internal/request"
	"github.com/flexprice/paymenthub-go/internal/response"
	"go.uber.org/zap"
)

// Client executes requests against the payments API.
type Client struct {
	config   config.ClientConfig
	builder  *request.Builder
	executor httpclient.Client
	provider *connection.Provider
	mapper   *response.Mapper
	logger   *logger.Logger
}

type Option func(*options)

type options struct {
	logger       *logger.Logger
	baseURL      string
	rootCAs      *x509.CertPool
	executor     httpclient.Client
	providerOpts []connection.ProviderOption
	executorOpts []httpclient.ExecutorOption
}

// WithZapLogger routes client logs to l. Without it the client logs at
// the configured level, or not at all when no level is configured.
func WithZapLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger.FromZap(l)
	}
}

// WithBaseURL sends every request to baseURL instead of the environment's
// host. It is meant for tests against a local server.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithRootCAs trusts only the given roots when verifying the server.
func WithRootCAs(pool *x509.CertPool) Option {
	return func(o *options) {
		o.rootCAs = pool
	}
}

func withExecutor(c httpclient.Client) Option {
	return func(o *options) {
		o.executor = c
	}
}

func withProviderOptions(opts ...connection.ProviderOption) Option {
	return func(o *options) {
		o.providerOpts = append(o.providerOpts, opts...)
	}
}

func withExecutorOptions(opts ...httpclient.ExecutorOption) Option {
	return func(o *options) {
		o.executorOpts = append(o.executorOpts, opts...)
	}
}

// New validates cfg and builds a client. cfg is copied; later changes to
// it have no effect.
func New(cfg Config, opts ...Option) (*Client, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.baseURL != "" {
		cfg.BaseURLOverride = o.baseURL
	}
	if o.rootCAs != nil {
		cfg.RootCAs = o.rootCAs
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := o.logger
	if log == nil {
		log = logger.NewNopLogger()
		if cfg.Logging.Level != "" {
			l, err := logger.NewLogger(cfg.Logging.Level)
			if err != nil {
				return nil, err
			}
			log = l
		}
	}

	c := &Client{
		config:  cfg,
		builder: request.NewBuilder(cfg),
		mapper:  response.NewMapper(log),
		logger:  log,
	}

	if o.executor != nil {
		c.executor = o.executor
	} else {
		provider, err := connection.NewProvider(cfg, log, o.providerOpts...)
		if err != nil {
			return nil, err
		}
		c.provider = provider
		c.executor = httpclient.NewExecutor(provider, log, o.executorOpts...)
	}

	log.Debugw("payment hub client created",
		"environment", cfg.Environment,
		"base_url", cfg.BaseURL(),
	)
	return c, nil
}

// Environment returns the environment the client talks to.
func (c *Client) Environment() Environment {
	return c.config.Environment
}

// Close releases pooled connections. The client remains usable.
func (c *Client) Close() {
	if c.provider != nil {
		c.provider.Close()
	}
}

func (c *Client) Get(ctx context.Context, endpoint string, opts *CallOptions) (*Response, error) {
	return c.Execute(ctx, http.MethodGet, endpoint, nil, opts)
}

func (c *Client) Post(ctx context.Context, endpoint string, body any, opts *CallOptions) (*Response, error) {
	return c.Execute(ctx, http.MethodPost, endpoint, body, opts)
}

func (c *Client) Put(ctx context.Context, endpoint string, body any, opts *CallOptions) (*Response, error) {
	return c.Execute(ctx, http.MethodPut, endpoint, body, opts)
}

func (c *Client) Patch(ctx context.Context, endpoint string, body any, opts *CallOptions) (*Response, error) {
	return c.Execute(ctx, http.MethodPatch, endpoint, body, opts)
}

func (c *Client) Delete(ctx context.Context, endpoint string, opts *CallOptions) (*Response, error) {
	return c.Execute(ctx, http.MethodDelete, endpoint, nil, opts)
}

// Execute sends method to endpoint, which is relative to the API root and
// may include a query string. A nil body sends no payload. Any HTTP
// status yields a Response; an error means no response was obtained or
// the call was rejected before sending.
func (c *Client) Execute(ctx context.Context, method, endpoint string, body any, opts *CallOptions) (*Response, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	effective := config.Resolve(c.config, opts)

	spec, err := c.builder.Build(method, endpoint, body, effective)
	if err != nil {
		c.logger.Debugw("request not sent", "method", method, "endpoint", endpoint, "error", err)
		return nil, err
	}

	return c.executor.Send(ctx, spec, effective)
}

// DecodeInto decodes a successful response into target or returns the
// error the response represents.
func (c *Client) DecodeInto(resp *Response, target any) error {
	return c.mapper.DecodeInto(resp, target)
}

// CheckDelete checks the status of a response whose body is not needed.
func (c *Client) CheckDelete(resp *Response) error {
	return c.mapper.CheckDelete(resp)
}

// Decode decodes a successful response into a new T.
func Decode[T any](c *Client, resp *Response) (*T, error) {
	return response.Decode[T](c.mapper, resp)
}

// Do executes a request and decodes the successful response into T.
func Do[T any](ctx context.Context, c *Client, method, endpoint string, body any, opts *CallOptions) (*T, error) {
	resp, err := c.Execute(ctx, method, endpoint, body, opts)
	if err != nil {
		return nil, err
	}
	return Decode[T](c, resp)
}
