package connection

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/flexprice/paymenthub-go/internal/cache"
	"github.com/flexprice/paymenthub-go/internal/config"
	"github.com/flexprice/paymenthub-go/internal/logger"
	"github.com/samber/lo"
)

const (
	poolIdleExpiration  = 10 * time.Minute
	poolCleanupInterval = time.Minute

	maxIdleConns        = 100
	maxIdleConnsPerHost = 20
	idleConnTimeout     = 90 * time.Second
	keepAlive           = 30 * time.Second
)

// Provider hands out HTTP clients backed by pooled transports. A pool is
// shared by all calls resolving to the same connect timeout, response
// timeout and proxy, and is closed after sitting unused for a while.
type Provider struct {
	proxy  *url.URL
	tls    *tls.Config
	pools  cache.Cache
	logger *logger.Logger
}

type ProviderOption func(*providerOptions)

type providerOptions struct {
	lookupEnv LookupEnv
}

// WithLookupEnv replaces the environment used to discover a proxy.
func WithLookupEnv(fn LookupEnv) ProviderOption {
	return func(o *providerOptions) {
		o.lookupEnv = fn
	}
}

// NewProvider resolves proxy and TLS settings once; later changes to the
// environment do not affect the provider.
func NewProvider(cfg config.ClientConfig, log *logger.Logger, opts ...ProviderOption) (*Provider, error) {
	o := &providerOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	proxy, err := ResolveProxy(cfg.Proxy, o.lookupEnv)
	if err != nil {
		return nil, err
	}

	tlsCfg, err := tlsConfig(cfg.RootCAs, cfg.CABundleFile)
	if err != nil {
		return nil, err
	}

	p := &Provider{
		proxy:  proxy,
		tls:    tlsCfg,
		logger: log,
	}
	p.pools = cache.NewInMemoryCache(poolIdleExpiration, poolCleanupInterval, p.evict)

	if proxy != nil {
		log.Debugw("using proxy", "proxy", proxy.Redacted())
	}
	return p, nil
}

// Proxy returns the proxy in use, or nil.
func (p *Provider) Proxy() *url.URL {
	return p.proxy
}

// Acquire returns a client whose transport applies the given timeouts.
func (p *Provider) Acquire(opts config.EffectiveOptions) *http.Client {
	key := cache.GenerateKey(cache.PrefixTransport,
		opts.ConnectTimeout,
		opts.ResponseTimeout,
		lo.TernaryF(p.proxy != nil, func() string { return p.proxy.String() }, func() string { return "direct" }),
	)

	pool := p.pools.GetOrSet(context.Background(), key, func() interface{} {
		p.logger.Debugw("creating connection pool",
			"connect_timeout", opts.ConnectTimeout,
			"response_timeout", opts.ResponseTimeout,
		)
		return &pooledTransport{base: p.newTransport(opts.ConnectTimeout, opts.ResponseTimeout)}
	}, poolIdleExpiration).(*pooledTransport)

	return &http.Client{Transport: pool}
}

// pooledTransport shares a transport between calls. It does not expose
// CloseIdleConnections, so a client giving up on one call cannot drain
// connections other calls are using; only eviction closes them.
type pooledTransport struct {
	base *http.Transport
}

func (t *pooledTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req)
}

// Close releases every pooled connection. The provider stays usable and
// builds new pools on demand.
func (p *Provider) Close() {
	p.pools.DeleteByPrefix(context.Background(), cache.PrefixTransport)
}

func (p *Provider) newTransport(connectTimeout, responseTimeout time.Duration) *http.Transport {
	dialer := &net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: keepAlive,
	}

	t := &http.Transport{
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   connectTimeout,
		ResponseHeaderTimeout: responseTimeout,
		ExpectContinueTimeout: time.Second,
		MaxIdleConns:          maxIdleConns,
		MaxIdleConnsPerHost:   maxIdleConnsPerHost,
		IdleConnTimeout:       idleConnTimeout,
		ForceAttemptHTTP2:     true,
	}
	if p.proxy != nil {
		t.Proxy = http.ProxyURL(p.proxy)
	}
	if p.tls != nil {
		t.TLSClientConfig = p.tls.Clone()
	}
	return t
}

func (p *Provider) evict(key string, value interface{}) {
	if t, ok := value.(*pooledTransport); ok {
		t.base.CloseIdleConnections()
		p.logger.Debugw("closed connection pool", "key", key)
	}
}
