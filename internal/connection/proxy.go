package connection

import (
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	ierr "github.com/flexprice/paymenthub-go/internal/errors"
)

// Proxy environment variables, consulted in this order.
const (
	EnvHTTPProxyHost  = "HTTP_PROXY_HOST"
	EnvHTTPProxyPort  = "HTTP_PROXY_PORT"
	EnvHTTPSProxyHost = "HTTPS_PROXY_HOST"
	EnvHTTPSProxyPort = "HTTPS_PROXY_PORT"
)

// LookupEnv matches os.LookupEnv.
type LookupEnv func(key string) (string, bool)

var proxyEnvPairs = [][2]string{
	{EnvHTTPProxyHost, EnvHTTPProxyPort},
	{EnvHTTPSProxyHost, EnvHTTPSProxyPort},
}

// ResolveProxy picks the proxy for outgoing connections: the explicit
// setting if any, then the first complete host and port pair from the
// environment. It returns nil when no proxy applies.
func ResolveProxy(explicit string, lookup LookupEnv) (*url.URL, error) {
	if explicit != "" {
		return parseProxy(explicit)
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}

	for _, pair := range proxyEnvPairs {
		host, hostOK := lookup(pair[0])
		port, portOK := lookup(pair[1])
		host, port = strings.TrimSpace(host), strings.TrimSpace(port)
		if !hostOK || !portOK || host == "" || port == "" {
			continue
		}
		if _, err := strconv.ParseUint(port, 10, 16); err != nil {
			return nil, ierr.WithError(err).
				WithHintf("%s must be a port number, got %q", pair[1], port).
				Mark(ierr.ErrConfiguration)
		}
		return &url.URL{Scheme: "http", Host: net.JoinHostPort(host, port)}, nil
	}

	return nil, nil
}

func parseProxy(raw string) (*url.URL, error) {
	if !strings.Contains(raw, "://") {
		if _, _, err := net.SplitHostPort(raw); err != nil {
			return nil, ierr.WithError(err).
				WithHintf("Proxy must be host:port or a URL, got %q", raw).
				Mark(ierr.ErrConfiguration)
		}
		return &url.URL{Scheme: "http", Host: raw}, nil
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, ierr.NewErrorf("invalid proxy url %q", raw).
			WithHintf("Proxy must be host:port or a URL, got %q", raw).
			Mark(ierr.ErrConfiguration)
	}
	return u, nil
}
