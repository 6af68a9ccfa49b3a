package testutil

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/flexprice/paymenthub-go/internal/config"
	"github.com/flexprice/paymenthub-go/internal/httpclient"
	"github.com/flexprice/paymenthub-go/internal/request"
)

// MockHTTPClient implements httpclient.Client without any network and
// records every request it is asked to send.
type MockHTTPClient struct {
	mu     sync.RWMutex
	routes map[string]MockResponse
	sent   []SentRequest
}

// MockResponse represents a mock HTTP response. A non-nil Err is returned
// instead of a response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Err        error
}

// SentRequest pairs a request with the options it was sent with.
type SentRequest struct {
	Spec    *request.Spec
	Options config.EffectiveOptions
}

// NewMockHTTPClient creates a new mock HTTP client
func NewMockHTTPClient() *MockHTTPClient {
	return &MockHTTPClient{
		routes: make(map[string]MockResponse),
	}
}

// RegisterResponse registers a mock response for URLs ending in route
func (m *MockHTTPClient) RegisterResponse(route string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[route] = resp
}

// Send implements the httpclient.Client interface
func (m *MockHTTPClient) Send(_ context.Context, spec *request.Spec, opts config.EffectiveOptions) (*httpclient.Response, error) {
	m.mu.Lock()
	m.sent = append(m.sent, SentRequest{Spec: spec, Options: opts})
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	path := strings.SplitN(spec.URL, "?", 2)[0]
	var matched MockResponse
	var found bool
	for route, resp := range m.routes {
		if strings.HasSuffix(path, route) {
			matched = resp
			found = true
			break
		}
	}

	if !found {
		return &httpclient.Response{
			StatusCode: http.StatusNotFound,
			Body:       "Not Found",
			HasBody:    true,
			Headers:    map[string]string{},
		}, nil
	}
	if matched.Err != nil {
		return nil, matched.Err
	}

	headers := make(map[string]string, len(matched.Headers))
	for k, v := range matched.Headers {
		headers[strings.ToUpper(k)] = v
	}
	return &httpclient.Response{
		StatusCode: matched.StatusCode,
		Body:       matched.Body,
		HasBody:    matched.Body != "",
		Headers:    headers,
	}, nil
}

// Sent returns the requests sent so far.
func (m *MockHTTPClient) Sent() []SentRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]SentRequest(nil), m.sent...)
}

// Clear removes all registered responses and recorded requests
func (m *MockHTTPClient) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes = make(map[string]MockResponse)
	m.sent = nil
}
