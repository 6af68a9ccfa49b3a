package httpclient

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/flexprice/paymenthub-go/internal/config"
	ierr "github.com/flexprice/paymenthub-go/internal/errors"
	"github.com/flexprice/paymenthub-go/internal/logger"
	"github.com/flexprice/paymenthub-go/internal/request"
	"github.com/flexprice/paymenthub-go/internal/retry"
	"github.com/flexprice/paymenthub-go/internal/types"
	"github.com/hashicorp/go-retryablehttp"
)

// Response is a completed HTTP exchange, whatever its status.
type Response struct {
	StatusCode int
	// Headers holds one value per header, keyed by the upper-cased name.
	// When a header repeats, the last value wins.
	Headers map[string]string
	Body    string
	HasBody bool
}

// Header returns the value of the named header, ignoring case.
func (r *Response) Header(name string) string {
	return r.Headers[strings.ToUpper(name)]
}

// Client sends a built request and returns the response envelope.
type Client interface {
	Send(ctx context.Context, spec *request.Spec, opts config.EffectiveOptions) (*Response, error)
}

// TransportProvider supplies pooled HTTP clients for a set of call options.
type TransportProvider interface {
	Acquire(opts config.EffectiveOptions) *http.Client
}

// Executor sends requests over pooled connections, repeating GET requests
// that fail before any response arrives.
type Executor struct {
	transports TransportProvider
	logger     *logger.Logger
	policyOpts []retry.Option
}

type ExecutorOption func(*Executor)

// WithRetryOptions configures the retry policy built for every call.
func WithRetryOptions(opts ...retry.Option) ExecutorOption {
	return func(e *Executor) {
		e.policyOpts = append(e.policyOpts, opts...)
	}
}

func NewExecutor(transports TransportProvider, log *logger.Logger, opts ...ExecutorOption) *Executor {
	if log == nil {
		log = logger.NewNopLogger()
	}
	e := &Executor{
		transports: transports,
		logger:     log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Send performs the request. It returns a Response for any HTTP status and
// an error only when no response was obtained.
func (e *Executor) Send(ctx context.Context, spec *request.Spec, opts config.EffectiveOptions) (*Response, error) {
	policy, err := retry.New(opts.MaxRetries, e.policyOpts...)
	if err != nil {
		return nil, err
	}

	log := e.logger.With(
		"request_id", types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST),
		"method", spec.Method,
		"url", spec.URL,
	)

	// Cancelling reqCtx aborts a response body that stops arriving.
	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	req, err := newRequest(reqCtx, spec)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Invalid request %s %s", spec.Method, spec.URL).
			Mark(ierr.ErrConfiguration)
	}

	attempts := 0
	client := &retryablehttp.Client{
		HTTPClient:   e.transports.Acquire(opts),
		Logger:       log.Leveled(),
		RetryWaitMin: retry.InitialBackoff,
		RetryWaitMax: retry.MaxBackoff,
		RetryMax:     opts.MaxRetries,
		CheckRetry: func(ctx context.Context, _ *http.Response, err error) (bool, error) {
			attempts++
			if err == nil {
				return false, nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return false, ctxErr
			}
			return policy.ShouldRetry(spec.Method, err, attempts), nil
		},
		Backoff: func(_, _ time.Duration, attemptNum int, _ *http.Response) time.Duration {
			return policy.BackoffDelay(attemptNum + 1)
		},
		ErrorHandler: func(resp *http.Response, err error, numTries int) (*http.Response, error) {
			if resp != nil {
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
			}
			return nil, NewConnectionError(spec.Method, spec.URL, numTries, err)
		},
	}

	log.Debugw("sending request", "max_retries", opts.MaxRetries)

	resp, err := client.Do(req)
	if err != nil {
		// cancellation during backoff bypasses the error handler
		if _, ok := IsConnectionError(err); !ok {
			err = NewConnectionError(spec.Method, spec.URL, attempts, err)
		}
		log.Errorw("no response obtained", "attempts", attempts, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	envelope, err := newResponse(resp, opts.ResponseTimeout, cancel)
	if err != nil {
		log.Errorw("reading response failed", "status", resp.StatusCode, "error", err)
		return nil, NewConnectionError(spec.Method, spec.URL, attempts, err)
	}

	log.Debugw("request completed", "status", envelope.StatusCode, "attempts", attempts)
	return envelope, nil
}

func newRequest(ctx context.Context, spec *request.Spec) (*retryablehttp.Request, error) {
	var body interface{}
	if spec.Body != nil {
		body = spec.Body
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, spec.Method, spec.URL, body)
	if err != nil {
		return nil, err
	}
	req.Header = spec.Header.Clone()
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	return req, nil
}

func newResponse(resp *http.Response, readTimeout time.Duration, abort context.CancelFunc) (*Response, error) {
	body, err := readBody(resp.Body, readTimeout, abort)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(resp.Header))
	for name, values := range resp.Header {
		if len(values) > 0 {
			headers[strings.ToUpper(name)] = values[len(values)-1]
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       string(body),
		HasBody:    len(body) > 0,
	}, nil
}

// readBody reads r to the end. Each read must make progress within
// timeout, otherwise abort is called and a timeout error returned.
func readBody(r io.Reader, timeout time.Duration, abort context.CancelFunc) ([]byte, error) {
	if timeout <= 0 {
		return io.ReadAll(r)
	}

	var stalled atomic.Bool
	timer := time.AfterFunc(timeout, func() {
		stalled.Store(true)
		abort()
	})
	defer timer.Stop()

	body, err := io.ReadAll(&stallReader{r: r, timer: timer, timeout: timeout})
	if err == nil {
		return body, nil
	}
	if stalled.Load() {
		return nil, ierr.NewErrorf("no response data received for %s", timeout).
			WithHint("Response timed out while reading the body").
			Error()
	}
	return nil, err
}

type stallReader struct {
	r       io.Reader
	timer   *time.Timer
	timeout time.Duration
}

func (s *stallReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if n > 0 {
		s.timer.Reset(s.timeout)
	}
	return n, err
}
