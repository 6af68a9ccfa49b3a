package retry

import (
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/flexprice/paymenthub-go/internal/config"
	ierr "github.com/flexprice/paymenthub-go/internal/errors"
)

const (
	// InitialBackoff is the wait before the first retry.
	InitialBackoff = 100 * time.Millisecond
	// Multiplier grows the wait between consecutive retries.
	Multiplier = 3

	// MaxBackoff bounds every wait the policy produces.
	MaxBackoff = 8100 * time.Millisecond

	// Each wait is scaled by a factor drawn from [minJitter, 1).
	minJitter = 0.75
)

// Policy decides whether a failed attempt is repeated and how long to
// wait first. Only idempotent GET requests that produced no HTTP
// response are retried; any response, whatever its status, is final.
type Policy struct {
	maxRetries int
	random     func() float64
}

type Option func(*Policy)

// WithRandom replaces the jitter source. fn must return values in [0, 1).
func WithRandom(fn func() float64) Option {
	return func(p *Policy) {
		p.random = fn
	}
}

// New returns a policy allowing up to maxRetries retries after the
// first attempt.
func New(maxRetries int, opts ...Option) (*Policy, error) {
	if maxRetries < 0 {
		return nil, ierr.NewError("Maximum automatic retries cannot be negative").
			WithHint("Maximum automatic retries cannot be negative").
			Mark(ierr.ErrConfiguration)
	}
	if maxRetries > config.MaxAllowedRetries {
		return nil, ierr.NewErrorf("Maximum allowed number of automatic retries is %d", config.MaxAllowedRetries).
			WithHintf("Maximum allowed number of automatic retries is %d", config.MaxAllowedRetries).
			Mark(ierr.ErrConfiguration)
	}

	p := &Policy{
		maxRetries: maxRetries,
		random:     rand.Float64,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Policy) MaxRetries() int {
	return p.maxRetries
}

// ShouldRetry reports whether the attempt that just failed with
// transportErr is repeated. attempt counts from 1.
func (p *Policy) ShouldRetry(method string, transportErr error, attempt int) bool {
	if transportErr == nil {
		return false
	}
	if !strings.EqualFold(method, http.MethodGet) {
		return false
	}
	return attempt <= p.maxRetries
}

// BackoffDelay returns the wait before retry number attempt, counting from 1.
func (p *Policy) BackoffDelay(attempt int) time.Duration {
	return Delay(attempt, p.random)
}

// Delay is InitialBackoff * Multiplier^(attempt-1), scaled by a jitter
// factor in [0.75, 1) derived from random().
func Delay(attempt int, random func() float64) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > config.MaxAllowedRetries {
		attempt = config.MaxAllowedRetries
	}

	base := InitialBackoff
	for i := 1; i < attempt; i++ {
		base *= Multiplier
	}

	r := random()
	if r < 0 || r >= 1 {
		r = 0
	}
	factor := minJitter + (1-minJitter)*r
	return time.Duration(float64(base) * factor)
}
