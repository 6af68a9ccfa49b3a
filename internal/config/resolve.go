package config

import (
	"time"

	"github.com/flexprice/paymenthub-go/internal/types"
	"github.com/samber/lo"
)

// EffectiveOptions are the settings a single call runs with.
type EffectiveOptions struct {
	ConnectTimeout  time.Duration
	ResponseTimeout time.Duration
	MaxRetries      int
	// Simulator is empty when no simulator was requested.
	Simulator types.Simulator
}

// Resolve merges per-call overrides over the client configuration, then
// over the built-in defaults. Neither input is modified.
func Resolve(cfg ClientConfig, opts *CallOptions) EffectiveOptions {
	if opts == nil {
		opts = &CallOptions{}
	}

	return EffectiveOptions{
		ConnectTimeout:  lo.FromPtrOr(opts.ConnectTimeout, lo.CoalesceOrEmpty(cfg.ConnectTimeout, DefaultConnectTimeout)),
		ResponseTimeout: lo.FromPtrOr(opts.ResponseTimeout, lo.CoalesceOrEmpty(cfg.ResponseTimeout, DefaultResponseTimeout)),
		MaxRetries:      lo.FromPtrOr(opts.MaxRetries, lo.FromPtrOr(cfg.MaxRetries, DefaultMaxRetries)),
		Simulator:       lo.FromPtr(opts.Simulator),
	}
}
