package service

import (
	"context"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	paymenthub "github.com/flexprice/paymenthub-go"
	ierr "github.com/flexprice/paymenthub-go/internal/errors"
)

const monitorPath = "/v1/monitor"

// MonitorService reports whether the API is reachable with the client's
// credentials.
type MonitorService interface {
	Verify(ctx context.Context, opts *paymenthub.CallOptions) (*MonitorResponse, error)
	// WaitUntilReady polls Verify with exponential backoff until the API
	// reports READY, maxWait elapses or ctx is done. Each poll is a single
	// attempt; opts supplies the remaining call settings.
	WaitUntilReady(ctx context.Context, maxWait time.Duration, opts *paymenthub.CallOptions) (*MonitorResponse, error)
}

type monitorService struct {
	baseService
	initialInterval time.Duration
}

func NewMonitorService(params ServiceParams) MonitorService {
	return &monitorService{
		baseService:     newBaseService(params),
		initialInterval: 500 * time.Millisecond,
	}
}

func (s *monitorService) Verify(ctx context.Context, opts *paymenthub.CallOptions) (*MonitorResponse, error) {
	return paymenthub.Do[MonitorResponse](ctx, s.client, http.MethodGet, monitorPath, nil, opts)
}

func (s *monitorService) WaitUntilReady(ctx context.Context, maxWait time.Duration, opts *paymenthub.CallOptions) (*MonitorResponse, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.initialInterval
	b.MaxElapsedTime = maxWait

	poll := paymenthub.NewCallOptions()
	if opts != nil {
		*poll = *opts
	}
	poll.WithMaxRetries(0)

	operation := func() (*MonitorResponse, error) {
		resp, err := s.Verify(ctx, poll)
		if err != nil {
			if ierr.IsConfiguration(err) || ierr.IsSerialization(err) {
				return nil, backoff.Permanent(err)
			}
			if apiErr, ok := ierr.AsAPIError(err); ok && apiErr.Kind == ierr.KindInvalidCredentials {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		if !resp.IsReady() {
			return resp, ierr.NewErrorf("payment hub status is %q", resp.Status).
				WithHint("The payment hub is not ready yet").
				Mark(ierr.ErrAPI)
		}
		return resp, nil
	}

	notify := func(err error, wait time.Duration) {
		s.logger.Infow("payment hub not ready, retrying",
			"error", err,
			"retry_in", wait,
		)
	}

	resp, err := backoff.RetryNotifyWithData[*MonitorResponse](operation, backoff.WithContext(b, ctx), notify)
	if err != nil {
		return resp, err
	}

	s.logger.Debugw("payment hub ready", "status", resp.Status)
	return resp, nil
}
