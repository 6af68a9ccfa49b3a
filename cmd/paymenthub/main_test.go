package main

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	paymenthub "github.com/flexprice/paymenthub-go"
	ierr "github.com/flexprice/paymenthub-go/internal/errors"
	"github.com/flexprice/paymenthub-go/internal/logger"
	"github.com/flexprice/paymenthub-go/internal/version"
	"github.com/flexprice/paymenthub-go/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMonitor struct {
	resp     *service.MonitorResponse
	err      error
	verified *paymenthub.CallOptions
	waitOpts *paymenthub.CallOptions
	waited   time.Duration
}

func (f *fakeMonitor) Verify(_ context.Context, opts *paymenthub.CallOptions) (*service.MonitorResponse, error) {
	f.verified = opts
	return f.resp, f.err
}

func (f *fakeMonitor) WaitUntilReady(_ context.Context, maxWait time.Duration, opts *paymenthub.CallOptions) (*service.MonitorResponse, error) {
	f.waited = maxWait
	f.waitOpts = opts
	return f.resp, f.err
}

func TestParseMonitorArgs(t *testing.T) {
	args, err := parseMonitorArgs([]string{"-wait", "30s", "-config", "/tmp/paymenthub.yaml", "-simulator", "INTERNAL"})
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, args.wait)
	assert.Equal(t, "/tmp/paymenthub.yaml", args.configPath)
	assert.Equal(t, "INTERNAL", args.simulator)

	_, err = parseMonitorArgs([]string{"-wait", "-1s"})
	assert.Error(t, err)

	_, err = parseMonitorArgs([]string{"-simulator", "REMOTE"})
	assert.Error(t, err)

	_, err = parseMonitorArgs([]string{"-unknown"})
	assert.Error(t, err)
}

func TestRunMonitor(t *testing.T) {
	log := logger.NewNopLogger()

	t.Run("verify ready", func(t *testing.T) {
		m := &fakeMonitor{resp: &service.MonitorResponse{Status: service.MonitorStatusReady}}
		var out bytes.Buffer
		code := runMonitor(context.Background(), m, monitorArgs{simulator: "EXTERNAL"}, &out, log)
		assert.Equal(t, 0, code)
		assert.Equal(t, "READY\n", out.String())
		require.NotNil(t, m.verified)
		assert.Equal(t, paymenthub.SimulatorExternal, *m.verified.Simulator)
	})

	t.Run("verify not ready", func(t *testing.T) {
		m := &fakeMonitor{resp: &service.MonitorResponse{Status: "DOWN"}}
		assert.Equal(t, 1, runMonitor(context.Background(), m, monitorArgs{}, io.Discard, log))
	})

	t.Run("wait", func(t *testing.T) {
		m := &fakeMonitor{resp: &service.MonitorResponse{Status: service.MonitorStatusReady}}
		assert.Equal(t, 0, runMonitor(context.Background(), m, monitorArgs{wait: time.Minute}, io.Discard, log))
		assert.Equal(t, time.Minute, m.waited)
		assert.Nil(t, m.verified)
		require.NotNil(t, m.waitOpts)
		assert.Nil(t, m.waitOpts.Simulator)
	})

	t.Run("wait with simulator", func(t *testing.T) {
		m := &fakeMonitor{resp: &service.MonitorResponse{Status: service.MonitorStatusReady}}
		args := monitorArgs{wait: time.Minute, simulator: "INTERNAL"}
		assert.Equal(t, 0, runMonitor(context.Background(), m, args, io.Discard, log))
		require.NotNil(t, m.waitOpts)
		require.NotNil(t, m.waitOpts.Simulator)
		assert.Equal(t, paymenthub.SimulatorInternal, *m.waitOpts.Simulator)
	})

	t.Run("error", func(t *testing.T) {
		m := &fakeMonitor{err: ierr.NewError("dial failed").Mark(ierr.ErrConnection)}
		assert.Equal(t, 1, runMonitor(context.Background(), m, monitorArgs{}, io.Discard, log))
	})
}

func TestRunCommands(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"version"}, &stdout, &stderr))
	assert.Equal(t, version.String()+"\n", stdout.String())
	assert.Contains(t, stdout.String(), version.Version)

	tests := [][]string{
		nil,
		{"charge"},
		{"monitor", "-wait", "-1s"},
	}
	for _, argv := range tests {
		stderr.Reset()
		assert.Equal(t, 2, run(argv, io.Discard, &stderr), "%v", argv)
		assert.Contains(t, stderr.String(), "usage:")
	}
}
