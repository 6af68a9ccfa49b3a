package testutil

import (
	"context"
	"testing"
	"time"
)

// SetupContext returns a context that is cancelled when the test ends or
// after a generous deadline, whichever comes first.
func SetupContext(t testing.TB) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}
