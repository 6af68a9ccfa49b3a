package types

import (
	ierr "github.com/flexprice/paymenthub-go/internal/errors"
	"github.com/samber/lo"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

func (l LogLevel) String() string {
	return string(l)
}

func (l LogLevel) Validate() error {
	allowed := []LogLevel{
		LogLevelDebug,
		LogLevelInfo,
		LogLevelWarn,
		LogLevelError,
	}
	if !lo.Contains(allowed, l) {
		return ierr.NewErrorf("invalid log level: %s", l).
			WithHint("Please provide a valid log level").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrConfiguration)
	}
	return nil
}
