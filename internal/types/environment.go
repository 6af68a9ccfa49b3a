package types

import (
	ierr "github.com/flexprice/paymenthub-go/internal/errors"
	"github.com/samber/lo"
)

// Environment selects which payments API deployment a client talks to.
type Environment string

const (
	EnvironmentLive Environment = "LIVE"
	EnvironmentTest Environment = "TEST"
)

const (
	liveBaseURL = "https://api.paysafe.com"
	testBaseURL = "https://api.test.paysafe.com"
)

func (e Environment) String() string {
	return string(e)
}

func (e Environment) Validate() error {
	allowed := []Environment{
		EnvironmentLive,
		EnvironmentTest,
	}
	if !lo.Contains(allowed, e) {
		return ierr.NewErrorf("invalid environment: %s", e).
			WithHint("Please provide a valid environment").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrConfiguration)
	}
	return nil
}

// BaseURL returns the scheme and host of the environment's API.
func (e Environment) BaseURL() string {
	if e == EnvironmentLive {
		return liveBaseURL
	}
	return testBaseURL
}

// IsTest reports whether requests go to the sandbox deployment.
func (e Environment) IsTest() bool {
	return e != EnvironmentLive
}
