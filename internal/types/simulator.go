package types

import (
	ierr "github.com/flexprice/paymenthub-go/internal/errors"
	"github.com/samber/lo"
)

// Simulator selects how the sandbox fakes downstream processing.
// It is only sent to the TEST environment.
type Simulator string

const (
	SimulatorExternal Simulator = "EXTERNAL"
	SimulatorInternal Simulator = "INTERNAL"
)

func (s Simulator) String() string {
	return string(s)
}

func (s Simulator) Validate() error {
	allowed := []Simulator{
		SimulatorExternal,
		SimulatorInternal,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewErrorf("invalid simulator: %s", s).
			WithHint("Please provide a valid simulator").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrConfiguration)
	}
	return nil
}
