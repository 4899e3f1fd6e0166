// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/fleet-tco/internal/evaluate"
)

// FindOutcome finds a scenario by name in the outcomes slice.
// Returns a pointer to the outcome if found, nil otherwise.
func FindOutcome(outcomes []evaluate.Outcome, name string) *evaluate.Outcome {
	for i := range outcomes {
		if outcomes[i].Name == name {
			return &outcomes[i]
		}
	}
	return nil
}

// Float returns a pointer to v, for optional configuration fields.
func Float(v float64) *float64 {
	return &v
}
