package tco

import (
	"github.com/iwvelando/fleet-tco/pkg/finance"
)

// ReplacementEvent is one procurement of an asset within the project horizon.
// Partial marks the final event whose useful life overruns the horizon.
type ReplacementEvent struct {
	Price      float64 `json:"price"`
	YearOffset int     `json:"yearOffset"`
	Partial    bool    `json:"partial"`
}

// FractionUsed is the share of the asset's useful life consumed before the
// project ends. It is 1 for events that fit the horizon.
func (e ReplacementEvent) FractionUsed(usefulLife, projectDuration int) float64 {
	if !e.Partial {
		return 1
	}
	return float64(projectDuration-e.YearOffset) / float64(usefulLife)
}

// ScheduleReplacements lists the procurements of one asset across the project
// duration. The price of each procurement is escalated from basePrice to the
// year it takes place.
func ScheduleReplacements(basePrice, costEscalation float64, usefulLife, projectDuration int) ([]ReplacementEvent, error) {
	if usefulLife < 1 {
		return nil, invalid("usefulLife", usefulLife, "must be a positive number of years")
	}
	if projectDuration < 1 {
		return nil, invalid("projectDuration", projectDuration, "must be a positive number of years")
	}

	fullReplacements := projectDuration / usefulLife
	events := make([]ReplacementEvent, 0, fullReplacements+1)
	for i := 0; i <= fullReplacements; i++ {
		offset := i * usefulLife
		price := finance.Escalate(basePrice, costEscalation, offset)
		yearsUsed := (i + 1) * usefulLife

		if yearsUsed > projectDuration {
			events = append(events, ReplacementEvent{Price: price, YearOffset: offset, Partial: true})
			break
		}
		events = append(events, ReplacementEvent{Price: price, YearOffset: offset})
		if yearsUsed == projectDuration {
			break
		}
	}
	return events, nil
}
