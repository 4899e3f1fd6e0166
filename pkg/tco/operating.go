package tco

import (
	"github.com/iwvelando/fleet-tco/pkg/finance"
)

// FutureCost is the undiscounted cost of item in the given year after the
// base year.
func (item OperatingCostItem) FutureCost(year int) float64 {
	return finance.Escalate(item.UnitCost, item.CostEscalation, year) * item.UsageAmount
}

// OperatingCostByYear returns the discounted cost of item for each project year.
func OperatingCostByYear(item OperatingCostItem, params ProjectParameters) ([]float64, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if params.Duration < 1 {
		return nil, invalid("projectDuration", params.Duration, "must be a positive number of years")
	}

	yearly := make([]float64, params.Duration)
	for year := range yearly {
		yearly[year] = finance.PresentValue(item.FutureCost(year), year, params.DiscountRate)
	}
	return yearly, nil
}

// OperatingCost is the total discounted cost of item over the project duration.
func OperatingCost(item OperatingCostItem, params ProjectParameters) (float64, error) {
	yearly, err := OperatingCostByYear(item, params)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, cost := range yearly {
		total += cost
	}
	return total, nil
}
