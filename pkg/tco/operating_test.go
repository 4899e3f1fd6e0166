package tco

import (
	"errors"
	"testing"

	"github.com/iwvelando/fleet-tco/pkg/mathutil"
)

func TestOperatingCost(t *testing.T) {
	tests := []struct {
		name     string
		item     OperatingCostItem
		params   ProjectParameters
		expected float64
	}{
		{
			name: "Vehicle maintenance per km",
			item: OperatingCostItem{Name: "Maintenance Cost Vehicles", Category: CategoryMaintenance,
				UnitCost: 0.35, UsageAmount: 1000000, CostEscalation: 0.02},
			params:   baseParams,
			expected: 4089129.3619688395,
		},
		{
			name: "No escalation and no discounting",
			item: OperatingCostItem{Name: "Insurance", Category: CategoryOther,
				UnitCost: 1000, UsageAmount: 1},
			params:   ProjectParameters{Duration: 10, AnnualFleetDistance: 1},
			expected: 10000,
		},
		{
			name: "Escalation equal to discount rate keeps base-year value",
			item: OperatingCostItem{Name: "Staff Cost", Category: CategoryStaff,
				UnitCost: 25, UsageAmount: 1600, CostEscalation: 0.025},
			params:   baseParams,
			expected: 25 * 1600 * 12,
		},
		{
			name: "Zero usage",
			item: OperatingCostItem{Name: "Taxes", Category: CategoryOther,
				UnitCost: 278, CostEscalation: 0.02},
			params:   baseParams,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := OperatingCost(tt.item, tt.params)
			if err != nil {
				t.Fatalf("OperatingCost() error = %v", err)
			}
			if !mathutil.RelativeEqual(result, tt.expected) {
				t.Errorf("OperatingCost() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestFutureCost(t *testing.T) {
	item := OperatingCostItem{Name: "Fuel Cost", Category: CategoryEnergy, UnitCost: 0.2, UsageAmount: 1000, CostEscalation: 0.1}

	if got := item.FutureCost(0); !mathutil.WithinTolerance(got, 200, 1e-9) {
		t.Errorf("FutureCost(0) = %v, expected 200", got)
	}
	if got := item.FutureCost(2); !mathutil.WithinTolerance(got, 242, 1e-9) {
		t.Errorf("FutureCost(2) = %v, expected 242", got)
	}
}

func TestOperatingCostByYear(t *testing.T) {
	item := OperatingCostItem{Name: "Fuel Cost", Category: CategoryEnergy, UnitCost: 100, UsageAmount: 1, CostEscalation: 0.1}
	params := ProjectParameters{Duration: 3, DiscountRate: 0.1, AnnualFleetDistance: 1}

	yearly, err := OperatingCostByYear(item, params)
	if err != nil {
		t.Fatalf("OperatingCostByYear() error = %v", err)
	}
	if len(yearly) != 3 {
		t.Fatalf("expected 3 years, got %d", len(yearly))
	}
	for year, cost := range yearly {
		if !mathutil.WithinTolerance(cost, 100, 1e-9) {
			t.Errorf("year %d cost = %v, expected 100", year, cost)
		}
	}
}

func TestOperatingCostValidation(t *testing.T) {
	tests := []struct {
		name   string
		item   OperatingCostItem
		params ProjectParameters
	}{
		{"Capital category", OperatingCostItem{Name: "x", Category: CategoryVehicle}, baseParams},
		{"Unknown category", OperatingCostItem{Name: "x"}, baseParams},
		{"Escalation of -100%", OperatingCostItem{Name: "x", Category: CategoryOther, CostEscalation: -1}, baseParams},
		{"Zero duration", OperatingCostItem{Name: "x", Category: CategoryOther}, ProjectParameters{AnnualFleetDistance: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := OperatingCost(tt.item, tt.params); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
