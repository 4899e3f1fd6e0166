package testutil

import (
	"testing"

	"github.com/iwvelando/fleet-tco/internal/evaluate"
	"github.com/iwvelando/fleet-tco/pkg/tco"
)

func TestFindOutcome(t *testing.T) {
	outcomes := []evaluate.Outcome{
		{Name: "Scenario A", Result: &tco.Result{TotalCostOverDuration: 1000}},
		{Name: "Scenario B", Result: &tco.Result{TotalCostOverDuration: 2000}},
		{Name: "Another Scenario", Result: &tco.Result{TotalCostOverDuration: 3000}},
	}

	tests := []struct {
		name        string
		searchName  string
		expectFound bool
		expectedTCO float64
	}{
		{name: "Find existing scenario A", searchName: "Scenario A", expectFound: true, expectedTCO: 1000},
		{name: "Find existing scenario B", searchName: "Scenario B", expectFound: true, expectedTCO: 2000},
		{name: "Find scenario with different name pattern", searchName: "Another Scenario", expectFound: true, expectedTCO: 3000},
		{name: "Search for non-existent scenario", searchName: "Missing", expectFound: false},
		{name: "Empty search name", searchName: "", expectFound: false},
		{name: "Case sensitive search", searchName: "scenario a", expectFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := FindOutcome(outcomes, tt.searchName)
			if (found != nil) != tt.expectFound {
				t.Fatalf("FindOutcome(%q) found = %v, expected %v", tt.searchName, found != nil, tt.expectFound)
			}
			if found != nil && found.Result.TotalCostOverDuration != tt.expectedTCO {
				t.Errorf("FindOutcome(%q) TCO = %v, expected %v", tt.searchName, found.Result.TotalCostOverDuration, tt.expectedTCO)
			}
		})
	}
}

func TestFindOutcomeReturnsElement(t *testing.T) {
	outcomes := []evaluate.Outcome{{Name: "A"}}
	found := FindOutcome(outcomes, "A")
	found.Name = "renamed"
	if outcomes[0].Name != "renamed" {
		t.Error("FindOutcome should point into the slice")
	}
	if FindOutcome(nil, "A") != nil {
		t.Error("FindOutcome on nil slice should return nil")
	}
}

func TestFloat(t *testing.T) {
	p := Float(0.025)
	if p == nil || *p != 0.025 {
		t.Errorf("Float(0.025) = %v", p)
	}
	if Float(1) == Float(1) {
		t.Error("Float should allocate distinct pointers")
	}
}
