package config

import (
	"strings"
	"testing"
)

func TestValidateConfiguration(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name         string
		config       Configuration
		wantWarnings []string
	}{
		{
			name: "clean configuration",
			config: Configuration{Scenarios: []Scenario{{
				Name:         "ok",
				Active:       true,
				Project:      Project{Duration: f(12)},
				CapitalItems: []CapitalItem{{Name: "Bus", UsefulLife: f(12), Quantity: f(1)}},
			}}},
		},
		{
			name:         "no active scenarios",
			config:       Configuration{Scenarios: []Scenario{{Name: "off"}}},
			wantWarnings: []string{"No active scenarios"},
		},
		{
			name: "duplicate names and empty scenario",
			config: Configuration{Scenarios: []Scenario{
				{Name: "dup", Active: true},
				{Name: "dup"},
			}},
			wantWarnings: []string{"has no cost items", "defined more than once"},
		},
		{
			name: "item outlives project",
			config: Configuration{Scenarios: []Scenario{{
				Name:         "long",
				Active:       true,
				Project:      Project{Duration: f(10)},
				CapitalItems: []CapitalItem{{Name: "Depot", UsefulLife: f(20), Quantity: f(0)}},
			}}},
			wantWarnings: []string{"zero quantity", "outlives the project"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.config.ValidateConfiguration()
			if len(warnings) != len(tt.wantWarnings) {
				t.Fatalf("expected %d warnings, got %d: %v", len(tt.wantWarnings), len(warnings), warnings)
			}
			for _, want := range tt.wantWarnings {
				found := false
				for _, warning := range warnings {
					if strings.Contains(warning, want) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected a warning containing %q, got %v", want, warnings)
				}
			}
			for _, warning := range warnings {
				t.Logf("Warning: %s", warning)
			}
		})
	}
}
