package config

import (
	"fmt"

	"github.com/iwvelando/fleet-tco/pkg/mathutil"
)

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Hard errors surface later, when a scenario is converted
// into calculation inputs.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.ActiveScenarios()) == 0 {
		warnings = append(warnings, "No active scenarios; nothing will be calculated")
	}

	names := make(map[string]bool)
	for _, scenario := range c.Scenarios {
		if names[scenario.Name] {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' is defined more than once", scenario.Name))
		}
		names[scenario.Name] = true

		if !scenario.Active {
			continue
		}

		if len(scenario.CapitalItems) == 0 && len(scenario.OperatingItems) == 0 && scenario.Fleet == nil {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' has no cost items", scenario.Name))
		}

		for _, item := range scenario.CapitalItems {
			if item.Quantity != nil && mathutil.IsZero(*item.Quantity) {
				warnings = append(warnings, fmt.Sprintf("Scenario '%s' capital item '%s' has zero quantity", scenario.Name, item.Name))
			}
			if item.UsefulLife != nil && scenario.Project.Duration != nil && *item.UsefulLife > *scenario.Project.Duration {
				warnings = append(warnings, fmt.Sprintf("Scenario '%s' capital item '%s' outlives the project (%.0f > %.0f years) and is pro-rated",
					scenario.Name, item.Name, *item.UsefulLife, *scenario.Project.Duration))
			}
		}

		for _, item := range scenario.OperatingItems {
			if item.UsageAmount != nil && *item.UsageAmount < 0 {
				warnings = append(warnings, fmt.Sprintf("Scenario '%s' operating item '%s' has negative usage", scenario.Name, item.Name))
			}
		}
	}

	if len(warnings) == 0 {
		return nil
	}
	return warnings
}
