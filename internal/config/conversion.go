package config

import (
	"fmt"
	"math"

	"github.com/iwvelando/fleet-tco/internal/fleet"
	"github.com/iwvelando/fleet-tco/pkg/tco"
)

// Inputs converts the scenario into validated calculation inputs. Operating
// items derived from the fleet section are appended after the explicitly
// configured ones.
func (s Scenario) Inputs(deriver *fleet.Deriver) (tco.Inputs, error) {
	params, err := s.ProjectParameters()
	if err != nil {
		return tco.Inputs{}, err
	}

	capital, err := s.CapitalCostItems()
	if err != nil {
		return tco.Inputs{}, err
	}

	operating, err := s.OperatingCostItems()
	if err != nil {
		return tco.Inputs{}, err
	}

	if s.Fleet != nil {
		if deriver == nil {
			deriver = fleet.NewDeriver(nil)
		}
		derived, err := deriver.OperatingItems(*s.Fleet, capital, params.AnnualFleetDistance)
		if err != nil {
			return tco.Inputs{}, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		operating = append(operating, derived...)
	}

	return tco.Inputs{Parameters: params, CapitalItems: capital, OperatingItems: operating}, nil
}

// ProjectParameters validates the project section.
func (s Scenario) ProjectParameters() (tco.ProjectParameters, error) {
	p := s.Project
	prefix := "scenarios." + s.Name + ".project."

	if p.Duration == nil {
		return tco.ProjectParameters{}, &tco.ConfigurationError{Key: prefix + "duration"}
	}
	if p.InterestRate == nil {
		return tco.ProjectParameters{}, &tco.ConfigurationError{Key: prefix + "interestRate"}
	}
	if p.DiscountRate == nil {
		return tco.ProjectParameters{}, &tco.ConfigurationError{Key: prefix + "discountRate"}
	}

	distance := p.AnnualFleetDistance
	if distance == nil && s.Fleet != nil {
		distance = s.Fleet.Statistics.AnnualFleetMileage
	}
	if distance == nil {
		return tco.ProjectParameters{}, &tco.ConfigurationError{Key: prefix + "annualFleetDistance"}
	}

	duration, err := wholeNumber(prefix+"duration", *p.Duration)
	if err != nil {
		return tco.ProjectParameters{}, err
	}

	return tco.NewProjectParameters(duration, *p.InterestRate, *p.DiscountRate, *distance)
}

// CapitalCostItems converts and validates the capital items.
func (s Scenario) CapitalCostItems() ([]tco.CapitalCostItem, error) {
	items := make([]tco.CapitalCostItem, 0, len(s.CapitalItems))
	for i, ci := range s.CapitalItems {
		prefix := fmt.Sprintf("scenarios.%s.capitalItems[%d].", s.Name, i)

		category, err := tco.ParseCategory(ci.Category)
		if err != nil {
			return nil, err
		}
		if ci.UsefulLife == nil {
			return nil, &tco.ConfigurationError{Key: prefix + "usefulLife"}
		}
		if ci.ProcurementCost == nil {
			return nil, &tco.ConfigurationError{Key: prefix + "procurementCost"}
		}
		if ci.Quantity == nil {
			return nil, &tco.ConfigurationError{Key: prefix + "quantity"}
		}
		usefulLife, err := wholeNumber(prefix+"usefulLife", *ci.UsefulLife)
		if err != nil {
			return nil, err
		}
		quantity, err := wholeNumber(prefix+"quantity", *ci.Quantity)
		if err != nil {
			return nil, err
		}

		item := tco.CapitalCostItem{
			Name:            ci.Name,
			Category:        category,
			UsefulLife:      usefulLife,
			ProcurementCost: *ci.ProcurementCost,
			CostEscalation:  ci.CostEscalation,
			Quantity:        quantity,
		}
		if err := item.Validate(); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// OperatingCostItems converts and validates the explicitly configured
// operating items.
func (s Scenario) OperatingCostItems() ([]tco.OperatingCostItem, error) {
	items := make([]tco.OperatingCostItem, 0, len(s.OperatingItems))
	for i, oi := range s.OperatingItems {
		prefix := fmt.Sprintf("scenarios.%s.operatingItems[%d].", s.Name, i)

		category, err := tco.ParseCategory(oi.Category)
		if err != nil {
			return nil, err
		}
		if oi.UnitCost == nil {
			return nil, &tco.ConfigurationError{Key: prefix + "unitCost"}
		}
		if oi.UsageAmount == nil {
			return nil, &tco.ConfigurationError{Key: prefix + "usageAmount"}
		}

		item := tco.OperatingCostItem{
			Name:           oi.Name,
			Category:       category,
			UnitCost:       *oi.UnitCost,
			UsageAmount:    *oi.UsageAmount,
			CostEscalation: oi.CostEscalation,
		}
		if err := item.Validate(); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func wholeNumber(field string, value float64) (int, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) {
		return 0, &tco.ValidationError{Field: field, Value: value, Reason: "must be a whole number"}
	}
	if math.Abs(value) > math.MaxInt32 {
		return 0, &tco.ValidationError{Field: field, Value: value, Reason: "out of range"}
	}
	return int(value), nil
}
