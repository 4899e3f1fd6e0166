package inventory

import (
	"context"

	"github.com/iwvelando/fleet-tco/pkg/tco"
)

// ExampleScenario is the name under which Seed stores ExampleInputs.
const ExampleScenario = "example"

// ExampleInputs returns a depot-and-terminal charging scenario for ten 12 m
// battery electric buses, priced at reference values.
func ExampleInputs() tco.Inputs {
	return tco.Inputs{
		Parameters: tco.ProjectParameters{
			Duration:            12,
			InterestRate:        0.04,
			DiscountRate:        0.025,
			AnnualFleetDistance: 1000000,
		},
		CapitalItems: []tco.CapitalCostItem{
			{Name: "Ebusco 3.0 12", Category: tco.CategoryVehicle, UsefulLife: 12, ProcurementCost: 370000, CostEscalation: 0.025, Quantity: 10},
			{Name: "Ebusco 3.0 12 battery", Category: tco.CategoryBattery, UsefulLife: 6, ProcurementCost: 350, CostEscalation: -0.03, Quantity: 3480}, // kWh
			{Name: "Depot", Category: tco.CategoryInfrastructure, UsefulLife: 12, ProcurementCost: 500000, CostEscalation: 0.02, Quantity: 1},
			{Name: "Terminal station", Category: tco.CategoryInfrastructure, UsefulLife: 12, ProcurementCost: 3400000, CostEscalation: 0.02, Quantity: 1},
			{Name: "Charging Point Type Depot", Category: tco.CategoryChargingPoint, UsefulLife: 12, ProcurementCost: 100000, CostEscalation: 0.02, Quantity: 10},
			{Name: "Charging Point Type Station", Category: tco.CategoryChargingPoint, UsefulLife: 12, ProcurementCost: 275000, CostEscalation: 0.02, Quantity: 2},
		},
		OperatingItems: []tco.OperatingCostItem{
			{Name: "Staff Cost", Category: tco.CategoryStaff, UnitCost: 35, UsageAmount: 40000, CostEscalation: 0.025},
			{Name: "Fuel Cost", Category: tco.CategoryEnergy, UnitCost: 0.2, UsageAmount: 1200000, CostEscalation: 0.038},
			{Name: "Maintenance Cost Vehicles", Category: tco.CategoryMaintenance, UnitCost: 0.35, UsageAmount: 1000000, CostEscalation: 0.02},
			{Name: "Insurance", Category: tco.CategoryOther, UnitCost: 9693, UsageAmount: 10, CostEscalation: 0.02},
			{Name: "Taxes", Category: tco.CategoryOther, UnitCost: 278, UsageAmount: 10, CostEscalation: 0.02},
			{Name: "Maintenance Cost Infrastructure", Category: tco.CategoryMaintenance, UnitCost: 1000, UsageAmount: 12, CostEscalation: 0.02},
		},
	}
}

// Seed stores ExampleInputs as ExampleScenario, replacing an earlier copy.
func (inv *Inventory) Seed(ctx context.Context) error {
	return inv.SaveScenario(ctx, ExampleScenario, ExampleInputs())
}
