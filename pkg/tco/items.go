package tco

import (
	"github.com/iwvelando/fleet-tco/pkg/mathutil"
)

// CapitalCostItem describes one type of procured asset in the fleet.
type CapitalCostItem struct {
	Name            string   `json:"name"`
	Category        Category `json:"category"`
	UsefulLife      int      `json:"usefulLife"`      // years
	ProcurementCost float64  `json:"procurementCost"` // per unit, base year
	CostEscalation  float64  `json:"costEscalation"`  // fractional, per year
	Quantity        int      `json:"quantity"`
}

// OperatingCostItem describes one recurring cost driver.
type OperatingCostItem struct {
	Name           string   `json:"name"`
	Category       Category `json:"category"`
	UnitCost       float64  `json:"unitCost"`    // per unit of usage, base year
	UsageAmount    float64  `json:"usageAmount"` // annual
	CostEscalation float64  `json:"costEscalation"`
}

// Validate checks the item invariants.
func (item CapitalCostItem) Validate() error {
	if item.Category.Kind() != KindCapital {
		return invalid("category of capital item "+item.Name, item.Category, "expected one of VEHICLE, BATTERY, INFRASTRUCTURE, CHARGING_POINT")
	}
	if item.UsefulLife < 1 {
		return invalid("usefulLife of "+item.Name, item.UsefulLife, "must be a positive number of years")
	}
	if item.ProcurementCost < 0 || !mathutil.IsFinite(item.ProcurementCost) {
		return invalid("procurementCost of "+item.Name, item.ProcurementCost, "must be a non-negative amount")
	}
	if item.CostEscalation <= -1 || !mathutil.IsFinite(item.CostEscalation) {
		return invalid("costEscalation of "+item.Name, item.CostEscalation, "must be greater than -1")
	}
	if item.Quantity < 0 {
		return invalid("quantity of "+item.Name, item.Quantity, "must not be negative")
	}
	return nil
}

// Validate checks the item invariants.
func (item OperatingCostItem) Validate() error {
	if item.Category.Kind() != KindOperating {
		return invalid("category of operating item "+item.Name, item.Category, "expected one of ENERGY, MAINTENANCE, STAFF, OTHER")
	}
	if !mathutil.IsFinite(item.UnitCost) {
		return invalid("unitCost of "+item.Name, item.UnitCost, "must be finite")
	}
	if !mathutil.IsFinite(item.UsageAmount) {
		return invalid("usageAmount of "+item.Name, item.UsageAmount, "must be finite")
	}
	if item.CostEscalation <= -1 || !mathutil.IsFinite(item.CostEscalation) {
		return invalid("costEscalation of "+item.Name, item.CostEscalation, "must be greater than -1")
	}
	return nil
}
