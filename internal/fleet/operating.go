// Package fleet derives the standard operating cost items of a bus fleet from
// scenario cost rates and pre-computed fleet statistics.
package fleet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iwvelando/fleet-tco/pkg/tco"
	"go.uber.org/zap"
)

// Energy consumption modes.
const (
	EnergyModeSimulated = "simulated"
	EnergyModeConstant  = "constant"
)

// Rates holds the base-year unit costs and escalation factors of a scenario.
// All fields are required when operating items are derived.
type Rates struct {
	StaffCost                     *float64 // per driver hour
	FuelCost                      *float64 // per kWh
	MaintenanceCost               *float64 // per km
	InfrastructureMaintenanceCost *float64 // per charging point and year
	Taxes                         *float64 // per vehicle and year
	Insurance                     *float64 // per vehicle and year
	EscalationGeneral             *float64
	EscalationWages               *float64
	EscalationFuel                *float64
	EscalationInsurance           *float64
}

// Statistics are annual figures computed from operational data by an
// external collaborator. Map keys are vehicle type names.
type Statistics struct {
	DriverHours               *float64
	EnergyConsumption         *float64 // kWh, used in simulated mode
	AnnualFleetMileage        *float64
	MileagePerVehicleType     map[string]float64
	ConstantEnergyConsumption map[string]float64 // kWh per km, used in constant mode
}

// Config describes how to derive the operating items of one scenario.
type Config struct {
	EnergyConsumptionMode string
	Rates                 Rates
	Statistics            Statistics
}

// Deriver builds operating cost items from a fleet Config.
type Deriver struct {
	logger *zap.Logger
}

// NewDeriver creates a Deriver. If logger is nil, a no-op logger is used.
func NewDeriver(logger *zap.Logger) *Deriver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Deriver{logger: logger}
}

// OperatingItems returns staff, energy, vehicle maintenance, insurance, taxes
// and infrastructure maintenance items. Vehicle and charging point counts are
// taken from the capital items; vehicle maintenance is charged on
// annualFleetDistance.
func (d *Deriver) OperatingItems(cfg Config, capital []tco.CapitalCostItem, annualFleetDistance float64) ([]tco.OperatingCostItem, error) {
	if err := cfg.Rates.validate(); err != nil {
		return nil, err
	}
	rates := cfg.Rates
	if cfg.Statistics.DriverHours == nil {
		return nil, &tco.ConfigurationError{Key: "fleet.statistics.driverHours"}
	}

	energy, err := d.energyConsumption(cfg)
	if err != nil {
		return nil, err
	}

	vehicles := 0
	chargingPoints := 0
	for _, item := range capital {
		switch item.Category {
		case tco.CategoryVehicle:
			vehicles += item.Quantity
		case tco.CategoryChargingPoint:
			chargingPoints += item.Quantity
		}
	}

	d.logger.Debug(fmt.Sprintf("derived fleet usage: %.1f driver hours, %.1f kWh, %d vehicles, %d charging points",
		*cfg.Statistics.DriverHours, energy, vehicles, chargingPoints),
		zap.String("op", "fleet.OperatingItems"),
	)

	return []tco.OperatingCostItem{
		{
			Name:           "Staff Cost",
			Category:       tco.CategoryStaff,
			UnitCost:       *rates.StaffCost,
			UsageAmount:    *cfg.Statistics.DriverHours,
			CostEscalation: *rates.EscalationWages,
		},
		{
			Name:           "Fuel Cost",
			Category:       tco.CategoryEnergy,
			UnitCost:       *rates.FuelCost,
			UsageAmount:    energy,
			CostEscalation: *rates.EscalationFuel,
		},
		{
			Name:           "Maintenance Cost Vehicles",
			Category:       tco.CategoryMaintenance,
			UnitCost:       *rates.MaintenanceCost,
			UsageAmount:    annualFleetDistance,
			CostEscalation: *rates.EscalationGeneral,
		},
		{
			Name:           "Insurance",
			Category:       tco.CategoryOther,
			UnitCost:       *rates.Insurance,
			UsageAmount:    float64(vehicles),
			CostEscalation: *rates.EscalationInsurance,
		},
		{
			Name:           "Taxes",
			Category:       tco.CategoryOther,
			UnitCost:       *rates.Taxes,
			UsageAmount:    float64(vehicles),
			CostEscalation: *rates.EscalationGeneral,
		},
		{
			Name:           "Maintenance Cost Infrastructure",
			Category:       tco.CategoryMaintenance,
			UnitCost:       *rates.InfrastructureMaintenanceCost,
			UsageAmount:    float64(chargingPoints),
			CostEscalation: *rates.EscalationGeneral,
		},
	}, nil
}

func (d *Deriver) energyConsumption(cfg Config) (float64, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.EnergyConsumptionMode))
	if mode == "" {
		mode = EnergyModeSimulated
	}

	switch mode {
	case EnergyModeSimulated:
		if cfg.Statistics.EnergyConsumption == nil {
			return 0, &tco.ConfigurationError{Key: "fleet.statistics.energyConsumption", Reason: "required in simulated energy consumption mode"}
		}
		return *cfg.Statistics.EnergyConsumption, nil
	case EnergyModeConstant:
		if len(cfg.Statistics.ConstantEnergyConsumption) == 0 {
			return 0, &tco.ConfigurationError{Key: "fleet.statistics.constantEnergyConsumption", Reason: "required in constant energy consumption mode"}
		}
		// Sum in a fixed order so repeated runs agree to the last bit.
		vehicleTypes := make([]string, 0, len(cfg.Statistics.ConstantEnergyConsumption))
		for vehicleType := range cfg.Statistics.ConstantEnergyConsumption {
			vehicleTypes = append(vehicleTypes, vehicleType)
		}
		sort.Strings(vehicleTypes)

		total := 0.0
		for _, vehicleType := range vehicleTypes {
			consumption := cfg.Statistics.ConstantEnergyConsumption[vehicleType]
			mileage, ok := cfg.Statistics.MileagePerVehicleType[vehicleType]
			if !ok {
				d.logger.Debug(fmt.Sprintf("vehicle type %s has no mileage, skipping", vehicleType),
					zap.String("op", "fleet.energyConsumption"),
				)
				continue
			}
			total += consumption * mileage
		}
		return total, nil
	default:
		return 0, &tco.ValidationError{Field: "fleet.energyConsumptionMode", Value: cfg.EnergyConsumptionMode,
			Reason: fmt.Sprintf("expected %s or %s", EnergyModeSimulated, EnergyModeConstant)}
	}
}

// validate reports the first missing rate.
func (r Rates) validate() error {
	switch {
	case r.StaffCost == nil:
		return &tco.ConfigurationError{Key: "fleet.rates.staffCost"}
	case r.FuelCost == nil:
		return &tco.ConfigurationError{Key: "fleet.rates.fuelCost"}
	case r.MaintenanceCost == nil:
		return &tco.ConfigurationError{Key: "fleet.rates.maintenanceCost"}
	case r.InfrastructureMaintenanceCost == nil:
		return &tco.ConfigurationError{Key: "fleet.rates.infrastructureMaintenanceCost"}
	case r.Taxes == nil:
		return &tco.ConfigurationError{Key: "fleet.rates.taxes"}
	case r.Insurance == nil:
		return &tco.ConfigurationError{Key: "fleet.rates.insurance"}
	case r.EscalationGeneral == nil:
		return &tco.ConfigurationError{Key: "fleet.rates.escalationGeneral"}
	case r.EscalationWages == nil:
		return &tco.ConfigurationError{Key: "fleet.rates.escalationWages"}
	case r.EscalationFuel == nil:
		return &tco.ConfigurationError{Key: "fleet.rates.escalationFuel"}
	case r.EscalationInsurance == nil:
		return &tco.ConfigurationError{Key: "fleet.rates.escalationInsurance"}
	}
	return nil
}
