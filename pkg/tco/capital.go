package tco

import (
	"github.com/iwvelando/fleet-tco/pkg/finance"
)

// ProcurementInstallments returns the flat yearly series of annuity
// installments for one unit of item. Each full replacement contributes
// UsefulLife entries, so an entry's position is its year offset. An
// overrunning final replacement contributes a single entry: the present value
// of its full annuity stream, discounted within its own life and scaled by
// the fraction of that life used before the horizon.
func ProcurementInstallments(item CapitalCostItem, params ProjectParameters) ([]float64, error) {
	events, err := ScheduleReplacements(item.ProcurementCost, item.CostEscalation, item.UsefulLife, params.Duration)
	if err != nil {
		return nil, err
	}

	installments := make([]float64, 0, params.Duration)
	for _, event := range events {
		annuity := finance.Annuity(event.Price, item.UsefulLife, params.InterestRate)
		stream := finance.AnnuityStream(annuity, item.UsefulLife)
		if event.Partial {
			pv := finance.DiscountSeries(stream, params.DiscountRate)
			installments = append(installments, pv*event.FractionUsed(item.UsefulLife, params.Duration))
			continue
		}
		installments = append(installments, stream...)
	}
	return installments, nil
}

// ProcurementCost is the discounted procurement cost of one unit of item over
// the project duration, replacements included.
func ProcurementCost(item CapitalCostItem, params ProjectParameters) (float64, error) {
	installments, err := ProcurementInstallments(item, params)
	if err != nil {
		return 0, err
	}
	return finance.DiscountSeries(installments, params.DiscountRate), nil
}

// CapitalCost is the item's contribution to the total capital cost.
func CapitalCost(item CapitalCostItem, params ProjectParameters) (float64, error) {
	if err := item.Validate(); err != nil {
		return 0, err
	}
	unitCost, err := ProcurementCost(item, params)
	if err != nil {
		return 0, err
	}
	return unitCost * float64(item.Quantity), nil
}
