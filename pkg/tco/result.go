package tco

// ItemCost is one row of the per-item breakdown.
type ItemCost struct {
	Name         string   `json:"name"`
	Category     Category `json:"category"`
	Kind         Kind     `json:"kind"`
	Cost         float64  `json:"cost"`         // discounted, over the project duration
	SpecificCost float64  `json:"specificCost"` // per unit distance
}

// Result is the outcome of one calculation run.
type Result struct {
	RunID                 string               `json:"runId"`
	Parameters            ProjectParameters    `json:"parameters"`
	TotalCapitalCost      float64              `json:"totalCapitalCost"`
	TotalOperatingCost    float64              `json:"totalOperatingCost"`
	TotalCostOverDuration float64              `json:"totalCostOverDuration"`
	AnnualCost            float64              `json:"annualCost"`
	SpecificCost          float64              `json:"specificCost"`
	CostByCategory        map[Category]float64 `json:"costByCategory"`
	Items                 []ItemCost           `json:"items"`
}

// CostByCategoryWithoutStaff is CostByCategory with the STAFF entry omitted.
func (r *Result) CostByCategoryWithoutStaff() map[Category]float64 {
	view := make(map[Category]float64, len(r.CostByCategory))
	for category, cost := range r.CostByCategory {
		if category == CategoryStaff {
			continue
		}
		view[category] = cost
	}
	return view
}

// PresentCategories returns the categories that carry cost, in reporting
// order.
func (r *Result) PresentCategories() []Category {
	var present []Category
	for _, category := range Categories {
		if _, ok := r.CostByCategory[category]; ok {
			present = append(present, category)
		}
	}
	return present
}

// MarshalText renders the kind as its label.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
