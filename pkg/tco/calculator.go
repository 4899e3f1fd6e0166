package tco

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State tracks the progress of a calculation run.
type State uint8

const (
	StateInitialized State = iota
	StateCapitalAccumulated
	StateOperatingAccumulated
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateCapitalAccumulated:
		return "capital-accumulated"
	case StateOperatingAccumulated:
		return "operating-accumulated"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// Calculator orchestrates a TCO calculation. It holds no state between runs
// and is safe for concurrent use.
type Calculator struct {
	logger   *zap.Logger
	newRunID func() string
}

// NewCalculator creates a calculator. If logger is nil, a no-op logger is used.
func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger, newRunID: uuid.NewString}
}

// run is the accumulator of a single calculation.
type run struct {
	state  State
	params ProjectParameters
	result *Result
	logger *zap.Logger
}

func (r *run) advance(next State) {
	r.logger.Debug(fmt.Sprintf("tco run %s -> %s", r.state, next),
		zap.String("op", "tco.Calculate"),
		zap.String("run", r.result.RunID),
	)
	r.state = next
}

// Calculate computes the TCO of the given items. All inputs are validated
// before anything is accumulated; on error no partial result is returned.
func (c *Calculator) Calculate(params ProjectParameters, capital []CapitalCostItem, operating []OperatingCostItem) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	for _, item := range capital {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	for _, item := range operating {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	r := &run{
		state:  StateInitialized,
		params: params,
		logger: c.logger,
		result: &Result{
			RunID:          c.newRunID(),
			Parameters:     params,
			CostByCategory: make(map[Category]float64),
			Items:          make([]ItemCost, 0, len(capital)+len(operating)),
		},
	}

	for _, item := range capital {
		cost, err := CapitalCost(item, params)
		if err != nil {
			return nil, fmt.Errorf("capital item %s: %w", item.Name, err)
		}
		r.record(item.Name, item.Category, cost)
	}
	r.advance(StateCapitalAccumulated)

	for _, item := range operating {
		cost, err := OperatingCost(item, params)
		if err != nil {
			return nil, fmt.Errorf("operating item %s: %w", item.Name, err)
		}
		r.record(item.Name, item.Category, cost)
	}
	r.advance(StateOperatingAccumulated)

	r.finalize()
	r.advance(StateFinalized)

	c.logger.Info("computed total cost of ownership",
		zap.String("op", "tco.Calculate"),
		zap.String("run", r.result.RunID),
		zap.Int("items", len(r.result.Items)),
		zap.Float64("totalCostOverDuration", r.result.TotalCostOverDuration),
		zap.Float64("specificCost", r.result.SpecificCost),
	)
	return r.result, nil
}

func (r *run) record(name string, category Category, cost float64) {
	switch category.Kind() {
	case KindCapital:
		r.result.TotalCapitalCost += cost
	case KindOperating:
		r.result.TotalOperatingCost += cost
	default:
		// Validation rejects unknown categories before accumulation.
		panic(fmt.Sprintf("tco: unknown category %d for item %s", category, name))
	}

	r.logger.Debug(fmt.Sprintf("%s item %s costs %.2f over %d years", category.Kind(), name, cost, r.params.Duration),
		zap.String("op", "tco.Calculate"),
		zap.String("category", category.String()),
	)
	r.result.Items = append(r.result.Items, ItemCost{
		Name:     name,
		Category: category,
		Kind:     category.Kind(),
		Cost:     cost,
	})
}

func (r *run) finalize() {
	res := r.result
	totalDistance := r.params.TotalDistance()

	res.TotalCostOverDuration = res.TotalCapitalCost + res.TotalOperatingCost
	res.AnnualCost = res.TotalCostOverDuration / float64(r.params.Duration)
	res.SpecificCost = res.TotalCostOverDuration / totalDistance

	for i := range res.Items {
		specific := res.Items[i].Cost / totalDistance
		res.Items[i].SpecificCost = specific
		res.CostByCategory[res.Items[i].Category] += specific
	}
}

// Inputs bundles everything one calculation run consumes.
type Inputs struct {
	Parameters     ProjectParameters
	CapitalItems   []CapitalCostItem
	OperatingItems []OperatingCostItem
}

// CalculateInputs is Calculate over a bundled input snapshot.
func (c *Calculator) CalculateInputs(in Inputs) (*Result, error) {
	return c.Calculate(in.Parameters, in.CapitalItems, in.OperatingItems)
}
