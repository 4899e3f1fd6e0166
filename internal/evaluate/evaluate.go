// Package evaluate runs the TCO calculation for every active scenario of a
// configuration.
package evaluate

import (
	"context"
	"fmt"

	"github.com/iwvelando/fleet-tco/internal/config"
	"github.com/iwvelando/fleet-tco/internal/fleet"
	"github.com/iwvelando/fleet-tco/pkg/tco"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Outcome holds the result of one scenario.
type Outcome struct {
	Name   string
	Result *tco.Result
}

// Evaluate calculates all active scenarios concurrently. Scenarios share no
// state, so outcomes are independent of scheduling; they are returned in
// configuration order. The first failing scenario cancels the rest.
func Evaluate(ctx context.Context, logger *zap.Logger, conf config.Configuration) ([]Outcome, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var active []config.Scenario
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "evaluate.Evaluate"),
			)
			continue
		}
		active = append(active, scenario)
	}

	outcomes := make([]Outcome, len(active))
	g, ctx := errgroup.WithContext(ctx)
	for i, scenario := range active {
		i, scenario := i, scenario
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := Scenario(logger, scenario)
			if err != nil {
				return err
			}
			outcomes[i] = Outcome{Name: scenario.Name, Result: result}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Scenario converts a single scenario into calculation inputs and runs it.
func Scenario(logger *zap.Logger, scenario config.Scenario) (*tco.Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	scoped := logger.With(zap.String("scenario", scenario.Name))

	in, err := scenario.Inputs(fleet.NewDeriver(scoped))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result, err := tco.NewCalculator(scoped).CalculateInputs(in)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	return result, nil
}
