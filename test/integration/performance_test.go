package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/iwvelando/fleet-tco/internal/config"
	"github.com/iwvelando/fleet-tco/internal/evaluate"
	"github.com/iwvelando/fleet-tco/pkg/tco"
	"github.com/iwvelando/fleet-tco/pkg/testutil"
	"go.uber.org/zap"
)

func largeInputs(items int) tco.Inputs {
	in := tco.Inputs{Parameters: tco.ProjectParameters{Duration: 40, InterestRate: 0.04, DiscountRate: 0.025, AnnualFleetDistance: 5e6}}
	for i := 0; i < items; i++ {
		in.CapitalItems = append(in.CapitalItems, tco.CapitalCostItem{
			Name: fmt.Sprintf("asset %d", i), Category: tco.CategoryBattery,
			UsefulLife: 1 + i%15, ProcurementCost: 350, CostEscalation: -0.03, Quantity: 100,
		})
		in.OperatingItems = append(in.OperatingItems, tco.OperatingCostItem{
			Name: fmt.Sprintf("cost %d", i), Category: tco.CategoryMaintenance,
			UnitCost: 0.35, UsageAmount: 1e5, CostEscalation: 0.02,
		})
	}
	return in
}

// TestPerformance makes sure a large scenario calculates well within a second.
func TestPerformance(t *testing.T) {
	in := largeInputs(1000)

	start := time.Now()
	result, err := tco.NewCalculator(zap.NewNop()).CalculateInputs(in)
	if err != nil {
		t.Fatalf("CalculateInputs() error = %v", err)
	}
	elapsed := time.Since(start)

	if len(result.Items) != 2000 {
		t.Errorf("expected 2000 items, got %d", len(result.Items))
	}
	if elapsed > time.Second {
		t.Errorf("calculation took %v", elapsed)
	}
	t.Logf("calculated %d items in %v", len(result.Items), elapsed)
}

// TestConcurrentScenarios runs many identical scenarios in parallel; all must
// agree to the last bit.
func TestConcurrentScenarios(t *testing.T) {
	var conf config.Configuration
	for i := 0; i < 32; i++ {
		conf.Scenarios = append(conf.Scenarios, config.Scenario{
			Name:   fmt.Sprintf("copy %d", i),
			Active: true,
			Project: config.Project{
				Duration: testutil.Float(12), InterestRate: testutil.Float(0.04),
				DiscountRate: testutil.Float(0.025), AnnualFleetDistance: testutil.Float(1e6),
			},
			CapitalItems: []config.CapitalItem{{
				Name: "battery", Category: "BATTERY", UsefulLife: testutil.Float(7),
				ProcurementCost: testutil.Float(315), CostEscalation: -0.03, Quantity: testutil.Float(1),
			}},
		})
	}

	outcomes, err := evaluate.Evaluate(context.Background(), zap.NewNop(), conf)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	for _, outcome := range outcomes {
		if outcome.Result.TotalCapitalCost != outcomes[0].Result.TotalCapitalCost {
			t.Fatalf("%s differs: %v vs %v", outcome.Name, outcome.Result.TotalCapitalCost, outcomes[0].Result.TotalCapitalCost)
		}
	}
	if got := outcomes[0].Result.TotalCapitalCost; got < 507.39 || got > 507.40 {
		t.Errorf("overrunning battery expected 507.39, got %v", got)
	}
}

func BenchmarkCalculate(b *testing.B) {
	in := largeInputs(100)
	calc := tco.NewCalculator(zap.NewNop())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := calc.CalculateInputs(in); err != nil {
			b.Fatal(err)
		}
	}
}
