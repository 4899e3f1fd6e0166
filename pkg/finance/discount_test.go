package finance

import (
	"math"
	"testing"

	"github.com/iwvelando/fleet-tco/pkg/mathutil"
)

func TestPresentValue(t *testing.T) {
	tests := []struct {
		name         string
		cashFlow     float64
		yearOffset   int
		discountRate float64
		expected     float64
	}{
		{"Base year is untouched", 1000, 0, 0.025, 1000},
		{"One year at 10%", 1100, 1, 0.10, 1000},
		{"Two years at 10%", 1210, 2, 0.10, 1000},
		{"Zero rate keeps value", 500, 7, 0, 500},
		{"Negative rate inflates", 1000, 1, -0.5, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PresentValue(tt.cashFlow, tt.yearOffset, tt.discountRate)
			if !mathutil.WithinTolerance(result, tt.expected, 1e-9) {
				t.Errorf("PresentValue() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestPresentValueZeroOffsetIdentity(t *testing.T) {
	for _, rate := range []float64{-0.9, -0.03, 0, 0.025, 0.04, 1, 25} {
		for _, x := range []float64{-12.5, 0, 1, 370000, 1e12} {
			if got := PresentValue(x, 0, rate); got != x {
				t.Fatalf("PresentValue(%v, 0, %v) = %v, expected exact identity", x, rate, got)
			}
		}
	}
}

func TestAnnuity(t *testing.T) {
	tests := []struct {
		name            string
		procurementCost float64
		usefulLife      int
		interestRate    float64
		expected        float64
	}{
		{"Electric bus", 370000, 12, 0.04, 39424.30389384091},
		{"Single year repays cost plus interest", 1000, 1, 0.05, 1050},
		{"Zero interest is straight-line", 1200, 12, 0, 100},
		{"Zero cost", 0, 20, 0.04, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Annuity(tt.procurementCost, tt.usefulLife, tt.interestRate)
			if !mathutil.WithinTolerance(result, tt.expected, 1e-6) {
				t.Errorf("Annuity() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestAnnuityAmortizationIdentity(t *testing.T) {
	costs := []float64{1, 350, 100000, 370000, 3400000}
	lives := []int{1, 2, 6, 7, 12, 20, 40}
	rates := []float64{0.001, 0.02, 0.04, 0.1, 0.35}

	for _, p := range costs {
		for _, n := range lives {
			for _, r := range rates {
				installment := Annuity(p, n, r)
				pv := DiscountSeries(AnnuityStream(installment, n), r)
				if !mathutil.RelativeEqual(pv, p) {
					t.Errorf("P=%v n=%d r=%v: discounted installments = %v, expected %v", p, n, r, pv, p)
				}
			}
		}
	}
}

func TestAnnuityZeroInterestSumsToCost(t *testing.T) {
	installment := Annuity(1000, 3, 0)
	if math.Abs(installment*3-1000) > 1e-9 {
		t.Errorf("straight-line installments sum to %v, expected 1000", installment*3)
	}
}

func TestEscalate(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		rate     float64
		years    int
		expected float64
	}{
		{"No years", 350, -0.03, 0, 350},
		{"Falling battery price", 350, -0.03, 6, 291.5402017251499},
		{"Rising price", 100, 0.1, 2, 121},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Escalate(tt.base, tt.rate, tt.years)
			if !mathutil.WithinTolerance(result, tt.expected, 1e-9) {
				t.Errorf("Escalate() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestDiscountSeries(t *testing.T) {
	if got := DiscountSeries(nil, 0.05); got != 0 {
		t.Errorf("DiscountSeries(nil) = %v, expected 0", got)
	}
	got := DiscountSeries([]float64{100, 110, 121}, 0.1)
	if !mathutil.WithinTolerance(got, 300, 1e-9) {
		t.Errorf("DiscountSeries() = %v, expected 300", got)
	}
}
