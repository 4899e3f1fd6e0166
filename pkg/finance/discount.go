// Package finance provides the discounting and amortization primitives used
// by the TCO engine.
package finance

import (
	"math"
)

// PresentValue brings a cash flow occurring yearOffset years after the base
// year back to base-year terms. The caller guarantees discountRate > -1 and
// yearOffset >= 0.
func PresentValue(cashFlow float64, yearOffset int, discountRate float64) float64 {
	if yearOffset == 0 {
		return cashFlow
	}
	return cashFlow / math.Pow(1+discountRate, float64(yearOffset))
}

// Annuity converts a lump procurement cost into usefulLife equal yearly
// installments whose present value at interestRate equals procurementCost.
func Annuity(procurementCost float64, usefulLife int, interestRate float64) float64 {
	if interestRate == 0 {
		// For zero interest the formula degenerates to 0/0; use straight-line.
		return procurementCost / float64(usefulLife)
	}

	discountFactor := 1 - math.Pow(1+interestRate, -float64(usefulLife))
	return procurementCost * interestRate / discountFactor
}

// Escalate applies a constant annual rate of change to a base-year value.
func Escalate(base, rate float64, years int) float64 {
	if years == 0 {
		return base
	}
	return base * math.Pow(1+rate, float64(years))
}

// DiscountSeries sums the present values of a yearly series where the
// position of each entry is its offset from the base year.
func DiscountSeries(flows []float64, discountRate float64) float64 {
	total := 0.0
	for year, flow := range flows {
		total += PresentValue(flow, year, discountRate)
	}
	return total
}

// AnnuityStream returns n copies of installment, one per year.
func AnnuityStream(installment float64, n int) []float64 {
	stream := make([]float64, n)
	for i := range stream {
		stream[i] = installment
	}
	return stream
}
