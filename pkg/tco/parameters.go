package tco

import (
	"github.com/iwvelando/fleet-tco/pkg/mathutil"
)

// ProjectParameters holds the scalar configuration of one calculation run.
// It is passed by value into every calculation; there are no package-level
// defaults.
type ProjectParameters struct {
	Duration            int     `json:"duration"`            // years
	InterestRate        float64 `json:"interestRate"`        // annuitization
	DiscountRate        float64 `json:"discountRate"`        // present value
	AnnualFleetDistance float64 `json:"annualFleetDistance"` // e.g. km per year
}

// NewProjectParameters validates and returns a ProjectParameters value.
func NewProjectParameters(duration int, interestRate, discountRate, annualFleetDistance float64) (ProjectParameters, error) {
	params := ProjectParameters{
		Duration:            duration,
		InterestRate:        interestRate,
		DiscountRate:        discountRate,
		AnnualFleetDistance: annualFleetDistance,
	}
	if err := params.Validate(); err != nil {
		return ProjectParameters{}, err
	}
	return params, nil
}

// Validate fails on any value the calculation cannot use. A zero duration or
// distance is an ArithmeticError since both divide the total.
func (p ProjectParameters) Validate() error {
	switch {
	case p.Duration == 0:
		return &ArithmeticError{Operation: "specific cost", Reason: "project duration is zero"}
	case p.Duration < 0:
		return invalid("projectDuration", p.Duration, "must be a positive number of years")
	}

	if !mathutil.IsFinite(p.InterestRate) || p.InterestRate <= -1 {
		return invalid("interestRate", p.InterestRate, "must be greater than -1")
	}
	if !mathutil.IsFinite(p.DiscountRate) || p.DiscountRate <= -1 {
		return invalid("discountRate", p.DiscountRate, "must be greater than -1")
	}

	switch {
	case !mathutil.IsFinite(p.AnnualFleetDistance):
		return invalid("annualFleetDistance", p.AnnualFleetDistance, "must be finite")
	case p.AnnualFleetDistance == 0:
		return &ArithmeticError{Operation: "specific cost", Reason: "annual fleet distance is zero"}
	case p.AnnualFleetDistance < 0:
		return invalid("annualFleetDistance", p.AnnualFleetDistance, "must be positive")
	}
	return nil
}

// TotalDistance is the distance the fleet covers over the whole project.
func (p ProjectParameters) TotalDistance() float64 {
	return p.AnnualFleetDistance * float64(p.Duration)
}
