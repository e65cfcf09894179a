/*
Package compound implements the compound interest engine.

PURPOSE:
  Future value of a lump sum under periodic compounding at an arbitrary
  frequency, plus a comparison of the same deposit across every supported
  frequency so a caller can show what switching frequency is worth.

FORMULA:
  FV = P * (1 + r/100/n)^(n*y)

EDGE CASES:
  - rate 0 yields FV == P exactly and a 0% effective rate
  - non-positive principal or tenure is rejected before computation

SEE ALSO:
  - finmath/formulas.go: CompoundFactor, EffectiveAnnualRatePct
*/
package compound

import (
	"sort"

	"github.com/paisa/calc-engine/finmath"
)

// Input is the calculation request for a single compounding scenario.
type Input struct {
	Principal   float64           `json:"principal_amount"`
	AnnualRate  float64           `json:"annual_interest_rate"`
	TenureYears float64           `json:"tenure_years"`
	Frequency   finmath.Frequency `json:"compounding_frequency"`
}

// Validate rejects preconditions violations before any arithmetic runs.
func (in Input) Validate() error {
	if in.Principal <= 0 {
		return finmath.NewInvalidInput("principal_amount", "principal must be positive")
	}
	if in.AnnualRate < 0 || in.AnnualRate > 100 {
		return finmath.NewInvalidInput("annual_interest_rate", "rate must be between 0 and 100")
	}
	if in.TenureYears <= 0 {
		return finmath.NewInvalidInput("tenure_years", "tenure must be positive")
	}
	if !in.Frequency.Valid() {
		return finmath.NewInvalidInput("compounding_frequency", "unknown compounding frequency %q", string(in.Frequency))
	}
	return nil
}

// ComparisonRow is the same principal/rate/tenure evaluated at one
// frequency, annotated with the distance from the selected frequency.
type ComparisonRow struct {
	Frequency              finmath.Frequency `json:"frequency"`
	PeriodsPerYear         int               `json:"periods_per_year"`
	FutureValue            float64           `json:"future_value"`
	InterestEarned         float64           `json:"interest_earned"`
	DifferenceFromSelected float64           `json:"difference_from_selected"`
}

// Result is the calculation response.
type Result struct {
	Principal           float64           `json:"principal_amount"`
	AnnualRate          float64           `json:"annual_interest_rate"`
	TenureYears         float64           `json:"tenure_years"`
	Frequency           finmath.Frequency `json:"compounding_frequency"`
	FutureValue         float64           `json:"future_value"`
	InterestEarned      float64           `json:"interest_earned"`
	EffectiveAnnualRate float64           `json:"effective_annual_rate"`
	Comparison          []ComparisonRow   `json:"frequency_comparison"`
}

// Calculate computes the future value and the cross-frequency comparison.
func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	fv := in.Principal * finmath.CompoundFactor(in.AnnualRate, in.TenureYears, in.Frequency.PeriodsPerYear())
	interest := fv - in.Principal

	rows := make([]ComparisonRow, 0, len(finmath.AllFrequencies))
	for _, f := range finmath.AllFrequencies {
		ffv := in.Principal * finmath.CompoundFactor(in.AnnualRate, in.TenureYears, f.PeriodsPerYear())
		rows = append(rows, ComparisonRow{
			Frequency:      f,
			PeriodsPerYear: f.PeriodsPerYear(),
			FutureValue:    finmath.Round2(ffv),
			InterestEarned: finmath.Round2(ffv - in.Principal),
		})
	}
	// Most rewarding frequency first; the delta column is relative to the
	// frequency the caller actually picked.
	sort.Slice(rows, func(i, j int) bool { return rows[i].InterestEarned > rows[j].InterestEarned })
	selected := finmath.Round2(interest)
	for i := range rows {
		rows[i].DifferenceFromSelected = finmath.Round2(rows[i].InterestEarned - selected)
	}

	return Result{
		Principal:           in.Principal,
		AnnualRate:          in.AnnualRate,
		TenureYears:         in.TenureYears,
		Frequency:           in.Frequency,
		FutureValue:         finmath.Round2(fv),
		InterestEarned:      finmath.Round2(interest),
		EffectiveAnnualRate: finmath.Round2(finmath.EffectiveAnnualRatePct(fv, in.Principal, in.TenureYears)),
		Comparison:          rows,
	}, nil
}
