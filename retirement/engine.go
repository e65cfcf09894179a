/*
Package retirement implements the retirement corpus engine.

PURPOSE:
  Two-phase annuity problem. Accumulation: grow existing savings and a
  monthly contribution until retirement at the pre-retirement return.
  Decumulation: fund an inflation-escalated withdrawal need through the
  retirement years at the post-retirement return.

REAL RATE:
  The decumulation annuity factor uses the inflation-adjusted real
  post-retirement return (Fisher equation), so the priced withdrawal
  stream keeps its purchasing power through retirement instead of only at
  the retirement date.

FAILURE MODES:
  Age ordering violations (current >= retirement, retirement >= life
  expectancy) make one phase non-positive and are rejected up front.
*/
package retirement

import (
	"math"

	"github.com/paisa/calc-engine/finmath"
)

// Input is the calculation request. Rates are whole-number percentages.
type Input struct {
	CurrentAge           int     `json:"current_age"`
	RetirementAge        int     `json:"retirement_age"`
	LifeExpectancy       int     `json:"life_expectancy"`
	MonthlyIncomeDesired float64 `json:"monthly_income_desired"`
	InflationRate        float64 `json:"inflation_rate"`
	PreRetirementReturn  float64 `json:"pre_retirement_return"`
	PostRetirementReturn float64 `json:"post_retirement_return"`
	CurrentSavings       float64 `json:"current_savings"`
}

func (in Input) Validate() error {
	if in.CurrentAge <= 0 {
		return finmath.NewInvalidInput("current_age", "current age must be positive")
	}
	if in.RetirementAge <= in.CurrentAge {
		return finmath.NewInvalidInput("retirement_age", "retirement age must be greater than current age")
	}
	if in.LifeExpectancy <= in.RetirementAge {
		return finmath.NewInvalidInput("life_expectancy", "life expectancy must be greater than retirement age")
	}
	if in.MonthlyIncomeDesired <= 0 {
		return finmath.NewInvalidInput("monthly_income_desired", "desired monthly income must be positive")
	}
	if in.InflationRate < 0 {
		return finmath.NewInvalidInput("inflation_rate", "inflation rate cannot be negative")
	}
	if in.PreRetirementReturn < 0 || in.PostRetirementReturn < 0 {
		return finmath.NewInvalidInput("returns", "returns cannot be negative")
	}
	if in.CurrentSavings < 0 {
		return finmath.NewInvalidInput("current_savings", "current savings cannot be negative")
	}
	return nil
}

// Result is the calculation response. Corpus figures are whole rupees.
type Result struct {
	YearsToRetirement          int     `json:"years_to_retirement"`
	YearsInRetirement          int     `json:"years_in_retirement"`
	InflatedMonthlyIncome      float64 `json:"inflated_monthly_income"`
	AnnualRetirementIncome     float64 `json:"annual_retirement_income_needed"`
	RequiredCorpus             float64 `json:"required_retirement_corpus"`
	FutureValueCurrentSavings  float64 `json:"future_value_current_savings"`
	AdditionalCorpusNeeded     float64 `json:"additional_corpus_needed"`
	MonthlySavingsRequired     float64 `json:"monthly_savings_required"`
	RealPostRetirementReturn   float64 `json:"real_post_retirement_return"`
}

// Calculate solves both phases.
func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	yearsToRetirement := in.RetirementAge - in.CurrentAge
	yearsInRetirement := in.LifeExpectancy - in.RetirementAge

	inflatedMonthly := in.MonthlyIncomeDesired * math.Pow(1+in.InflationRate/100, float64(yearsToRetirement))
	annualIncome := inflatedMonthly * 12

	realPostPct := finmath.RealRatePct(in.PostRetirementReturn, in.InflationRate)
	corpusNeeded := annualIncome * finmath.PresentValueAnnuityFactor(realPostPct/100, yearsInRetirement)

	fvSavings := in.CurrentSavings * math.Pow(1+in.PreRetirementReturn/100, float64(yearsToRetirement))
	additional := corpusNeeded - fvSavings
	if additional < 0 {
		additional = 0
	}

	monthly := 0.0
	if additional > 0 {
		months := yearsToRetirement * 12
		monthlyRate := in.PreRetirementReturn / 100 / 12
		// Ordinary annuity: contributions credited at month end.
		factor := finmath.FutureValueOrdinaryAnnuity(1, monthlyRate, months)
		monthly = additional / factor
	}

	return Result{
		YearsToRetirement:         yearsToRetirement,
		YearsInRetirement:         yearsInRetirement,
		InflatedMonthlyIncome:     finmath.RoundRupee(inflatedMonthly),
		AnnualRetirementIncome:    finmath.RoundRupee(annualIncome),
		RequiredCorpus:            finmath.RoundRupee(corpusNeeded),
		FutureValueCurrentSavings: finmath.RoundRupee(fvSavings),
		AdditionalCorpusNeeded:    finmath.RoundRupee(additional),
		MonthlySavingsRequired:    finmath.RoundRupee(monthly),
		RealPostRetirementReturn:  finmath.Round2(realPostPct),
	}, nil
}
