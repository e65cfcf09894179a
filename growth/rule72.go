/*
rule72.go - Rule of 72 doubling-time heuristic

The Rule of 72 is an approximation, not an identity, so every result also
carries the exact closed form and the approximation's accuracy against it.
The heuristic is documented to hold within ~10% for rates between 4% and
20%; outside that band the accuracy figure reflects the divergence.
*/
package growth

import (
	"math"

	"github.com/paisa/calc-engine/finmath"
)

// Rule72RateResult answers "how long until my money doubles at this rate".
type Rule72RateResult struct {
	InterestRate       float64 `json:"interest_rate"`
	YearsToDoubleRule  float64 `json:"years_to_double_rule_72"`
	YearsToDoubleExact float64 `json:"years_to_double_exact"`
	AccuracyPercent    float64 `json:"accuracy_percentage"`
}

// DoublingTime estimates years-to-double as 72/rate and reports the exact
// value ln(2)/ln(1+rate).
func DoublingTime(ratePct float64) (Rule72RateResult, error) {
	if ratePct <= 0 || ratePct > 100 {
		return Rule72RateResult{}, finmath.NewInvalidInput("interest_rate", "rate must be between 0.1 and 100")
	}
	rule := 72 / ratePct
	exact := math.Log(2) / math.Log(1+ratePct/100)
	return Rule72RateResult{
		InterestRate:       ratePct,
		YearsToDoubleRule:  finmath.Round2(rule),
		YearsToDoubleExact: finmath.Round2(exact),
		AccuracyPercent:    accuracy(rule, exact),
	}, nil
}

// Rule72YearsResult answers "what rate doubles my money in this many years".
type Rule72YearsResult struct {
	YearsToDouble     float64 `json:"years_to_double"`
	RequiredRateRule  float64 `json:"required_rate_rule_72"`
	RequiredRateExact float64 `json:"required_rate_exact"`
	AccuracyPercent   float64 `json:"accuracy_percentage"`
}

// RequiredRate estimates the doubling rate as 72/years and reports the
// exact value (2^(1/years) - 1) * 100.
func RequiredRate(years float64) (Rule72YearsResult, error) {
	if years <= 0 || years > 200 {
		return Rule72YearsResult{}, finmath.NewInvalidInput("years_to_double", "years must be between 0.1 and 200")
	}
	rule := 72 / years
	exact := (math.Pow(2, 1/years) - 1) * 100
	return Rule72YearsResult{
		YearsToDouble:     years,
		RequiredRateRule:  finmath.Round2(rule),
		RequiredRateExact: finmath.Round2(exact),
		AccuracyPercent:   accuracy(rule, exact),
	}, nil
}

func accuracy(approx, exact float64) float64 {
	return finmath.Round1(100 - math.Abs(approx-exact)/exact*100)
}
