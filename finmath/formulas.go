/*
formulas.go - Shared closed-form financial formulas

PURPOSE:
  The single implementation of the annuity and compound-growth formulas
  used by every engine. The HTTP handlers call the same functions the
  library exposes, so a local and a remote computation can never diverge.

CONVENTIONS:
  - Rates arrive whole-number-scaled (12 means 12%), as on the wire.
  - Per-period rates passed between helpers are fractional (0.01 = 1%).
  - Transcendental parts run in float64; monetary rounding is done by the
    callers through Round2/RoundRupee.
*/
package finmath

import (
	"math"

	"github.com/shopspring/decimal"
)

// =============================================================================
// COMPOUND GROWTH
// =============================================================================

// CompoundFactor returns (1 + r/n)^(n*y) for an annual percentage rate,
// years y and n compounding periods per year.
func CompoundFactor(annualRatePct, years float64, periodsPerYear int) float64 {
	n := float64(periodsPerYear)
	return math.Pow(1+annualRatePct/100/n, n*years)
}

// EffectiveAnnualRatePct inverts compound growth: the constant annual
// percentage rate that grows principal to futureValue over years.
func EffectiveAnnualRatePct(futureValue, principal, years float64) float64 {
	if principal <= 0 || years <= 0 {
		return 0
	}
	return (math.Pow(futureValue/principal, 1/years) - 1) * 100
}

// RealRatePct applies the Fisher equation to a nominal annual rate and an
// inflation rate, both whole-number-scaled.
func RealRatePct(nominalPct, inflationPct float64) float64 {
	return ((1 + nominalPct/100) / (1 + inflationPct/100) - 1) * 100
}

// =============================================================================
// ANNUITIES
// =============================================================================

// FutureValueAnnuityDue returns the future value of n contributions made
// at the start of each period at per-period rate r (fractional).
// Zero-rate degenerates to payment*n.
func FutureValueAnnuityDue(payment, r float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	if r == 0 {
		return payment * float64(n)
	}
	return payment * ((math.Pow(1+r, float64(n)) - 1) / r) * (1 + r)
}

// RequiredAnnuityDuePayment solves FutureValueAnnuityDue for the payment.
func RequiredAnnuityDuePayment(target, r float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	if r == 0 {
		return target / float64(n)
	}
	return target * r / ((math.Pow(1+r, float64(n)) - 1) * (1 + r))
}

// FutureValueOrdinaryAnnuity returns the future value of n end-of-period
// contributions at per-period rate r. Used where the original product
// credits the deposit after the period, e.g. retirement savings plans.
func FutureValueOrdinaryAnnuity(payment, r float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	if r == 0 {
		return payment * float64(n)
	}
	return payment * ((math.Pow(1+r, float64(n)) - 1) / r)
}

// PresentValueAnnuityFactor returns (1 - (1+r)^-n) / r, the factor that
// prices an n-period withdrawal stream at per-period rate r. A near-zero
// rate degenerates to n.
func PresentValueAnnuityFactor(r float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	if math.Abs(r) < 1e-9 {
		return float64(n)
	}
	return (1 - math.Pow(1+r, -float64(n))) / r
}

// =============================================================================
// ROUNDING - all monetary rounding goes through decimal
// =============================================================================

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// RoundRupee rounds to the nearest whole currency unit.
func RoundRupee(v float64) float64 {
	return decimal.NewFromFloat(v).Round(0).InexactFloat64()
}

// Round1 rounds to one decimal place. Used for accuracy percentages.
func Round1(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}
