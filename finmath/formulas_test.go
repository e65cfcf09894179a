package finmath_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisa/calc-engine/finmath"
)

// =============================================================================
// COMPOUNDING
// =============================================================================

func TestCompoundFactor_AnnualOneYear(t *testing.T) {
	// GIVEN: 10% annual rate, one year, annual compounding
	// WHEN: Computing the growth factor
	// THEN: Factor is exactly 1.1

	assert.InDelta(t, 1.1, finmath.CompoundFactor(10, 1, 1), 1e-12)
}

func TestCompoundFactor_ZeroRate_Identity(t *testing.T) {
	// GIVEN: 0% rate at any frequency and tenure
	// WHEN: Computing the growth factor
	// THEN: Factor is exactly 1 (money neither grows nor shrinks)

	assert.Equal(t, 1.0, finmath.CompoundFactor(0, 5, 12))
	assert.Equal(t, 1.0, finmath.CompoundFactor(0, 30, 365))
}

func TestCompoundFactor_MoreFrequentCompoundsMore(t *testing.T) {
	// GIVEN: The same rate and tenure at increasing frequency
	// WHEN: Computing the growth factors
	// THEN: Each step up in frequency grows at least as much

	prev := 0.0
	for _, f := range finmath.AllFrequencies {
		factor := finmath.CompoundFactor(8, 10, f.PeriodsPerYear())
		assert.GreaterOrEqual(t, factor, prev, "frequency %s should not compound less than the previous", f)
		prev = factor
	}
}

func TestEffectiveAnnualRatePct_InvertsCompoundGrowth(t *testing.T) {
	// GIVEN: A principal grown by a known factor
	// WHEN: Solving for the effective annual rate
	// THEN: The original rate comes back

	fv := 100000 * finmath.CompoundFactor(10, 1, 1)
	assert.InDelta(t, 10, finmath.EffectiveAnnualRatePct(fv, 100000, 1), 1e-9)

	fv = 50000 * finmath.CompoundFactor(12, 7, 12)
	got := finmath.EffectiveAnnualRatePct(fv, 50000, 7)
	// Monthly compounding at 12% nominal is ~12.68% effective.
	assert.InDelta(t, 12.68, got, 0.01)
}

func TestRealRatePct_Fisher(t *testing.T) {
	// GIVEN: 8% nominal return and 5% inflation
	// WHEN: Computing the real rate
	// THEN: The Fisher equation gives ~2.857%, not the naive 3%

	got := finmath.RealRatePct(8, 5)
	assert.InDelta(t, 2.857142857, got, 1e-9)
	assert.Less(t, got, 3.0, "real rate must be below the nominal-minus-inflation shortcut")
}

func TestRealRatePct_EqualRates_Zero(t *testing.T) {
	assert.InDelta(t, 0, finmath.RealRatePct(6, 6), 1e-12)
}

// =============================================================================
// ANNUITIES
// =============================================================================

func TestFutureValueAnnuityDue_KnownValue(t *testing.T) {
	// GIVEN: 5000 per month for 12 months at 1% per month
	// WHEN: Computing the annuity-due future value
	// THEN: FV = 5000 * ((1.01^12 - 1)/0.01) * 1.01

	got := finmath.FutureValueAnnuityDue(5000, 0.01, 12)
	assert.InDelta(t, 64046.64, got, 0.01)
}

func TestFutureValueAnnuityDue_ZeroRate(t *testing.T) {
	// GIVEN: A zero per-period rate
	// WHEN: Computing the future value
	// THEN: It degenerates to payment * n exactly

	assert.Equal(t, 60000.0, finmath.FutureValueAnnuityDue(5000, 0, 12))
}

func TestFutureValueAnnuityDue_NoPeriods(t *testing.T) {
	assert.Equal(t, 0.0, finmath.FutureValueAnnuityDue(5000, 0.01, 0))
}

func TestRequiredAnnuityDuePayment_InvertsFutureValue(t *testing.T) {
	// GIVEN: A future value produced by a known payment
	// WHEN: Solving for the payment
	// THEN: The original payment comes back within float tolerance

	for _, tc := range []struct {
		payment float64
		r       float64
		n       int
	}{
		{5000, 0.01, 12},
		{1500, 0.005, 240},
		{25000, 0, 36},
	} {
		fv := finmath.FutureValueAnnuityDue(tc.payment, tc.r, tc.n)
		got := finmath.RequiredAnnuityDuePayment(fv, tc.r, tc.n)
		assert.InDelta(t, tc.payment, got, 1e-6)
	}
}

func TestFutureValueOrdinaryAnnuity_LagsAnnuityDue(t *testing.T) {
	// GIVEN: The same payment stream at a positive rate
	// WHEN: Comparing end-of-period vs start-of-period contributions
	// THEN: The ordinary annuity is worth exactly 1/(1+r) of the due one

	due := finmath.FutureValueAnnuityDue(5000, 0.01, 12)
	ordinary := finmath.FutureValueOrdinaryAnnuity(5000, 0.01, 12)
	assert.InDelta(t, due/1.01, ordinary, 1e-9)
}

func TestPresentValueAnnuityFactor(t *testing.T) {
	// GIVEN: Rates at and near zero, and a normal rate
	// WHEN: Pricing an n-period withdrawal stream
	// THEN: Zero rate gives n; one period gives simple discounting

	assert.Equal(t, 20.0, finmath.PresentValueAnnuityFactor(0, 20))
	assert.InDelta(t, 1/1.05, finmath.PresentValueAnnuityFactor(0.05, 1), 1e-12)
	assert.Equal(t, 0.0, finmath.PresentValueAnnuityFactor(0.05, 0))
}

// =============================================================================
// ROUNDING
// =============================================================================

func TestRounding(t *testing.T) {
	assert.Equal(t, 2.35, finmath.Round2(2.345))
	assert.Equal(t, 100.0, finmath.RoundRupee(99.5))
	assert.Equal(t, 98.1, finmath.Round1(98.0985))
	assert.Equal(t, -2.35, finmath.Round2(-2.345), "rounds away from zero on both sides")
}

// =============================================================================
// FREQUENCY PARSING
// =============================================================================

func TestParseFrequency(t *testing.T) {
	f, err := finmath.ParseFrequency("monthly")
	require.NoError(t, err)
	assert.Equal(t, finmath.Monthly, f)
	assert.Equal(t, 12, f.PeriodsPerYear())

	_, err = finmath.ParseFrequency("fortnightly")
	require.Error(t, err)
	assert.True(t, finmath.IsInvalidInput(err))
}

func TestContributionFrequency_PeriodsPerYear(t *testing.T) {
	assert.Equal(t, 365, finmath.ContributeDaily.PeriodsPerYear())
	assert.Equal(t, 12, finmath.ContributeMonthly.PeriodsPerYear())
	assert.Equal(t, 0, finmath.ContributeOneTime.PeriodsPerYear())
}

func TestAccuracyInputsFinite(t *testing.T) {
	// Guards the transcendental helpers against NaN leaking out of the
	// closed forms used across the engines.
	for _, v := range []float64{
		finmath.CompoundFactor(10, 30, 365),
		finmath.EffectiveAnnualRatePct(2, 1, 10),
		finmath.RealRatePct(12, 6),
		finmath.FutureValueAnnuityDue(1, 0.001, 600),
	} {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}
