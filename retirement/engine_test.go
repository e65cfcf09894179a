package retirement_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisa/calc-engine/finmath"
	"github.com/paisa/calc-engine/retirement"
)

func baseInput() retirement.Input {
	return retirement.Input{
		CurrentAge:           30,
		RetirementAge:        60,
		LifeExpectancy:       85,
		MonthlyIncomeDesired: 50000,
		InflationRate:        6,
		PreRetirementReturn:  12,
		PostRetirementReturn: 8,
		CurrentSavings:       1000000,
	}
}

func TestCalculate_PhasesAndInflation(t *testing.T) {
	// GIVEN: A 30-year-old retiring at 60 with 25 years in retirement
	// WHEN: Calculating
	// THEN: Today's 50000/month inflates by 1.06^30 and the corpus
	//       prices the withdrawal stream at the Fisher real rate

	res, err := retirement.Calculate(baseInput())
	require.NoError(t, err)

	assert.Equal(t, 30, res.YearsToRetirement)
	assert.Equal(t, 25, res.YearsInRetirement)

	wantMonthly := 50000 * math.Pow(1.06, 30)
	assert.InDelta(t, wantMonthly, res.InflatedMonthlyIncome, 1)
	assert.InDelta(t, wantMonthly*12, res.AnnualRetirementIncome, 12)

	// Fisher: (1.08/1.06 - 1) * 100 = 1.89 rounded.
	assert.Equal(t, 1.89, res.RealPostRetirementReturn)

	assert.Greater(t, res.RequiredCorpus, res.AnnualRetirementIncome,
		"corpus must cover more than one year of income")
	assert.Greater(t, res.MonthlySavingsRequired, 0.0)
}

func TestCalculate_CorpusUsesRealRate(t *testing.T) {
	// GIVEN: Post-retirement returns exactly offsetting inflation
	// WHEN: Calculating
	// THEN: The real rate is zero, so the corpus is exactly
	//       years-in-retirement times the annual income

	in := baseInput()
	in.PostRetirementReturn = 6 // equals inflation

	res, err := retirement.Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.RealPostRetirementReturn)
	assert.InDelta(t, res.AnnualRetirementIncome*25, res.RequiredCorpus, 30)
}

func TestCalculate_LargeSavingsNeedNoContribution(t *testing.T) {
	// GIVEN: Current savings that already out-compound the corpus need
	// WHEN: Calculating
	// THEN: Additional corpus and monthly savings are zero, never negative

	in := baseInput()
	in.CurrentSavings = 100000000

	res, err := retirement.Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.AdditionalCorpusNeeded)
	assert.Equal(t, 0.0, res.MonthlySavingsRequired)
}

func TestCalculate_SavingsGrowAtPreRetirementRate(t *testing.T) {
	res, err := retirement.Calculate(baseInput())
	require.NoError(t, err)

	want := 1000000 * math.Pow(1.12, 30)
	assert.InDelta(t, want, res.FutureValueCurrentSavings, 1)
}

func TestCalculate_RejectsBadAges(t *testing.T) {
	for name, mutate := range map[string]func(*retirement.Input){
		"retirement before current": func(in *retirement.Input) { in.RetirementAge = 25 },
		"life expectancy at retire": func(in *retirement.Input) { in.LifeExpectancy = 60 },
		"zero current age":          func(in *retirement.Input) { in.CurrentAge = 0 },
		"zero desired income":       func(in *retirement.Input) { in.MonthlyIncomeDesired = 0 },
		"negative inflation":        func(in *retirement.Input) { in.InflationRate = -1 },
		"negative return":           func(in *retirement.Input) { in.PreRetirementReturn = -1 },
		"negative current savings":  func(in *retirement.Input) { in.CurrentSavings = -1 },
	} {
		t.Run(name, func(t *testing.T) {
			in := baseInput()
			mutate(&in)
			_, err := retirement.Calculate(in)
			require.Error(t, err)
			assert.True(t, finmath.IsInvalidInput(err))
		})
	}
}
