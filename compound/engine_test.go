package compound_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisa/calc-engine/compound"
	"github.com/paisa/calc-engine/finmath"
)

func TestCalculate_AnnualOneYear(t *testing.T) {
	// GIVEN: 100000 at 10% for one year, compounded annually
	// WHEN: Calculating
	// THEN: Future value is exactly 110000 and interest 10000

	res, err := compound.Calculate(compound.Input{
		Principal:   100000,
		AnnualRate:  10,
		TenureYears: 1,
		Frequency:   finmath.Annually,
	})
	require.NoError(t, err)

	assert.Equal(t, 110000.0, res.FutureValue)
	assert.Equal(t, 10000.0, res.InterestEarned)
	assert.InDelta(t, 10, res.EffectiveAnnualRate, 0.01)
}

func TestCalculate_ZeroRate_Identity(t *testing.T) {
	// GIVEN: A zero interest rate
	// WHEN: Calculating at any frequency
	// THEN: Future value equals the principal and no interest accrues

	res, err := compound.Calculate(compound.Input{
		Principal:   50000,
		AnnualRate:  0,
		TenureYears: 5,
		Frequency:   finmath.Monthly,
	})
	require.NoError(t, err)

	assert.Equal(t, 50000.0, res.FutureValue)
	assert.Equal(t, 0.0, res.InterestEarned)
	assert.Equal(t, 0.0, res.EffectiveAnnualRate)
}

func TestCalculate_FrequencyComparison(t *testing.T) {
	// GIVEN: A positive rate
	// WHEN: Calculating with the cross-frequency comparison
	// THEN: All six frequencies appear, sorted by interest descending,
	//       daily first and annually last, and the selected row has a
	//       zero difference

	res, err := compound.Calculate(compound.Input{
		Principal:   200000,
		AnnualRate:  8,
		TenureYears: 3,
		Frequency:   finmath.Quarterly,
	})
	require.NoError(t, err)
	require.Len(t, res.Comparison, len(finmath.AllFrequencies))

	assert.Equal(t, finmath.Daily, res.Comparison[0].Frequency)
	assert.Equal(t, finmath.Annually, res.Comparison[len(res.Comparison)-1].Frequency)

	for i := 1; i < len(res.Comparison); i++ {
		assert.GreaterOrEqual(t, res.Comparison[i-1].InterestEarned, res.Comparison[i].InterestEarned)
	}

	var selected *compound.ComparisonRow
	for i := range res.Comparison {
		if res.Comparison[i].Frequency == finmath.Quarterly {
			selected = &res.Comparison[i]
		}
	}
	require.NotNil(t, selected)
	assert.Equal(t, 0.0, selected.DifferenceFromSelected)
	assert.Equal(t, res.FutureValue, selected.FutureValue)
}

func TestCalculate_MonthlyBeatsAnnually(t *testing.T) {
	monthly, err := compound.Calculate(compound.Input{
		Principal: 100000, AnnualRate: 10, TenureYears: 5, Frequency: finmath.Monthly,
	})
	require.NoError(t, err)
	annually, err := compound.Calculate(compound.Input{
		Principal: 100000, AnnualRate: 10, TenureYears: 5, Frequency: finmath.Annually,
	})
	require.NoError(t, err)

	assert.Greater(t, monthly.FutureValue, annually.FutureValue)
}

func TestCalculate_RejectsBadInput(t *testing.T) {
	cases := map[string]compound.Input{
		"zero principal":     {Principal: 0, AnnualRate: 10, TenureYears: 1, Frequency: finmath.Annually},
		"negative principal": {Principal: -1, AnnualRate: 10, TenureYears: 1, Frequency: finmath.Annually},
		"rate above 100":     {Principal: 1000, AnnualRate: 101, TenureYears: 1, Frequency: finmath.Annually},
		"zero tenure":        {Principal: 1000, AnnualRate: 10, TenureYears: 0, Frequency: finmath.Annually},
		"bad frequency":      {Principal: 1000, AnnualRate: 10, TenureYears: 1, Frequency: "hourly"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := compound.Calculate(in)
			require.Error(t, err)
			assert.True(t, finmath.IsInvalidInput(err))
		})
	}
}
