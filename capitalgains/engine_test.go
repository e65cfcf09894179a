package capitalgains_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisa/calc-engine/capitalgains"
	"github.com/paisa/calc-engine/finmath"
	"github.com/paisa/calc-engine/tax"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestEngine(t *testing.T) *capitalgains.Engine {
	t.Helper()

	cii := capitalgains.CIITable{
		2001: 100, 2010: 167, 2020: 301, 2021: 317,
		2022: 331, 2023: 348, 2024: 363, 2025: 380,
	}
	rules := capitalgains.Rules{
		EquityLTCGDays:   365,
		PropertyLTCGDays: 730,
		DefaultLTCGDays:  1095,

		RegimeChangeDate: "2024-07-23",

		EquityLTCGExemptionPre:  100000,
		EquityLTCGExemptionPost: 125000,
		EquityLTCGRatePre:       10,
		EquityLTCGRatePost:      12.5,
		EquitySTCGRatePre:       15,
		EquitySTCGRatePost:      20,

		IndexedLTCGRate:  20,
		CryptoRate:       30,
		SlabFallbackRate: 20,

		CessRate:                 4,
		SurchargeRate:            10,
		SurchargeIncomeThreshold: 5000000,
	}
	slab := tax.Table{
		ID: "new-regime-fy2024-25",
		Slabs: []tax.Slab{
			{Lower: 0, Upper: 300000, Rate: 0},
			{Lower: 300000, Upper: 700000, Rate: 5},
			{Lower: 700000, Upper: 1000000, Rate: 10},
			{Lower: 1000000, Upper: 1200000, Rate: 15},
			{Lower: 1200000, Upper: 1500000, Rate: 20},
			{Lower: 1500000, Upper: 0, Rate: 30},
		},
	}

	engine, err := capitalgains.NewEngine(cii, rules, slab)
	require.NoError(t, err)
	return engine
}

// =============================================================================
// EQUITY
// =============================================================================

func TestCalculate_EquityLTCG_ExemptionCoversGain(t *testing.T) {
	// GIVEN: Equity bought Jan-2020 and sold Jan-2023 for a 100000 gain
	// WHEN: Calculating
	// THEN: Long-term, the pre-Jul-2024 exemption of 100000 absorbs the
	//       whole gain and no tax is due

	res, err := newTestEngine(t).Calculate(capitalgains.Input{
		AssetType:     capitalgains.EquityShare,
		PurchaseDate:  "2020-01-01",
		SaleDate:      "2023-01-01",
		PurchaseValue: 100000,
		SaleValue:     200000,
		TaxMode:       capitalgains.WithoutSlab,
	})
	require.NoError(t, err)

	assert.True(t, res.IsLongTerm)
	assert.Equal(t, 100000.0, res.GrossGain)
	assert.Equal(t, 100000.0, res.LTCGExemption)
	assert.Equal(t, 0.0, res.TaxableGain)
	assert.Equal(t, 0.0, res.TotalTax)
}

func TestCalculate_EquityLTCG_PostChangeRates(t *testing.T) {
	// GIVEN: Equity sold after 2024-07-23 with a 200000 gain
	// WHEN: Calculating with cess
	// THEN: The exemption rises to 125000 and the remaining 75000 is
	//       taxed at 12.5% plus 4% cess

	res, err := newTestEngine(t).Calculate(capitalgains.Input{
		AssetType:     capitalgains.EquityShare,
		PurchaseDate:  "2023-06-01",
		SaleDate:      "2024-09-01",
		PurchaseValue: 100000,
		SaleValue:     300000,
		TaxMode:       capitalgains.WithoutSlab,
		ApplyCess:     true,
	})
	require.NoError(t, err)

	assert.True(t, res.IsLongTerm)
	assert.Equal(t, 125000.0, res.LTCGExemption)
	assert.Equal(t, 75000.0, res.TaxableGain)
	assert.Equal(t, 9375.0, res.BaseTax)
	assert.Equal(t, 375.0, res.Cess)
	assert.Equal(t, 9750.0, res.TotalTax)
	assert.Equal(t, 190250.0, res.AfterTaxGain)
}

func TestCalculate_EquitySTCG_PreChange(t *testing.T) {
	// GIVEN: Equity held 5 months, sold before the regime change
	// WHEN: Calculating
	// THEN: Short-term at 15% with no LTCG exemption

	res, err := newTestEngine(t).Calculate(capitalgains.Input{
		AssetType:     capitalgains.EquityShare,
		PurchaseDate:  "2024-01-01",
		SaleDate:      "2024-06-01",
		PurchaseValue: 100000,
		SaleValue:     150000,
		TaxMode:       capitalgains.WithoutSlab,
	})
	require.NoError(t, err)

	assert.False(t, res.IsLongTerm)
	assert.Equal(t, 0.0, res.LTCGExemption)
	assert.Equal(t, 50000.0, res.TaxableGain)
	assert.Equal(t, 7500.0, res.BaseTax)
}

// =============================================================================
// CRYPTO
// =============================================================================

func TestCalculate_CryptoFlatRate(t *testing.T) {
	// GIVEN: Crypto held over two years
	// WHEN: Calculating
	// THEN: Still short-term and taxed flat at 30% with no exemption

	res, err := newTestEngine(t).Calculate(capitalgains.Input{
		AssetType:     capitalgains.Crypto,
		PurchaseDate:  "2021-01-01",
		SaleDate:      "2023-06-01",
		PurchaseValue: 100000,
		SaleValue:     200000,
		TaxMode:       capitalgains.WithoutSlab,
	})
	require.NoError(t, err)

	assert.False(t, res.IsLongTerm, "crypto never qualifies as long-term")
	assert.Equal(t, 0.0, res.LTCGExemption)
	assert.Equal(t, 30000.0, res.BaseTax)
	assert.Equal(t, "30%", res.TaxRateLabel)
}

// =============================================================================
// PROPERTY AND INDEXATION
// =============================================================================

func TestCalculate_PropertyIndexation(t *testing.T) {
	// GIVEN: Property bought in 2010 (CII 167) and sold in 2024 (CII 363)
	// WHEN: Calculating with cess
	// THEN: The cost basis is indexed by 363/167 and the indexed gain is
	//       taxed at 20%

	res, err := newTestEngine(t).Calculate(capitalgains.Input{
		AssetType:     capitalgains.Property,
		PurchaseDate:  "2010-06-01",
		SaleDate:      "2024-06-01",
		PurchaseValue: 1000000,
		SaleValue:     3000000,
		TaxMode:       capitalgains.WithoutSlab,
		ApplyCess:     true,
	})
	require.NoError(t, err)

	assert.True(t, res.IsLongTerm)
	assert.InDelta(t, 2173652.69, res.BaseCost, 0.02)
	assert.InDelta(t, 826347.31, res.GrossGain, 0.02)
	assert.InDelta(t, 165269.46, res.BaseTax, 0.02)
	assert.InDelta(t, 171880.24, res.TotalTax, 0.05)
	assert.False(t, res.CIIClamped)
}

func TestCalculate_PropertySectionExemption(t *testing.T) {
	// GIVEN: A reinvestment exemption larger than the gain
	// WHEN: Calculating
	// THEN: The section exemption is capped at the gain and tax is zero

	res, err := newTestEngine(t).Calculate(capitalgains.Input{
		AssetType:       capitalgains.Property,
		PurchaseDate:    "2010-06-01",
		SaleDate:        "2024-06-01",
		PurchaseValue:   1000000,
		SaleValue:       3000000,
		ExemptionAmount: 900000,
		TaxMode:         capitalgains.WithoutSlab,
	})
	require.NoError(t, err)

	assert.Equal(t, res.GrossGain, res.SectionExemption)
	assert.Equal(t, 0.0, res.TaxableGain)
	assert.Equal(t, 0.0, res.TotalTax)
}

func TestCalculate_CIIClampsOutOfRangeYears(t *testing.T) {
	// GIVEN: A purchase before the first CII year
	// WHEN: Calculating a long-term property sale
	// THEN: The purchase year clamps to the table floor and the result
	//       flags it

	res, err := newTestEngine(t).Calculate(capitalgains.Input{
		AssetType:     capitalgains.Property,
		PurchaseDate:  "1995-01-01",
		SaleDate:      "2024-06-01",
		PurchaseValue: 500000,
		SaleValue:     5000000,
		TaxMode:       capitalgains.WithoutSlab,
	})
	require.NoError(t, err)
	assert.True(t, res.CIIClamped)
}

// =============================================================================
// SLAB-TAXED ASSETS
// =============================================================================

func TestCalculate_DebtMF_SlabMode(t *testing.T) {
	// GIVEN: A long-term debt fund gain with slab mode on and 900000
	//        declared income
	// WHEN: Calculating
	// THEN: The gain is taxed as the marginal slab delta: 100000 lands
	//       in the 10% band on top of 900000

	res, err := newTestEngine(t).Calculate(capitalgains.Input{
		AssetType:     capitalgains.DebtMF,
		PurchaseDate:  "2020-01-01",
		SaleDate:      "2023-06-01",
		PurchaseValue: 400000,
		SaleValue:     500000,
		AnnualIncome:  900000,
		TaxMode:       capitalgains.WithSlab,
	})
	require.NoError(t, err)

	assert.True(t, res.IsLongTerm)
	assert.Equal(t, 10000.0, res.BaseTax)
	assert.Equal(t, "Slab rates", res.TaxRateLabel)
}

func TestCalculate_DebtMF_FallbackRate(t *testing.T) {
	// GIVEN: The same gain without slab mode
	// WHEN: Calculating
	// THEN: The flat fallback approximation prices it and the
	//       explanation says so

	res, err := newTestEngine(t).Calculate(capitalgains.Input{
		AssetType:     capitalgains.DebtMF,
		PurchaseDate:  "2020-01-01",
		SaleDate:      "2023-06-01",
		PurchaseValue: 400000,
		SaleValue:     500000,
		TaxMode:       capitalgains.WithoutSlab,
	})
	require.NoError(t, err)

	assert.Equal(t, 20000.0, res.BaseTax)
	assert.Contains(t, res.Explanation, "approximated")
}

// =============================================================================
// SURCHARGE AND EDGE CASES
// =============================================================================

func TestCalculate_SurchargeAboveThreshold(t *testing.T) {
	// GIVEN: Declared income pushing total income over 50 lakh
	// WHEN: Calculating with the surcharge flag
	// THEN: A 10% surcharge lands on the base tax

	res, err := newTestEngine(t).Calculate(capitalgains.Input{
		AssetType:      capitalgains.Crypto,
		PurchaseDate:   "2023-01-01",
		SaleDate:       "2023-06-01",
		PurchaseValue:  100000,
		SaleValue:      300000,
		AnnualIncome:   6000000,
		TaxMode:        capitalgains.WithoutSlab,
		ApplySurcharge: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 60000.0, res.BaseTax)
	assert.Equal(t, 6000.0, res.Surcharge)
}

func TestCalculate_LossClampsToZeroGain(t *testing.T) {
	res, err := newTestEngine(t).Calculate(capitalgains.Input{
		AssetType:     capitalgains.EquityShare,
		PurchaseDate:  "2024-01-01",
		SaleDate:      "2024-06-01",
		PurchaseValue: 100000,
		SaleValue:     60000,
		TaxMode:       capitalgains.WithoutSlab,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.GrossGain)
	assert.Equal(t, 0.0, res.TotalTax)
}

func TestCalculate_SaleBeforePurchaseRejected(t *testing.T) {
	_, err := newTestEngine(t).Calculate(capitalgains.Input{
		AssetType:     capitalgains.EquityShare,
		PurchaseDate:  "2023-01-01",
		SaleDate:      "2022-01-01",
		PurchaseValue: 100000,
		SaleValue:     200000,
		TaxMode:       capitalgains.WithoutSlab,
	})
	require.Error(t, err)
	assert.True(t, finmath.IsInvalidInput(err))
}

func TestCalculate_RejectsBadInput(t *testing.T) {
	engine := newTestEngine(t)
	for name, in := range map[string]capitalgains.Input{
		"unknown asset": {
			AssetType: "vintage_wine", PurchaseDate: "2020-01-01", SaleDate: "2023-01-01",
			PurchaseValue: 1, SaleValue: 2, TaxMode: capitalgains.WithoutSlab,
		},
		"bad tax mode": {
			AssetType: capitalgains.EquityShare, PurchaseDate: "2020-01-01", SaleDate: "2023-01-01",
			PurchaseValue: 1, SaleValue: 2, TaxMode: "maybe_slab",
		},
		"unparseable date": {
			AssetType: capitalgains.EquityShare, PurchaseDate: "01/01/2020", SaleDate: "2023-01-01",
			PurchaseValue: 1, SaleValue: 2, TaxMode: capitalgains.WithoutSlab,
		},
		"zero purchase value": {
			AssetType: capitalgains.EquityShare, PurchaseDate: "2020-01-01", SaleDate: "2023-01-01",
			PurchaseValue: 0, SaleValue: 2, TaxMode: capitalgains.WithoutSlab,
		},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := engine.Calculate(in)
			require.Error(t, err)
			assert.True(t, finmath.IsInvalidInput(err))
		})
	}
}

func TestNewEngine_RejectsBadConfig(t *testing.T) {
	slab := tax.Table{ID: "flat", Slabs: []tax.Slab{{Lower: 0, Upper: 0, Rate: 10}}}

	_, err := capitalgains.NewEngine(capitalgains.CIITable{}, capitalgains.Rules{RegimeChangeDate: "2024-07-23"}, slab)
	assert.Error(t, err, "empty CII table")

	_, err = capitalgains.NewEngine(capitalgains.CIITable{2024: 363}, capitalgains.Rules{RegimeChangeDate: "someday"}, slab)
	assert.Error(t, err, "unparseable regime date")
}
