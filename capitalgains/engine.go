/*
Package capitalgains implements the indexed capital gains engine.

PURPOSE:
  Three sequential decisions, computed once per call:
  1. Holding-period classification (long vs short term, per asset type)
  2. Cost-basis computation (CII indexation where the law allows it)
  3. Gain, exemption and tax (asset- and regime-date-dependent)

REGIME DATE:
  The 2024-07-23 Finance Act split changed the equity exemption cap and
  the equity rates. Both vintages are supported; which one applies is
  decided by the sale date against the configured regime-change date.

INDEXATION:
  Long-term property, gold and unlisted shares index the purchase cost by
  CII[saleYear]/CII[purchaseYear]. Debt mutual funds lost indexation with
  the Apr-2023 rule and never index here. Years outside the CII table
  clamp to the nearest boundary (the table is extended annually; a future
  sale year must not hard-fail).

SEE ALSO:
  - cii.go: the CII table type and clamping lookup
  - tax/: the marginal slab delta used for debt funds in slab mode
*/
package capitalgains

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paisa/calc-engine/finmath"
	"github.com/paisa/calc-engine/tax"
)

// AssetType is the closed set of asset classes with distinct tax rules.
type AssetType string

const (
	EquityShare   AssetType = "equity_share"
	EquityMF      AssetType = "equity_mf"
	DebtMF        AssetType = "debt_mf"
	Gold          AssetType = "gold"
	Property      AssetType = "property"
	UnlistedShare AssetType = "unlisted_share"
	Crypto        AssetType = "crypto"
)

func (a AssetType) Valid() bool {
	switch a {
	case EquityShare, EquityMF, DebtMF, Gold, Property, UnlistedShare, Crypto:
		return true
	}
	return false
}

func (a AssetType) isEquity() bool { return a == EquityShare || a == EquityMF }

// TaxMode selects slab-delta taxation where the asset allows it.
type TaxMode string

const (
	WithSlab    TaxMode = "with_slab"
	WithoutSlab TaxMode = "without_slab"
)

// Rules are the versioned capital-gains constants. Rates are percentages;
// amounts are rupees; the regime-change date is an ISO calendar date.
type Rules struct {
	EquityLTCGDays   int `yaml:"equity_ltcg_days"`
	PropertyLTCGDays int `yaml:"property_ltcg_days"`
	DefaultLTCGDays  int `yaml:"default_ltcg_days"`

	RegimeChangeDate string `yaml:"regime_change_date"`

	EquityLTCGExemptionPre  float64 `yaml:"equity_ltcg_exemption_pre"`
	EquityLTCGExemptionPost float64 `yaml:"equity_ltcg_exemption_post"`
	EquityLTCGRatePre       float64 `yaml:"equity_ltcg_rate_pre"`
	EquityLTCGRatePost      float64 `yaml:"equity_ltcg_rate_post"`
	EquitySTCGRatePre       float64 `yaml:"equity_stcg_rate_pre"`
	EquitySTCGRatePost      float64 `yaml:"equity_stcg_rate_post"`

	IndexedLTCGRate  float64 `yaml:"indexed_ltcg_rate"`
	CryptoRate       float64 `yaml:"crypto_rate"`
	SlabFallbackRate float64 `yaml:"slab_fallback_rate"`

	CessRate                 float64 `yaml:"cess_rate"`
	SurchargeRate            float64 `yaml:"surcharge_rate"`
	SurchargeIncomeThreshold float64 `yaml:"surcharge_income_threshold"`
}

// Engine binds the versioned tables together. Construct once, reuse for
// every call; it holds no per-call state.
type Engine struct {
	cii        CIITable
	rules      Rules
	slab       tax.Table
	regimeDate time.Time
}

// NewEngine validates the configuration and parses the regime date.
func NewEngine(cii CIITable, rules Rules, slab tax.Table) (*Engine, error) {
	if len(cii) == 0 {
		return nil, finmath.NewInvalidInput("cii", "CII table is empty")
	}
	if err := slab.Validate(); err != nil {
		return nil, err
	}
	regimeDate, err := time.Parse("2006-01-02", rules.RegimeChangeDate)
	if err != nil {
		return nil, finmath.NewInvalidInput("regime_change_date", "not a calendar date: %q", rules.RegimeChangeDate)
	}
	return &Engine{cii: cii, rules: rules, slab: slab, regimeDate: regimeDate}, nil
}

// Input is the calculation request. Dates are calendar dates, YYYY-MM-DD.
type Input struct {
	AssetType       AssetType `json:"asset_type"`
	PurchaseDate    string    `json:"purchase_date"`
	SaleDate        string    `json:"sale_date"`
	PurchaseValue   float64   `json:"purchase_value"`
	SaleValue       float64   `json:"sale_value"`
	TransferCosts   float64   `json:"transfer_costs"`
	ImprovementCost float64   `json:"improvement_cost"`
	ExemptionAmount float64   `json:"exemption_amount"`
	AnnualIncome    float64   `json:"annual_income"`
	TaxMode         TaxMode   `json:"tax_mode"`
	ApplyCess       bool      `json:"apply_cess"`
	ApplySurcharge  bool      `json:"apply_surcharge"`
}

func (in Input) parseDates() (purchase, sale time.Time, err error) {
	purchase, err = time.Parse("2006-01-02", in.PurchaseDate)
	if err != nil {
		return purchase, sale, finmath.NewInvalidInput("purchase_date", "not a calendar date: %q", in.PurchaseDate)
	}
	sale, err = time.Parse("2006-01-02", in.SaleDate)
	if err != nil {
		return purchase, sale, finmath.NewInvalidInput("sale_date", "not a calendar date: %q", in.SaleDate)
	}
	return purchase, sale, nil
}

// Validate rejects precondition violations, including a sale dated before
// the purchase - a negative holding period must never be computed.
func (in Input) Validate() error {
	if !in.AssetType.Valid() {
		return finmath.NewInvalidInput("asset_type", "unknown asset type %q", string(in.AssetType))
	}
	if in.TaxMode != WithSlab && in.TaxMode != WithoutSlab {
		return finmath.NewInvalidInput("tax_mode", "tax mode must be %q or %q", WithSlab, WithoutSlab)
	}
	purchase, sale, err := in.parseDates()
	if err != nil {
		return err
	}
	if sale.Before(purchase) {
		return finmath.NewInvalidInput("sale_date", "sale date is before purchase date")
	}
	for field, v := range map[string]float64{
		"purchase_value": in.PurchaseValue, "sale_value": in.SaleValue,
		"transfer_costs": in.TransferCosts, "improvement_cost": in.ImprovementCost,
		"exemption_amount": in.ExemptionAmount, "annual_income": in.AnnualIncome,
	} {
		if v < 0 {
			return finmath.NewInvalidInput(field, "monetary fields cannot be negative")
		}
	}
	if in.PurchaseValue == 0 {
		return finmath.NewInvalidInput("purchase_value", "purchase value must be positive")
	}
	return nil
}

// Result is the calculation response.
type Result struct {
	HoldingDays      int     `json:"holding_days"`
	IsLongTerm       bool    `json:"is_long_term"`
	BaseCost         float64 `json:"base_cost"`
	NetConsideration float64 `json:"net_consideration"`
	GrossGain        float64 `json:"gross_gain"`
	LTCGExemption    float64 `json:"ltcg_exemption"`
	SectionExemption float64 `json:"section_exemption"`
	TotalExemption   float64 `json:"total_exemption"`
	TaxableGain      float64 `json:"taxable_gain"`
	BaseTax          float64 `json:"base_tax"`
	Cess             float64 `json:"cess"`
	Surcharge        float64 `json:"surcharge"`
	TotalTax         float64 `json:"total_tax"`
	TaxRateLabel     string  `json:"tax_rate"`
	Explanation      string  `json:"explanation"`
	EffectiveRate    float64 `json:"effective_rate"`
	AfterTaxGain     float64 `json:"after_tax_gain"`
	CIIClamped       bool    `json:"cii_clamped,omitempty"`
}

// Calculate runs the three-step classification, cost basis and tax.
func (e *Engine) Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	purchase, sale, _ := in.parseDates()

	holdingDays := int(sale.Sub(purchase).Hours() / 24)
	longTerm := e.isLongTerm(in.AssetType, holdingDays)

	baseCost, clamped := e.baseCost(in, purchase, sale, longTerm)
	netConsideration := decimal.NewFromFloat(in.SaleValue).Sub(decimal.NewFromFloat(in.TransferCosts))
	gain := netConsideration.Sub(baseCost).Sub(decimal.NewFromFloat(in.ImprovementCost))
	if gain.IsNegative() {
		gain = decimal.Zero
	}

	ltcgExemption, sectionExemption := e.exemptions(in, sale, gain, longTerm)
	taxable := gain.Sub(ltcgExemption).Sub(sectionExemption)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	baseTax, rateLabel, explanation := e.baseTax(in, sale, taxable, longTerm)

	cess := decimal.Zero
	if in.ApplyCess {
		cess = baseTax.Mul(decimal.NewFromFloat(e.rules.CessRate)).Div(hundred)
	}
	surcharge := decimal.Zero
	if in.ApplySurcharge {
		totalIncome := decimal.NewFromFloat(in.AnnualIncome).Add(taxable)
		if totalIncome.GreaterThan(decimal.NewFromFloat(e.rules.SurchargeIncomeThreshold)) {
			surcharge = baseTax.Mul(decimal.NewFromFloat(e.rules.SurchargeRate)).Div(hundred)
		}
	}
	totalTax := baseTax.Add(cess).Add(surcharge)

	effectiveRate := decimal.Zero
	if gain.IsPositive() {
		effectiveRate = totalTax.Mul(hundred).Div(gain)
	}

	return Result{
		HoldingDays:      holdingDays,
		IsLongTerm:       longTerm,
		BaseCost:         baseCost.Round(2).InexactFloat64(),
		NetConsideration: netConsideration.Round(2).InexactFloat64(),
		GrossGain:        gain.Round(2).InexactFloat64(),
		LTCGExemption:    ltcgExemption.Round(2).InexactFloat64(),
		SectionExemption: sectionExemption.Round(2).InexactFloat64(),
		TotalExemption:   ltcgExemption.Add(sectionExemption).Round(2).InexactFloat64(),
		TaxableGain:      taxable.Round(2).InexactFloat64(),
		BaseTax:          baseTax.Round(2).InexactFloat64(),
		Cess:             cess.Round(2).InexactFloat64(),
		Surcharge:        surcharge.Round(2).InexactFloat64(),
		TotalTax:         totalTax.Round(2).InexactFloat64(),
		TaxRateLabel:     rateLabel,
		Explanation:      explanation,
		EffectiveRate:    effectiveRate.Round(2).InexactFloat64(),
		AfterTaxGain:     gain.Sub(totalTax).Round(2).InexactFloat64(),
		CIIClamped:       clamped,
	}, nil
}

var hundred = decimal.NewFromInt(100)

// isLongTerm applies the per-asset holding thresholds. Crypto never
// qualifies as long-term.
func (e *Engine) isLongTerm(asset AssetType, holdingDays int) bool {
	switch asset {
	case EquityShare, EquityMF:
		return holdingDays >= e.rules.EquityLTCGDays
	case Property:
		return holdingDays >= e.rules.PropertyLTCGDays
	case Crypto:
		return false
	default:
		return holdingDays >= e.rules.DefaultLTCGDays
	}
}

// baseCost applies CII indexation for long-term property, gold and
// unlisted shares; everything else uses the unindexed purchase value.
func (e *Engine) baseCost(in Input, purchase, sale time.Time, longTerm bool) (decimal.Decimal, bool) {
	cost := decimal.NewFromFloat(in.PurchaseValue)
	if !longTerm {
		return cost, false
	}
	switch in.AssetType {
	case Property, Gold, UnlistedShare:
	default:
		// Debt MF lost indexation in Apr-2023; equity and crypto never had it.
		return cost, false
	}
	purchaseCII, clampedP := e.cii.Lookup(purchase.Year())
	saleCII, clampedS := e.cii.Lookup(sale.Year())
	indexed := cost.Mul(decimal.NewFromFloat(saleCII)).Div(decimal.NewFromFloat(purchaseCII))
	return indexed, clampedP || clampedS
}

// exemptions returns the equity LTCG exemption and the property
// reinvestment (Section 54 family) exemption, in that order. The section
// exemption is capped at the gain remaining after the LTCG exemption.
func (e *Engine) exemptions(in Input, sale time.Time, gain decimal.Decimal, longTerm bool) (ltcg, section decimal.Decimal) {
	ltcg, section = decimal.Zero, decimal.Zero
	if in.AssetType.isEquity() && longTerm {
		cap := e.rules.EquityLTCGExemptionPre
		if !sale.Before(e.regimeDate) {
			cap = e.rules.EquityLTCGExemptionPost
		}
		ltcg = decimal.Min(gain, decimal.NewFromFloat(cap))
	}
	if in.AssetType == Property && in.ExemptionAmount > 0 {
		remaining := gain.Sub(ltcg)
		section = decimal.Min(decimal.NewFromFloat(in.ExemptionAmount), remaining)
		if section.IsNegative() {
			section = decimal.Zero
		}
	}
	return ltcg, section
}

// baseTax picks the rate or slab method for the taxable gain.
func (e *Engine) baseTax(in Input, sale time.Time, taxable decimal.Decimal, longTerm bool) (decimal.Decimal, string, string) {
	if !taxable.IsPositive() {
		return decimal.Zero, "0%", "No tax as taxable gain is zero"
	}
	postRegime := !sale.Before(e.regimeDate)
	flat := func(ratePct float64) decimal.Decimal {
		return taxable.Mul(decimal.NewFromFloat(ratePct)).Div(hundred)
	}

	if in.AssetType == Crypto {
		return flat(e.rules.CryptoRate),
			fmt.Sprintf("%g%%", e.rules.CryptoRate),
			"Crypto (VDA) gains taxed at a flat rate regardless of holding period"
	}

	if longTerm {
		switch in.AssetType {
		case EquityShare, EquityMF:
			rate := e.rules.EquityLTCGRatePre
			vintage := "pre"
			if postRegime {
				rate = e.rules.EquityLTCGRatePost
				vintage = "post"
			}
			return flat(rate), fmt.Sprintf("%g%%", rate),
				fmt.Sprintf("Equity LTCG taxed at %g%% (%s %s)", rate, vintage, e.rules.RegimeChangeDate)
		case Property, Gold, UnlistedShare:
			return flat(e.rules.IndexedLTCGRate), fmt.Sprintf("%g%%", e.rules.IndexedLTCGRate),
				fmt.Sprintf("LTCG taxed at %g%% with indexation", e.rules.IndexedLTCGRate)
		default: // debt MF
			return e.slabOrFallback(in, taxable, "Debt MF LTCG")
		}
	}

	switch in.AssetType {
	case EquityShare, EquityMF:
		rate := e.rules.EquitySTCGRatePre
		vintage := "pre"
		if postRegime {
			rate = e.rules.EquitySTCGRatePost
			vintage = "post"
		}
		return flat(rate), fmt.Sprintf("%g%%", rate),
			fmt.Sprintf("Equity STCG taxed at %g%% (%s %s)", rate, vintage, e.rules.RegimeChangeDate)
	default:
		return e.slabOrFallback(in, taxable, "STCG")
	}
}

// slabOrFallback taxes the gain as a marginal slab delta on top of the
// declared income, or at the flat fallback rate when slab mode is off.
// The fallback is an approximation carried over from the source product,
// not a statutory rate.
func (e *Engine) slabOrFallback(in Input, taxable decimal.Decimal, label string) (decimal.Decimal, string, string) {
	if in.TaxMode == WithSlab {
		delta := e.slab.MarginalTax(decimal.NewFromFloat(in.AnnualIncome), taxable)
		return delta, "Slab rates", label + " taxed as per income tax slabs"
	}
	return taxable.Mul(decimal.NewFromFloat(e.rules.SlabFallbackRate)).Div(hundred),
		fmt.Sprintf("~%g%% (Slab)", e.rules.SlabFallbackRate),
		label + " approximated at a flat rate; enable slab mode for the exact figure"
}
