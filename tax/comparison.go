/*
comparison.go - Old vs new regime comparison

The old regime allows itemized deductions under their statutory caps; the
new regime allows only the standard deduction but has wider slabs. Both
sides add health-and-education cess on the computed tax. The caps and the
cess rate come from the versioned rate configuration, not constants here.
*/
package tax

import (
	"github.com/shopspring/decimal"

	"github.com/paisa/calc-engine/finmath"
)

// AgeGroup selects the old-regime table (exemption limits rise with age).
type AgeGroup string

const (
	AgeBelow60     AgeGroup = "below-60"
	AgeSenior      AgeGroup = "60-80"
	AgeSuperSenior AgeGroup = "80+"
)

func (a AgeGroup) Valid() bool {
	switch a {
	case AgeBelow60, AgeSenior, AgeSuperSenior:
		return true
	}
	return false
}

// DeductionCaps are the statutory ceilings applied to old-regime
// deductions before they reduce taxable income.
type DeductionCaps struct {
	Section80C       float64 `yaml:"section_80c"`
	Section80DBasic  float64 `yaml:"section_80d_basic"`  // below 60
	Section80DSenior float64 `yaml:"section_80d_senior"` // 60 and above
	Section80TTA     float64 `yaml:"section_80tta"`
	Section80CCD1    float64 `yaml:"section_80ccd1"`
	Section80EEA     float64 `yaml:"section_80eea"`
}

// RegimeRules bundles everything the comparison needs, loaded once from
// the rate configuration.
type RegimeRules struct {
	Old               map[AgeGroup]Table `yaml:"old"`
	New               Table              `yaml:"new"`
	StandardDeduction float64            `yaml:"standard_deduction"`
	CessRate          float64            `yaml:"cess_rate"`
	Caps              DeductionCaps      `yaml:"deduction_caps"`
}

// ComparisonInput is the regime-comparison request. Deduction fields are
// the amounts actually paid; caps are applied by the engine.
type ComparisonInput struct {
	AnnualIncome    float64  `json:"annual_income"`
	AgeGroup        AgeGroup `json:"age_group"`
	Section80C      float64  `json:"section_80c"`
	Section80D      float64  `json:"section_80d"`
	Section80G      float64  `json:"section_80g"`
	Section80TTA    float64  `json:"section_80tta"`
	Section80CCD1   float64  `json:"section_80ccd1"`
	Section80CCD2   float64  `json:"section_80ccd2"`
	Section80EEA    float64  `json:"section_80eea"`
	OtherDeductions float64  `json:"other_deductions"`
}

func (in ComparisonInput) Validate() error {
	if in.AnnualIncome < 0 {
		return finmath.NewInvalidInput("annual_income", "income cannot be negative")
	}
	if !in.AgeGroup.Valid() {
		return finmath.NewInvalidInput("age_group", "unknown age group %q", string(in.AgeGroup))
	}
	for field, v := range map[string]float64{
		"section_80c": in.Section80C, "section_80d": in.Section80D,
		"section_80g": in.Section80G, "section_80tta": in.Section80TTA,
		"section_80ccd1": in.Section80CCD1, "section_80ccd2": in.Section80CCD2,
		"section_80eea": in.Section80EEA, "other_deductions": in.OtherDeductions,
	} {
		if v < 0 {
			return finmath.NewInvalidInput(field, "deductions cannot be negative")
		}
	}
	return nil
}

// RegimeOutcome is one side of the comparison.
type RegimeOutcome struct {
	TaxableIncome   float64 `json:"taxable_income"`
	IncomeTax       float64 `json:"income_tax"`
	Cess            float64 `json:"cess"`
	TotalTax        float64 `json:"total_tax"`
	TotalDeductions float64 `json:"total_deductions"`
}

// ComparisonResult names the regime with the lower total tax. Differences
// under 100 rupees are reported as "either".
type ComparisonResult struct {
	Old           RegimeOutcome `json:"old_regime"`
	New           RegimeOutcome `json:"new_regime"`
	SavingsAmount float64       `json:"savings_amount"`
	BetterRegime  string        `json:"better_regime"`
}

// CompareRegimes computes both regimes for one income.
func CompareRegimes(in ComparisonInput, rules RegimeRules) (ComparisonResult, error) {
	if err := in.Validate(); err != nil {
		return ComparisonResult{}, err
	}
	oldTable, ok := rules.Old[in.AgeGroup]
	if !ok {
		return ComparisonResult{}, finmath.NewInvalidInput("age_group", "no old-regime table for %q", string(in.AgeGroup))
	}

	capped := func(v, cap float64) float64 {
		if cap > 0 && v > cap {
			return cap
		}
		return v
	}
	d80 := rules.Caps.Section80DBasic
	if in.AgeGroup != AgeBelow60 {
		d80 = rules.Caps.Section80DSenior
	}
	oldDeductions := capped(in.Section80C, rules.Caps.Section80C) +
		capped(in.Section80D, d80) +
		in.Section80G +
		capped(in.Section80TTA, rules.Caps.Section80TTA) +
		capped(in.Section80CCD1, rules.Caps.Section80CCD1) +
		in.Section80CCD2 +
		capped(in.Section80EEA, rules.Caps.Section80EEA) +
		in.OtherDeductions

	oldOut := regimeOutcome(in.AnnualIncome, oldDeductions, oldTable, rules.CessRate)
	newOut := regimeOutcome(in.AnnualIncome, rules.StandardDeduction, rules.New, rules.CessRate)

	res := ComparisonResult{Old: oldOut, New: newOut}
	diff := oldOut.TotalTax - newOut.TotalTax
	switch {
	case diff > 100:
		res.BetterRegime = "new"
		res.SavingsAmount = finmath.Round2(diff)
	case diff < -100:
		res.BetterRegime = "old"
		res.SavingsAmount = finmath.Round2(-diff)
	default:
		res.BetterRegime = "either"
		res.SavingsAmount = finmath.Round2(abs(diff))
	}
	return res, nil
}

func regimeOutcome(income, deductions float64, t Table, cessRatePct float64) RegimeOutcome {
	taxable := income - deductions
	if taxable < 0 {
		taxable = 0
	}
	base := t.Tax(decimal.NewFromFloat(taxable))
	cess := base.Mul(decimal.NewFromFloat(cessRatePct)).Div(hundred)
	return RegimeOutcome{
		TaxableIncome:   finmath.Round2(taxable),
		IncomeTax:       base.Round(2).InexactFloat64(),
		Cess:            cess.Round(2).InexactFloat64(),
		TotalTax:        base.Add(cess).Round(2).InexactFloat64(),
		TotalDeductions: finmath.Round2(deductions),
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
