/*
Package annuity implements the SIP (systematic investment plan) engine.

PURPOSE:
  Future value of a recurring contribution stream and its inverse (the
  contribution required to reach a target), with the optional adjustments
  the SIP calculator family offers: inflation deflation, expense-ratio
  drag and tax on gains. A single lump-sum mode covers the ELSS variant.

FORMULA:
  Contributions are annuity-due: each one lands at the start of its period
  and compounds for the full period.

    FV = C * (((1+r)^n - 1) / r) * (1+r)    r > 0
    FV = C * n                              r = 0

  where r is the per-period rate and n the number of contributions.

BREAKDOWN:
  Yearly rows are the same formula restricted to elapsed periods, so
  closing balance of year k is exactly the opening balance of year k+1.
  ExpandYear produces the nested per-period rows for one year on demand.

SEE ALSO:
  - finmath/formulas.go: FutureValueAnnuityDue, RequiredAnnuityDuePayment
*/
package annuity

import (
	"math"

	"github.com/paisa/calc-engine/finmath"
)

// Input is the forward-mode calculation request.
type Input struct {
	Contribution float64                       `json:"contribution"`
	AnnualRate   float64                       `json:"annual_rate"`
	TenureYears  float64                       `json:"tenure_years"`
	Frequency    finmath.ContributionFrequency `json:"frequency"`

	// Optional adjustments; zero disables each.
	InflationRate float64 `json:"inflation_rate,omitempty"`
	ExpenseRatio  float64 `json:"expense_ratio,omitempty"`
	TaxRate       float64 `json:"tax_rate,omitempty"`
}

// Validate rejects precondition violations before any arithmetic runs.
func (in Input) Validate() error {
	if in.Contribution < 0 {
		return finmath.NewInvalidInput("contribution", "contribution cannot be negative")
	}
	if in.AnnualRate < 0 {
		return finmath.NewInvalidInput("annual_rate", "rate cannot be negative")
	}
	if in.TenureYears <= 0 {
		return finmath.NewInvalidInput("tenure_years", "tenure must be positive")
	}
	if !in.Frequency.Valid() {
		return finmath.NewInvalidInput("frequency", "unknown contribution frequency %q", string(in.Frequency))
	}
	if in.InflationRate < 0 {
		return finmath.NewInvalidInput("inflation_rate", "inflation rate cannot be negative")
	}
	if in.ExpenseRatio < 0 || in.ExpenseRatio > 100 {
		return finmath.NewInvalidInput("expense_ratio", "expense ratio must be between 0 and 100")
	}
	if in.TaxRate < 0 || in.TaxRate > 100 {
		return finmath.NewInvalidInput("tax_rate", "tax rate must be between 0 and 100")
	}
	return nil
}

// periods returns the number of contributions over the tenure.
func (in Input) periods() int {
	if in.Frequency == finmath.ContributeOneTime {
		return 1
	}
	return int(math.Round(in.TenureYears * float64(in.Frequency.PeriodsPerYear())))
}

// periodRate returns the fractional per-period rate.
func (in Input) periodRate() float64 {
	if in.Frequency == finmath.ContributeOneTime {
		return 0 // unused; one-time compounds annually over the tenure
	}
	return in.AnnualRate / 100 / float64(in.Frequency.PeriodsPerYear())
}

// Result is the forward-mode calculation response.
type Result struct {
	Contribution  float64                       `json:"contribution"`
	AnnualRate    float64                       `json:"annual_rate"`
	TenureYears   float64                       `json:"tenure_years"`
	Frequency     finmath.ContributionFrequency `json:"frequency"`
	TotalInvested float64                       `json:"total_invested"`
	FutureValue   float64                       `json:"future_value"`
	WealthGained  float64                       `json:"wealth_gained"`

	InflationAdjustedValue float64 `json:"inflation_adjusted_value,omitempty"`
	TotalExpenseCharges    float64 `json:"total_expense_charges,omitempty"`
	NetValueAfterExpenses  float64 `json:"net_value_after_expenses,omitempty"`
	TaxOnGains             float64 `json:"tax_on_gains,omitempty"`
	PostTaxValue           float64 `json:"post_tax_value,omitempty"`

	Yearly []finmath.YearRow `json:"yearly_breakdown"`
}

// Calculate computes the forward-mode SIP result.
func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	var fv, invested float64
	if in.Frequency == finmath.ContributeOneTime {
		fv = in.Contribution * math.Pow(1+in.AnnualRate/100, in.TenureYears)
		invested = in.Contribution
	} else {
		fv = finmath.FutureValueAnnuityDue(in.Contribution, in.periodRate(), in.periods())
		invested = in.Contribution * float64(in.periods())
	}

	res := Result{
		Contribution:  in.Contribution,
		AnnualRate:    in.AnnualRate,
		TenureYears:   in.TenureYears,
		Frequency:     in.Frequency,
		TotalInvested: finmath.Round2(invested),
		FutureValue:   finmath.Round2(fv),
		WealthGained:  finmath.Round2(fv - invested),
		Yearly:        yearlyRows(in),
	}

	if in.InflationRate > 0 {
		res.InflationAdjustedValue = finmath.Round2(fv / math.Pow(1+in.InflationRate/100, in.TenureYears))
	}

	taxable := fv
	if in.ExpenseRatio > 0 {
		charges, net := expenseDrag(in)
		res.TotalExpenseCharges = finmath.Round2(charges)
		res.NetValueAfterExpenses = finmath.Round2(net)
		taxable = net
	}
	if in.TaxRate > 0 {
		gains := taxable - invested
		if gains < 0 {
			gains = 0
		}
		tax := gains * in.TaxRate / 100
		res.TaxOnGains = finmath.Round2(tax)
		res.PostTaxValue = finmath.Round2(taxable - tax)
	}

	return res, nil
}

// yearlyRows evaluates the annuity formula at each year boundary. The last
// row may cover a partial year when the tenure is fractional.
func yearlyRows(in Input) []finmath.YearRow {
	if in.Frequency == finmath.ContributeOneTime {
		return lumpsumRows(in.Contribution, in.AnnualRate, in.TenureYears)
	}

	ppy := in.Frequency.PeriodsPerYear()
	n := in.periods()
	r := in.periodRate()
	years := int(math.Ceil(float64(n)/float64(ppy) - 1e-9))

	rows := make([]finmath.YearRow, 0, years)
	for y := 1; y <= years; y++ {
		from := (y - 1) * ppy
		through := y * ppy
		if through > n {
			through = n
		}
		opening := finmath.FutureValueAnnuityDue(in.Contribution, r, from)
		closing := finmath.FutureValueAnnuityDue(in.Contribution, r, through)
		invested := in.Contribution * float64(through-from)
		rows = append(rows, finmath.YearRow{
			Year:               y,
			OpeningBalance:     finmath.Round2(opening),
			Invested:           finmath.Round2(invested),
			Growth:             finmath.Round2(closing - opening - invested),
			ClosingBalance:     finmath.Round2(closing),
			CumulativeInvested: finmath.Round2(in.Contribution * float64(through)),
		})
	}
	return rows
}

func lumpsumRows(amount, annualRate, tenure float64) []finmath.YearRow {
	years := int(math.Ceil(tenure - 1e-9))
	rows := make([]finmath.YearRow, 0, years)
	for y := 1; y <= years; y++ {
		elapsed := math.Min(float64(y), tenure)
		opening := amount * math.Pow(1+annualRate/100, float64(y-1))
		closing := amount * math.Pow(1+annualRate/100, elapsed)
		invested := 0.0
		if y == 1 {
			invested = amount
			opening = 0
		}
		rows = append(rows, finmath.YearRow{
			Year:               y,
			OpeningBalance:     finmath.Round2(opening),
			Invested:           finmath.Round2(invested),
			Growth:             finmath.Round2(closing - opening - invested),
			ClosingBalance:     finmath.Round2(closing),
			CumulativeInvested: finmath.Round2(amount),
		})
	}
	return rows
}

// ExpandYear produces the per-period rows for one year of the schedule,
// computed on demand from the same formula restricted to elapsed periods.
func ExpandYear(in Input, year int) ([]finmath.MonthRow, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Frequency == finmath.ContributeOneTime {
		return nil, finmath.NewInvalidInput("frequency", "one-time contributions have no per-period expansion")
	}
	ppy := in.Frequency.PeriodsPerYear()
	n := in.periods()
	if year < 1 || (year-1)*ppy >= n {
		return nil, finmath.NewInvalidInput("year", "year %d is outside the investment tenure", year)
	}
	r := in.periodRate()

	rows := make([]finmath.MonthRow, 0, ppy)
	for p := (year-1)*ppy + 1; p <= year*ppy && p <= n; p++ {
		opening := finmath.FutureValueAnnuityDue(in.Contribution, r, p-1)
		closing := finmath.FutureValueAnnuityDue(in.Contribution, r, p)
		rows = append(rows, finmath.MonthRow{
			Month:              p - (year-1)*ppy,
			OpeningBalance:     finmath.Round2(opening),
			Invested:           finmath.Round2(in.Contribution),
			Growth:             finmath.Round2(closing - opening - in.Contribution),
			ClosingBalance:     finmath.Round2(closing),
			CumulativeInvested: finmath.Round2(in.Contribution * float64(p)),
		})
	}
	return rows, nil
}

// expenseDrag simulates the corpus period by period and deducts an annual
// charge of expenseRatio% on the average of the year's opening and closing
// balances, the way fund houses quote expense ratios.
func expenseDrag(in Input) (totalCharges, netValue float64) {
	ppy := in.Frequency.PeriodsPerYear()
	n := in.periods()
	r := in.periodRate()

	corpus := 0.0
	periodsDone := 0
	for periodsDone < n {
		yearOpen := corpus
		for p := 0; p < ppy && periodsDone < n; p++ {
			corpus = (corpus + in.Contribution) * (1 + r)
			periodsDone++
		}
		charge := (yearOpen + corpus) / 2 * in.ExpenseRatio / 100
		totalCharges += charge
		corpus -= charge
	}
	return totalCharges, corpus
}

// =============================================================================
// INVERSE MODE - required contribution for a target future value
// =============================================================================

// TargetInput is the inverse-mode request.
type TargetInput struct {
	TargetAmount float64                       `json:"target_amount"`
	AnnualRate   float64                       `json:"annual_rate"`
	TenureYears  float64                       `json:"tenure_years"`
	Frequency    finmath.ContributionFrequency `json:"frequency"`
}

func (in TargetInput) Validate() error {
	if in.TargetAmount <= 0 {
		return finmath.NewInvalidInput("target_amount", "target amount must be positive")
	}
	if in.AnnualRate < 0 {
		return finmath.NewInvalidInput("annual_rate", "rate cannot be negative")
	}
	if in.TenureYears <= 0 {
		return finmath.NewInvalidInput("tenure_years", "tenure must be positive")
	}
	if !in.Frequency.Valid() || in.Frequency == finmath.ContributeOneTime {
		return finmath.NewInvalidInput("frequency", "inverse mode needs a recurring frequency")
	}
	return nil
}

// TargetResult is the inverse-mode response.
type TargetResult struct {
	TargetAmount         float64                       `json:"target_amount"`
	AnnualRate           float64                       `json:"annual_rate"`
	TenureYears          float64                       `json:"tenure_years"`
	Frequency            finmath.ContributionFrequency `json:"frequency"`
	RequiredContribution float64                       `json:"required_contribution"`
	TotalInvested        float64                       `json:"total_invested"`
	WealthGained         float64                       `json:"wealth_gained"`
}

// RequiredContribution solves the annuity-due formula for the contribution.
func RequiredContribution(in TargetInput) (TargetResult, error) {
	if err := in.Validate(); err != nil {
		return TargetResult{}, err
	}
	n := int(math.Round(in.TenureYears * float64(in.Frequency.PeriodsPerYear())))
	r := in.AnnualRate / 100 / float64(in.Frequency.PeriodsPerYear())
	c := finmath.RequiredAnnuityDuePayment(in.TargetAmount, r, n)
	invested := c * float64(n)
	return TargetResult{
		TargetAmount:         in.TargetAmount,
		AnnualRate:           in.AnnualRate,
		TenureYears:          in.TenureYears,
		Frequency:            in.Frequency,
		RequiredContribution: finmath.Round2(c),
		TotalInvested:        finmath.Round2(invested),
		WealthGained:         finmath.Round2(in.TargetAmount - invested),
	}, nil
}

// =============================================================================
// LUMPSUM MODE - single contribution at period zero (ELSS variant)
// =============================================================================

// LumpsumInput is the single-contribution request.
type LumpsumInput struct {
	Amount      float64 `json:"amount"`
	AnnualRate  float64 `json:"annual_rate"`
	TenureYears float64 `json:"tenure_years"`
}

func (in LumpsumInput) Validate() error {
	if in.Amount <= 0 {
		return finmath.NewInvalidInput("amount", "amount must be positive")
	}
	if in.AnnualRate < 0 {
		return finmath.NewInvalidInput("annual_rate", "rate cannot be negative")
	}
	if in.TenureYears <= 0 {
		return finmath.NewInvalidInput("tenure_years", "tenure must be positive")
	}
	return nil
}

// LumpsumResult is the single-contribution response.
type LumpsumResult struct {
	Amount       float64           `json:"amount"`
	AnnualRate   float64           `json:"annual_rate"`
	TenureYears  float64           `json:"tenure_years"`
	FutureValue  float64           `json:"future_value"`
	WealthGained float64           `json:"wealth_gained"`
	Yearly       []finmath.YearRow `json:"yearly_breakdown"`
}

// Lumpsum compounds a single contribution annually over the tenure.
func Lumpsum(in LumpsumInput) (LumpsumResult, error) {
	if err := in.Validate(); err != nil {
		return LumpsumResult{}, err
	}
	fv := in.Amount * math.Pow(1+in.AnnualRate/100, in.TenureYears)
	return LumpsumResult{
		Amount:       in.Amount,
		AnnualRate:   in.AnnualRate,
		TenureYears:  in.TenureYears,
		FutureValue:  finmath.Round2(fv),
		WealthGained: finmath.Round2(fv - in.Amount),
		Yearly:       lumpsumRows(in.Amount, in.AnnualRate, in.TenureYears),
	}, nil
}
