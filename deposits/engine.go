/*
Package deposits implements the recurring/fixed deposit engines and the
RD vs FD vs SIP comparison.

FORMULAS:
  RD maturity (banks compound RDs quarterly):
    M = R * ((1+i)^n - 1) / (1 - (1+i)^(-1/3))
  with i = annualRate/400, n = quarters, R = monthly deposit. The 1/3
  exponent accounts for deposits landing a month apart inside a quarter.

  FD maturity: ordinary compound interest at the chosen frequency.

  SIP maturity: the annuity-due formula from the annuity package.

Each leg also reports its effective CAGR over total invested so the three
instruments compare on one axis.
*/
package deposits

import (
	"math"

	"github.com/paisa/calc-engine/finmath"
)

// Leg is the outcome of one instrument in the comparison.
type Leg struct {
	TotalInvested  float64 `json:"total_invested"`
	MaturityValue  float64 `json:"maturity_value"`
	InterestEarned float64 `json:"interest_earned"`
	EffectiveCAGR  float64 `json:"effective_cagr"`
}

func newLeg(invested, maturity, years float64) Leg {
	cagr := 0.0
	if invested > 0 && years > 0 {
		cagr = (math.Pow(maturity/invested, 1/years) - 1) * 100
	}
	return Leg{
		TotalInvested:  finmath.RoundRupee(invested),
		MaturityValue:  finmath.RoundRupee(maturity),
		InterestEarned: finmath.RoundRupee(maturity - invested),
		EffectiveCAGR:  finmath.Round2(cagr),
	}
}

// =============================================================================
// RECURRING DEPOSIT
// =============================================================================

// RDInput is the recurring-deposit request.
type RDInput struct {
	MonthlyDeposit float64 `json:"monthly_deposit"`
	AnnualRate     float64 `json:"annual_rate"`
	TenureYears    float64 `json:"tenure_years"`
}

func (in RDInput) Validate() error {
	if in.MonthlyDeposit <= 0 {
		return finmath.NewInvalidInput("monthly_deposit", "monthly deposit must be positive")
	}
	if in.AnnualRate < 0 || in.AnnualRate > 100 {
		return finmath.NewInvalidInput("annual_rate", "rate must be between 0 and 100")
	}
	if in.TenureYears <= 0 {
		return finmath.NewInvalidInput("tenure_years", "tenure must be positive")
	}
	return nil
}

// RD computes a recurring-deposit maturity with quarterly compounding.
func RD(in RDInput) (Leg, error) {
	if err := in.Validate(); err != nil {
		return Leg{}, err
	}
	invested := in.MonthlyDeposit * 12 * in.TenureYears
	var maturity float64
	if in.AnnualRate == 0 {
		maturity = invested
	} else {
		i := in.AnnualRate / 400
		n := in.TenureYears * 4
		maturity = in.MonthlyDeposit * (math.Pow(1+i, n) - 1) / (1 - math.Pow(1+i, -1.0/3))
	}
	return newLeg(invested, maturity, in.TenureYears), nil
}

// =============================================================================
// FIXED DEPOSIT
// =============================================================================

// FDInput is the fixed-deposit request.
type FDInput struct {
	Principal   float64           `json:"principal"`
	AnnualRate  float64           `json:"annual_rate"`
	TenureYears float64           `json:"tenure_years"`
	Frequency   finmath.Frequency `json:"compounding_frequency"`
}

func (in FDInput) Validate() error {
	if in.Principal <= 0 {
		return finmath.NewInvalidInput("principal", "principal must be positive")
	}
	if in.AnnualRate < 0 || in.AnnualRate > 100 {
		return finmath.NewInvalidInput("annual_rate", "rate must be between 0 and 100")
	}
	if in.TenureYears <= 0 {
		return finmath.NewInvalidInput("tenure_years", "tenure must be positive")
	}
	if !in.Frequency.Valid() {
		return finmath.NewInvalidInput("compounding_frequency", "unknown compounding frequency %q", string(in.Frequency))
	}
	return nil
}

// FD computes a fixed-deposit maturity.
func FD(in FDInput) (Leg, error) {
	if err := in.Validate(); err != nil {
		return Leg{}, err
	}
	maturity := in.Principal * finmath.CompoundFactor(in.AnnualRate, in.TenureYears, in.Frequency.PeriodsPerYear())
	return newLeg(in.Principal, maturity, in.TenureYears), nil
}

// =============================================================================
// RD vs FD vs SIP
// =============================================================================

// CompareInput is the three-way comparison request. FDLumpsum of zero
// means "match the larger recurring outlay", as the source product does.
type CompareInput struct {
	TenureYears float64 `json:"tenure_years"`
	RDMonthly   float64 `json:"rd_monthly_deposit"`
	RDRate      float64 `json:"rd_rate"`
	FDLumpsum   float64 `json:"fd_lumpsum"`
	FDRate      float64 `json:"fd_rate"`
	SIPMonthly  float64 `json:"sip_monthly_investment"`
	SIPReturn   float64 `json:"sip_expected_return"`
}

func (in CompareInput) Validate() error {
	if in.TenureYears <= 0 {
		return finmath.NewInvalidInput("tenure_years", "tenure must be positive")
	}
	if in.RDMonthly <= 0 || in.SIPMonthly <= 0 {
		return finmath.NewInvalidInput("monthly_amount", "recurring amounts must be positive")
	}
	if in.FDLumpsum < 0 {
		return finmath.NewInvalidInput("fd_lumpsum", "lumpsum cannot be negative")
	}
	for field, v := range map[string]float64{"rd_rate": in.RDRate, "fd_rate": in.FDRate, "sip_expected_return": in.SIPReturn} {
		if v < 0 || v > 100 {
			return finmath.NewInvalidInput(field, "rate must be between 0 and 100")
		}
	}
	return nil
}

// CompareResult holds all three legs and names the best maturity.
type CompareResult struct {
	TenureYears float64 `json:"tenure_years"`
	RD          Leg     `json:"rd"`
	FD          Leg     `json:"fd"`
	SIP         Leg     `json:"sip"`
	Best        string  `json:"best_instrument"`
}

// Compare runs the same outlay through all three instruments.
func Compare(in CompareInput) (CompareResult, error) {
	if err := in.Validate(); err != nil {
		return CompareResult{}, err
	}

	rd, err := RD(RDInput{MonthlyDeposit: in.RDMonthly, AnnualRate: in.RDRate, TenureYears: in.TenureYears})
	if err != nil {
		return CompareResult{}, err
	}

	lumpsum := in.FDLumpsum
	if lumpsum == 0 {
		lumpsum = math.Max(rd.TotalInvested, in.SIPMonthly*12*in.TenureYears)
	}
	fd, err := FD(FDInput{Principal: lumpsum, AnnualRate: in.FDRate, TenureYears: in.TenureYears, Frequency: finmath.Quarterly})
	if err != nil {
		return CompareResult{}, err
	}

	months := int(math.Round(in.TenureYears * 12))
	sipMaturity := finmath.FutureValueAnnuityDue(in.SIPMonthly, in.SIPReturn/100/12, months)
	sip := newLeg(in.SIPMonthly*float64(months), sipMaturity, in.TenureYears)

	best := "rd"
	bestValue := rd.MaturityValue
	if fd.MaturityValue > bestValue {
		best, bestValue = "fd", fd.MaturityValue
	}
	if sip.MaturityValue > bestValue {
		best = "sip"
	}

	return CompareResult{
		TenureYears: in.TenureYears,
		RD:          rd,
		FD:          fd,
		SIP:         sip,
		Best:        best,
	}, nil
}
