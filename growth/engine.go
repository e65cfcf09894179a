/*
Package growth implements the CAGR engine and the Rule of 72.

PURPOSE:
  Forward CAGR (what rate grew start to end), reverse CAGR (what lump sum
  reaches a target at a given rate), and the Rule of 72 doubling heuristic
  with its exact counterpart and accuracy.

SEE ALSO:
  - rule72.go: doubling-time approximation
*/
package growth

import (
	"math"

	"github.com/paisa/calc-engine/finmath"
)

// =============================================================================
// FORWARD CAGR
// =============================================================================

// Input is the forward CAGR request.
type Input struct {
	StartValue float64 `json:"start_value"`
	EndValue   float64 `json:"end_value"`
	Years      float64 `json:"years"`
}

func (in Input) Validate() error {
	if in.StartValue <= 0 {
		return finmath.NewInvalidInput("start_value", "start value must be positive")
	}
	if in.EndValue <= 0 {
		return finmath.NewInvalidInput("end_value", "end value must be positive")
	}
	if in.Years <= 0 {
		return finmath.NewInvalidInput("years", "duration must be positive")
	}
	return nil
}

// Result is the forward CAGR response.
type Result struct {
	StartValue   float64 `json:"start_value"`
	EndValue     float64 `json:"end_value"`
	Years        float64 `json:"years"`
	CAGR         float64 `json:"cagr"`
	TotalGrowth  float64 `json:"total_growth"`
	GrowthFactor float64 `json:"growth_factor"`
}

// CAGR computes the constant annual rate between two values.
func CAGR(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	cagr := (math.Pow(in.EndValue/in.StartValue, 1/in.Years) - 1) * 100
	return Result{
		StartValue:   in.StartValue,
		EndValue:     in.EndValue,
		Years:        in.Years,
		CAGR:         finmath.Round2(cagr),
		TotalGrowth:  finmath.Round2(in.EndValue - in.StartValue),
		GrowthFactor: finmath.Round2(in.EndValue / in.StartValue),
	}, nil
}

// =============================================================================
// REVERSE CAGR - required initial lump sum for a target
// =============================================================================

// ReverseInput is the target-driven request.
type ReverseInput struct {
	TargetAmount float64 `json:"target_amount"`
	ExpectedCAGR float64 `json:"expected_cagr"`
	Years        int     `json:"investment_years"`
}

func (in ReverseInput) Validate() error {
	if in.TargetAmount <= 0 {
		return finmath.NewInvalidInput("target_amount", "target amount must be positive")
	}
	if in.ExpectedCAGR < 0 {
		return finmath.NewInvalidInput("expected_cagr", "expected CAGR cannot be negative")
	}
	if in.Years <= 0 {
		return finmath.NewInvalidInput("investment_years", "duration must be positive")
	}
	return nil
}

// GrowthRow is one year of the reverse-CAGR growth table.
type GrowthRow struct {
	Year             int     `json:"year"`
	OpeningBalance   float64 `json:"opening_balance"`
	GrowthAmount     float64 `json:"growth_amount"`
	ClosingBalance   float64 `json:"closing_balance"`
	CumulativeGrowth float64 `json:"cumulative_growth"`
}

// ReverseResult is the target-driven response.
type ReverseResult struct {
	TargetAmount      float64     `json:"target_amount"`
	ExpectedCAGR      float64     `json:"expected_cagr"`
	Years             int         `json:"investment_years"`
	InitialInvestment float64     `json:"initial_investment"`
	TotalGrowth       float64     `json:"total_growth"`
	Table             []GrowthRow `json:"growth_table"`
}

// ReverseCAGR computes the lump sum that reaches the target and the
// year-by-year growth table by repeated multiplication.
func ReverseCAGR(in ReverseInput) (ReverseResult, error) {
	if err := in.Validate(); err != nil {
		return ReverseResult{}, err
	}
	g := in.ExpectedCAGR / 100
	initial := in.TargetAmount / math.Pow(1+g, float64(in.Years))

	table := make([]GrowthRow, 0, in.Years)
	balance := initial
	for y := 1; y <= in.Years; y++ {
		next := balance * (1 + g)
		table = append(table, GrowthRow{
			Year:             y,
			OpeningBalance:   finmath.Round2(balance),
			GrowthAmount:     finmath.Round2(next - balance),
			ClosingBalance:   finmath.Round2(next),
			CumulativeGrowth: finmath.Round2(next - initial),
		})
		balance = next
	}

	return ReverseResult{
		TargetAmount:      in.TargetAmount,
		ExpectedCAGR:      in.ExpectedCAGR,
		Years:             in.Years,
		InitialInvestment: finmath.Round2(initial),
		TotalGrowth:       finmath.Round2(in.TargetAmount - initial),
		Table:             table,
	}, nil
}
