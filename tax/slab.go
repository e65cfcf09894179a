/*
Package tax implements the progressive income-slab tax engine.

PURPOSE:
  Pure marginal-bracket tax over an ordered slab table. Used standalone
  for income-tax calculations and as a building block wherever another
  engine needs the marginal tax on an income delta (debt-fund capital
  gains, non-equity STCG in slab mode).

PRECISION:
  Slab arithmetic is plain multiply/add, so it runs on decimal end to end.
  Table boundaries are configured in rupees; rates are whole-number
  percentages (5 means 5%).

SEE ALSO:
  - comparison.go: old-vs-new regime comparison
  - rates/: the versioned slab tables
*/
package tax

import (
	"github.com/shopspring/decimal"

	"github.com/paisa/calc-engine/finmath"
)

// Slab is one bracket of a progressive table. Upper <= 0 marks the
// open-ended top bracket.
type Slab struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
	Rate  float64 `json:"rate" yaml:"rate"`
}

// Table is an ordered sequence of slabs for one regime.
type Table struct {
	ID    string `json:"id" yaml:"id"`
	Slabs []Slab `json:"slabs" yaml:"slabs"`
}

// Validate checks the table is non-empty, starts at zero, stays ordered
// and contiguous, and only the last slab is open-ended.
func (t Table) Validate() error {
	if len(t.Slabs) == 0 {
		return finmath.NewInvalidInput("slabs", "table %q has no slabs", t.ID)
	}
	if t.Slabs[0].Lower != 0 {
		return finmath.NewInvalidInput("slabs", "table %q must start at zero", t.ID)
	}
	for i, s := range t.Slabs {
		last := i == len(t.Slabs)-1
		if s.Rate < 0 || s.Rate > 100 {
			return finmath.NewInvalidInput("slabs", "table %q slab %d has rate outside 0-100", t.ID, i)
		}
		if !last {
			if s.Upper <= s.Lower {
				return finmath.NewInvalidInput("slabs", "table %q slab %d has upper <= lower", t.ID, i)
			}
			if t.Slabs[i+1].Lower != s.Upper {
				return finmath.NewInvalidInput("slabs", "table %q slab %d is not contiguous", t.ID, i)
			}
		} else if s.Upper > 0 && s.Upper <= s.Lower {
			return finmath.NewInvalidInput("slabs", "table %q top slab has upper <= lower", t.ID)
		}
	}
	return nil
}

var hundred = decimal.NewFromInt(100)

// Tax sums, for each bracket fully or partially below income,
// (min(income, upper) - lower) * rate.
func (t Table) Tax(income decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, s := range t.Slabs {
		lower := decimal.NewFromFloat(s.Lower)
		if income.LessThanOrEqual(lower) {
			break
		}
		taxable := income.Sub(lower)
		if s.Upper > 0 {
			upper := decimal.NewFromFloat(s.Upper)
			if income.GreaterThan(upper) {
				taxable = upper.Sub(lower)
			}
		}
		rate := decimal.NewFromFloat(s.Rate)
		total = total.Add(taxable.Mul(rate).Div(hundred))
	}
	return total
}

// MarginalTax returns the extra tax a delta adds on top of a base income:
// Tax(base+delta) - Tax(base).
func (t Table) MarginalTax(base, delta decimal.Decimal) decimal.Decimal {
	return t.Tax(base.Add(delta)).Sub(t.Tax(base))
}

// =============================================================================
// STANDALONE CALCULATION
// =============================================================================

// Result is the standalone slab-tax response.
type Result struct {
	Income        float64 `json:"income"`
	TableID       string  `json:"table_id"`
	Tax           float64 `json:"tax"`
	EffectiveRate float64 `json:"effective_rate"`
}

// Calculate runs the slab table over an income.
func Calculate(income float64, t Table) (Result, error) {
	if income < 0 {
		return Result{}, finmath.NewInvalidInput("income", "income cannot be negative")
	}
	if err := t.Validate(); err != nil {
		return Result{}, err
	}
	d := t.Tax(decimal.NewFromFloat(income))
	res := Result{
		Income:  income,
		TableID: t.ID,
		Tax:     d.Round(2).InexactFloat64(),
	}
	if income > 0 {
		res.EffectiveRate = d.Mul(hundred).Div(decimal.NewFromFloat(income)).Round(2).InexactFloat64()
	}
	return res, nil
}
