/*
Package finmath provides the shared primitives for the calculation engines.

PURPOSE:
  Every engine in this repository (compound interest, SIP annuities, CAGR,
  capital gains, slab tax, TDS, retirement, deposits) is a pure function
  from an input record to an output record. This package holds what they
  share so the formulas exist exactly once:
  - Compounding and contribution frequency enumerations
  - Annuity and compound-growth closed forms
  - Period breakdown row types
  - Monetary rounding
  - The error taxonomy (InvalidInput / OutOfDomain)

DESIGN PRINCIPLES:
  1. Statelessness: no package-level mutable state, no I/O
  2. Validation first: engines reject bad input before any arithmetic
  3. One rounding path: all monetary rounding goes through decimal,
     never through ad-hoc float tricks

SEE ALSO:
  - formulas.go: the shared closed forms
  - errors.go: error taxonomy
*/
package finmath

// =============================================================================
// COMPOUNDING FREQUENCY - closed set, used by compound/deposit engines
// =============================================================================

// Frequency identifies how often interest is compounded within a year.
type Frequency string

const (
	Annually   Frequency = "annually"
	HalfYearly Frequency = "half-yearly"
	Quarterly  Frequency = "quarterly"
	Monthly    Frequency = "monthly"
	Weekly     Frequency = "weekly"
	Daily      Frequency = "daily"
)

// AllFrequencies lists every compounding frequency, least to most frequent.
var AllFrequencies = []Frequency{Annually, HalfYearly, Quarterly, Monthly, Weekly, Daily}

// PeriodsPerYear returns the number of compounding periods in a year,
// or 0 for an unknown frequency.
func (f Frequency) PeriodsPerYear() int {
	switch f {
	case Annually:
		return 1
	case HalfYearly:
		return 2
	case Quarterly:
		return 4
	case Monthly:
		return 12
	case Weekly:
		return 52
	case Daily:
		return 365
	default:
		return 0
	}
}

func (f Frequency) Valid() bool { return f.PeriodsPerYear() > 0 }

// ParseFrequency converts a wire value into a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(s)
	if !f.Valid() {
		return "", NewInvalidInput("compounding_frequency", "unknown compounding frequency %q", s)
	}
	return f, nil
}

// =============================================================================
// CONTRIBUTION FREQUENCY - closed set, used by the annuity engine
// =============================================================================

// ContributionFrequency identifies how often a recurring contribution
// is made. OneTime marks a single lump-sum contribution.
type ContributionFrequency string

const (
	ContributeDaily     ContributionFrequency = "daily"
	ContributeWeekly    ContributionFrequency = "weekly"
	ContributeMonthly   ContributionFrequency = "monthly"
	ContributeQuarterly ContributionFrequency = "quarterly"
	ContributeYearly    ContributionFrequency = "yearly"
	ContributeOneTime   ContributionFrequency = "one-time"
)

// PeriodsPerYear returns contributions per year, 0 for OneTime and -1 for
// an unknown frequency.
func (f ContributionFrequency) PeriodsPerYear() int {
	switch f {
	case ContributeDaily:
		return 365
	case ContributeWeekly:
		return 52
	case ContributeMonthly:
		return 12
	case ContributeQuarterly:
		return 4
	case ContributeYearly:
		return 1
	case ContributeOneTime:
		return 0
	default:
		return -1
	}
}

func (f ContributionFrequency) Valid() bool { return f.PeriodsPerYear() >= 0 }

// =============================================================================
// PERIOD BREAKDOWN ROWS
// =============================================================================

// YearRow is one year of a growth schedule. Closing balance of year n is
// the opening balance of year n+1, and cumulative invested never decreases.
type YearRow struct {
	Year               int     `json:"year"`
	OpeningBalance     float64 `json:"opening_balance"`
	Invested           float64 `json:"invested"`
	Growth             float64 `json:"growth"`
	ClosingBalance     float64 `json:"closing_balance"`
	CumulativeInvested float64 `json:"cumulative_invested"`
}

// MonthRow is one month of the on-demand expansion of a YearRow.
type MonthRow struct {
	Month              int     `json:"month"`
	OpeningBalance     float64 `json:"opening_balance"`
	Invested           float64 `json:"invested"`
	Growth             float64 `json:"growth"`
	ClosingBalance     float64 `json:"closing_balance"`
	CumulativeInvested float64 `json:"cumulative_invested"`
}
