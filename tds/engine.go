/*
Package tds implements the withholding-tax (TDS) engine.

PURPOSE:
  Threshold-and-rate lookup by payment category under the old or new
  regime. Most categories carry a flat percentage; 194A under the new
  regime uses amount-dependent slab rates when a PAN is on file. Payments
  below the category threshold attract no deduction at all.

RATE RESOLUTION:
  1. Pick the regime table, then the category entry (194A is the
     fallback for an unknown category, matching the source product).
  2. No PAN always resolves to the higher flat fallback rate.
  3. Below threshold: zero tax with an explanatory message.
  4. Slab entries apply the rate of the slab containing the amount to
     the whole amount; this is an amount-dependent flat rate, not a
     progressive bracket sum.

SEE ALSO:
  - rates/: the per-regime category tables
*/
package tds

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/paisa/calc-engine/finmath"
)

// Category is a TDS section code.
type Category string

const (
	C192A  Category = "192A"
	C194A  Category = "194A"
	C194C  Category = "194C"
	C194D  Category = "194D"
	C194G  Category = "194G"
	C194H  Category = "194H"
	C194I  Category = "194I"
	C194J  Category = "194J"
	C194K  Category = "194K"
	C194LA Category = "194LA"
	C194M  Category = "194M"
	C194N  Category = "194N"
	C194O  Category = "194O"
)

// Regime selects the rate table vintage.
type Regime string

const (
	RegimeOld Regime = "old"
	RegimeNew Regime = "new"
)

func (r Regime) Valid() bool { return r == RegimeOld || r == RegimeNew }

// SlabRate is one band of an amount-dependent rate. Max <= 0 is open-ended.
type SlabRate struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Rate float64 `yaml:"rate"`
}

// Entry is the rate configuration for one category in one regime. When
// PANSlabs is set, the PAN-available rate is slab-resolved instead of flat.
type Entry struct {
	PANRate   float64    `yaml:"pan_rate"`
	NoPANRate float64    `yaml:"no_pan_rate"`
	Threshold float64    `yaml:"threshold"`
	PANSlabs  []SlabRate `yaml:"pan_slabs,omitempty"`
}

// Table maps categories to their rate entries for one regime.
type Table map[Category]Entry

// Input is the calculation request. PANAvailable carries the wire values
// "yes"/"no" as the calculator pages send them.
type Input struct {
	Category      Category `json:"payment_type"`
	Regime        Regime   `json:"regime_type"`
	PANAvailable  string   `json:"pan_available"`
	DeducteeType  string   `json:"category"`
	PaymentAmount float64  `json:"payment_amount"`
}

func (in Input) Validate() error {
	if in.PaymentAmount <= 0 {
		return finmath.NewInvalidInput("payment_amount", "payment amount must be positive")
	}
	if !in.Regime.Valid() {
		return finmath.NewInvalidInput("regime_type", "regime must be \"old\" or \"new\"")
	}
	if in.PANAvailable != "yes" && in.PANAvailable != "no" {
		return finmath.NewInvalidInput("pan_available", "pan_available must be \"yes\" or \"no\"")
	}
	return nil
}

// Result is the calculation response.
type Result struct {
	PaymentAmount    float64  `json:"payment_amount"`
	TDSAmount        float64  `json:"tds_amount"`
	NetAmount        float64  `json:"net_amount"`
	ApplicableRate   float64  `json:"applicable_rate"`
	Threshold        float64  `json:"threshold"`
	ThresholdMessage string   `json:"threshold_message,omitempty"`
	Category         Category `json:"payment_type"`
	Regime           Regime   `json:"regime_type"`
	PANAvailable     string   `json:"pan_available"`
	DeducteeType     string   `json:"category,omitempty"`
}

// Calculate resolves the rate and computes the deduction.
func Calculate(in Input, tables map[Regime]Table) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	table, ok := tables[in.Regime]
	if !ok || len(table) == 0 {
		return Result{}, finmath.NewInvalidInput("regime_type", "no rate table loaded for regime %q", string(in.Regime))
	}
	entry, ok := table[in.Category]
	if !ok {
		entry, ok = table[C194A]
		if !ok {
			return Result{}, finmath.NewInvalidInput("payment_type", "unknown payment type %q", string(in.Category))
		}
	}

	res := Result{
		PaymentAmount: in.PaymentAmount,
		Threshold:     entry.Threshold,
		Category:      in.Category,
		Regime:        in.Regime,
		PANAvailable:  in.PANAvailable,
		DeducteeType:  in.DeducteeType,
	}

	if in.PaymentAmount < entry.Threshold {
		res.NetAmount = in.PaymentAmount
		res.ThresholdMessage = fmt.Sprintf(
			"No TDS: payment is below the %s threshold of %.0f", in.Category, entry.Threshold)
		return res, nil
	}

	rate := entry.NoPANRate
	if in.PANAvailable == "yes" {
		if len(entry.PANSlabs) > 0 {
			rate = resolveSlabRate(entry.PANSlabs, in.PaymentAmount)
		} else {
			rate = entry.PANRate
		}
	}

	amount := decimal.NewFromFloat(in.PaymentAmount)
	tdsAmount := amount.Mul(decimal.NewFromFloat(rate)).Div(decimal.NewFromInt(100))
	res.ApplicableRate = rate
	res.TDSAmount = tdsAmount.Round(2).InexactFloat64()
	res.NetAmount = amount.Sub(tdsAmount).Round(2).InexactFloat64()
	return res, nil
}

// resolveSlabRate returns the rate of the band containing the amount.
func resolveSlabRate(slabs []SlabRate, amount float64) float64 {
	for _, s := range slabs {
		if amount >= s.Min && (s.Max <= 0 || amount <= s.Max) {
			return s.Rate
		}
	}
	return 0
}
