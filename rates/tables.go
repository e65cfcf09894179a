/*
Package rates holds the versioned tax-law tables the engines consume.

PURPOSE:
  Every number that changes with a Finance Act lives here, not in engine
  code: the Cost Inflation Index, income-tax slab tables per regime,
  per-category TDS rates, and the capital-gains constants (exemption
  caps, regime-change date, cess and surcharge). Defaults are compiled
  in; a YAML file with the same shape can override any of it at process
  start. After Load the value is read-only.

VERSIONING:
  Tables carry a version label (the assessment-year vintage). Annual
  updates mean editing this package or shipping a YAML file - never
  touching calculation logic.

SEE ALSO:
  - load.go: YAML override loading
*/
package rates

import (
	"github.com/paisa/calc-engine/capitalgains"
	"github.com/paisa/calc-engine/finmath"
	"github.com/paisa/calc-engine/tax"
	"github.com/paisa/calc-engine/tds"
)

// Slab table identifiers.
const (
	NewRegimeFY2024 = "new-regime-fy2024-25"
	NewRegimeFY2023 = "new-regime-fy2023-24"
	OldRegimeBasic  = "old-regime-below-60"
	OldRegimeSenior = "old-regime-60-80"
	OldRegimeSuper  = "old-regime-80-plus"
)

// Tables is the full versioned rate configuration.
type Tables struct {
	Version string `yaml:"version"`

	CII capitalgains.CIITable `yaml:"cii"`

	// SlabTables holds every income-tax table by ID; DefaultSlab names
	// the one standalone slab calculations and slab-mode capital gains
	// use.
	SlabTables  map[string]tax.Table `yaml:"slab_tables"`
	DefaultSlab string               `yaml:"default_slab"`

	Regime tax.RegimeRules `yaml:"regime"`

	TDS map[tds.Regime]tds.Table `yaml:"tds"`

	CapitalGains capitalgains.Rules `yaml:"capital_gains"`
}

// DefaultSlabTable returns the table named by DefaultSlab.
func (t *Tables) DefaultSlabTable() tax.Table {
	return t.SlabTables[t.DefaultSlab]
}

// Validate checks every table before the engines are built from it.
func (t *Tables) Validate() error {
	if len(t.CII) == 0 {
		return finmath.NewInvalidInput("cii", "CII table is empty")
	}
	if _, ok := t.SlabTables[t.DefaultSlab]; !ok {
		return finmath.NewInvalidInput("default_slab", "default slab table %q is not defined", t.DefaultSlab)
	}
	for id, table := range t.SlabTables {
		if err := table.Validate(); err != nil {
			return finmath.NewInvalidInput("slab_tables", "table %q invalid: %v", id, err)
		}
	}
	for _, regime := range []tds.Regime{tds.RegimeOld, tds.RegimeNew} {
		if len(t.TDS[regime]) == 0 {
			return finmath.NewInvalidInput("tds", "no TDS table for regime %q", string(regime))
		}
	}
	return nil
}

// Default returns the compiled-in FY2024-25 configuration.
func Default() *Tables {
	slabTables := map[string]tax.Table{
		NewRegimeFY2024: {
			ID: NewRegimeFY2024,
			Slabs: []tax.Slab{
				{Lower: 0, Upper: 300000, Rate: 0},
				{Lower: 300000, Upper: 700000, Rate: 5},
				{Lower: 700000, Upper: 1000000, Rate: 10},
				{Lower: 1000000, Upper: 1200000, Rate: 15},
				{Lower: 1200000, Upper: 1500000, Rate: 20},
				{Lower: 1500000, Upper: 0, Rate: 30},
			},
		},
		NewRegimeFY2023: {
			ID: NewRegimeFY2023,
			Slabs: []tax.Slab{
				{Lower: 0, Upper: 300000, Rate: 0},
				{Lower: 300000, Upper: 600000, Rate: 5},
				{Lower: 600000, Upper: 900000, Rate: 10},
				{Lower: 900000, Upper: 1200000, Rate: 15},
				{Lower: 1200000, Upper: 1500000, Rate: 20},
				{Lower: 1500000, Upper: 0, Rate: 30},
			},
		},
		OldRegimeBasic: {
			ID: OldRegimeBasic,
			Slabs: []tax.Slab{
				{Lower: 0, Upper: 250000, Rate: 0},
				{Lower: 250000, Upper: 500000, Rate: 5},
				{Lower: 500000, Upper: 1000000, Rate: 20},
				{Lower: 1000000, Upper: 0, Rate: 30},
			},
		},
		OldRegimeSenior: {
			ID: OldRegimeSenior,
			Slabs: []tax.Slab{
				{Lower: 0, Upper: 300000, Rate: 0},
				{Lower: 300000, Upper: 500000, Rate: 5},
				{Lower: 500000, Upper: 1000000, Rate: 20},
				{Lower: 1000000, Upper: 0, Rate: 30},
			},
		},
		OldRegimeSuper: {
			ID: OldRegimeSuper,
			Slabs: []tax.Slab{
				{Lower: 0, Upper: 500000, Rate: 0},
				{Lower: 500000, Upper: 1000000, Rate: 20},
				{Lower: 1000000, Upper: 0, Rate: 30},
			},
		},
	}

	return &Tables{
		Version: "fy2024-25",

		CII: capitalgains.CIITable{
			2001: 100, 2002: 105, 2003: 109, 2004: 113, 2005: 117,
			2006: 122, 2007: 129, 2008: 137, 2009: 148, 2010: 167,
			2011: 184, 2012: 200, 2013: 220, 2014: 240, 2015: 254,
			2016: 264, 2017: 272, 2018: 280, 2019: 289, 2020: 301,
			2021: 317, 2022: 331, 2023: 348, 2024: 363, 2025: 380,
		},

		SlabTables:  slabTables,
		DefaultSlab: NewRegimeFY2024,

		Regime: tax.RegimeRules{
			Old: map[tax.AgeGroup]tax.Table{
				tax.AgeBelow60:     slabTables[OldRegimeBasic],
				tax.AgeSenior:      slabTables[OldRegimeSenior],
				tax.AgeSuperSenior: slabTables[OldRegimeSuper],
			},
			New:               slabTables[NewRegimeFY2024],
			StandardDeduction: 50000,
			CessRate:          4,
			Caps: tax.DeductionCaps{
				Section80C:       150000,
				Section80DBasic:  25000,
				Section80DSenior: 50000,
				Section80TTA:     10000,
				Section80CCD1:    50000,
				Section80EEA:     150000,
			},
		},

		TDS: map[tds.Regime]tds.Table{
			tds.RegimeOld: {
				tds.C192A:  {PANRate: 10, NoPANRate: 20, Threshold: 30000},
				tds.C194A:  {PANRate: 10, NoPANRate: 20, Threshold: 40000},
				tds.C194C:  {PANRate: 1, NoPANRate: 20, Threshold: 30000},
				tds.C194D:  {PANRate: 5, NoPANRate: 20, Threshold: 15000},
				tds.C194G:  {PANRate: 5, NoPANRate: 20, Threshold: 15000},
				tds.C194H:  {PANRate: 5, NoPANRate: 20, Threshold: 15000},
				tds.C194I:  {PANRate: 10, NoPANRate: 20, Threshold: 240000},
				tds.C194J:  {PANRate: 10, NoPANRate: 20, Threshold: 30000},
				tds.C194K:  {PANRate: 10, NoPANRate: 20, Threshold: 25000},
				tds.C194LA: {PANRate: 10, NoPANRate: 20, Threshold: 250000},
				tds.C194M:  {PANRate: 0.1, NoPANRate: 5, Threshold: 500000},
				tds.C194N:  {PANRate: 2, NoPANRate: 2, Threshold: 1000000},
				tds.C194O:  {PANRate: 1, NoPANRate: 5, Threshold: 500000},
			},
			tds.RegimeNew: {
				tds.C192A: {PANRate: 10, NoPANRate: 20, Threshold: 30000},
				tds.C194A: {
					NoPANRate: 20, Threshold: 50000,
					PANSlabs: []tds.SlabRate{
						{Min: 0, Max: 50000, Rate: 0},
						{Min: 50001, Max: 500000, Rate: 10},
						{Min: 500001, Max: 0, Rate: 15},
					},
				},
				tds.C194C:  {PANRate: 1, NoPANRate: 20, Threshold: 30000},
				tds.C194D:  {PANRate: 5, NoPANRate: 20, Threshold: 15000},
				tds.C194G:  {PANRate: 5, NoPANRate: 20, Threshold: 15000},
				tds.C194H:  {PANRate: 5, NoPANRate: 20, Threshold: 15000},
				tds.C194I:  {PANRate: 10, NoPANRate: 20, Threshold: 240000},
				tds.C194J:  {PANRate: 10, NoPANRate: 20, Threshold: 30000},
				tds.C194K:  {PANRate: 10, NoPANRate: 20, Threshold: 25000},
				tds.C194LA: {PANRate: 10, NoPANRate: 20, Threshold: 250000},
				tds.C194M:  {PANRate: 0.1, NoPANRate: 5, Threshold: 500000},
				tds.C194N:  {PANRate: 2, NoPANRate: 2, Threshold: 1000000},
				tds.C194O:  {PANRate: 1, NoPANRate: 5, Threshold: 500000},
			},
		},

		CapitalGains: capitalgains.Rules{
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
		},
	}
}
