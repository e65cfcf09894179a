/*
handlers.go - HTTP API handlers for the calculation engines

PURPOSE:
  Exposes the financial calculation engines via REST API. Handles HTTP
  request/response, JSON serialization, result caching, and delegates
  the arithmetic to the engine packages.

ENDPOINTS:
  Calculators (all POST, JSON in / JSON out):
    /api/calculate/compound-interest   Compound interest with frequency comparison
    /api/calculate/sip                 Recurring investment maturity
    /api/calculate/sip/required        Contribution needed for a target
    /api/calculate/sip/breakdown       Month-level expansion of one year
    /api/calculate/lumpsum             One-time investment maturity
    /api/calculate/cagr                Annualized growth rate
    /api/calculate/reverse-cagr        Future value from a CAGR
    /api/calculate/rule-of-72          Doubling time / doubling rate
    /api/calculate/capital-gains       Indexed capital gains tax
    /api/calculate/income-tax          Slab tax for one table
    /api/calculate/income-tax/comparison  Old vs new regime
    /api/calculate/tds                 Tax deducted at source
    /api/calculate/retirement          Retirement corpus planning
    /api/calculate/rd                  Recurring deposit maturity
    /api/calculate/fd                  Fixed deposit maturity
    /api/calculate/rd-vs-fd-vs-sip     Three-way instrument comparison

  Rates (GET):
    /api/rates                         Active rate configuration summary
    /api/rates/cii                     Cost inflation index table
    /api/rates/slabs/{id}              One slab table by ID

  Misc:
    GET /health                        Liveness probe

CACHING:
  Every engine is a pure function of its input and the rate tables, so
  responses are cached by SHA-256 of the raw request body plus the rates
  version. A version bump invalidates everything at once. Cache write
  failures are logged and ignored; the response is served either way.

ERROR HANDLING:
  - 400: Validation errors, malformed JSON
  - 404: Unknown slab table
  - 429: Rate limit exceeded (middleware)
  - 500: Internal errors

SEE ALSO:
  - dto.go: API-layer request/response types
  - server.go: Router setup and middleware
*/
package api

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/paisa/calc-engine/annuity"
	"github.com/paisa/calc-engine/cache"
	"github.com/paisa/calc-engine/capitalgains"
	"github.com/paisa/calc-engine/compound"
	"github.com/paisa/calc-engine/deposits"
	"github.com/paisa/calc-engine/finmath"
	"github.com/paisa/calc-engine/growth"
	"github.com/paisa/calc-engine/rates"
	"github.com/paisa/calc-engine/retirement"
	"github.com/paisa/calc-engine/tax"
	"github.com/paisa/calc-engine/tds"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	tables *rates.Tables
	gains  *capitalgains.Engine
	cache  cache.Repository
	ttl    time.Duration
	log    *zap.Logger
}

// NewHandler wires the engines to a rate configuration. The capital
// gains engine is built once here; everything else is stateless.
func NewHandler(tables *rates.Tables, c cache.Repository, ttl time.Duration, log *zap.Logger) (*Handler, error) {
	gains, err := capitalgains.NewEngine(tables.CII, tables.CapitalGains, tables.DefaultSlabTable())
	if err != nil {
		return nil, fmt.Errorf("build capital gains engine: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		tables: tables,
		gains:  gains,
		cache:  c,
		ttl:    ttl,
		log:    log,
	}, nil
}

// =============================================================================
// SHARED REQUEST FLOW
// =============================================================================

// serve runs the shared request flow: read body, consult the cache,
// compute, cache, respond. compute receives the raw body so the cache
// key can be derived before any decoding happens.
func (h *Handler) serve(w http.ResponseWriter, r *http.Request, name string, compute func(body []byte) (any, error)) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body", err)
		return
	}

	key := h.cacheKey(name, body)
	if h.cache != nil {
		if cached, ok := h.cache.Get(r.Context(), key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(http.StatusOK)
			io.WriteString(w, cached)
			return
		}
	}

	result, err := compute(body)
	if err != nil {
		h.writeComputeError(w, name, err)
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode response", err)
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(r.Context(), key, string(payload), h.ttl); err != nil {
			h.log.Warn("cache write failed", zap.String("calculator", name), zap.Error(err))
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

func (h *Handler) cacheKey(name string, body []byte) string {
	sum := sha256.Sum256(body)
	return fmt.Sprintf("calc:%s:%s:%x", name, h.tables.Version, sum)
}

func (h *Handler) writeComputeError(w http.ResponseWriter, name string, err error) {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case finmath.IsInvalidInput(err):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
	default:
		h.log.Error("calculation failed", zap.String("calculator", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Calculation failed", err)
	}
}

// =============================================================================
// GROWTH CALCULATORS
// =============================================================================

// CompoundInterest handles POST /api/calculate/compound-interest
func (h *Handler) CompoundInterest(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "compound-interest", func(body []byte) (any, error) {
		var in compound.Input
		if err := json.Unmarshal(body, &in); err != nil {
			return nil, err
		}
		return compound.Calculate(in)
	})
}

// SIP handles POST /api/calculate/sip
func (h *Handler) SIP(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "sip", func(body []byte) (any, error) {
		var in annuity.Input
		if err := json.Unmarshal(body, &in); err != nil {
			return nil, err
		}
		return annuity.Calculate(in)
	})
}

// SIPRequired handles POST /api/calculate/sip/required
func (h *Handler) SIPRequired(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "sip-required", func(body []byte) (any, error) {
		var in annuity.TargetInput
		if err := json.Unmarshal(body, &in); err != nil {
			return nil, err
		}
		return annuity.RequiredContribution(in)
	})
}

// SIPBreakdown handles POST /api/calculate/sip/breakdown
func (h *Handler) SIPBreakdown(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "sip-breakdown", func(body []byte) (any, error) {
		var req SIPYearRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, err
		}
		return annuity.ExpandYear(req.Input, req.Year)
	})
}

// Lumpsum handles POST /api/calculate/lumpsum
func (h *Handler) Lumpsum(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "lumpsum", func(body []byte) (any, error) {
		var in annuity.LumpsumInput
		if err := json.Unmarshal(body, &in); err != nil {
			return nil, err
		}
		return annuity.Lumpsum(in)
	})
}

// CAGR handles POST /api/calculate/cagr
func (h *Handler) CAGR(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "cagr", func(body []byte) (any, error) {
		var in growth.Input
		if err := json.Unmarshal(body, &in); err != nil {
			return nil, err
		}
		return growth.CAGR(in)
	})
}

// ReverseCAGR handles POST /api/calculate/reverse-cagr
func (h *Handler) ReverseCAGR(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "reverse-cagr", func(body []byte) (any, error) {
		var in growth.ReverseInput
		if err := json.Unmarshal(body, &in); err != nil {
			return nil, err
		}
		return growth.ReverseCAGR(in)
	})
}

// RuleOf72 handles POST /api/calculate/rule-of-72
func (h *Handler) RuleOf72(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "rule-of-72", func(body []byte) (any, error) {
		var req Rule72Request
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, err
		}
		switch {
		case req.InterestRate != nil && req.TenureYears != nil:
			return nil, finmath.NewInvalidInput("interest_rate", "provide either interest_rate or tenure_years, not both")
		case req.InterestRate != nil:
			return growth.DoublingTime(*req.InterestRate)
		case req.TenureYears != nil:
			return growth.RequiredRate(*req.TenureYears)
		default:
			return nil, finmath.NewInvalidInput("interest_rate", "provide interest_rate or tenure_years")
		}
	})
}

// =============================================================================
// TAX CALCULATORS
// =============================================================================

// CapitalGains handles POST /api/calculate/capital-gains
func (h *Handler) CapitalGains(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "capital-gains", func(body []byte) (any, error) {
		var in capitalgains.Input
		if err := json.Unmarshal(body, &in); err != nil {
			return nil, err
		}
		return h.gains.Calculate(in)
	})
}

// IncomeTax handles POST /api/calculate/income-tax
func (h *Handler) IncomeTax(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "income-tax", func(body []byte) (any, error) {
		var req IncomeTaxRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, err
		}
		table := h.tables.DefaultSlabTable()
		if req.TableID != "" {
			t, ok := h.tables.SlabTables[req.TableID]
			if !ok {
				return nil, finmath.NewInvalidInput("table_id", "unknown slab table %q", req.TableID)
			}
			table = t
		}
		return tax.Calculate(req.AnnualIncome, table)
	})
}

// IncomeTaxComparison handles POST /api/calculate/income-tax/comparison
func (h *Handler) IncomeTaxComparison(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "income-tax-comparison", func(body []byte) (any, error) {
		var in tax.ComparisonInput
		if err := json.Unmarshal(body, &in); err != nil {
			return nil, err
		}
		return tax.CompareRegimes(in, h.tables.Regime)
	})
}

// TDS handles POST /api/calculate/tds
func (h *Handler) TDS(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "tds", func(body []byte) (any, error) {
		var in tds.Input
		if err := json.Unmarshal(body, &in); err != nil {
			return nil, err
		}
		return tds.Calculate(in, h.tables.TDS)
	})
}

// =============================================================================
// PLANNING CALCULATORS
// =============================================================================

// Retirement handles POST /api/calculate/retirement
func (h *Handler) Retirement(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "retirement", func(body []byte) (any, error) {
		var in retirement.Input
		if err := json.Unmarshal(body, &in); err != nil {
			return nil, err
		}
		return retirement.Calculate(in)
	})
}

// RD handles POST /api/calculate/rd
func (h *Handler) RD(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "rd", func(body []byte) (any, error) {
		var in deposits.RDInput
		if err := json.Unmarshal(body, &in); err != nil {
			return nil, err
		}
		return deposits.RD(in)
	})
}

// FD handles POST /api/calculate/fd
func (h *Handler) FD(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "fd", func(body []byte) (any, error) {
		var in deposits.FDInput
		if err := json.Unmarshal(body, &in); err != nil {
			return nil, err
		}
		return deposits.FD(in)
	})
}

// CompareDeposits handles POST /api/calculate/rd-vs-fd-vs-sip
func (h *Handler) CompareDeposits(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "rd-vs-fd-vs-sip", func(body []byte) (any, error) {
		var in deposits.CompareInput
		if err := json.Unmarshal(body, &in); err != nil {
			return nil, err
		}
		return deposits.Compare(in)
	})
}

// =============================================================================
// RATES AND HEALTH
// =============================================================================

// Rates handles GET /api/rates
func (h *Handler) Rates(w http.ResponseWriter, r *http.Request) {
	ids := make([]string, 0, len(h.tables.SlabTables))
	for id := range h.tables.SlabTables {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	minYear, maxYear := 0, 0
	for year := range h.tables.CII {
		if minYear == 0 || year < minYear {
			minYear = year
		}
		if year > maxYear {
			maxYear = year
		}
	}

	writeJSON(w, http.StatusOK, RatesSummaryDTO{
		Version:     h.tables.Version,
		SlabTables:  ids,
		DefaultSlab: h.tables.DefaultSlab,
		CIIYears:    [2]int{minYear, maxYear},
	})
}

// RatesCII handles GET /api/rates/cii
func (h *Handler) RatesCII(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.tables.CII)
}

// RatesIncomeTax handles GET /api/rates/income-tax
func (h *Handler) RatesIncomeTax(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.tables.SlabTables)
}

// RatesTDS handles GET /api/rates/tds
func (h *Handler) RatesTDS(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.tables.TDS)
}

// RatesSlab handles GET /api/rates/slabs/{id}
func (h *Handler) RatesSlab(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	table, ok := h.tables.SlabTables[id]
	if !ok {
		writeError(w, http.StatusNotFound, "Slab table not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthDTO{
		Status:       "ok",
		RatesVersion: h.tables.Version,
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Detail = err.Error()
	}
	writeJSON(w, status, resp)
}
