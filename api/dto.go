/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures that belong to the HTTP layer itself.
  Engine inputs and results already carry JSON tags and cross the wire
  as-is; this file only holds the wrappers the API adds around them:
  error envelopes, composite requests, and the rates summaries.

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *Response / *DTO: Response types returned to clients

VALIDATION:
  Validation lives on the engine input types. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/paisa/calc-engine/annuity"
)

// =============================================================================
// ERROR ENVELOPE
// =============================================================================

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// =============================================================================
// COMPOSITE REQUESTS
// =============================================================================

// SIPYearRequest asks for the month-level expansion of one year of a
// recurring investment plan.
type SIPYearRequest struct {
	annuity.Input
	Year int `json:"year"`
}

// Rule72Request carries either an interest rate (how long to double) or
// a tenure (what rate doubles). Exactly one must be present.
type Rule72Request struct {
	InterestRate *float64 `json:"interest_rate,omitempty"`
	TenureYears  *float64 `json:"tenure_years,omitempty"`
}

// IncomeTaxRequest selects a slab table by ID; an empty table_id uses
// the default table.
type IncomeTaxRequest struct {
	AnnualIncome float64 `json:"annual_income"`
	TableID      string  `json:"table_id,omitempty"`
}

// =============================================================================
// RATES RESPONSES
// =============================================================================

// RatesSummaryDTO describes the rate configuration the server is
// answering with. Clients embed the version in cache keys of their own.
type RatesSummaryDTO struct {
	Version     string   `json:"version"`
	SlabTables  []string `json:"slab_tables"`
	DefaultSlab string   `json:"default_slab"`
	CIIYears    [2]int   `json:"cii_years"`
}

// HealthDTO is the health check body.
type HealthDTO struct {
	Status       string `json:"status"`
	RatesVersion string `json:"rates_version"`
}
