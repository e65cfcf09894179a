/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. requestLogger: Structured request log on zap
  4. CORS:       Cross-origin requests for frontend
  5. rateLimit:  Per-IP token bucket on the calculate routes only

ROUTE GROUPS:
  /api/calculate/*   Calculation engines (POST, rate limited)
  /api/rates/*       Active rate tables (GET)
  /health            Liveness probe

SECURITY NOTE:
  No authentication middleware. The calculators hold no user state, so
  the only abuse vector is volume, which the rate limiter covers.

SEE ALSO:
  - handlers.go: Handler implementations
  - middleware.go: Logging and rate limiting
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// NewRouter creates a new router with all routes configured. A nil
// limiter disables rate limiting (used by tests).
func NewRouter(h *Handler, limiter *RateLimiter, log *zap.Logger) *chi.Mux {
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Calculator routes
		r.Route("/calculate", func(r chi.Router) {
			if limiter != nil {
				r.Use(rateLimit(limiter))
			}

			r.Post("/compound-interest", h.CompoundInterest)
			r.Post("/sip", h.SIP)
			r.Post("/sip/required", h.SIPRequired)
			r.Post("/sip/breakdown", h.SIPBreakdown)
			r.Post("/lumpsum", h.Lumpsum)
			r.Post("/cagr", h.CAGR)
			r.Post("/reverse-cagr", h.ReverseCAGR)
			r.Post("/rule-of-72", h.RuleOf72)
			r.Post("/capital-gains", h.CapitalGains)
			r.Post("/income-tax", h.IncomeTax)
			r.Post("/income-tax/comparison", h.IncomeTaxComparison)
			r.Post("/tds", h.TDS)
			r.Post("/retirement", h.Retirement)
			r.Post("/rd", h.RD)
			r.Post("/fd", h.FD)
			r.Post("/rd-vs-fd-vs-sip", h.CompareDeposits)
		})

		// Rate table routes
		r.Route("/rates", func(r chi.Router) {
			r.Get("/", h.Rates)
			r.Get("/cii", h.RatesCII)
			r.Get("/income-tax", h.RatesIncomeTax)
			r.Get("/tds", h.RatesTDS)
			r.Get("/slabs/{id}", h.RatesSlab)
		})
	})

	// Health check
	r.Get("/health", h.Health)

	return r
}
